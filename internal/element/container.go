package element

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/drummsters/ambientclock/internal/state"
)

// Mode selects the container placement strategy. Standalone containers are
// positioned by the compositor; embedded containers are laid out by whatever
// view hosts them. The strategy is chosen by configuration, never inferred.
type Mode int

const (
	ModeStandalone Mode = iota
	ModeEmbedded
)

// Container is an element's single render node. It is created exactly once
// during Init and never replaced; Destroy unmounts it.
type Container struct {
	id   string
	mode Mode

	X       float64 // percent of viewport width
	Y       float64 // percent of viewport height
	Scale   float64
	Opacity float64
	Effect  string
	Visible bool
	Z       int

	content string
	mounted bool
}

// NewContainer creates a container for the given element id.
func NewContainer(id string, mode Mode) *Container {
	return &Container{
		id:      id,
		mode:    mode,
		X:       50,
		Y:       50,
		Scale:   1,
		Opacity: 1,
		Effect:  state.EffectFlat,
		Visible: true,
	}
}

// ID returns the owning element's id.
func (c *Container) ID() string { return c.id }

// Mode returns the placement strategy.
func (c *Container) Mode() Mode { return c.mode }

// Mount marks the container as attached to the render surface.
func (c *Container) Mount() { c.mounted = true }

// Unmount detaches the container; idempotent.
func (c *Container) Unmount() { c.mounted = false }

// IsMounted reports whether the container is attached to the render surface.
func (c *Container) IsMounted() bool { return c != nil && c.mounted }

// SetContent stores the rendered block.
func (c *Container) SetContent(content string) { c.content = content }

// Content returns the last rendered block.
func (c *Container) Content() string { return c.content }

// Size measures the rendered block in cells, ANSI-aware.
func (c *Container) Size() (width, height int) {
	if c.content == "" {
		return 0, 0
	}
	lines := strings.Split(c.content, "\n")
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > width {
			width = w
		}
	}
	return width, len(lines)
}
