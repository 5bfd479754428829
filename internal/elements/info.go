package elements

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/drummsters/ambientclock/internal/element"
	"github.com/drummsters/ambientclock/internal/events"
	"github.com/drummsters/ambientclock/internal/state"
)

var infoStyle = lipgloss.NewStyle().Faint(true).Italic(true)

// BackgroundInfo shows the photographer credit for the image currently
// on screen. It follows the background section of the state tree rather
// than its own element record.
type BackgroundInfo struct {
	*element.Base

	mu           sync.Mutex
	title        string
	photographer string
	source       string

	sub events.Subscription
}

// valueReader is the optional read surface used to seed the credit
// before the first background change arrives. *state.Manager provides it.
type valueReader interface {
	Value(path string) any
}

func NewBackgroundInfo(cfg element.Config) (element.Element, error) {
	i := &BackgroundInfo{}
	i.Base = element.NewBase(cfg, i)
	return i, nil
}

func (i *BackgroundInfo) Build(*element.Container) error { return nil }

func (i *BackgroundInfo) ApplyOptions(map[string]any) {}

func (i *BackgroundInfo) Activate() error {
	if reader, ok := i.Deps().States.(valueReader); ok {
		if section, ok := reader.Value(state.SectionBackground).(map[string]any); ok {
			i.consume(section)
		}
	}
	if bus := i.Bus(); bus != nil {
		i.sub = bus.Subscribe(state.TopicChanged(state.SectionBackground), func(payload any) {
			section, ok := payload.(map[string]any)
			if !ok {
				return
			}
			i.consume(section)
			i.Render()
		})
	}
	return nil
}

func (i *BackgroundInfo) Deactivate() {
	if i.sub != nil {
		i.sub.Unsubscribe()
		i.sub = nil
	}
}

func (i *BackgroundInfo) View() string {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.photographer == "" && i.title == "" {
		return ""
	}

	credit := i.title
	if i.photographer != "" {
		if credit != "" {
			credit += " · "
		}
		credit += fmt.Sprintf("photo by %s", i.photographer)
	}
	if i.source != "" {
		credit += fmt.Sprintf(" (%s)", i.source)
	}
	return infoStyle.Render(credit)
}

func (i *BackgroundInfo) consume(section map[string]any) {
	record, ok := section["currentImage"].(map[string]any)
	if !ok {
		return
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.title, _ = record["title"].(string)
	i.photographer, _ = record["photographer"].(string)
	i.source, _ = record["source"].(string)
}
