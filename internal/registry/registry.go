// Package registry maps element type names to factories, capabilities and
// control-panel schemas, and constructs element instances from them.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/drummsters/ambientclock/internal/element"
	"github.com/drummsters/ambientclock/internal/logger"
	ambienterrors "github.com/drummsters/ambientclock/pkg/errors"
)

// Factory constructs an element from its config. Factories must not retain
// the config map beyond construction.
type Factory func(cfg element.Config) (element.Element, error)

// PluginFactory produces a fresh plugin instance for one element.
type PluginFactory func() element.Plugin

// TypeConfig describes a registered element type.
type TypeConfig struct {
	Capabilities []string
	Panel        PanelSchema
}

type registration struct {
	factory Factory
	config  TypeConfig
}

// Registry is the element type registry. All methods are safe for concurrent
// use.
type Registry struct {
	mu           sync.RWMutex
	types        map[string]registration
	capabilities map[string]PluginFactory
	log          *logger.Logger
}

// New creates a Registry with the built-in capabilities pre-registered.
func New(log *logger.Logger) *Registry {
	r := &Registry{
		types:        make(map[string]registration),
		capabilities: make(map[string]PluginFactory),
		log:          log,
	}
	r.RegisterCapability("draggable", element.NewMovePlugin)
	r.RegisterCapability("resizable", element.NewZoomPlugin)
	return r
}

// Register adds an element type. An already-registered type is overwritten
// with a logged warning; a nil factory is rejected with a logged error and
// leaves the registry unchanged.
func (r *Registry) Register(elementType string, factory Factory, cfg TypeConfig) {
	if factory == nil {
		r.log.Error(nil, "rejecting element type with nil factory", "type", elementType)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[elementType]; exists {
		r.log.Warn("overwriting registered element type", "type", elementType)
	}
	r.types[elementType] = registration{factory: factory, config: cfg}
}

// RegisterCapability maps a capability name to a plugin factory.
func (r *Registry) RegisterCapability(name string, factory PluginFactory) {
	if factory == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capabilities[name] = factory
}

// Create constructs an element instance of the given type. Construction
// failures, including panicking factories, are logged and returned as errors;
// Create never panics. An empty id gets a generated one.
func (r *Registry) Create(elementType, id string, options map[string]any, deps element.Deps) (el element.Element, err error) {
	r.mu.RLock()
	reg, exists := r.types[elementType]
	capabilities := r.capabilities
	r.mu.RUnlock()

	if !exists {
		err = ambienterrors.NewElementError(id, elementType, fmt.Errorf("element type not registered"))
		r.log.Error(err, "cannot create element")
		return nil, err
	}
	if id == "" {
		id = elementType + "-" + uuid.NewString()[:8]
	}

	plugins := make([]element.Plugin, 0, len(reg.config.Capabilities))
	for _, name := range reg.config.Capabilities {
		factory, ok := capabilities[name]
		if !ok {
			r.log.Warn("unknown capability skipped", "type", elementType, "capability", name)
			continue
		}
		plugins = append(plugins, factory())
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = ambienterrors.NewElementError(id, elementType, fmt.Errorf("factory panicked: %v", rec))
			r.log.Error(err, "element construction failed")
			el = nil
		}
	}()

	el, err = reg.factory(element.Config{
		ID:           id,
		Type:         elementType,
		Options:      options,
		Capabilities: append([]string(nil), reg.config.Capabilities...),
		Plugins:      plugins,
		Mode:         element.ModeStandalone,
		Deps:         deps,
	})
	if err != nil {
		err = ambienterrors.NewElementError(id, elementType, err)
		r.log.Error(err, "element construction failed")
		return nil, err
	}
	return el, nil
}

// Capabilities returns the capability names declared for a type, empty when
// the type is unknown.
func (r *Registry) Capabilities(elementType string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.types[elementType]
	if !ok {
		return nil
	}
	return append([]string(nil), reg.config.Capabilities...)
}

// Panel returns the control-panel schema for a type, zero when unknown.
func (r *Registry) Panel(elementType string) PanelSchema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.types[elementType].config.Panel
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a type is known.
func (r *Registry) IsRegistered(elementType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[elementType]
	return ok
}
