package state

import (
	"sort"
	"sync"
	"time"

	"github.com/drummsters/ambientclock/internal/events"
	"github.com/drummsters/ambientclock/internal/logger"
)

// DefaultSaveDelay is the debounce window for deferred persistence.
const DefaultSaveDelay = 5 * time.Second

// Options configures a Manager. Store, Bus and Logger may each be nil; a nil
// store disables persistence, a nil bus disables notifications.
type Options struct {
	Store     Store
	Bus       *events.Bus
	Logger    *logger.Logger
	SaveDelay time.Duration

	// DisableLegacyMirror turns off the flat/nested dual shape, leaving the
	// nested sections as the only representation. The mirror is on by default
	// for backward-compatible readers of the snapshot.
	DisableLegacyMirror bool

	// Defaults overrides the built-in default tree. Mostly useful in tests.
	Defaults map[string]any
}

// UpdateOption adjusts how a single Update call behaves.
type UpdateOption func(*updateOptions)

type updateOptions struct {
	immediate  bool
	skipNotify bool
}

// Immediate makes the update persist synchronously instead of arming the
// debounce timer.
func Immediate() UpdateOption {
	return func(o *updateOptions) { o.immediate = true }
}

// SkipNotify suppresses change notifications for this update. Used by callers
// reacting to a notification who must not re-trigger themselves.
func SkipNotify() UpdateOption {
	return func(o *updateOptions) { o.skipNotify = true }
}

// Manager owns the single state tree. All reads return deep clones; all writes
// go through Update/UpdateElement and are atomic from the caller's view.
type Manager struct {
	mu        sync.Mutex
	tree      map[string]any
	defaults  map[string]any
	bus       *events.Bus
	store     Store
	log       *logger.Logger
	saveDelay time.Duration
	saveTimer *time.Timer
	mirror    bool
}

// NewManager creates a Manager and loads the persisted snapshot, migrating the
// historical flat layout on the way in. Absent or malformed snapshots fall
// back to the default tree without error.
func NewManager(opts Options) *Manager {
	delay := opts.SaveDelay
	if delay <= 0 {
		delay = DefaultSaveDelay
	}
	defaults := opts.Defaults
	if defaults == nil {
		defaults = DefaultTree()
	}

	m := &Manager{
		defaults:  cloneMap(defaults),
		bus:       opts.Bus,
		store:     opts.Store,
		log:       opts.Logger,
		saveDelay: delay,
		mirror:    !opts.DisableLegacyMirror,
	}

	tree := cloneMap(defaults)
	if m.store != nil {
		loaded, err := m.store.Load()
		switch {
		case err != nil:
			m.log.Error(err, "failed to load state snapshot, using defaults")
		case loaded != nil:
			tree = mergeMaps(tree, MigrateSnapshot(loaded))
		}
	}
	if m.mirror {
		applyMirror(tree)
	} else {
		stripMirror(tree)
	}
	m.tree = tree
	return m
}

// State returns a deep clone of the current tree.
func (m *Manager) State() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneMap(m.tree)
}

// Value resolves a dot-delimited path against the live tree, returning nil
// for any missing segment.
func (m *Manager) Value(path string) any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneValue(NestedValue(m.tree, path))
}

// ElementState returns a clone of the state record for one element, nil when
// the element has no record yet.
func (m *Manager) ElementState(id string) map[string]any {
	record, _ := m.Value(SectionElements + "." + id).(map[string]any)
	return record
}

// Subscribe registers a handler for changes to the subtree at path, e.g.
// "clock" or "elements.w1". Payload is the new value at that path.
func (m *Manager) Subscribe(path string, handler events.Handler) events.Subscription {
	if m.bus == nil {
		return noSubscription{}
	}
	return m.bus.Subscribe(TopicChanged(path), handler)
}

// Update deep-merges partial into the tree, mirrors recognized legacy keys,
// publishes one change event per touched top-level section (plus one per
// touched element id), and persists on the debounce timer unless Immediate.
func (m *Manager) Update(partial map[string]any, opts ...UpdateOption) {
	if len(partial) == 0 {
		return
	}
	var options updateOptions
	for _, opt := range opts {
		opt(&options)
	}

	normalized := normalizeLegacy(partial)

	m.mu.Lock()
	changedSections := topLevelKeys(normalized)
	changedElements := elementKeys(normalized)

	m.tree = mergeMaps(m.tree, normalized)
	for _, id := range changedElements {
		if elements, ok := m.tree[SectionElements].(map[string]any); ok {
			if record, ok := elements[id].(map[string]any); ok {
				normalizeElementRecord(record)
			}
		}
	}
	if m.mirror {
		applyMirror(m.tree)
	}

	notifications := m.collectNotifications(changedSections, changedElements)
	m.mu.Unlock()

	if !options.skipNotify {
		m.publish(notifications)
	}
	m.persist(options.immediate)
}

// UpdateElement wraps partial under elements.<id>. This is the only sanctioned
// write path from an element back into global state.
func (m *Manager) UpdateElement(id string, partial map[string]any, opts ...UpdateOption) {
	if id == "" || len(partial) == 0 {
		return
	}
	m.Update(map[string]any{
		SectionElements: map[string]any{id: partial},
	}, opts...)
}

// Reset replaces the tree with the default tree and notifies every section.
func (m *Manager) Reset(opts ...UpdateOption) {
	var options updateOptions
	for _, opt := range opts {
		opt(&options)
	}

	m.mu.Lock()
	m.tree = cloneMap(m.defaults)
	if m.mirror {
		applyMirror(m.tree)
	}
	sections := topLevelKeys(m.tree)
	notifications := m.collectNotifications(sections, nil)
	m.mu.Unlock()

	if !options.skipNotify {
		m.publish(notifications)
	}
	m.persist(options.immediate)
}

// Flush cancels any pending debounce timer and saves synchronously.
func (m *Manager) Flush() {
	m.mu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}
	m.mu.Unlock()
	m.saveNow()
}

// Close flushes pending state. The Manager must not be used afterwards.
func (m *Manager) Close() {
	m.Flush()
}

type notification struct {
	topic   string
	payload any
}

// collectNotifications snapshots payloads under the lock so publishes observe
// a consistent tree even if handlers immediately write back.
func (m *Manager) collectNotifications(sections, elementIDs []string) []notification {
	notifications := make([]notification, 0, len(sections)+len(elementIDs))
	for _, section := range sections {
		notifications = append(notifications, notification{
			topic:   TopicChanged(section),
			payload: cloneValue(m.tree[section]),
		})
	}
	for _, id := range elementIDs {
		notifications = append(notifications, notification{
			topic:   TopicChanged(SectionElements + "." + id),
			payload: cloneValue(NestedValue(m.tree, SectionElements+"."+id)),
		})
	}
	return notifications
}

func (m *Manager) publish(notifications []notification) {
	if m.bus == nil {
		return
	}
	for _, n := range notifications {
		m.bus.Publish(n.topic, n.payload)
	}
}

func (m *Manager) persist(immediate bool) {
	if m.store == nil {
		return
	}
	if immediate {
		m.mu.Lock()
		if m.saveTimer != nil {
			m.saveTimer.Stop()
			m.saveTimer = nil
		}
		m.mu.Unlock()
		m.saveNow()
		return
	}

	m.mu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveTimer = time.AfterFunc(m.saveDelay, func() {
		m.mu.Lock()
		m.saveTimer = nil
		m.mu.Unlock()
		m.saveNow()
	})
	m.mu.Unlock()
}

// saveNow serializes the whole tree to the store. Failures are logged and
// never propagate; the in-memory tree stays authoritative.
func (m *Manager) saveNow() {
	if m.store == nil {
		return
	}
	m.mu.Lock()
	snapshot := cloneMap(m.tree)
	m.mu.Unlock()

	if err := m.store.Save(snapshot); err != nil {
		m.log.Error(err, "failed to persist state snapshot")
	}
}

// topLevelKeys returns the sorted top-level keys of a partial, giving the
// deterministic cross-topic notification order.
func topLevelKeys(partial map[string]any) []string {
	keys := make([]string, 0, len(partial))
	for key := range partial {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func elementKeys(partial map[string]any) []string {
	elements, ok := partial[SectionElements].(map[string]any)
	if !ok {
		return nil
	}
	return topLevelKeys(elements)
}

// normalizeElementRecord clamps the numeric fields of an element record in
// place and applies the centered override, which forces position to 50/50.
func normalizeElementRecord(record map[string]any) {
	if position, ok := record["position"].(map[string]any); ok {
		if x, ok := toFloat(position["x"]); ok {
			position["x"] = ClampPosition(x)
		}
		if y, ok := toFloat(position["y"]); ok {
			position["y"] = ClampPosition(y)
		}
	}
	if scale, ok := toFloat(record["scale"]); ok {
		record["scale"] = ClampScale(scale)
	}
	if opacity, ok := toFloat(record["opacity"]); ok {
		record["opacity"] = ClampOpacity(opacity)
	}
	if centered, ok := record["centered"].(bool); ok && centered {
		record["position"] = map[string]any{"x": 50.0, "y": 50.0}
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

type noSubscription struct{}

func (noSubscription) Unsubscribe() {}
