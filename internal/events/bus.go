package events

import (
	"fmt"
	"sync"

	"github.com/drummsters/ambientclock/internal/logger"
)

// Handler consumes a payload published on a topic.
type Handler func(payload any)

// Subscription represents a registered handler. Unsubscribe is idempotent and
// safe to call after the topic has seen its last publish.
type Subscription interface {
	Unsubscribe()
}

// Bus is a synchronous publish/subscribe hub keyed by exact topic string.
// Publish invokes handlers in subscription order within the calling goroutine;
// there is no queuing and no reentrancy guard, so a handler publishing to the
// topic it is currently handling will recurse. Callers that need to suppress
// re-notification do so explicitly at the call site (see state.SkipNotify).
type Bus struct {
	mu     sync.RWMutex
	subs   map[string][]subscriberEntry
	nextID int
	log    *logger.Logger
}

type subscriberEntry struct {
	id      int
	handler Handler
}

// NewBus creates an event bus. The logger may be nil.
func NewBus(log *logger.Logger) *Bus {
	return &Bus{
		subs: make(map[string][]subscriberEntry),
		log:  log,
	}
}

// Publish invokes every currently-registered subscriber for topic, in
// subscription order. A panicking subscriber is recovered and logged so later
// subscribers in the same publish still run.
func (b *Bus) Publish(topic string, payload any) {
	if b == nil {
		return
	}

	b.mu.RLock()
	handlers := append([]subscriberEntry(nil), b.subs[topic]...)
	b.mu.RUnlock()

	for _, entry := range handlers {
		b.invoke(topic, entry.handler, payload)
	}
}

func (b *Bus) invoke(topic string, handler Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error(fmt.Errorf("%v", r), "subscriber panicked", "topic", topic)
		}
	}()
	handler(payload)
}

// Subscribe registers a handler for the given topic and returns its
// unsubscribe handle. A nil handler yields a no-op subscription.
func (b *Bus) Subscribe(topic string, handler Handler) Subscription {
	if b == nil || handler == nil {
		return noopSubscription{}
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscriberEntry{id: id, handler: handler})
	b.mu.Unlock()

	return &subscription{bus: b, topic: topic, id: id}
}

// SubscriberCount reports how many handlers are registered for topic.
func (b *Bus) SubscriberCount(topic string) int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

func (b *Bus) remove(topic string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.subs[topic]
	for i, entry := range handlers {
		if entry.id == id {
			b.subs[topic] = append(handlers[:i], handlers[i+1:]...)
			break
		}
	}
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
}

type subscription struct {
	bus   *Bus
	topic string
	id    int
	once  sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.bus.remove(s.topic, s.id)
	})
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}
