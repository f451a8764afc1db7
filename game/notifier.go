package game

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// DefaultSelectionSubject is the NATS subject selection events go out on
const DefaultSelectionSubject = "agents.selected"

// Listener receives selection events. Listeners run synchronously on the
// notifying goroutine and must not block.
type Listener func(SelectionEvent)

// Notifier delivers selection events to registered listeners and, when
// configured, to a NATS subject. Delivery is fire-and-forget.
type Notifier struct {
	mutex     sync.RWMutex
	listeners map[uint64]Listener
	nextID    uint64
	nc        *nats.Conn
	subject   string
	getTime   TimeStamper
}

// NotifierOption configures a Notifier
type NotifierOption func(*Notifier)

// WithNATS publishes every selection event on subject through nc
func WithNATS(nc *nats.Conn, subject string) NotifierOption {
	return func(n *Notifier) {
		n.nc = nc
		if subject != "" {
			n.subject = subject
		}
	}
}

// WithTimeStamper overrides the event clock
func WithTimeStamper(ts TimeStamper) NotifierOption {
	return func(n *Notifier) {
		n.getTime = ts
	}
}

// NewNotifier creates a notifier with no listeners
func NewNotifier(opts ...NotifierOption) *Notifier {
	n := &Notifier{
		listeners: make(map[uint64]Listener),
		subject:   DefaultSelectionSubject,
		getTime:   DefaultTimeStamper,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Subscribe registers a listener and returns a function that removes it
func (n *Notifier) Subscribe(fn Listener) func() {
	n.mutex.Lock()
	n.nextID++
	id := n.nextID
	n.listeners[id] = fn
	n.mutex.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mutex.Lock()
			delete(n.listeners, id)
			n.mutex.Unlock()
		})
	}
}

// Listeners returns the number of registered listeners
func (n *Notifier) Listeners() int {
	n.mutex.RLock()
	defer n.mutex.RUnlock()
	return len(n.listeners)
}

// Notify emits exactly one selection event for agent. With no listeners and
// no NATS connection the event is dropped.
func (n *Notifier) Notify(agent Agent) SelectionEvent {
	return n.notify(agent, nil)
}

// NotifyPicked is Notify for a pick resolved against the scene; the event
// also carries the avatar's pose at that moment
func (n *Notifier) NotifyPicked(agent Agent, tr Transform) SelectionEvent {
	return n.notify(agent, &tr)
}

func (n *Notifier) notify(agent Agent, tr *Transform) SelectionEvent {
	event := SelectionEvent{
		ID:        uuid.NewString(),
		Type:      EventAgentSelected,
		Agent:     agent,
		Transform: tr,
		Timestamp: n.getTime(),
	}

	// Copy listeners so callbacks run without the lock held
	n.mutex.RLock()
	ids := make([]uint64, 0, len(n.listeners))
	for id := range n.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, n.listeners[id])
	}
	n.mutex.RUnlock()

	for _, fn := range listeners {
		fn(event)
	}

	n.publish(event)

	log.Info("Agent selected", "agent", agent.Name, "event", event.ID, "listeners", len(listeners))
	return event
}

func (n *Notifier) publish(event SelectionEvent) {
	if n.nc == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Error("Error marshaling selection event", "error", err)
		return
	}

	if err := n.nc.Publish(n.subject, data); err != nil {
		log.Error("Error publishing selection event", "subject", n.subject, "error", err)
	}
}
