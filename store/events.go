package store

import (
	EventBus "github.com/asaskevich/EventBus"
)

const (
	TopicManufactured = "products:manufactured"
	TopicTrading      = "products:trading"
	TopicEnquiries    = "enquiries"
	TopicEnquiryFlow  = "enquiries:flow"
	TopicSession      = "auth:session"
)

type Op string

const (
	OpCreated  Op = "created"
	OpUpdated  Op = "updated"
	OpDeleted  Op = "deleted"
	OpReloaded Op = "reloaded"
	OpLogin    Op = "login"
	OpLogout   Op = "logout"
	OpOpened   Op = "opened"
	OpClosed   Op = "closed"
)

// Change is published after a store mutation has been fully applied.
type Change struct {
	Topic string
	Op    Op
	ID    string
}

// Notifier fans store changes out to subscribers. Subscribe handlers run
// synchronously on the mutating goroutine while the bus lock is held: they
// may read any store, but must not mutate a store, subscribe or unsubscribe,
// since each of those takes the bus lock again. Handlers that need to
// mutate register with SubscribeAsync.
type Notifier struct {
	bus EventBus.Bus
}

func NewNotifier() *Notifier {
	return &Notifier{bus: EventBus.New()}
}

func (n *Notifier) Subscribe(topic string, fn func(Change)) error {
	return n.bus.Subscribe(topic, fn)
}

// SubscribeAsync runs fn on its own goroutine, one call at a time, outside
// the bus lock. Wait blocks until queued calls have finished.
func (n *Notifier) SubscribeAsync(topic string, fn func(Change)) error {
	return n.bus.SubscribeAsync(topic, fn, true)
}

func (n *Notifier) Wait() {
	n.bus.WaitAsync()
}

func (n *Notifier) Unsubscribe(topic string, fn func(Change)) error {
	return n.bus.Unsubscribe(topic, fn)
}

func (n *Notifier) publish(topic string, op Op, id string) {
	n.bus.Publish(topic, Change{Topic: topic, Op: op, ID: id})
}
