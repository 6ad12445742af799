package store

import (
	"sync"
	"time"

	"github.com/princinho/tradecatalog/models"
)

// FlowSessions keeps one enquiry dialog per client key, so a product opened
// by one visitor is never seen by another. An entry is dropped when it is
// closed or has not been touched for ttl.
type FlowSessions struct {
	mu     sync.Mutex
	flows  map[string]flowEntry
	ttl    time.Duration
	events *Notifier
	now    func() time.Time
}

type flowEntry struct {
	product models.EnquiryProductContext
	touched time.Time
}

func NewFlowSessions(ttl time.Duration, opts ...Option) *FlowSessions {
	o := buildOptions(opts)
	return &FlowSessions{
		flows:  map[string]flowEntry{},
		ttl:    ttl,
		events: o.events,
		now:    o.now,
	}
}

func (s *FlowSessions) expired(e flowEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.touched) > s.ttl
}

// Open replaces any dialog the client had open.
func (s *FlowSessions) Open(key string, product models.EnquiryProductContext) models.EnquiryFlow {
	s.mu.Lock()
	now := s.now()
	for k, e := range s.flows {
		if s.expired(e, now) {
			delete(s.flows, k)
		}
	}
	s.flows[key] = flowEntry{product: product, touched: now}
	s.mu.Unlock()
	s.events.publish(TopicEnquiryFlow, OpOpened, product.ID)
	return models.EnquiryFlow{IsOpen: true, Product: &product}
}

func (s *FlowSessions) Close(key string) {
	s.mu.Lock()
	_, ok := s.flows[key]
	delete(s.flows, key)
	s.mu.Unlock()
	if ok {
		s.events.publish(TopicEnquiryFlow, OpClosed, "")
	}
}

// Get returns the client's dialog, closed when there is none or it expired.
func (s *FlowSessions) Get(key string) models.EnquiryFlow {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.flows[key]
	if !ok {
		return models.EnquiryFlow{}
	}
	if s.expired(e, s.now()) {
		delete(s.flows, key)
		return models.EnquiryFlow{}
	}
	product := e.product
	return models.EnquiryFlow{IsOpen: true, Product: &product}
}

// Len counts the dialogs currently held.
func (s *FlowSessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.flows)
}
