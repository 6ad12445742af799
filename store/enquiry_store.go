package store

import (
	"context"
	"sync"
	"time"

	"github.com/princinho/tradecatalog/dto"
	"github.com/princinho/tradecatalog/models"
)

// EnquiryStore owns received enquiries, newest first, and the state of the
// enquiry dialog. Status changes are unrestricted: any status may follow any other.
type EnquiryStore interface {
	Enquiries() []models.Enquiry
	GetEnquiry(id string) (models.Enquiry, bool)

	// Submit validates form and records an enquiry about product. A form
	// that fails validation returns dto.ValidationErrors.
	Submit(ctx context.Context, form dto.SubmitEnquiryDTO, product models.EnquiryProductContext) (models.Enquiry, error)
	SubmitContact(ctx context.Context, form dto.ContactDTO) (models.Enquiry, error)
	SetStatus(ctx context.Context, id string, status models.EnquiryStatus) error
	Remove(ctx context.Context, id string) error

	OpenEnquiryFlow(product models.EnquiryProductContext)
	CloseEnquiryFlow()
	Flow() models.EnquiryFlow
}

type enquiryCache struct {
	mu     sync.RWMutex
	items  []models.Enquiry
	flow   models.EnquiryFlow
	events *Notifier
	now    func() time.Time
}

func (c *enquiryCache) init(o options) {
	c.items = []models.Enquiry{}
	c.events = o.events
	c.now = o.now
}

func (c *enquiryCache) index(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *enquiryCache) Enquiries() []models.Enquiry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Enquiry{}, c.items...)
}

func (c *enquiryCache) GetEnquiry(id string) (models.Enquiry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	return models.Enquiry{}, false
}

func (c *enquiryCache) prepend(e models.Enquiry) {
	c.mu.Lock()
	c.items = append([]models.Enquiry{e}, c.items...)
	c.mu.Unlock()
	c.events.publish(TopicEnquiries, OpCreated, e.ID)
}

// put replaces the enquiry with the same id; it reports false if there is none.
func (c *enquiryCache) put(e models.Enquiry) bool {
	c.mu.Lock()
	i := c.index(e.ID)
	if i >= 0 {
		c.items[i] = e
	}
	c.mu.Unlock()
	if i < 0 {
		return false
	}
	c.events.publish(TopicEnquiries, OpUpdated, e.ID)
	return true
}

func (c *enquiryCache) drop(id string) {
	c.mu.Lock()
	i := c.index(id)
	if i >= 0 {
		c.items = append(c.items[:i:i], c.items[i+1:]...)
	}
	c.mu.Unlock()
	if i >= 0 {
		c.events.publish(TopicEnquiries, OpDeleted, id)
	}
}

func (c *enquiryCache) replace(items []models.Enquiry) {
	c.mu.Lock()
	c.items = append([]models.Enquiry{}, items...)
	c.mu.Unlock()
	c.events.publish(TopicEnquiries, OpReloaded, "")
}

func (c *enquiryCache) OpenEnquiryFlow(product models.EnquiryProductContext) {
	c.mu.Lock()
	c.flow = models.EnquiryFlow{IsOpen: true, Product: &product}
	c.mu.Unlock()
	c.events.publish(TopicEnquiryFlow, OpOpened, product.ID)
}

// CloseEnquiryFlow always drops the product so the next open cannot reuse it.
func (c *enquiryCache) CloseEnquiryFlow() {
	c.mu.Lock()
	c.flow = models.EnquiryFlow{}
	c.mu.Unlock()
	c.events.publish(TopicEnquiryFlow, OpClosed, "")
}

func (c *enquiryCache) Flow() models.EnquiryFlow {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := c.flow
	if out.Product != nil {
		p := *out.Product
		out.Product = &p
	}
	return out
}

func (c *enquiryCache) newEnquiry(form dto.SubmitEnquiryDTO, product models.EnquiryProductContext) models.Enquiry {
	now := c.now()
	return models.Enquiry{
		ID:          newID(enquiryIDPrefix, now),
		ProductID:   product.ID,
		ProductName: product.Name,
		ProductType: product.Type,
		Name:        form.Name,
		Email:       form.Email,
		Phone:       form.Phone,
		Message:     form.Message,
		Status:      models.EnquiryStatusNew,
		CreatedAt:   now,
	}
}

func checkProduct(product models.EnquiryProductContext) error {
	if product.ID == "" || !product.Type.Valid() {
		return ErrMissingProduct
	}
	return nil
}

// MemoryEnquiryStore records enquiries locally with no backend.
type MemoryEnquiryStore struct {
	enquiryCache
}

var _ EnquiryStore = (*MemoryEnquiryStore)(nil)

func NewMemoryEnquiryStore(opts ...Option) *MemoryEnquiryStore {
	s := &MemoryEnquiryStore{}
	s.init(buildOptions(opts))
	return s
}

// Seed replaces the enquiry list; items are expected newest first.
func (s *MemoryEnquiryStore) Seed(items []models.Enquiry) {
	s.replace(items)
}

func (s *MemoryEnquiryStore) Submit(_ context.Context, form dto.SubmitEnquiryDTO, product models.EnquiryProductContext) (models.Enquiry, error) {
	form, errs := dto.ValidateEnquiry(form)
	if errs != nil {
		return models.Enquiry{}, errs
	}
	if err := checkProduct(product); err != nil {
		return models.Enquiry{}, err
	}
	e := s.newEnquiry(form, product)
	s.prepend(e)
	return e, nil
}

func (s *MemoryEnquiryStore) SubmitContact(_ context.Context, form dto.ContactDTO) (models.Enquiry, error) {
	form, errs := dto.ValidateContact(form)
	if errs != nil {
		return models.Enquiry{}, errs
	}
	e := s.newEnquiry(form.Enquiry(), models.EnquiryProductContext{Name: form.Product})
	s.prepend(e)
	return e, nil
}

func (s *MemoryEnquiryStore) SetStatus(_ context.Context, id string, status models.EnquiryStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	s.mu.Lock()
	i := s.index(id)
	if i >= 0 {
		s.items[i].Status = status
	}
	s.mu.Unlock()
	if i >= 0 {
		s.events.publish(TopicEnquiries, OpUpdated, id)
	}
	return nil
}

func (s *MemoryEnquiryStore) Remove(_ context.Context, id string) error {
	s.drop(id)
	return nil
}
