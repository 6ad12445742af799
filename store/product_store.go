package store

import (
	"context"
	"sync"
	"time"

	"github.com/princinho/tradecatalog/dto"
	"github.com/princinho/tradecatalog/models"
)

// ProductStore owns the manufactured and trading product lines. Every
// operation exists once per line with the same semantics. Update and Delete
// on an unknown id are silent no-ops.
type ProductStore interface {
	ManufacturedProducts() []models.ManufacturedProduct
	TradingProducts() []models.TradingProduct

	AddManufactured(ctx context.Context, in dto.CreateProductDTO) (models.ManufacturedProduct, error)
	UpdateManufactured(ctx context.Context, id string, patch dto.UpdateProductDTO) error
	DeleteManufactured(ctx context.Context, id string) error
	GetManufacturedByID(id string) (models.ManufacturedProduct, bool)
	FeaturedManufactured() []models.ManufacturedProduct
	SearchManufactured(f dto.ProductFilter) []models.ManufacturedProduct

	AddTrading(ctx context.Context, in dto.CreateProductDTO) (models.TradingProduct, error)
	UpdateTrading(ctx context.Context, id string, patch dto.UpdateProductDTO) error
	DeleteTrading(ctx context.Context, id string) error
	GetTradingByID(id string) (models.TradingProduct, bool)
	FeaturedTrading() []models.TradingProduct
	SearchTrading(f dto.ProductFilter) []models.TradingProduct

	Categories(kind models.ProductType) []models.Category
}

// productCache is the in-memory state shared by both ProductStore backings.
type productCache struct {
	mu           sync.RWMutex
	manufactured catalog[*models.ManufacturedProduct]
	trading      catalog[*models.TradingProduct]
	events       *Notifier
	now          func() time.Time
}

func (c *productCache) init(o options) {
	c.manufactured = catalog[*models.ManufacturedProduct]{kind: models.ProductTypeManufactured}
	c.trading = catalog[*models.TradingProduct]{kind: models.ProductTypeTrading}
	c.events = o.events
	c.now = o.now
}

func deref[T any](in []*T) []T {
	out := make([]T, len(in))
	for i, p := range in {
		out[i] = *p
	}
	return out
}

func refs[T any](in []T) []*T {
	out := make([]*T, len(in))
	for i := range in {
		out[i] = &in[i]
	}
	return out
}

func (c *productCache) ManufacturedProducts() []models.ManufacturedProduct {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return deref(c.manufactured.all())
}

func (c *productCache) TradingProducts() []models.TradingProduct {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return deref(c.trading.all())
}

func (c *productCache) GetManufacturedByID(id string) (models.ManufacturedProduct, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.manufactured.get(id)
	if !ok {
		return models.ManufacturedProduct{}, false
	}
	return *p, true
}

func (c *productCache) GetTradingByID(id string) (models.TradingProduct, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.trading.get(id)
	if !ok {
		return models.TradingProduct{}, false
	}
	return *p, true
}

func (c *productCache) FeaturedManufactured() []models.ManufacturedProduct {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return deref(c.manufactured.featured())
}

func (c *productCache) FeaturedTrading() []models.TradingProduct {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return deref(c.trading.featured())
}

func (c *productCache) SearchManufactured(f dto.ProductFilter) []models.ManufacturedProduct {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return deref(c.manufactured.filter(0, func(p *models.ManufacturedProduct) bool {
		return matches(&p.ProductBase, f)
	}))
}

func (c *productCache) SearchTrading(f dto.ProductFilter) []models.TradingProduct {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return deref(c.trading.filter(0, func(p *models.TradingProduct) bool {
		if t := f.Type; t != "" && t != "all" && p.Type != t {
			return false
		}
		return matches(&p.ProductBase, f, p.Brand)
	}))
}

func (c *productCache) Categories(kind models.ProductType) []models.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch kind {
	case models.ProductTypeManufactured:
		return c.manufactured.categories()
	case models.ProductTypeTrading:
		return c.trading.categories()
	default:
		return []models.Category{}
	}
}

// MemoryProductStore applies every mutation locally with no backend.
type MemoryProductStore struct {
	productCache
}

var _ ProductStore = (*MemoryProductStore)(nil)

func NewMemoryProductStore(opts ...Option) *MemoryProductStore {
	s := &MemoryProductStore{}
	s.init(buildOptions(opts))
	return s
}

// Seed replaces both product lines, keeping the given ids and timestamps.
func (s *MemoryProductStore) Seed(manufactured []models.ManufacturedProduct, trading []models.TradingProduct) {
	s.mu.Lock()
	s.manufactured.replace(refs(manufactured))
	s.trading.replace(refs(trading))
	s.mu.Unlock()
	s.events.publish(TopicManufactured, OpReloaded, "")
	s.events.publish(TopicTrading, OpReloaded, "")
}

func (s *MemoryProductStore) AddManufactured(_ context.Context, in dto.CreateProductDTO) (models.ManufacturedProduct, error) {
	s.mu.Lock()
	now := s.now()
	p := s.manufactured.add(&models.ManufacturedProduct{
		ProductBase: newBase(in, newID(models.ProductTypeManufactured.IDPrefix(), now), now),
	})
	s.mu.Unlock()
	s.events.publish(TopicManufactured, OpCreated, p.ID)
	return *p, nil
}

func (s *MemoryProductStore) UpdateManufactured(_ context.Context, id string, patch dto.UpdateProductDTO) error {
	s.mu.Lock()
	ok := s.manufactured.update(id, s.now(), func(p *models.ManufacturedProduct) {
		applyManufactured(p, patch)
	})
	s.mu.Unlock()
	if ok {
		s.events.publish(TopicManufactured, OpUpdated, id)
	}
	return nil
}

func (s *MemoryProductStore) DeleteManufactured(_ context.Context, id string) error {
	s.mu.Lock()
	ok := s.manufactured.remove(id)
	s.mu.Unlock()
	if ok {
		s.events.publish(TopicManufactured, OpDeleted, id)
	}
	return nil
}

func (s *MemoryProductStore) AddTrading(_ context.Context, in dto.CreateProductDTO) (models.TradingProduct, error) {
	s.mu.Lock()
	now := s.now()
	p := s.trading.add(&models.TradingProduct{
		ProductBase: newBase(in, newID(models.ProductTypeTrading.IDPrefix(), now), now),
		Type:        in.Type,
		Brand:       in.Brand,
	})
	s.mu.Unlock()
	s.events.publish(TopicTrading, OpCreated, p.ID)
	return *p, nil
}

func (s *MemoryProductStore) UpdateTrading(_ context.Context, id string, patch dto.UpdateProductDTO) error {
	s.mu.Lock()
	ok := s.trading.update(id, s.now(), func(p *models.TradingProduct) {
		applyTrading(p, patch)
	})
	s.mu.Unlock()
	if ok {
		s.events.publish(TopicTrading, OpUpdated, id)
	}
	return nil
}

func (s *MemoryProductStore) DeleteTrading(_ context.Context, id string) error {
	s.mu.Lock()
	ok := s.trading.remove(id)
	s.mu.Unlock()
	if ok {
		s.events.publish(TopicTrading, OpDeleted, id)
	}
	return nil
}
