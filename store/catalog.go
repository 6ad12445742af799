package store

import (
	"strings"
	"time"

	"github.com/princinho/tradecatalog/dto"
	"github.com/princinho/tradecatalog/models"
)

// featuredLimit caps the curated "featured" subset of a product line.
const featuredLimit = 3

type record[T any] interface {
	Common() *models.ProductBase
	Clone() T
}

// catalog is one product line in insertion order. It is not safe for
// concurrent use; the owning store holds the lock.
type catalog[T record[T]] struct {
	kind  models.ProductType
	items []T
}

func (c *catalog[T]) index(id string) int {
	for i, p := range c.items {
		if p.Common().ID == id {
			return i
		}
	}
	return -1
}

func (c *catalog[T]) add(p T) T {
	c.items = append(c.items, p.Clone())
	return p.Clone()
}

// update applies fn to the record with the given id and refreshes UpdatedAt.
// It reports false, changing nothing, when the id is unknown.
func (c *catalog[T]) update(id string, now time.Time, fn func(T)) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	next := c.items[i].Clone()
	base := next.Common()
	createdAt, prevUpdated := base.CreatedAt, base.UpdatedAt
	fn(next)
	base = next.Common()
	base.ID = id
	base.CreatedAt = createdAt
	if now.Before(prevUpdated) {
		now = prevUpdated
	}
	base.UpdatedAt = now
	c.items[i] = next
	return true
}

// put stores p as returned by a backend, replacing the record with the same id.
func (c *catalog[T]) put(p T) {
	if i := c.index(p.Common().ID); i >= 0 {
		c.items[i] = p.Clone()
		return
	}
	c.items = append(c.items, p.Clone())
}

func (c *catalog[T]) remove(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	return true
}

func (c *catalog[T]) get(id string) (T, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i].Clone(), true
	}
	var zero T
	return zero, false
}

func (c *catalog[T]) filter(limit int, keep func(T) bool) []T {
	out := make([]T, 0)
	for _, p := range c.items {
		if limit > 0 && len(out) == limit {
			break
		}
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (c *catalog[T]) all() []T {
	return c.filter(0, func(T) bool { return true })
}

func (c *catalog[T]) featured() []T {
	return c.filter(featuredLimit, func(p T) bool { return p.Common().Featured })
}

func (c *catalog[T]) replace(items []T) {
	c.items = make([]T, 0, len(items))
	for _, p := range items {
		c.items = append(c.items, p.Clone())
	}
}

func (c *catalog[T]) categories() []models.Category {
	out := make([]models.Category, 0)
	pos := map[string]int{}
	for _, p := range c.items {
		name := p.Common().Category
		if i, ok := pos[name]; ok {
			out[i].Count++
			continue
		}
		pos[name] = len(out)
		out = append(out, models.Category{Name: name, Line: c.kind, Count: 1})
	}
	return out
}

// matches applies the list page filter; extra carries the variant-specific
// search terms (brand for trading products).
func matches(b *models.ProductBase, f dto.ProductFilter, extra ...string) bool {
	if cat := strings.TrimSpace(f.Category); cat != "" && cat != "all" && b.Category != cat {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	fields := append([]string{b.Name, b.ShortDescription}, extra...)
	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func newBase(in dto.CreateProductDTO, id string, now time.Time) models.ProductBase {
	return models.ProductBase{
		ID:               id,
		Name:             in.Name,
		Category:         in.Category,
		Description:      in.Description,
		ShortDescription: in.ShortDescription,
		Specifications:   in.Specifications.Clone(),
		Applications:     append([]string(nil), in.Applications...),
		Images:           append([]string(nil), in.Images...),
		Featured:         in.Featured,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func applyBase(b *models.ProductBase, u dto.UpdateProductDTO) {
	if u.Name != nil {
		b.Name = *u.Name
	}
	if u.Category != nil {
		b.Category = *u.Category
	}
	if u.Description != nil {
		b.Description = *u.Description
	}
	if u.ShortDescription != nil {
		b.ShortDescription = *u.ShortDescription
	}
	if u.Specifications != nil {
		b.Specifications = u.Specifications.Clone()
	}
	if u.Applications != nil {
		b.Applications = append([]string(nil), (*u.Applications)...)
	}
	if u.Images != nil {
		b.Images = append([]string(nil), (*u.Images)...)
	}
	if u.Featured != nil {
		b.Featured = *u.Featured
	}
}

func applyManufactured(p *models.ManufacturedProduct, u dto.UpdateProductDTO) {
	applyBase(&p.ProductBase, u)
}

func applyTrading(p *models.TradingProduct, u dto.UpdateProductDTO) {
	applyBase(&p.ProductBase, u)
	if u.Type != nil {
		p.Type = *u.Type
	}
	if u.Brand != nil {
		p.Brand = *u.Brand
	}
}
