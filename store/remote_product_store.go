package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/princinho/tradecatalog/dto"
	"github.com/princinho/tradecatalog/models"
)

// ProductBackend is the REST collaborator behind RemoteProductStore.
// Mutations on an id the backend does not know return ErrNotFound.
type ProductBackend interface {
	ListManufactured(ctx context.Context) ([]models.ManufacturedProduct, error)
	CreateManufactured(ctx context.Context, in dto.CreateProductDTO) (models.ManufacturedProduct, error)
	UpdateManufactured(ctx context.Context, id string, patch dto.UpdateProductDTO) (models.ManufacturedProduct, error)
	DeleteManufactured(ctx context.Context, id string) error

	ListTrading(ctx context.Context) ([]models.TradingProduct, error)
	CreateTrading(ctx context.Context, in dto.CreateProductDTO) (models.TradingProduct, error)
	UpdateTrading(ctx context.Context, id string, patch dto.UpdateProductDTO) (models.TradingProduct, error)
	DeleteTrading(ctx context.Context, id string) error
}

// errEmptyReply marks a backend answer that carried no product record.
var errEmptyReply = fmt.Errorf("%w: backend reply has no product id", ErrBackendUnavailable)

// RemoteProductStore sends every mutation to the backend and mirrors the
// backend's answer in a local cache that the read operations serve from.
// The backend assigns ids and timestamps. When an update reply carries no
// record the patch is applied to the cached copy instead.
type RemoteProductStore struct {
	productCache
	backend ProductBackend
}

var _ ProductStore = (*RemoteProductStore)(nil)

func NewRemoteProductStore(backend ProductBackend, opts ...Option) *RemoteProductStore {
	s := &RemoteProductStore{backend: backend}
	s.init(buildOptions(opts))
	return s
}

// Refresh reloads both product lines from the backend. On error the cache is left as it was.
func (s *RemoteProductStore) Refresh(ctx context.Context) error {
	manufactured, err := s.backend.ListManufactured(ctx)
	if err != nil {
		return err
	}
	trading, err := s.backend.ListTrading(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.manufactured.replace(refs(manufactured))
	s.trading.replace(refs(trading))
	s.mu.Unlock()
	s.events.publish(TopicManufactured, OpReloaded, "")
	s.events.publish(TopicTrading, OpReloaded, "")
	return nil
}

func (s *RemoteProductStore) AddManufactured(ctx context.Context, in dto.CreateProductDTO) (models.ManufacturedProduct, error) {
	p, err := s.backend.CreateManufactured(ctx, in)
	if err != nil {
		return models.ManufacturedProduct{}, err
	}
	if p.ID == "" {
		return models.ManufacturedProduct{}, errEmptyReply
	}
	s.mu.Lock()
	s.manufactured.put(&p)
	s.mu.Unlock()
	s.events.publish(TopicManufactured, OpCreated, p.ID)
	return p, nil
}

func (s *RemoteProductStore) UpdateManufactured(ctx context.Context, id string, patch dto.UpdateProductDTO) error {
	p, err := s.backend.UpdateManufactured(ctx, id, patch)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	s.mu.Lock()
	ok := true
	if p.ID == "" {
		ok = s.manufactured.update(id, s.now(), func(cached *models.ManufacturedProduct) {
			applyManufactured(cached, patch)
		})
	} else {
		p.ID = id
		s.manufactured.put(&p)
	}
	s.mu.Unlock()
	if ok {
		s.events.publish(TopicManufactured, OpUpdated, id)
	}
	return nil
}

func (s *RemoteProductStore) DeleteManufactured(ctx context.Context, id string) error {
	if err := s.backend.DeleteManufactured(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	s.mu.Lock()
	ok := s.manufactured.remove(id)
	s.mu.Unlock()
	if ok {
		s.events.publish(TopicManufactured, OpDeleted, id)
	}
	return nil
}

func (s *RemoteProductStore) AddTrading(ctx context.Context, in dto.CreateProductDTO) (models.TradingProduct, error) {
	p, err := s.backend.CreateTrading(ctx, in)
	if err != nil {
		return models.TradingProduct{}, err
	}
	if p.ID == "" {
		return models.TradingProduct{}, errEmptyReply
	}
	s.mu.Lock()
	s.trading.put(&p)
	s.mu.Unlock()
	s.events.publish(TopicTrading, OpCreated, p.ID)
	return p, nil
}

func (s *RemoteProductStore) UpdateTrading(ctx context.Context, id string, patch dto.UpdateProductDTO) error {
	p, err := s.backend.UpdateTrading(ctx, id, patch)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	s.mu.Lock()
	ok := true
	if p.ID == "" {
		ok = s.trading.update(id, s.now(), func(cached *models.TradingProduct) {
			applyTrading(cached, patch)
		})
	} else {
		p.ID = id
		s.trading.put(&p)
	}
	s.mu.Unlock()
	if ok {
		s.events.publish(TopicTrading, OpUpdated, id)
	}
	return nil
}

func (s *RemoteProductStore) DeleteTrading(ctx context.Context, id string) error {
	if err := s.backend.DeleteTrading(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	s.mu.Lock()
	ok := s.trading.remove(id)
	s.mu.Unlock()
	if ok {
		s.events.publish(TopicTrading, OpDeleted, id)
	}
	return nil
}
