package store

import (
	"context"
	"errors"

	"github.com/princinho/tradecatalog/dto"
	"github.com/princinho/tradecatalog/models"
)

// EnquiryBackend is the REST collaborator behind RemoteEnquiryStore.
type EnquiryBackend interface {
	ListEnquiries(ctx context.Context) ([]models.Enquiry, error)
	CreateEnquiry(ctx context.Context, in dto.CreateEnquiryDTO) (models.Enquiry, error)
	UpdateEnquiryStatus(ctx context.Context, id string, status models.EnquiryStatus) (models.Enquiry, error)
	DeleteEnquiry(ctx context.Context, id string) error
}

// RemoteEnquiryStore validates locally, then forwards to the backend and
// mirrors the result. The enquiry dialog state never leaves the process.
type RemoteEnquiryStore struct {
	enquiryCache
	backend EnquiryBackend
}

var _ EnquiryStore = (*RemoteEnquiryStore)(nil)

func NewRemoteEnquiryStore(backend EnquiryBackend, opts ...Option) *RemoteEnquiryStore {
	s := &RemoteEnquiryStore{backend: backend}
	s.init(buildOptions(opts))
	return s
}

// Refresh reloads the admin enquiry list. It needs an authenticated backend client.
func (s *RemoteEnquiryStore) Refresh(ctx context.Context) error {
	items, err := s.backend.ListEnquiries(ctx)
	if err != nil {
		return err
	}
	s.replace(items)
	return nil
}

func (s *RemoteEnquiryStore) Submit(ctx context.Context, form dto.SubmitEnquiryDTO, product models.EnquiryProductContext) (models.Enquiry, error) {
	form, errs := dto.ValidateEnquiry(form)
	if errs != nil {
		return models.Enquiry{}, errs
	}
	if err := checkProduct(product); err != nil {
		return models.Enquiry{}, err
	}
	return s.create(ctx, dto.CreateEnquiryDTO{
		SubmitEnquiryDTO: form,
		ProductID:        product.ID,
		ProductName:      product.Name,
		ProductType:      product.Type,
	})
}

func (s *RemoteEnquiryStore) SubmitContact(ctx context.Context, form dto.ContactDTO) (models.Enquiry, error) {
	form, errs := dto.ValidateContact(form)
	if errs != nil {
		return models.Enquiry{}, errs
	}
	return s.create(ctx, dto.CreateEnquiryDTO{
		SubmitEnquiryDTO: form.Enquiry(),
		ProductName:      form.Product,
	})
}

func (s *RemoteEnquiryStore) create(ctx context.Context, in dto.CreateEnquiryDTO) (models.Enquiry, error) {
	e, err := s.backend.CreateEnquiry(ctx, in)
	if err != nil {
		return models.Enquiry{}, err
	}
	if e.Status == "" {
		e.Status = models.EnquiryStatusNew
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	if e.ID == "" {
		e.ID = newID(enquiryIDPrefix, e.CreatedAt)
	}
	s.prepend(e)
	return e, nil
}

func (s *RemoteEnquiryStore) SetStatus(ctx context.Context, id string, status models.EnquiryStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	updated, err := s.backend.UpdateEnquiryStatus(ctx, id, status)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if updated.ID != "" {
		updated.ID = id
		s.put(updated)
		return nil
	}
	if e, ok := s.GetEnquiry(id); ok {
		e.Status = status
		s.put(e)
	}
	return nil
}

func (s *RemoteEnquiryStore) Remove(ctx context.Context, id string) error {
	if err := s.backend.DeleteEnquiry(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	s.drop(id)
	return nil
}
