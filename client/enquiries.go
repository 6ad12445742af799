package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/princinho/tradecatalog/dto"
	"github.com/princinho/tradecatalog/models"
	"github.com/princinho/tradecatalog/store"
)

var _ store.EnquiryBackend = (*Client)(nil)

func (c *Client) ListEnquiries(ctx context.Context) ([]models.Enquiry, error) {
	out := make([]models.Enquiry, 0)
	if err := c.do(ctx, http.MethodGet, "/admin/enquiries", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEnquiry(ctx context.Context, in dto.CreateEnquiryDTO) (models.Enquiry, error) {
	var out models.Enquiry
	if err := c.do(ctx, http.MethodPost, "/enquiries", in, &out); err != nil {
		return models.Enquiry{}, err
	}
	if out.ProductID == "" && out.ProductName == "" {
		p := in.Product()
		out.ProductID, out.ProductName, out.ProductType = p.ID, p.Name, p.Type
	}
	if out.Name == "" {
		out.Name, out.Email, out.Phone, out.Message = in.Name, in.Email, in.Phone, in.Message
	}
	return out, nil
}

// UpdateEnquiryStatus returns the enquiry as the backend stored it. A reply
// without a body decodes to the zero Enquiry.
func (c *Client) UpdateEnquiryStatus(ctx context.Context, id string, status models.EnquiryStatus) (models.Enquiry, error) {
	var out models.Enquiry
	path := "/admin/enquiries/" + url.PathEscape(id) + "/status"
	if err := c.do(ctx, http.MethodPatch, path, dto.UpdateEnquiryStatusDTO{Status: status}, &out); err != nil {
		return models.Enquiry{}, err
	}
	return out, nil
}

func (c *Client) DeleteEnquiry(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/enquiries/"+url.PathEscape(id), nil, nil)
}
