package dto

import "github.com/princinho/tradecatalog/models"

// CreateProductDTO carries every product field except id and timestamps.
// Type and Brand are only read for trading products.
type CreateProductDTO struct {
	Name             string                `json:"name" binding:"required"`
	Category         string                `json:"category" binding:"required"`
	Description      string                `json:"description"`
	ShortDescription string                `json:"shortDescription"`
	Specifications   models.Specifications `json:"specifications"`
	Applications     []string              `json:"applications"`
	Images           []string              `json:"images"`
	Featured         bool                  `json:"featured"`
	Type             string                `json:"type"`
	Brand            string                `json:"brand"`
}

// UpdateProductDTO fields are optional pointers; nil means "keep".
type UpdateProductDTO struct {
	Name             *string                `json:"name,omitempty"`
	Category         *string                `json:"category,omitempty"`
	Description      *string                `json:"description,omitempty"`
	ShortDescription *string                `json:"shortDescription,omitempty"`
	Specifications   *models.Specifications `json:"specifications,omitempty"`
	Applications     *[]string              `json:"applications,omitempty"`
	Images           *[]string              `json:"images,omitempty"`
	Featured         *bool                  `json:"featured,omitempty"`
	Type             *string                `json:"type,omitempty"`
	Brand            *string                `json:"brand,omitempty"`
}

func (u UpdateProductDTO) IsEmpty() bool {
	return u == UpdateProductDTO{}
}

// ProductFilter narrows a product line the way the list pages do.
// Empty fields (or "all") match everything.
type ProductFilter struct {
	Query    string `form:"q"`
	Category string `form:"category"`
	Type     string `form:"type"`
}
