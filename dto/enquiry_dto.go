package dto

import (
	"strings"

	"github.com/princinho/tradecatalog/models"
)

// SubmitEnquiryDTO is the contact part of the enquiry dialog.
type SubmitEnquiryDTO struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"required,max=20"`
	Message string `json:"message" validate:"required,max=1000"`
}

func (d SubmitEnquiryDTO) trimmed() SubmitEnquiryDTO {
	return SubmitEnquiryDTO{
		Name:    strings.TrimSpace(d.Name),
		Email:   strings.TrimSpace(d.Email),
		Phone:   strings.TrimSpace(d.Phone),
		Message: strings.TrimSpace(d.Message),
	}
}

// CreateEnquiryDTO is the body of POST /enquiries: the form plus the product snapshot.
type CreateEnquiryDTO struct {
	SubmitEnquiryDTO
	ProductID   string             `json:"productId"`
	ProductName string             `json:"productName"`
	ProductType models.ProductType `json:"productType"`
}

func (d CreateEnquiryDTO) Product() models.EnquiryProductContext {
	return models.EnquiryProductContext{ID: d.ProductID, Name: d.ProductName, Type: d.ProductType}
}

type UpdateEnquiryStatusDTO struct {
	Status models.EnquiryStatus `json:"status" binding:"required"`
}
