package dto

import "strings"

// ContactDTO is the contact page form. It allows longer messages than the
// enquiry dialog and names the product as free text.
type ContactDTO struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"required,max=20"`
	Product string `json:"product" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,max=2000"`
}

func (d ContactDTO) trimmed() ContactDTO {
	return ContactDTO{
		Name:    strings.TrimSpace(d.Name),
		Email:   strings.TrimSpace(d.Email),
		Phone:   strings.TrimSpace(d.Phone),
		Product: strings.TrimSpace(d.Product),
		Message: strings.TrimSpace(d.Message),
	}
}

// Enquiry returns the contact fields in enquiry form.
func (d ContactDTO) Enquiry() SubmitEnquiryDTO {
	return SubmitEnquiryDTO{Name: d.Name, Email: d.Email, Phone: d.Phone, Message: d.Message}
}
