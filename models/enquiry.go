package models

import (
	"time"
)

type EnquiryStatus string

const (
	EnquiryStatusNew       EnquiryStatus = "New"
	EnquiryStatusContacted EnquiryStatus = "Contacted"
	EnquiryStatusClosed    EnquiryStatus = "Closed"
)

var EnquiryStatuses = []EnquiryStatus{EnquiryStatusNew, EnquiryStatusContacted, EnquiryStatusClosed}

func (s EnquiryStatus) Valid() bool {
	for _, v := range EnquiryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// EnquiryProductContext identifies the product an enquiry is about. It is
// copied into the enquiry on submission, never kept as a reference.
type EnquiryProductContext struct {
	ID   string      `json:"id" yaml:"id"`
	Name string      `json:"name" yaml:"name"`
	Type ProductType `json:"type" yaml:"type"`
}

// ContextFor builds the enquiry context of a catalog product.
func ContextFor(p Product) EnquiryProductContext {
	b := p.Base()
	return EnquiryProductContext{ID: b.ID, Name: b.Name, Type: p.Kind()}
}

type Enquiry struct {
	ID          string        `json:"id" yaml:"id"`
	ProductID   string        `json:"productId" yaml:"productId"`
	ProductName string        `json:"productName" yaml:"productName"`
	ProductType ProductType   `json:"productType" yaml:"productType"`
	Name        string        `json:"name" yaml:"name"`
	Email       string        `json:"email" yaml:"email"`
	Phone       string        `json:"phone" yaml:"phone"`
	Message     string        `json:"message" yaml:"message"`
	Status      EnquiryStatus `json:"status" yaml:"status"`
	CreatedAt   time.Time     `json:"createdAt" yaml:"createdAt"`
}

// EnquiryFlow is the state of the enquiry dialog: whether it is open and
// which product it was opened for.
type EnquiryFlow struct {
	IsOpen  bool                   `json:"isOpen"`
	Product *EnquiryProductContext `json:"product"`
}
