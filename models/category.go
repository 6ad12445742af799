package models

// Category is derived from the products of one line; it is not stored on its own.
type Category struct {
	Name  string      `json:"name"`
	Line  ProductType `json:"productType"`
	Count int         `json:"count"`
}
