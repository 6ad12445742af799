package models

import (
	"encoding/json"
	"time"
)

type ProductType string

const (
	ProductTypeManufactured ProductType = "manufactured"
	ProductTypeTrading      ProductType = "trading"
)

func (t ProductType) Valid() bool {
	return t == ProductTypeManufactured || t == ProductTypeTrading
}

// IDPrefix is the prefix used for generated ids of this product line.
func (t ProductType) IDPrefix() string {
	if t == ProductTypeTrading {
		return "trd"
	}
	return "mfg"
}

// ProductBase holds the fields shared by every product line.
type ProductBase struct {
	ID               string         `json:"id" yaml:"id"`
	Name             string         `json:"name" yaml:"name"`
	Category         string         `json:"category" yaml:"category"`
	Description      string         `json:"description" yaml:"description"`
	ShortDescription string         `json:"shortDescription" yaml:"shortDescription"`
	Specifications   Specifications `json:"specifications" yaml:"specifications"`
	Applications     []string       `json:"applications" yaml:"applications"`
	Images           []string       `json:"images" yaml:"images"`
	Featured         bool           `json:"featured" yaml:"featured"`
	CreatedAt        time.Time      `json:"createdAt" yaml:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt" yaml:"updatedAt"`
}

// Common gives mutable access to the shared fields of either variant.
func (b *ProductBase) Common() *ProductBase { return b }

// CoverImage returns the first image, or "" when the product has none.
func (b ProductBase) CoverImage() string {
	if len(b.Images) == 0 {
		return ""
	}
	return b.Images[0]
}

func (b ProductBase) clone() ProductBase {
	out := b
	out.Specifications = b.Specifications.Clone()
	out.Applications = append([]string(nil), b.Applications...)
	out.Images = append([]string(nil), b.Images...)
	return out
}

// Product is implemented only by ManufacturedProduct and TradingProduct.
// Code needing variant fields must switch on the concrete type.
type Product interface {
	Kind() ProductType
	Base() ProductBase
	sealed()
}

type ManufacturedProduct struct {
	ProductBase `yaml:",inline"`
}

type TradingProduct struct {
	ProductBase `yaml:",inline"`
	Type        string `json:"type" yaml:"type"`
	Brand       string `json:"brand,omitempty" yaml:"brand,omitempty"`
}

func (ManufacturedProduct) Kind() ProductType   { return ProductTypeManufactured }
func (p ManufacturedProduct) Base() ProductBase { return p.ProductBase }
func (ManufacturedProduct) sealed()             {}

func (TradingProduct) Kind() ProductType   { return ProductTypeTrading }
func (p TradingProduct) Base() ProductBase { return p.ProductBase }
func (TradingProduct) sealed()             {}

// Clone returns a deep copy so callers never share slices with a store.
func (p *ManufacturedProduct) Clone() *ManufacturedProduct {
	return &ManufacturedProduct{ProductBase: p.ProductBase.clone()}
}

func (p *TradingProduct) Clone() *TradingProduct {
	out := *p
	out.ProductBase = p.ProductBase.clone()
	return &out
}

// The discriminant is written alongside the fields so the front end can tell the variants apart.
type manufacturedJSON struct {
	ProductType ProductType `json:"productType"`
	ProductBase
}

type tradingJSON struct {
	ProductType ProductType `json:"productType"`
	ProductBase
	Type  string `json:"type"`
	Brand string `json:"brand,omitempty"`
}

func (p ManufacturedProduct) MarshalJSON() ([]byte, error) {
	return json.Marshal(manufacturedJSON{ProductType: ProductTypeManufactured, ProductBase: p.ProductBase})
}

func (p *ManufacturedProduct) UnmarshalJSON(data []byte) error {
	var raw manufacturedJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.ProductType != "" && raw.ProductType != ProductTypeManufactured {
		return &WrongVariantError{Want: ProductTypeManufactured, Got: raw.ProductType}
	}
	p.ProductBase = raw.ProductBase
	return nil
}

func (p TradingProduct) MarshalJSON() ([]byte, error) {
	return json.Marshal(tradingJSON{
		ProductType: ProductTypeTrading,
		ProductBase: p.ProductBase,
		Type:        p.Type,
		Brand:       p.Brand,
	})
}

func (p *TradingProduct) UnmarshalJSON(data []byte) error {
	var raw tradingJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.ProductType != "" && raw.ProductType != ProductTypeTrading {
		return &WrongVariantError{Want: ProductTypeTrading, Got: raw.ProductType}
	}
	p.ProductBase = raw.ProductBase
	p.Type = raw.Type
	p.Brand = raw.Brand
	return nil
}

type WrongVariantError struct {
	Want ProductType
	Got  ProductType
}

func (e *WrongVariantError) Error() string {
	return "productType " + string(e.Got) + " cannot be decoded as " + string(e.Want)
}
