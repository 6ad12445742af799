package seed

import (
	_ "embed"
	"fmt"

	"github.com/princinho/tradecatalog/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Data is the demo catalog: both product lines plus a few received enquiries, newest first.
type Data struct {
	Manufactured []models.ManufacturedProduct `yaml:"manufactured"`
	Trading      []models.TradingProduct      `yaml:"trading"`
	Enquiries    []models.Enquiry             `yaml:"enquiries"`
}

// Demo parses the embedded catalog.
func Demo() (Data, error) {
	return Parse(catalogYAML)
}

func Parse(raw []byte) (Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("parse seed catalog: %w", err)
	}
	for i, p := range d.Manufactured {
		if p.ID == "" {
			return Data{}, fmt.Errorf("seed catalog: manufactured product %d has no id", i)
		}
	}
	for i, p := range d.Trading {
		if p.ID == "" {
			return Data{}, fmt.Errorf("seed catalog: trading product %d has no id", i)
		}
	}
	for _, e := range d.Enquiries {
		if !e.Status.Valid() {
			return Data{}, fmt.Errorf("seed catalog: enquiry %s has status %q", e.ID, e.Status)
		}
	}
	return d, nil
}

type productSeeder interface {
	Seed(manufactured []models.ManufacturedProduct, trading []models.TradingProduct)
}

type enquirySeeder interface {
	Seed(items []models.Enquiry)
}

// Load puts d into the given stores.
func Load(d Data, products productSeeder, enquiries enquirySeeder) {
	products.Seed(d.Manufactured, d.Trading)
	enquiries.Seed(d.Enquiries)
}
