package catalog

import (
	"context"
	"encoding/json"
	"errors"

	"BankCatalog/internal/locale"
)

var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Product is one entry of the catalog. CategoryKey is the canonical,
// untranslated category; Category is the label shown to the visitor.
type Product struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	ShortDescription string   `json:"shortDescription"`
	Description      string   `json:"description"`
	Image            string   `json:"image"`
	CategoryKey      string   `json:"categoryKey"`
	Category         string   `json:"category"`
	Features         []string `json:"features"`
}

// Source yields the product list for a locale. Implementations must not
// reassign IDs between calls for the same catalog revision.
type Source interface {
	Products(ctx context.Context, l locale.Locale) ([]Product, error)
}

// wireProduct is the shape of the static catalog resource, where
// "category" still holds the canonical key.
type wireProduct struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	ShortDescription string   `json:"shortDescription"`
	Description      string   `json:"description"`
	Image            string   `json:"image"`
	Category         string   `json:"category"`
	Features         []string `json:"features"`
}

func (w wireProduct) product() Product {
	features := w.Features
	if features == nil {
		features = []string{}
	}
	return Product{
		ID:               w.ID,
		Title:            w.Title,
		ShortDescription: w.ShortDescription,
		Description:      w.Description,
		Image:            w.Image,
		CategoryKey:      w.Category,
		Category:         w.Category,
		Features:         features,
	}
}

func decodeCatalog(raw []byte) ([]Product, error) {
	var items []wireProduct
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}

	out := make([]Product, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, w := range items {
		if w.ID == "" {
			return nil, errors.New("product without id")
		}
		if _, dup := seen[w.ID]; dup {
			return nil, errors.New("duplicate product id " + w.ID)
		}
		seen[w.ID] = struct{}{}
		out = append(out, w.product())
	}
	return out, nil
}

// SearchFields is the text a free-text query is matched against: the
// displayed (localized) category, never the canonical key.
func (p Product) SearchFields() []string {
	out := make([]string, 0, 4+len(p.Features))
	out = append(out, p.Title, p.Description, p.ShortDescription, p.Category)
	return append(out, p.Features...)
}
