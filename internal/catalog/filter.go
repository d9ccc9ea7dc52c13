// Package catalog holds the view state of the product listings: category
// filtering, carousels and the image lightbox.
package catalog

import "github.com/gaayatricouture/couture/internal/model"

// All selects every category.
const All = "All"

// Filter returns the products whose category equals category, in their
// original order. All (or an empty category) returns items unchanged.
func Filter(items []model.Product, category string) []model.Product {
	if category == All || category == "" {
		return items
	}

	out := make([]model.Product, 0, len(items))
	for _, p := range items {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns All followed by each distinct non-empty category in
// first-seen order.
func Categories(items []model.Product) []string {
	seen := make(map[string]bool, len(items))
	cats := []string{All}
	for _, p := range items {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		cats = append(cats, p.Category)
	}
	return cats
}

// Find returns the product with the given id.
func Find(items []model.Product, id string) (model.Product, bool) {
	for _, p := range items {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}
