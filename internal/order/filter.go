package order

import (
	"strings"

	"github.com/varmina/backend/internal/entity"
)

// AllCategories is the sentinel that disables category filtering.
const AllCategories = "Todas"

// FilterProducts returns the products whose name or collection matches the
// query (case-insensitive substring) and whose category matches the filter
// exactly, unless the filter is AllCategories or empty.
func FilterProducts(products []entity.Product, query, category string) []entity.Product {
	q := strings.ToLower(strings.TrimSpace(query))

	var out []entity.Product
	for _, p := range products {
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterAssets applies the same matching to internal assets, over name and
// category.
func FilterAssets(assets []entity.InternalAsset, query, category string) []entity.InternalAsset {
	q := strings.ToLower(strings.TrimSpace(query))

	var out []entity.InternalAsset
	for _, a := range assets {
		if category != "" && category != AllCategories && a.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(a.Name), q) &&
			!strings.Contains(strings.ToLower(a.Category), q) {
			continue
		}
		out = append(out, a)
	}
	return out
}
