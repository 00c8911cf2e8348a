// Package analytics computes the derived metrics shown on the admin
// dashboard. Every function is a pure reducer over in-memory collections.
package analytics

import (
	"sort"
	"time"

	"github.com/varmina/backend/internal/entity"
)

// inRange reports whether t falls in [from, to). Zero bounds are open.
func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}

// TotalIncome sums income entries dated within [from, to).
func TotalIncome(txns []entity.Transaction, from, to time.Time) float64 {
	var total float64
	for _, t := range txns {
		if t.Type == entity.TransactionIncome && inRange(t.Date, from, to) {
			total += t.Amount
		}
	}
	return total
}

// TotalExpense sums expense entries dated within [from, to).
func TotalExpense(txns []entity.Transaction, from, to time.Time) float64 {
	var total float64
	for _, t := range txns {
		if t.Type == entity.TransactionExpense && inRange(t.Date, from, to) {
			total += t.Amount
		}
	}
	return total
}

// Balance is income minus expense over the range.
func Balance(txns []entity.Transaction, from, to time.Time) float64 {
	return TotalIncome(txns, from, to) - TotalExpense(txns, from, to)
}

// InventoryValuation prices the sellable inventory: per-variant stock at the
// variant price when a product has variants, else tracked product stock at
// the product price. Untracked stock contributes nothing.
func InventoryValuation(products []entity.Product) float64 {
	var total float64
	for _, p := range products {
		if len(p.Variants) > 0 {
			for _, v := range p.Variants {
				total += v.Price * float64(v.Stock)
			}
			continue
		}
		if p.Stock != nil {
			total += p.Price * float64(*p.Stock)
		}
	}
	return total
}

// AssetCost values the internal-asset inventory at unit cost.
func AssetCost(assets []entity.InternalAsset) float64 {
	var total float64
	for _, a := range assets {
		total += a.UnitCost * float64(a.Stock)
	}
	return total
}

// EstimatedMargin is the sellable valuation minus the internal-asset cost.
func EstimatedMargin(products []entity.Product, assets []entity.InternalAsset) float64 {
	return InventoryValuation(products) - AssetCost(assets)
}

// TopClicked returns the n most clicked products, most clicked first.
func TopClicked(products []entity.Product, n int) []entity.Product {
	out := make([]entity.Product, len(products))
	copy(out, products)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Clicks > out[j].Clicks
	})

	if n < len(out) {
		out = out[:n]
	}
	return out
}

// LowStockAssets returns the assets at or below their minimum threshold.
func LowStockAssets(assets []entity.InternalAsset) []entity.InternalAsset {
	var out []entity.InternalAsset
	for _, a := range assets {
		if a.LowStock() {
			out = append(out, a)
		}
	}
	return out
}
