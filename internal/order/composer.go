// Package order implements the admin sale workflow: an order composer that
// extends the public cart with internal-asset lines, and the submission
// workflow that deducts stock, writes the ledger entry and publishes the
// completed sale.
package order

import (
	"github.com/varmina/backend/internal/cart"
	"github.com/varmina/backend/internal/entity"
)

// Composer assembles an in-progress admin sale. It is a superset of the
// public cart: product lines follow the same merge and ceiling semantics,
// and a second collection tracks internal-asset consumption that never
// contributes to the charged total. Like the cart, a Composer belongs to
// one operator session and is not safe for concurrent use.
type Composer struct {
	cart.Cart

	assetLines    []entity.AssetOrderLine
	CustomerName  string
	PaymentMethod string
}

// NewComposer creates an empty composer.
func NewComposer() *Composer {
	return &Composer{}
}

// AddProductLine merges the selection into the product lines. Same contract
// as cart.AddItem.
func (o *Composer) AddProductLine(p entity.Product, v *entity.Variant) error {
	return o.AddItem(p, v)
}

// RemoveProductLine deletes the product line at the given position.
func (o *Composer) RemoveProductLine(i int) {
	o.RemoveLineAt(i)
}

// AddAssetLine merges the asset into the asset lines, incrementing quantity
// by one. The asset's own stock is the ceiling.
func (o *Composer) AddAssetLine(a entity.InternalAsset) error {
	for i := range o.assetLines {
		line := &o.assetLines[i]
		if line.Asset.ID == a.ID {
			if line.Quantity+1 > a.Stock {
				return entity.ErrCapacityExceeded
			}
			line.Quantity++
			return nil
		}
	}

	if a.Stock < 1 {
		return entity.ErrCapacityExceeded
	}

	o.assetLines = append(o.assetLines, entity.AssetOrderLine{Asset: a, Quantity: 1})
	return nil
}

// RemoveAssetLine deletes the asset line at the given position. No-op when
// out of range.
func (o *Composer) RemoveAssetLine(i int) {
	if i < 0 || i >= len(o.assetLines) {
		return
	}
	o.assetLines = append(o.assetLines[:i], o.assetLines[i+1:]...)
}

// AssetLines returns a copy of the asset lines.
func (o *Composer) AssetLines() []entity.AssetOrderLine {
	out := make([]entity.AssetOrderLine, len(o.assetLines))
	copy(out, o.assetLines)
	return out
}

// ComputeTotal is the charged total: product lines only, asset lines are
// internal cost.
func (o *Composer) ComputeTotal() float64 {
	return o.TotalPrice()
}

// Reset discards all composer state after a submission or explicit cancel.
func (o *Composer) Reset() {
	o.Clear()
	o.assetLines = nil
	o.CustomerName = ""
	o.PaymentMethod = ""
}
