package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/varmina/backend/internal/entity"
)

func intPtr(n int) *int { return &n }

func day(d int) time.Time {
	return time.Date(2026, time.August, d, 12, 0, 0, 0, time.UTC)
}

var ledger = []entity.Transaction{
	{Type: entity.TransactionIncome, Amount: 30000, Date: day(1)},
	{Type: entity.TransactionIncome, Amount: 15990, Date: day(10)},
	{Type: entity.TransactionExpense, Amount: 8000, Date: day(12)},
	{Type: entity.TransactionIncome, Amount: 9990, Date: day(25)},
}

func TestLedgerTotals(t *testing.T) {
	assert.Equal(t, 55980.0, TotalIncome(ledger, time.Time{}, time.Time{}))
	assert.Equal(t, 8000.0, TotalExpense(ledger, time.Time{}, time.Time{}))
	assert.Equal(t, 47980.0, Balance(ledger, time.Time{}, time.Time{}))
}

func TestLedgerTotalsRespectRange(t *testing.T) {
	from, to := day(5), day(20)

	assert.Equal(t, 15990.0, TotalIncome(ledger, from, to))
	assert.Equal(t, 8000.0, TotalExpense(ledger, from, to))
	assert.Equal(t, 7990.0, Balance(ledger, from, to))
}

func TestInventoryValuation(t *testing.T) {
	products := []entity.Product{
		// Variants price per-variant stock; the product-level fields are
		// ignored when variants exist.
		{ID: "p1", Price: 10000, Stock: intPtr(99), Variants: []entity.Variant{
			{Name: "Plata", Price: 12000, Stock: 2},
			{Name: "Oro", Price: 15000, Stock: 1},
		}},
		{ID: "p2", Price: 8000, Stock: intPtr(3)},
		{ID: "p3", Price: 5000}, // untracked, contributes nothing
	}

	assert.Equal(t, 12000.0*2+15000+8000*3, InventoryValuation(products))
}

func TestEstimatedMargin(t *testing.T) {
	products := []entity.Product{{ID: "p1", Price: 10000, Stock: intPtr(5)}}
	assets := []entity.InternalAsset{{ID: "a1", UnitCost: 500, Stock: 10}}

	assert.Equal(t, 5000.0, AssetCost(assets))
	assert.Equal(t, 45000.0, EstimatedMargin(products, assets))
}

func TestTopClicked(t *testing.T) {
	products := []entity.Product{
		{ID: "p1", Clicks: 3},
		{ID: "p2", Clicks: 10},
		{ID: "p3", Clicks: 7},
	}

	top := TopClicked(products, 2)
	assert.Equal(t, "p2", top[0].ID)
	assert.Equal(t, "p3", top[1].ID)
	assert.Len(t, top, 2)

	// n larger than the slice returns everything.
	assert.Len(t, TopClicked(products, 10), 3)

	// Input order is untouched.
	assert.Equal(t, "p1", products[0].ID)
}

func TestLowStockAssets(t *testing.T) {
	assets := []entity.InternalAsset{
		{ID: "a1", Stock: 2, MinStock: 5},
		{ID: "a2", Stock: 5, MinStock: 5},
		{ID: "a3", Stock: 20, MinStock: 5},
	}

	low := LowStockAssets(assets)
	assert.Len(t, low, 2)
	assert.Equal(t, "a1", low[0].ID)
	assert.Equal(t, "a2", low[1].ID)
}
