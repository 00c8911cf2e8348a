package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varmina/backend/internal/entity"
)

func intPtr(n int) *int { return &n }

func product(id string, price float64, stock *int) entity.Product {
	return entity.Product{ID: id, Name: "Producto " + id, Price: price, Stock: stock}
}

func TestAddItemMergesByIdentity(t *testing.T) {
	c := New()
	p := product("p1", 10000, intPtr(5))

	require.NoError(t, c.AddItem(p, nil))
	require.NoError(t, c.AddItem(p, nil))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 2, c.TotalItems())
}

func TestAddItemVariantsAreSeparateLines(t *testing.T) {
	c := New()
	p := product("p1", 10000, intPtr(5))
	p.Variants = []entity.Variant{
		{Name: "Plata", Price: 12000, Stock: 3},
		{Name: "Oro", Price: 15000, Stock: 2},
	}

	require.NoError(t, c.AddItem(p, &p.Variants[0]))
	require.NoError(t, c.AddItem(p, &p.Variants[1]))
	require.NoError(t, c.AddItem(p, nil))

	require.Len(t, c.Lines(), 3)
	assert.Equal(t, 3, c.TotalItems())
}

func TestAddItemRespectsStockCeiling(t *testing.T) {
	c := New()
	p := product("p1", 10000, intPtr(2))

	require.NoError(t, c.AddItem(p, nil))
	require.NoError(t, c.AddItem(p, nil))
	assert.Equal(t, 2, c.TotalItems())

	err := c.AddItem(p, nil)
	require.ErrorIs(t, err, entity.ErrCapacityExceeded)
	assert.Equal(t, 2, c.TotalItems(), "rejected add must leave the cart unchanged")
}

func TestAddItemRejectsFirstAddAtZeroStock(t *testing.T) {
	c := New()
	p := product("p1", 10000, intPtr(0))

	err := c.AddItem(p, nil)
	require.ErrorIs(t, err, entity.ErrCapacityExceeded)
	assert.Empty(t, c.Lines())
}

func TestAddItemVariantCeiling(t *testing.T) {
	c := New()
	p := product("p1", 10000, intPtr(100))
	p.Variants = []entity.Variant{{Name: "Plata", Price: 12000, Stock: 1}}

	require.NoError(t, c.AddItem(p, &p.Variants[0]))
	err := c.AddItem(p, &p.Variants[0])
	require.ErrorIs(t, err, entity.ErrCapacityExceeded, "variant stock caps the line even when product stock is higher")
}

func TestAddItemUntrackedStockHasNoCeiling(t *testing.T) {
	c := New()
	p := product("p1", 10000, nil)

	for i := 0; i < 50; i++ {
		require.NoError(t, c.AddItem(p, nil))
	}
	assert.Equal(t, 50, c.TotalItems())
}

func TestRemoveItem(t *testing.T) {
	c := New()
	p := product("p1", 10000, intPtr(5))
	p.Variants = []entity.Variant{{Name: "Plata", Price: 12000, Stock: 3}}

	require.NoError(t, c.AddItem(p, nil))
	require.NoError(t, c.AddItem(p, &p.Variants[0]))

	c.RemoveItem("p1", "Plata")
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Empty(t, lines[0].VariantName())

	c.RemoveItem("p1", "Plata") // absent, no-op
	assert.Len(t, c.Lines(), 1)
}

func TestUpdateQuantitySetsDirectly(t *testing.T) {
	c := New()
	p := product("p1", 10000, intPtr(2))

	require.NoError(t, c.AddItem(p, nil))
	require.NoError(t, c.AddItem(p, nil))
	require.Equal(t, 2, c.TotalItems())

	// Zero is the caller's removal convention; the engine keeps the line.
	c.UpdateQuantity("p1", 0)
	assert.Equal(t, 0, c.TotalItems())
	assert.Len(t, c.Lines(), 1)
}

func TestTotalPrice(t *testing.T) {
	c := New()
	p1 := product("p1", 10000, intPtr(5))
	p2 := product("p2", 8000, intPtr(5))
	p2.Variants = []entity.Variant{{Name: "Oro", Price: 9500, Stock: 4}}

	require.NoError(t, c.AddItem(p1, nil))
	require.NoError(t, c.AddItem(p1, nil))
	require.NoError(t, c.AddItem(p2, &p2.Variants[0]))

	// 2×10000 + 1×9500, variant price wins over product price.
	assert.Equal(t, 29500.0, c.TotalPrice())
}

func TestClearIsIdempotent(t *testing.T) {
	c := New()
	p := product("p1", 10000, intPtr(5))
	require.NoError(t, c.AddItem(p, nil))

	c.Clear()
	assert.Equal(t, 0, c.TotalItems())
	assert.Equal(t, 0.0, c.TotalPrice())

	c.Clear()
	assert.Equal(t, 0, c.TotalItems())
	assert.Equal(t, 0.0, c.TotalPrice())
}

func TestFromLinesRestoresSnapshot(t *testing.T) {
	p := product("p1", 10000, intPtr(5))
	c := FromLines([]entity.CartLine{{Product: p, Quantity: 3}})

	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, 30000.0, c.TotalPrice())
}
