package entity

import (
	"time"
)

// ProductStatus describes how a product is offered in the storefront.
type ProductStatus string

const (
	StatusAvailable   ProductStatus = "available"
	StatusMadeToOrder ProductStatus = "made-to-order"
	StatusSoldOut     ProductStatus = "sold-out"
)

// Variant is a sellable variation of a product (material, size, color).
// It is owned by its parent product and has no independent lifecycle.
type Variant struct {
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Stock     int      `json:"stock"`
	IsPrimary bool     `json:"is_primary"`
	Images    []string `json:"images,omitempty"`
}

// Product represents a sellable item in the catalog. Prices are stored in
// CLP. A nil Stock means inventory is not tracked for the product.
type Product struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Stock       *int          `json:"stock"`
	Status      ProductStatus `json:"status"`
	Category    string        `json:"category"`
	ImageURL    string        `json:"image_url"`
	Clicks      int           `json:"clicks"`
	Variants    []Variant     `json:"variants,omitempty"`
}

// Variant returns the variant with the given name, or nil.
func (p *Product) Variant(name string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].Name == name {
			return &p.Variants[i]
		}
	}
	return nil
}

// PrimaryVariant returns the variant flagged for display, falling back to
// the first variant when none is flagged. Nil when the product has no
// variants.
func (p *Product) PrimaryVariant() *Variant {
	for i := range p.Variants {
		if p.Variants[i].IsPrimary {
			return &p.Variants[i]
		}
	}
	if len(p.Variants) > 0 {
		return &p.Variants[0]
	}
	return nil
}

// InternalAsset is packaging/consumable inventory used when fulfilling
// orders. Assets are never shown to customers and never contribute to the
// charged total.
type InternalAsset struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	UnitCost float64 `json:"unit_cost"`
	Stock    int     `json:"stock"`
	MinStock int     `json:"min_stock"`
}

// LowStock reports whether the asset has fallen to its minimum threshold.
func (a *InternalAsset) LowStock() bool {
	return a.Stock <= a.MinStock
}

// CartLine is one (product, variant, quantity) pairing in a cart. Two lines
// are the same line iff both ProductID and variant name match.
type CartLine struct {
	Product  Product  `json:"product"`
	Variant  *Variant `json:"variant,omitempty"`
	Quantity int      `json:"quantity"`
}

// VariantName returns the line's variant name, or "" for the base product.
func (l *CartLine) VariantName() string {
	if l.Variant != nil {
		return l.Variant.Name
	}
	return ""
}

// UnitPrice is the variant price when a variant is selected, else the
// product price.
func (l *CartLine) UnitPrice() float64 {
	if l.Variant != nil {
		return l.Variant.Price
	}
	return l.Product.Price
}

// Subtotal is the line's contribution to the charged total.
func (l *CartLine) Subtotal() float64 {
	return l.UnitPrice() * float64(l.Quantity)
}

// OrderLine is a CartLine scoped to a single in-progress admin sale.
type OrderLine = CartLine

// AssetOrderLine attaches internal-asset consumption to an order.
type AssetOrderLine struct {
	Asset    InternalAsset `json:"asset"`
	Quantity int           `json:"quantity"`
}

// TransactionType is the signed effect of a ledger entry.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction is a financial ledger entry.
type Transaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
}

// SaleLine is the flattened form of an order line carried on sale events.
type SaleLine struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	VariantName string  `json:"variant_name,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// SaleCompleted is published after a successful order submission.
type SaleCompleted struct {
	TransactionID string     `json:"transaction_id"`
	Customer      string     `json:"customer"`
	Total         float64    `json:"total"`
	Lines         []SaleLine `json:"lines"`
	CompletedAt   time.Time  `json:"completed_at"`
}

func (e SaleCompleted) EventType() string { return "SaleCompleted" }
