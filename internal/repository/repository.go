// Package repository defines the persistence gateway this service reads
// from and writes to. Stock mutations are atomic at the gateway: no two
// concurrent deductions may both succeed in drawing stock below zero.
package repository

import (
	"context"

	"github.com/varmina/backend/internal/entity"
)

// ProductRepository handles persistence for catalog products.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	// DeductStock atomically removes quantity from the product's stock, or
	// from the named variant's stock when variantName is non-empty. Returns
	// entity.ErrInsufficientStock when real-time stock is lower than the
	// requested quantity. Untracked product stock always succeeds.
	DeductStock(ctx context.Context, productID string, quantity int, variantName string) error
	// RestoreStock re-increments stock removed by a deduction that is being
	// compensated.
	RestoreStock(ctx context.Context, productID string, quantity int, variantName string) error
	// IncrementClick bumps the product's engagement counter.
	IncrementClick(ctx context.Context, productID string) error
	// Seed inserts initial products if none exist.
	Seed(ctx context.Context, products []entity.Product) error
}

// AssetRepository handles persistence for internal assets.
type AssetRepository interface {
	ListAssets(ctx context.Context) ([]entity.InternalAsset, error)
	DeductStock(ctx context.Context, assetID string, quantity int) error
	RestoreStock(ctx context.Context, assetID string, quantity int) error
}

// TransactionRepository handles persistence for the financial ledger.
type TransactionRepository interface {
	// Create validates and stores a ledger entry, returning the stored row.
	// Returns entity.ErrValidation on malformed input.
	Create(ctx context.Context, txn entity.Transaction) (*entity.Transaction, error)
	ListTransactions(ctx context.Context) ([]entity.Transaction, error)
}

// CartStore persists public cart snapshots between page loads, keyed by
// shopper session.
type CartStore interface {
	Save(ctx context.Context, sessionID string, lines []entity.CartLine) error
	Load(ctx context.Context, sessionID string) ([]entity.CartLine, error)
	Delete(ctx context.Context, sessionID string) error
}
