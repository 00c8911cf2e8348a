package order

import (
	"context"
	"fmt"
	"sync"

	"github.com/varmina/backend/internal/entity"
)

// fakeGateway implements the repository interfaces over in-memory stock
// maps, recording every call so tests can assert on ordering and
// compensation.
type fakeGateway struct {
	mu sync.Mutex

	productStock map[string]int // key "productID" or "productID/variantName"
	assetStock   map[string]int
	txns         []entity.Transaction

	failProductDeduct map[string]error // key → error to return
	failAssetDeduct   map[string]error
	failCreate        error

	calls []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		productStock:      make(map[string]int),
		assetStock:        make(map[string]int),
		failProductDeduct: make(map[string]error),
		failAssetDeduct:   make(map[string]error),
	}
}

func stockKey(productID, variantName string) string {
	if variantName == "" {
		return productID
	}
	return productID + "/" + variantName
}

func (f *fakeGateway) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeGateway) ListProducts(ctx context.Context) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListProducts")
	return nil, nil
}

func (f *fakeGateway) DeductStock(ctx context.Context, productID string, quantity int, variantName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := stockKey(productID, variantName)
	f.record("DeductProduct %s %d", key, quantity)

	if err := f.failProductDeduct[key]; err != nil {
		return err
	}
	if f.productStock[key] < quantity {
		return fmt.Errorf("product %s: %w", productID, entity.ErrInsufficientStock)
	}
	f.productStock[key] -= quantity
	return nil
}

func (f *fakeGateway) RestoreStock(ctx context.Context, productID string, quantity int, variantName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := stockKey(productID, variantName)
	f.record("RestoreProduct %s %d", key, quantity)
	f.productStock[key] += quantity
	return nil
}

func (f *fakeGateway) IncrementClick(ctx context.Context, productID string) error { return nil }

func (f *fakeGateway) Seed(ctx context.Context, products []entity.Product) error { return nil }

// asset side

type fakeAssetGateway struct{ *fakeGateway }

func (f *fakeGateway) assets() *fakeAssetGateway { return &fakeAssetGateway{f} }

func (f *fakeAssetGateway) ListAssets(ctx context.Context) ([]entity.InternalAsset, error) {
	return nil, nil
}

func (f *fakeAssetGateway) DeductStock(ctx context.Context, assetID string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("DeductAsset %s %d", assetID, quantity)

	if err := f.failAssetDeduct[assetID]; err != nil {
		return err
	}
	if f.assetStock[assetID] < quantity {
		return fmt.Errorf("asset %s: %w", assetID, entity.ErrInsufficientStock)
	}
	f.assetStock[assetID] -= quantity
	return nil
}

func (f *fakeAssetGateway) RestoreStock(ctx context.Context, assetID string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("RestoreAsset %s %d", assetID, quantity)
	f.assetStock[assetID] += quantity
	return nil
}

// ledger side

type fakeTxnGateway struct{ *fakeGateway }

func (f *fakeGateway) ledger() *fakeTxnGateway { return &fakeTxnGateway{f} }

func (f *fakeTxnGateway) Create(ctx context.Context, txn entity.Transaction) (*entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("CreateTransaction %s", txn.Type)

	if f.failCreate != nil {
		return nil, f.failCreate
	}
	if txn.Description == "" || txn.Amount <= 0 {
		return nil, entity.ErrValidation
	}
	f.txns = append(f.txns, txn)
	return &txn, nil
}

func (f *fakeTxnGateway) ListTransactions(ctx context.Context) ([]entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Transaction(nil), f.txns...), nil
}

// fakePublisher records published events.
type fakePublisher struct {
	topics []string
	events []any
	err    error
}

func (p *fakePublisher) PublishEvent(ctx context.Context, topic, key string, event any) error {
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

// fakeReloader counts catalog refreshes.
type fakeReloader struct {
	refreshes int
	err       error
}

func (r *fakeReloader) Refresh(ctx context.Context) error {
	r.refreshes++
	return r.err
}
