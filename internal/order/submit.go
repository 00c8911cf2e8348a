package order

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/varmina/backend/internal/entity"
	"github.com/varmina/backend/internal/messaging"
	"github.com/varmina/backend/internal/repository"
)

const (
	// salesCategory is the ledger category for storefront sales.
	salesCategory = "Ventas"

	// defaultCustomer is used in the ledger description when the operator
	// leaves the customer name blank.
	defaultCustomer = "Cliente"

	// descriptionLimit caps the ledger description length, in runes. Longer
	// descriptions are truncated, never rejected.
	descriptionLimit = 100

	topicSalesCompleted = "sales.completed"
)

// Reloader refreshes catalog state from the gateway after a submission so
// displayed stock reflects the just-completed deductions.
type Reloader interface {
	Refresh(ctx context.Context) error
}

// deduction records one stock mutation that succeeded, so it can be
// compensated if a later step fails.
type deduction struct {
	productID   string
	assetID     string
	variantName string
	quantity    int
}

// Submitter runs the order submission workflow against the gateway.
type Submitter struct {
	products  repository.ProductRepository
	assets    repository.AssetRepository
	txns      repository.TransactionRepository
	publisher messaging.Publisher
	catalog   Reloader
}

// NewSubmitter wires the workflow's collaborators. publisher and catalog
// may be nil; the corresponding steps are skipped.
func NewSubmitter(
	products repository.ProductRepository,
	assets repository.AssetRepository,
	txns repository.TransactionRepository,
	publisher messaging.Publisher,
	catalog Reloader,
) *Submitter {
	return &Submitter{
		products:  products,
		assets:    assets,
		txns:      txns,
		publisher: publisher,
		catalog:   catalog,
	}
}

// Submit runs the multi-step submission workflow:
//
//  1. Reject empty orders with entity.ErrEmptyOrder.
//  2. Deduct stock for every product line, one call at a time.
//  3. Deduct stock for every asset line.
//  4. Create one income ledger entry for the charged total.
//  5. Publish the completed sale, reset the composer and reload the catalog.
//
// Each deduction is atomic at the gateway. If a later step fails, the
// deductions that already succeeded in this attempt are compensated with
// best-effort stock restores, so a retry of the whole submission does not
// double-deduct.
func (s *Submitter) Submit(ctx context.Context, o *Composer) (*entity.Transaction, error) {
	lines := o.Lines()
	if len(lines) == 0 {
		return nil, entity.ErrEmptyOrder
	}

	var applied []deduction

	for _, line := range lines {
		err := s.products.DeductStock(ctx, line.Product.ID, line.Quantity, line.VariantName())
		if err != nil {
			s.compensate(ctx, applied)
			return nil, fmt.Errorf("failed to deduct stock for product %s: %w", line.Product.ID, err)
		}
		applied = append(applied, deduction{
			productID:   line.Product.ID,
			variantName: line.VariantName(),
			quantity:    line.Quantity,
		})
	}

	for _, line := range o.AssetLines() {
		err := s.assets.DeductStock(ctx, line.Asset.ID, line.Quantity)
		if err != nil {
			s.compensate(ctx, applied)
			return nil, fmt.Errorf("failed to deduct stock for asset %s: %w", line.Asset.ID, err)
		}
		applied = append(applied, deduction{assetID: line.Asset.ID, quantity: line.Quantity})
	}

	txn := entity.Transaction{
		ID:          uuid.NewString(),
		Description: buildDescription(o.CustomerName, lines),
		Type:        entity.TransactionIncome,
		Amount:      o.ComputeTotal(),
		Category:    salesCategory,
		Date:        time.Now(),
	}

	created, err := s.txns.Create(ctx, txn)
	if err != nil {
		s.compensate(ctx, applied)
		return nil, fmt.Errorf("failed to create ledger entry: %w", err)
	}

	s.publishSale(ctx, created, o.CustomerName, lines)

	o.Reset()

	if s.catalog != nil {
		if err := s.catalog.Refresh(ctx); err != nil {
			slog.Error("Failed to reload catalog after sale", "err", err)
		}
	}

	slog.Info("Sale completed", "transaction_id", created.ID, "total", created.Amount, "lines", len(lines))
	return created, nil
}

// compensate re-increments stock for deductions that succeeded before a
// later step failed. Failures here are logged and left for manual
// reconciliation; there is no retry.
func (s *Submitter) compensate(ctx context.Context, applied []deduction) {
	for _, d := range applied {
		var err error
		if d.assetID != "" {
			err = s.assets.RestoreStock(ctx, d.assetID, d.quantity)
		} else {
			err = s.products.RestoreStock(ctx, d.productID, d.quantity, d.variantName)
		}
		if err != nil {
			slog.Error("Failed to compensate stock deduction",
				"product_id", d.productID, "asset_id", d.assetID, "quantity", d.quantity, "err", err)
		}
	}
}

func (s *Submitter) publishSale(ctx context.Context, txn *entity.Transaction, customer string, lines []entity.OrderLine) {
	if s.publisher == nil {
		return
	}

	event := entity.SaleCompleted{
		TransactionID: txn.ID,
		Customer:      customer,
		Total:         txn.Amount,
		CompletedAt:   txn.Date,
	}
	for _, line := range lines {
		event.Lines = append(event.Lines, entity.SaleLine{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			VariantName: line.VariantName(),
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice(),
		})
	}

	// The sale already succeeded; a publish failure must not fail it.
	if err := s.publisher.PublishEvent(ctx, topicSalesCompleted, txn.ID, event); err != nil {
		slog.Error("Failed to publish SaleCompleted", "transaction_id", txn.ID, "err", err)
	}
}

// buildDescription renders "Venta a <customer>: 2x Anillo Luna, 1x Collar",
// truncated to descriptionLimit runes.
func buildDescription(customer string, lines []entity.OrderLine) string {
	if strings.TrimSpace(customer) == "" {
		customer = defaultCustomer
	}

	frags := make([]string, 0, len(lines))
	for _, line := range lines {
		frags = append(frags, fmt.Sprintf("%dx %s", line.Quantity, line.Product.Name))
	}

	desc := fmt.Sprintf("Venta a %s: %s", customer, strings.Join(frags, ", "))
	if runes := []rune(desc); len(runes) > descriptionLimit {
		desc = string(runes[:descriptionLimit])
	}
	return desc
}
