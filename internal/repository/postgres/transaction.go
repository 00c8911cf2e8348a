package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/varmina/backend/internal/entity"
	"github.com/varmina/backend/internal/repository"
)

type transactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository backed by
// Postgres.
func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, txn entity.Transaction) (*entity.Transaction, error) {
	if txn.Description == "" {
		return nil, fmt.Errorf("missing description: %w", entity.ErrValidation)
	}
	if txn.Amount <= 0 {
		return nil, fmt.Errorf("non-positive amount: %w", entity.ErrValidation)
	}
	if txn.Type != entity.TransactionIncome && txn.Type != entity.TransactionExpense {
		return nil, fmt.Errorf("unknown type %q: %w", txn.Type, entity.ErrValidation)
	}

	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if txn.Date.IsZero() {
		txn.Date = time.Now()
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO transactions (id, description, type, amount, category, date) VALUES ($1, $2, $3, $4, $5, $6)",
		txn.ID, txn.Description, txn.Type, txn.Amount, txn.Category, txn.Date,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return &txn, nil
}

func (r *transactionRepository) ListTransactions(ctx context.Context) ([]entity.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, description, type, amount, category, date FROM transactions ORDER BY date DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.Description, &t.Type, &t.Amount, &t.Category, &t.Date); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
