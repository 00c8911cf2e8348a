package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/varmina/backend/internal/entity"
	"github.com/varmina/backend/internal/repository"
)

type assetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository backed by Postgres.
func NewAssetRepository(db *sql.DB) repository.AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) ListAssets(ctx context.Context) ([]entity.InternalAsset, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, category, unit_cost, stock, min_stock FROM internal_assets ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	var assets []entity.InternalAsset
	for rows.Next() {
		var a entity.InternalAsset
		if err := rows.Scan(&a.ID, &a.Name, &a.Category, &a.UnitCost, &a.Stock, &a.MinStock); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (r *assetRepository) DeductStock(ctx context.Context, assetID string, quantity int) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE internal_assets SET stock = stock - $1 WHERE id = $2 AND stock >= $1",
		quantity, assetID,
	)
	if err != nil {
		return fmt.Errorf("failed to deduct asset stock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		var exists bool
		err = r.db.QueryRowContext(ctx, "SELECT true FROM internal_assets WHERE id = $1", assetID).Scan(&exists)
		if err == sql.ErrNoRows {
			return fmt.Errorf("asset %s: %w", assetID, entity.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check asset: %w", err)
		}
		return fmt.Errorf("asset %s: %w", assetID, entity.ErrInsufficientStock)
	}
	return nil
}

func (r *assetRepository) RestoreStock(ctx context.Context, assetID string, quantity int) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE internal_assets SET stock = stock + $1 WHERE id = $2",
		quantity, assetID,
	)
	if err != nil {
		return fmt.Errorf("failed to restore asset stock: %w", err)
	}
	return nil
}
