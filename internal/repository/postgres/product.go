package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/varmina/backend/internal/entity"
	"github.com/varmina/backend/internal/repository"
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository backed by Postgres.
func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) ListProducts(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description, price, stock, status, category, image_url, clicks FROM products ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []entity.Product
	index := make(map[string]int)
	for rows.Next() {
		var p entity.Product
		var stock sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &stock, &p.Status, &p.Category, &p.ImageURL, &p.Clicks); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if stock.Valid {
			s := int(stock.Int64)
			p.Stock = &s
		}
		index[p.ID] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	if err := r.attachVariants(ctx, products, index); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) attachVariants(ctx context.Context, products []entity.Product, index map[string]int) error {
	rows, err := r.db.QueryContext(ctx,
		"SELECT product_id, name, price, stock, is_primary FROM product_variants ORDER BY product_id, id")
	if err != nil {
		return fmt.Errorf("failed to query variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID string
		var v entity.Variant
		if err := rows.Scan(&productID, &v.Name, &v.Price, &v.Stock, &v.IsPrimary); err != nil {
			return fmt.Errorf("failed to scan variant: %w", err)
		}
		if i, ok := index[productID]; ok {
			products[i].Variants = append(products[i].Variants, v)
		}
	}
	return rows.Err()
}

func (r *productRepository) DeductStock(ctx context.Context, productID string, quantity int, variantName string) error {
	if variantName != "" {
		res, err := r.db.ExecContext(ctx,
			"UPDATE product_variants SET stock = stock - $1 WHERE product_id = $2 AND name = $3 AND stock >= $1",
			quantity, productID, variantName,
		)
		if err != nil {
			return fmt.Errorf("failed to deduct variant stock: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("variant %s/%s: %w", productID, variantName, entity.ErrInsufficientStock)
		}
		return nil
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1",
		quantity, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to deduct product stock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// Zero rows means either insufficient stock, untracked stock (NULL never
	// matches the comparison) or a missing product. Distinguish the three.
	var stock sql.NullInt64
	err = r.db.QueryRowContext(ctx, "SELECT stock FROM products WHERE id = $1", productID).Scan(&stock)
	if err == sql.ErrNoRows {
		return fmt.Errorf("product %s: %w", productID, entity.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check product stock: %w", err)
	}
	if !stock.Valid {
		return nil // untracked inventory, nothing to deduct
	}
	return fmt.Errorf("product %s: %w", productID, entity.ErrInsufficientStock)
}

func (r *productRepository) RestoreStock(ctx context.Context, productID string, quantity int, variantName string) error {
	if variantName != "" {
		_, err := r.db.ExecContext(ctx,
			"UPDATE product_variants SET stock = stock + $1 WHERE product_id = $2 AND name = $3",
			quantity, productID, variantName,
		)
		if err != nil {
			return fmt.Errorf("failed to restore variant stock: %w", err)
		}
		return nil
	}

	_, err := r.db.ExecContext(ctx,
		"UPDATE products SET stock = stock + $1 WHERE id = $2 AND stock IS NOT NULL",
		quantity, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to restore product stock: %w", err)
	}
	return nil
}

func (r *productRepository) IncrementClick(ctx context.Context, productID string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE products SET clicks = clicks + 1 WHERE id = $1", productID)
	if err != nil {
		return fmt.Errorf("failed to increment clicks: %w", err)
	}
	return nil
}

func (r *productRepository) Seed(ctx context.Context, products []entity.Product) error {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // already seeded
	}

	for _, p := range products {
		_, err := r.db.ExecContext(ctx,
			"INSERT INTO products (id, name, description, price, stock, status, category, image_url) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
			p.ID, p.Name, p.Description, p.Price, nullableStock(p.Stock), p.Status, p.Category, p.ImageURL,
		)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
		for _, v := range p.Variants {
			_, err := r.db.ExecContext(ctx,
				"INSERT INTO product_variants (product_id, name, price, stock, is_primary) VALUES ($1, $2, $3, $4, $5)",
				p.ID, v.Name, v.Price, v.Stock, v.IsPrimary,
			)
			if err != nil {
				return fmt.Errorf("failed to seed variant %s/%s: %w", p.ID, v.Name, err)
			}
		}
	}
	return nil
}

func nullableStock(stock *int) sql.NullInt64 {
	if stock == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*stock), Valid: true}
}
