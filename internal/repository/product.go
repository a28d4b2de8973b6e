package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/producthub/producthub/internal/model"
)

// ErrProductNotFound is returned when a product does not exist or does
// not belong to the requesting owner. The two cases are deliberately
// indistinguishable so callers cannot probe other users' resources.
var ErrProductNotFound = errors.New("product not found")

// CreateProduct inserts a new product and fills in the generated ID and
// timestamps.
func (r *Repository) CreateProduct(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (user_id, name, description, price, image_url, sku)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		product.OwnerID,
		product.Name,
		product.Description,
		product.Price,
		product.ImageURL,
		product.SKU,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// ListProductsByOwner retrieves all products belonging to the owner,
// newest first. Returns an empty slice when the owner has none.
func (r *Repository) ListProductsByOwner(ctx context.Context, ownerID int64) ([]*model.Product, error) {
	query := `
		SELECT id, user_id, name, description, price, image_url, sku, created_at, updated_at
		FROM products
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]*model.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetProductByIDForOwner retrieves a single product scoped to its owner.
// Filtering on both id and user_id in one query keeps "absent" and
// "owned by someone else" indistinguishable.
func (r *Repository) GetProductByIDForOwner(ctx context.Context, id, ownerID int64) (*model.Product, error) {
	query := `
		SELECT id, user_id, name, description, price, image_url, sku, created_at, updated_at
		FROM products
		WHERE id = $1 AND user_id = $2
	`

	product, err := scanProduct(r.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// scanProduct scans a single row into a Product model.
func scanProduct(row pgx.Row) (*model.Product, error) {
	var product model.Product
	err := row.Scan(
		&product.ID,
		&product.OwnerID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.ImageURL,
		&product.SKU,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}
