package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gaayatricouture/couture/internal/model"
)

const productColumns = `id, title, description, price, category, section, image_url, is_new, created_at`

// rowid breaks created_at ties; CURRENT_TIMESTAMP only has second resolution.
const productOrder = `ORDER BY created_at DESC, rowid DESC`

// ListProducts returns all products in a section, newest first.
func (s *SQLStore) ListProducts(ctx context.Context, section model.Section) ([]model.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE section = ? `+productOrder, string(section),
	)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return scanProducts(rows)
}

// ListAllProducts returns every product, newest first.
func (s *SQLStore) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products `+productOrder,
	)
	if err != nil {
		return nil, fmt.Errorf("listing all products: %w", err)
	}
	return scanProducts(rows)
}

// GetProduct returns a product by ID.
func (s *SQLStore) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p := &model.Product{}
	var section string
	err := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id,
	).Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Category, &section, &p.ImageURL, &p.IsNew, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}
	p.Section = model.Section(section)
	return p, nil
}

// CreateProduct inserts a new product and returns it as stored.
func (s *SQLStore) CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	if p.Section == "" {
		p.Section = model.SectionCatalog
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products (id, title, description, price, category, section, image_url, is_new)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Title, p.Description, p.Price, p.Category, string(p.Section), p.ImageURL, p.IsNew,
	)
	if err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}

	return s.GetProduct(ctx, id)
}

// UpdateProduct updates a product's editable fields.
func (s *SQLStore) UpdateProduct(ctx context.Context, id string, u model.ProductUpdate) error {
	if u.Title == "" {
		return &model.ValidationError{Field: "title", Message: "Title is required."}
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE products SET title = ?, description = ?, price = ?, category = ?, image_url = ?
		 WHERE id = ?`,
		u.Title, u.Description, u.Price, u.Category, u.ImageURL, id,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}
	return requireAffected(result, "updating product")
}

// DeleteProduct removes a product.
func (s *SQLStore) DeleteProduct(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	return requireAffected(result, "deleting product")
}

func scanProducts(rows *sql.Rows) ([]model.Product, error) {
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		var section string
		var createdAt time.Time
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Category, &section, &p.ImageURL, &p.IsNew, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		p.Section = model.Section(section)
		p.CreatedAt = createdAt
		products = append(products, p)
	}
	return products, rows.Err()
}

func requireAffected(result sql.Result, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, model.ErrNotFound)
	}
	return nil
}
