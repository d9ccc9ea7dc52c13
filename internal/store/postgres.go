package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gaayatricouture/couture/internal/model"
)

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPGStore creates a PostgreSQL-backed store. The schema must already be migrated.
func NewPGStore(pool *pgxpool.Pool, logger zerolog.Logger) *PGStore {
	return &PGStore{
		pool:   pool,
		logger: logger.With().Str("repository", "postgres").Logger(),
	}
}

const pgProductColumns = `id::text, title, description, price, category, section, image_url, is_new, created_at`

// ListProducts returns all products in a section, newest first.
func (s *PGStore) ListProducts(ctx context.Context, section model.Section) ([]model.Product, error) {
	query := `
		SELECT ` + pgProductColumns + `
		FROM products
		WHERE section = $1
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query, string(section))
	if err != nil {
		s.logger.Error().Err(err).Str("section", string(section)).Msg("failed to query products")
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return s.collectProducts(rows)
}

// ListAllProducts returns every product, newest first.
func (s *PGStore) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT ` + pgProductColumns + `
		FROM products
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query all products")
		return nil, fmt.Errorf("listing all products: %w", err)
	}
	return s.collectProducts(rows)
}

// GetProduct retrieves a single product by its ID.
func (s *PGStore) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	query := `
		SELECT ` + pgProductColumns + `
		FROM products
		WHERE id = $1
	`

	rows, err := s.pool.Query(ctx, query, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("getting product: %w", err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanPGProduct)
	if errors.Is(err, pgx.ErrNoRows) {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}
	return &p, nil
}

// CreateProduct inserts a new product and returns it as stored.
func (s *PGStore) CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	if p.Section == "" {
		p.Section = model.SectionCatalog
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO products (id, title, description, price, category, section, image_url, is_new)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + pgProductColumns

	rows, err := s.pool.Query(ctx, query,
		uuid.New(), p.Title, p.Description, p.Price, p.Category, string(p.Section), p.ImageURL, p.IsNew,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("title", p.Title).Msg("failed to create product")
		return nil, fmt.Errorf("creating product: %w", err)
	}

	created, err := pgx.CollectExactlyOneRow(rows, scanPGProduct)
	if err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}

	s.logger.Debug().Str("product_id", created.ID).Msg("product created successfully")
	return &created, nil
}

// UpdateProduct updates a product's editable fields.
func (s *PGStore) UpdateProduct(ctx context.Context, id string, u model.ProductUpdate) error {
	if u.Title == "" {
		return &model.ValidationError{Field: "title", Message: "Title is required."}
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("updating product: %w", model.ErrNotFound)
	}

	query := `
		UPDATE products
		SET title = $1, description = $2, price = $3, category = $4, image_url = $5
		WHERE id = $6
	`

	tag, err := s.pool.Exec(ctx, query, u.Title, u.Description, u.Price, u.Category, u.ImageURL, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return fmt.Errorf("updating product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating product: %w", model.ErrNotFound)
	}
	return nil
}

// DeleteProduct removes a product.
func (s *PGStore) DeleteProduct(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("deleting product: %w", model.ErrNotFound)
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("deleting product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting product: %w", model.ErrNotFound)
	}
	return nil
}

func (s *PGStore) collectProducts(rows pgx.Rows) ([]model.Product, error) {
	products, err := pgx.CollectRows(rows, scanPGProduct)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to scan products")
		return nil, fmt.Errorf("scanning product: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

func scanPGProduct(row pgx.CollectableRow) (model.Product, error) {
	var p model.Product
	var section string
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Category, &section, &p.ImageURL, &p.IsNew, &p.CreatedAt)
	p.Section = model.Section(section)
	return p, err
}

// CreateContactSubmission stores a contact form message.
func (s *PGStore) CreateContactSubmission(ctx context.Context, c *model.ContactSubmission) error {
	if err := c.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO contact_submissions (name, email, phone, service, message)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := s.pool.Exec(ctx, query, c.Name, c.Email, c.Phone, c.Service, c.Message); err != nil {
		s.logger.Error().Err(err).Msg("failed to create contact submission")
		return fmt.Errorf("creating contact submission: %w", err)
	}
	return nil
}

// CreateUser creates a new admin account.
func (s *PGStore) CreateUser(ctx context.Context, email, passwordHash string) (*model.User, error) {
	u := &model.User{}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash) VALUES ($1, $2)
		 RETURNING id, email, password_hash, created_at`,
		email, passwordHash,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return u, nil
}

// GetUser returns a user by ID.
func (s *PGStore) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.getUser(ctx, `WHERE id = $1`, id)
}

// GetUserByEmail returns a user by email address, ignoring case.
func (s *PGStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUser(ctx, `WHERE lower(email) = lower($1)`, email)
}

func (s *PGStore) getUser(ctx context.Context, where string, arg any) (*model.User, error) {
	u := &model.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM users `+where, arg,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// UpdateUserPassword updates a user's password hash.
func (s *PGStore) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("updating user password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating user password: %w", model.ErrNotFound)
	}
	return nil
}

// CountUsers returns the number of admin accounts.
func (s *PGStore) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}

// RevokeToken adds a token's JTI to the revocation list.
func (s *PGStore) RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO revoked_tokens (jti, expires_at) VALUES ($1, $2) ON CONFLICT (jti) DO NOTHING`,
		jti, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}

	if _, err := s.pool.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at < now()`); err != nil {
		s.logger.Warn().Err(err).Msg("failed to prune expired revocations")
	}
	return nil
}

// IsTokenRevoked checks if a token's JTI has been revoked.
func (s *PGStore) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	var revoked bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)`, jti,
	).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("checking token revocation: %w", err)
	}
	return revoked, nil
}

// GetOrCreateSecret retrieves the secret stored under key, generating it on first use.
func (s *PGStore) GetOrCreateSecret(ctx context.Context, key string) (string, error) {
	candidate, err := randomSecret()
	if err != nil {
		return "", err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO settings (key, value) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`,
		key, candidate,
	)
	if err != nil {
		return "", fmt.Errorf("storing %s: %w", key, err)
	}

	var secret string
	if err := s.pool.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&secret); err != nil {
		return "", fmt.Errorf("querying %s: %w", key, err)
	}
	return secret, nil
}
