package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/gaayatricouture/couture/internal/model"
)

// ProductStore defines product data access operations.
type ProductStore interface {
	// ListProducts returns every product in section, newest first.
	ListProducts(ctx context.Context, section model.Section) ([]model.Product, error)

	// ListAllProducts returns every product regardless of section, newest first.
	ListAllProducts(ctx context.Context) ([]model.Product, error)

	// GetProduct returns a product by ID, or nil if it does not exist.
	GetProduct(ctx context.Context, id string) (*model.Product, error)

	// CreateProduct inserts p, assigning its ID and creation time.
	CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error)

	// UpdateProduct replaces the editable fields of a product.
	// Returns model.ErrNotFound if no product has the given ID.
	UpdateProduct(ctx context.Context, id string, u model.ProductUpdate) error

	// DeleteProduct removes a product.
	// Returns model.ErrNotFound if no product has the given ID.
	DeleteProduct(ctx context.Context, id string) error
}

// ContactStore persists contact form submissions.
type ContactStore interface {
	CreateContactSubmission(ctx context.Context, c *model.ContactSubmission) error
}

// UserStore defines admin account operations.
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
	CountUsers(ctx context.Context) (int, error)
}

// TokenStore tracks revoked session tokens.
type TokenStore interface {
	RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// SettingsStore holds generated server secrets.
type SettingsStore interface {
	// GetOrCreateSecret returns the secret stored under key, generating and
	// storing a random one first if none exists.
	GetOrCreateSecret(ctx context.Context, key string) (string, error)
}

// Store is the full data gateway used by the server.
type Store interface {
	ProductStore
	ContactStore
	UserStore
	TokenStore
	SettingsStore
}

// SQLStore implements Store on a SQLite database.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore returns a Store backed by db. The schema must already be migrated.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// DB returns the underlying database handle.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

var (
	_ Store = (*SQLStore)(nil)
	_ Store = (*PGStore)(nil)
)
