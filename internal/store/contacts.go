package store

import (
	"context"
	"fmt"

	"github.com/gaayatricouture/couture/internal/model"
)

// CreateContactSubmission stores a contact form message.
func (s *SQLStore) CreateContactSubmission(ctx context.Context, c *model.ContactSubmission) error {
	if err := c.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_submissions (name, email, phone, service, message) VALUES (?, ?, ?, ?, ?)`,
		c.Name, c.Email, c.Phone, c.Service, c.Message,
	)
	if err != nil {
		return fmt.Errorf("creating contact submission: %w", err)
	}
	return nil
}
