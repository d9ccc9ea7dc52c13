package model

import (
	"fmt"
	"time"
)

// Section partitions products into the two listing pages.
type Section string

// Sections.
const (
	SectionCatalog Section = "Catalog"
	SectionShop    Section = "Shop"
)

// Valid reports whether s is one of the known sections.
func (s Section) Valid() bool {
	return s == SectionCatalog || s == SectionShop
}

// ParseSection converts user input into a Section. Empty input yields the
// default section.
func ParseSection(s string) (Section, error) {
	if s == "" {
		return SectionCatalog, nil
	}
	sec := Section(s)
	if !sec.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSection, s)
	}
	return sec, nil
}

// Product is a single catalog or shop entry.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Category    string    `json:"category"`
	Section     Section   `json:"section"`
	ImageURL    string    `json:"image_url"`
	IsNew       bool      `json:"is_new"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductUpdate holds the fields the edit form may change.
type ProductUpdate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
}

// Validate checks the required product fields.
func (p *Product) Validate() error {
	if p.Title == "" {
		return &ValidationError{Field: "title", Message: "Title is required."}
	}
	if !p.Section.Valid() {
		return &ValidationError{Field: "section", Message: "Section must be Catalog or Shop."}
	}
	return nil
}
