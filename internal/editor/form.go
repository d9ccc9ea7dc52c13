// Package editor holds the product create/edit form state and performs the
// upload-then-write sequence behind it.
package editor

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gaayatricouture/couture/internal/imaging"
	"github.com/gaayatricouture/couture/internal/model"
)

// Form is the editable state of a product form.
type Form struct {
	Title       string
	Description string
	Price       string
	Category    string
	Section     model.Section
	IsNew       bool
}

// NewForm returns an empty form with default section and flags.
func NewForm() Form {
	return Form{Section: model.SectionCatalog}
}

// Reset clears the form back to its defaults.
func (f *Form) Reset() {
	*f = NewForm()
}

// Validate checks the required fields.
func (f Form) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return &model.ValidationError{Field: "title", Message: "Title is required."}
	}
	if !f.Section.Valid() {
		return &model.ValidationError{Field: "section", Message: "Section must be Catalog or Shop."}
	}
	return nil
}

// Product returns a new product built from the form.
func (f Form) Product(imageURL string) *model.Product {
	return &model.Product{
		Title:       strings.TrimSpace(f.Title),
		Description: f.Description,
		Price:       f.Price,
		Category:    f.Category,
		Section:     f.Section,
		ImageURL:    imageURL,
		IsNew:       f.IsNew,
	}
}

// Update returns the edit patch built from the form.
func (f Form) Update(imageURL string) model.ProductUpdate {
	return model.ProductUpdate{
		Title:       strings.TrimSpace(f.Title),
		Description: f.Description,
		Price:       f.Price,
		Category:    f.Category,
		ImageURL:    imageURL,
	}
}

// FormFromRequest reads the form fields from a parsed request. An absent
// section falls back to the default; an unknown one is kept so Validate
// reports it.
func FormFromRequest(r *http.Request) Form {
	f := NewForm()
	f.Title = r.FormValue("title")
	f.Description = r.FormValue("description")
	f.Price = r.FormValue("price")
	f.Category = r.FormValue("category")
	if s := r.FormValue("section"); s != "" {
		f.Section = model.Section(s)
	}
	switch r.FormValue("is_new") {
	case "on", "true", "1", "yes":
		f.IsNew = true
	}
	return f
}

// FormFromProduct seeds a form from an existing product.
func FormFromProduct(p *model.Product) Form {
	return Form{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Section:     p.Section,
		IsNew:       p.IsNew,
	}
}

// Upload is an image file selected in the form.
type Upload struct {
	Filename string
	Data     []byte
}

// UploadFromRequest reads the multipart file in field. It returns nil when no
// file was selected or the request is not multipart.
func UploadFromRequest(r *http.Request, field string) (*Upload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	defer file.Close()

	if header.Size == 0 {
		return nil, nil
	}
	if header.Size > imaging.MaxUploadBytes {
		return nil, fmt.Errorf("image too large (max %d MB)", imaging.MaxUploadBytes>>20)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	return &Upload{
		Filename: header.Filename,
		Data:     data,
	}, nil
}

// EditState tracks which product an edit form was seeded from, so the form
// is initialised once per product and never overwritten while being edited.
type EditState struct {
	Form      Form
	productID string
}

// InitializeFrom seeds the form from p unless it was already seeded from the
// same product. It reports whether the form was (re)seeded.
func (s *EditState) InitializeFrom(p *model.Product) bool {
	if p == nil || s.productID == p.ID {
		return false
	}
	s.Form = FormFromProduct(p)
	s.productID = p.ID
	return true
}

// ProductID returns the product the form was seeded from.
func (s *EditState) ProductID() string {
	return s.productID
}
