// Package content loads the site's marketing copy from YAML.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// Link is a navigation entry.
type Link struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Stat is a headline number on the home page.
type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Hero is the home page banner.
type Hero struct {
	Eyebrow  string `yaml:"eyebrow"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Image    string `yaml:"image"`
	Stats    []Stat `yaml:"stats"`
}

// Design is a featured piece in the home page carousel.
type Design struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Image       string `yaml:"image"`
}

// Testimonial is a client quote.
type Testimonial struct {
	Content string `yaml:"content"`
	Author  string `yaml:"author"`
	Role    string `yaml:"role"`
	Image   string `yaml:"image"`
}

// Service is an offering described on the services page.
type Service struct {
	ID       string   `yaml:"id"`
	Badge    string   `yaml:"badge"`
	Title    string   `yaml:"title"`
	Summary  string   `yaml:"summary"`
	Body     string   `yaml:"body"`
	Features []string `yaml:"features"`
	Gallery  []string `yaml:"gallery"`
	CTA      string   `yaml:"cta"`
}

// Step is one stage of the ordering process.
type Step struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Option is a select option on the contact form.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// ContactInfo is how visitors reach the studio.
type ContactInfo struct {
	Phones    []string `yaml:"phones"`
	Email     string   `yaml:"email"`
	Address   string   `yaml:"address"`
	Hours     string   `yaml:"hours"`
	Instagram string   `yaml:"instagram"`
	Facebook  string   `yaml:"facebook"`
}

// Site is the complete marketing copy.
type Site struct {
	Name              string        `yaml:"name"`
	Tagline           string        `yaml:"tagline"`
	Nav               []Link        `yaml:"nav"`
	Contact           ContactInfo   `yaml:"contact"`
	Hero              Hero          `yaml:"hero"`
	Featured          []Design      `yaml:"featured"`
	Testimonials      []Testimonial `yaml:"testimonials"`
	Services          []Service     `yaml:"services"`
	Process           []Step        `yaml:"process"`
	ContactServices   []Option      `yaml:"contact_services"`
	CatalogCategories []string      `yaml:"catalog_categories"`
	ProductCategories []string      `yaml:"product_categories"`
}

// Parse decodes site content. Unknown keys are rejected so typos surface.
func Parse(data []byte) (*Site, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Site
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing site content: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the fields every page relies on.
func (s *Site) Validate() error {
	if s.Name == "" {
		return errors.New("site content: name is required")
	}
	if len(s.Nav) == 0 {
		return errors.New("site content: at least one nav link is required")
	}
	for _, o := range s.ContactServices {
		if o.Value == "" {
			return fmt.Errorf("site content: contact service %q has no value", o.Label)
		}
	}
	return nil
}

// HasContactService reports whether value is one of the contact form options.
func (s *Site) HasContactService(value string) bool {
	for _, o := range s.ContactServices {
		if o.Value == value {
			return true
		}
	}
	return false
}

// LoadFS reads and parses name from fsys.
func LoadFS(fsys fs.FS, name string) (*Site, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading site content: %w", err)
	}
	return Parse(data)
}

// LoadFile reads and parses the file at path.
func LoadFile(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading site content: %w", err)
	}
	return Parse(data)
}

// Holder publishes the current site content to concurrent readers.
type Holder struct {
	v atomic.Pointer[Site]
}

// NewHolder returns a holder serving s.
func NewHolder(s *Site) *Holder {
	h := &Holder{}
	h.v.Store(s)
	return h
}

// Get returns the current content.
func (h *Holder) Get() *Site {
	return h.v.Load()
}

// Set replaces the current content.
func (h *Holder) Set(s *Site) {
	h.v.Store(s)
}
