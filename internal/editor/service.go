package editor

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gaayatricouture/couture/internal/imaging"
	"github.com/gaayatricouture/couture/internal/model"
	"github.com/gaayatricouture/couture/internal/storage"
	"github.com/gaayatricouture/couture/internal/store"
)

// Service creates, edits and deletes products. When an image is supplied it
// is uploaded first, and the product row is written only after the upload
// succeeded.
type Service struct {
	products store.ProductStore
	bucket   storage.Bucket
	logger   zerolog.Logger
}

// NewService creates an editor service.
func NewService(products store.ProductStore, bucket storage.Bucket, logger zerolog.Logger) *Service {
	return &Service{
		products: products,
		bucket:   bucket,
		logger:   logger.With().Str("component", "editor").Logger(),
	}
}

// Create uploads the image, if any, then inserts the product.
func (s *Service) Create(ctx context.Context, f Form, up *Upload) (*model.Product, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var imageURL string
	if up != nil {
		url, err := s.upload(ctx, up)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	p, err := s.products.CreateProduct(ctx, f.Product(imageURL))
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", p.ID).Str("section", string(p.Section)).Msg("product created")
	return p, nil
}

// Update uploads the image, if any, then saves the form. Without a new image
// the product keeps its current image URL.
func (s *Service) Update(ctx context.Context, id string, f Form, up *Upload) error {
	if err := f.Validate(); err != nil {
		return err
	}

	existing, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("updating product: %w", model.ErrNotFound)
	}

	imageURL := existing.ImageURL
	if up != nil {
		url, err := s.upload(ctx, up)
		if err != nil {
			return err
		}
		imageURL = url
	}

	if err := s.products.UpdateProduct(ctx, id, f.Update(imageURL)); err != nil {
		return err
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")
	return nil
}

// SetImage replaces only the image of a product.
func (s *Service) SetImage(ctx context.Context, id string, up *Upload) (*model.Product, error) {
	if up == nil {
		return nil, &model.ValidationError{Field: "image", Message: "An image file is required."}
	}

	existing, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("updating product image: %w", model.ErrNotFound)
	}

	url, err := s.upload(ctx, up)
	if err != nil {
		return nil, err
	}

	f := FormFromProduct(existing)
	if err := s.products.UpdateProduct(ctx, id, f.Update(url)); err != nil {
		return nil, err
	}

	existing.ImageURL = url
	s.logger.Info().Str("product_id", id).Msg("product image replaced")
	return existing, nil
}

// Delete removes a product. Its image object is left in the bucket.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func (s *Service) upload(ctx context.Context, up *Upload) (string, error) {
	result, err := imaging.Process(bytes.NewReader(up.Data))
	if err != nil {
		return "", &model.ValidationError{Field: "image", Message: err.Error()}
	}

	name := storage.ObjectName(up.Filename, result.MIME)
	if err := s.bucket.Upload(ctx, name, result.Data, result.MIME); err != nil {
		s.logger.Error().Err(err).Str("object", name).Msg("image upload failed")
		return "", fmt.Errorf("uploading image: %w", err)
	}

	return s.bucket.PublicURL(name), nil
}
