package store

import (
	"context"
	"errors"
	"testing"

	"github.com/gaayatricouture/couture/internal/db"
	"github.com/gaayatricouture/couture/internal/model"
)

func TestCreateAndGetProduct(t *testing.T) {
	s := NewSQLStore(db.NewTestDB(t))
	ctx := context.Background()

	p, err := s.CreateProduct(ctx, &model.Product{
		Title:    "Ivory Lehenga",
		Price:    "On Request",
		Category: "Bridal",
		IsNew:    true,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if p.ID == "" {
		t.Fatal("expected generated id")
	}
	if p.Section != model.SectionCatalog {
		t.Errorf("expected default section Catalog, got %q", p.Section)
	}
	if !p.IsNew {
		t.Error("expected IsNew to round-trip")
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	got, err := s.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Title != "Ivory Lehenga" || got.Category != "Bridal" {
		t.Errorf("unexpected product: %+v", got)
	}

	missing, err := s.GetProduct(ctx, "no-such-id")
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing product")
	}
}

func TestCreateProductValidation(t *testing.T) {
	s := NewSQLStore(db.NewTestDB(t))
	ctx := context.Background()

	_, err := s.CreateProduct(ctx, &model.Product{Title: ""})
	var verr *model.ValidationError
	if !errors.As(err, &verr) || verr.Field != "title" {
		t.Errorf("expected title validation error, got %v", err)
	}

	_, err = s.CreateProduct(ctx, &model.Product{Title: "X", Section: "Gallery"})
	if !errors.As(err, &verr) || verr.Field != "section" {
		t.Errorf("expected section validation error, got %v", err)
	}
}

func TestListProductsBySectionNewestFirst(t *testing.T) {
	s := NewSQLStore(db.NewTestDB(t))
	ctx := context.Background()

	first, _ := s.CreateProduct(ctx, &model.Product{Title: "First", Section: model.SectionCatalog})
	second, _ := s.CreateProduct(ctx, &model.Product{Title: "Second", Section: model.SectionCatalog})
	shop, _ := s.CreateProduct(ctx, &model.Product{Title: "Shop Item", Section: model.SectionShop})

	catalog, err := s.ListProducts(ctx, model.SectionCatalog)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(catalog) != 2 {
		t.Fatalf("expected 2 catalog products, got %d", len(catalog))
	}
	if catalog[0].ID != second.ID || catalog[1].ID != first.ID {
		t.Errorf("expected newest first, got %q then %q", catalog[0].Title, catalog[1].Title)
	}

	shopList, err := s.ListProducts(ctx, model.SectionShop)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(shopList) != 1 || shopList[0].ID != shop.ID {
		t.Errorf("expected only the shop item, got %+v", shopList)
	}

	for _, p := range catalog {
		if p.ID == shop.ID {
			t.Error("shop item must not appear in catalog listing")
		}
	}

	all, err := s.ListAllProducts(ctx)
	if err != nil {
		t.Fatalf("ListAllProducts: %v", err)
	}
	if len(all) != 3 || all[0].ID != shop.ID {
		t.Errorf("expected 3 products with the shop item first, got %d", len(all))
	}
}

func TestListProductsEmpty(t *testing.T) {
	s := NewSQLStore(db.NewTestDB(t))

	products, err := s.ListProducts(context.Background(), model.SectionShop)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", products)
	}
}

func TestUpdateProduct(t *testing.T) {
	s := NewSQLStore(db.NewTestDB(t))
	ctx := context.Background()

	p, _ := s.CreateProduct(ctx, &model.Product{
		Title:    "Old",
		Section:  model.SectionShop,
		ImageURL: "/uploads/a.jpg",
		IsNew:    true,
	})

	err := s.UpdateProduct(ctx, p.ID, model.ProductUpdate{
		Title:    "New",
		Price:    "12000",
		ImageURL: p.ImageURL,
	})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}

	got, _ := s.GetProduct(ctx, p.ID)
	if got.Title != "New" || got.Price != "12000" {
		t.Errorf("unexpected product after update: %+v", got)
	}
	if got.ImageURL != "/uploads/a.jpg" {
		t.Errorf("expected image_url to be kept, got %q", got.ImageURL)
	}
	if got.Section != model.SectionShop || !got.IsNew {
		t.Error("expected section and is_new to be untouched")
	}

	err = s.UpdateProduct(ctx, "missing", model.ProductUpdate{Title: "X"})
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	s := NewSQLStore(db.NewTestDB(t))
	ctx := context.Background()

	p, _ := s.CreateProduct(ctx, &model.Product{Title: "Gone"})

	if err := s.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	got, _ := s.GetProduct(ctx, p.ID)
	if got != nil {
		t.Error("expected product to be deleted")
	}

	if err := s.DeleteProduct(ctx, p.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
