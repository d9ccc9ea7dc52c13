package web

import (
	"net/http"
	"slices"

	"github.com/gaayatricouture/couture/internal/catalog"
	"github.com/gaayatricouture/couture/internal/model"
)

// listing describes one of the two product listing pages.
type listing struct {
	title     string
	intro     string
	section   model.Section
	path      string
	favorites bool
	chips     func(pd PageData) []string
}

var (
	catalogListing = listing{
		title:   "Catalog",
		intro:   "Browse our collection of handcrafted designs.",
		section: model.SectionCatalog,
		path:    "/catalog",
		chips:   func(pd PageData) []string { return pd.Site.CatalogCategories },
	}
	productsListing = listing{
		title:     "Products",
		intro:     "Ready-to-order pieces from our studio.",
		section:   model.SectionShop,
		path:      "/products",
		favorites: true,
		chips:     func(pd PageData) []string { return pd.Site.ProductCategories },
	}
)

// CatalogPage handles GET /catalog.
func (s *Server) CatalogPage(w http.ResponseWriter, r *http.Request) {
	s.renderListing(w, r, catalogListing)
}

// ProductsPage handles GET /products.
func (s *Server) ProductsPage(w http.ResponseWriter, r *http.Request) {
	s.renderListing(w, r, productsListing)
}

func (s *Server) renderListing(w http.ResponseWriter, r *http.Request, l listing) {
	pd := s.page(w, r, l.title)

	items, err := s.Store.ListProducts(r.Context(), l.section)
	if err != nil {
		s.logger.Error().Err(err).Str("section", string(l.section)).Msg("failed to list products")
		pd = pd.withError(err.Error())
		items = nil
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		category = catalog.All
	}

	var lightbox catalog.Lightbox[model.Product]
	if id := r.URL.Query().Get("view"); id != "" {
		if p, ok := catalog.Find(items, id); ok {
			lightbox.Open(p)
		}
	}
	var selected *model.Product
	if p, ok := lightbox.Selected(); ok {
		selected = &p
	}

	var favorites map[string]bool
	if l.favorites {
		favorites = make(map[string]bool)
		for _, id := range s.Notifier.Favorites(r) {
			favorites[id] = true
		}
	}

	s.Templates.Render(w, "listing.html", &struct {
		PageData
		Intro         string
		BasePath      string
		Categories    []string
		Category      string
		Items         []model.Product
		Selected      *model.Product
		ShowFavorites bool
		Favorites     map[string]bool
		ReturnTo      string
	}{
		PageData:      pd,
		Intro:         l.intro,
		BasePath:      l.path,
		Categories:    mergeCategories(l.chips(pd), catalog.Categories(items)),
		Category:      category,
		Items:         catalog.Filter(items, category),
		Selected:      selected,
		ShowFavorites: l.favorites,
		Favorites:     favorites,
		ReturnTo:      r.URL.RequestURI(),
	})
}

// mergeCategories keeps the configured chips in order and appends any
// category present in the data but missing from them.
func mergeCategories(configured, found []string) []string {
	out := make([]string, 0, len(configured)+len(found))
	out = append(out, catalog.All)
	for _, c := range slices.Concat(configured, found) {
		if c == "" || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// FavoriteSubmit handles POST /products/{id}/favorite.
func (s *Server) FavoriteSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.Notifier.ToggleFavorite(w, r, id); err != nil {
		s.logger.Error().Err(err).Str("product", id).Msg("failed to toggle favorite")
	}
	http.Redirect(w, r, safeReturn(r.FormValue("return"), productsListing.path), http.StatusSeeOther)
}
