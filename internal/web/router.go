package web

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gaayatricouture/couture/internal/content"
	"github.com/gaayatricouture/couture/internal/editor"
	"github.com/gaayatricouture/couture/internal/notify"
	"github.com/gaayatricouture/couture/internal/session"
	"github.com/gaayatricouture/couture/internal/store"
	webembed "github.com/gaayatricouture/couture/web"
)

// Options are the dependencies of the page router.
type Options struct {
	Store    store.Store
	Sessions session.Provider
	Editor   *editor.Service
	Notifier *notify.Notifier
	Content  *content.Holder

	// UploadDir is served under /uploads/ when set.
	UploadDir     string
	SecureCookies bool
}

// Server holds all dependencies for page handlers.
type Server struct {
	Options
	Templates *Templates
	logger    zerolog.Logger
}

// NewRouter creates the web page router with all page routes registered.
func NewRouter(opts Options, logger zerolog.Logger) (http.Handler, error) {
	logger = logger.With().Str("component", "web").Logger()

	templates, err := LoadTemplates(logger)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	s := &Server{
		Options:   opts,
		Templates: templates,
		logger:    logger,
	}

	mux := http.NewServeMux()
	admin := func(h http.HandlerFunc) http.Handler { return RequireAdmin(h) }

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))
	if opts.UploadDir != "" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", noListing(http.FileServer(http.Dir(opts.UploadDir)))))
	}
	mux.HandleFunc("GET /healthz", s.Healthz)

	// Public pages.
	mux.HandleFunc("GET /{$}", s.HomePage)
	mux.HandleFunc("GET /catalog", s.CatalogPage)
	mux.HandleFunc("GET /products", s.ProductsPage)
	mux.HandleFunc("POST /products/{id}/favorite", s.FavoriteSubmit)
	mux.HandleFunc("GET /services", s.ServicesPage)
	mux.HandleFunc("GET /contact", s.ContactPage)
	mux.HandleFunc("POST /contact", s.ContactSubmit)

	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)
	mux.HandleFunc("GET /session/events", s.SessionEvents)

	// Admin pages.
	mux.Handle("GET /admin", admin(s.AdminPage))
	mux.Handle("POST /admin/products", admin(s.ProductCreateSubmit))
	mux.Handle("GET /admin/products/{id}/edit", admin(s.ProductEditPage))
	mux.Handle("POST /admin/products/{id}", admin(s.ProductUpdateSubmit))
	mux.Handle("GET /admin/products/{id}/delete", admin(s.ProductDeletePage))
	mux.Handle("POST /admin/products/{id}/delete", admin(s.ProductDeleteSubmit))

	mux.HandleFunc("/", s.NotFound)

	return s.SessionMiddleware(mux), nil
}

// noListing hides directory indexes and stops browsers from guessing a
// content type other than the one the file extension names.
func noListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || r.URL.Path[len(r.URL.Path)-1] == '/' {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}
