package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gaayatricouture/couture/internal/editor"
	"github.com/gaayatricouture/couture/internal/middleware"
	"github.com/gaayatricouture/couture/internal/session"
	"github.com/gaayatricouture/couture/internal/store"
)

// Options are the dependencies of the API router.
type Options struct {
	Store    store.Store
	Sessions session.Provider
	Editor   *editor.Service
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(opts Options, logger zerolog.Logger) http.Handler {
	logger = logger.With().Str("component", "api").Logger()
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Sessions: opts.Sessions, Users: opts.Store, logger: logger}
	productsHandler := &ProductsHandler{Store: opts.Store, Editor: opts.Editor, logger: logger}
	contactHandler := &ContactHandler{Store: opts.Store, logger: logger}

	authMW := AuthMiddleware(opts.Sessions)

	// Public.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/products", productsHandler.List)
	mux.HandleFunc("GET /api/products/{id}", productsHandler.Get)
	mux.HandleFunc("POST /api/contact", contactHandler.Create)

	// Admin.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/products", authMW(http.HandlerFunc(productsHandler.Create)))
	mux.Handle("PUT /api/products/{id}", authMW(http.HandlerFunc(productsHandler.Update)))
	mux.Handle("DELETE /api/products/{id}", authMW(http.HandlerFunc(productsHandler.Delete)))
	mux.Handle("PUT /api/products/{id}/image", authMW(http.HandlerFunc(productsHandler.UploadImage)))

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, http.StatusNotFound, "not found")
	})

	return middleware.CORS(mux)
}
