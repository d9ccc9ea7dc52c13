package web

import (
	"net/http"
	"strconv"

	"github.com/gaayatricouture/couture/internal/catalog"
	"github.com/gaayatricouture/couture/internal/content"
	"github.com/gaayatricouture/couture/internal/notify"
)

// page builds the shared page data and consumes queued toasts.
func (s *Server) page(w http.ResponseWriter, r *http.Request, title string) PageData {
	pd := PageData{
		Title:  title,
		Path:   r.URL.Path,
		Site:   s.Content.Get(),
		Toasts: s.Notifier.Pop(w, r),
	}
	if sess := CurrentSession(r.Context()); sess != nil {
		pd.IsAdmin = true
		pd.Email = sess.Email
	}
	return pd
}

// withError adds an error toast to the current render.
func (pd PageData) withError(message string) PageData {
	pd.Toasts = append(pd.Toasts, notify.Toast{Kind: notify.Error, Message: message})
	return pd
}

// carouselFromQuery positions a carousel over n slides at query parameter key.
func carouselFromQuery(r *http.Request, key string, n int) catalog.Carousel {
	start, _ := strconv.Atoi(r.URL.Query().Get(key))
	return catalog.NewCarousel(n, start)
}

// HomePage handles GET /.
func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	pd := s.page(w, r, "")

	designs := carouselFromQuery(r, "d", len(pd.Site.Featured))
	quotes := carouselFromQuery(r, "t", len(pd.Site.Testimonials))

	var design *content.Design
	if designs.Len() > 0 {
		design = &pd.Site.Featured[designs.Index()]
	}
	var quote *content.Testimonial
	if quotes.Len() > 0 {
		quote = &pd.Site.Testimonials[quotes.Index()]
	}

	s.Templates.Render(w, "home.html", &struct {
		PageData
		Designs     catalog.Carousel
		Design      *content.Design
		Quotes      catalog.Carousel
		Testimonial *content.Testimonial
	}{
		PageData:    pd,
		Designs:     designs,
		Design:      design,
		Quotes:      quotes,
		Testimonial: quote,
	})
}

// ServicesPage handles GET /services.
func (s *Server) ServicesPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "services.html", s.page(w, r, "Services"))
}

// NotFound renders the 404 page for any unknown path.
func (s *Server) NotFound(w http.ResponseWriter, r *http.Request) {
	s.Templates.RenderStatus(w, http.StatusNotFound, "not_found.html", s.page(w, r, "Page not found"))
}

// Healthz handles GET /healthz.
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}
