package web

import (
	"net/http"

	"github.com/gaayatricouture/couture/internal/model"
)

type contactData struct {
	PageData
	Form model.ContactSubmission
}

// ContactPage handles GET /contact.
func (s *Server) ContactPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "contact.html", &contactData{PageData: s.page(w, r, "Contact")})
}

// ContactSubmit handles POST /contact. A valid submission is stored exactly
// once and the visitor is redirected to an empty form.
func (s *Server) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	sub := model.ContactSubmission{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Service: r.FormValue("service"),
		Message: r.FormValue("message"),
	}

	err := sub.Validate()
	if site := s.Content.Get(); err == nil && len(site.ContactServices) > 0 && !site.HasContactService(sub.Service) {
		err = &model.ValidationError{Field: "service", Message: "Please select a service."}
	}
	if err != nil {
		s.Templates.RenderStatus(w, http.StatusUnprocessableEntity, "contact.html", &contactData{
			PageData: s.page(w, r, "Contact").withError(err.Error()),
			Form:     sub,
		})
		return
	}

	if err := s.Store.CreateContactSubmission(r.Context(), &sub); err != nil {
		s.logger.Error().Err(err).Msg("failed to save contact submission")
		s.Templates.Render(w, "contact.html", &contactData{
			PageData: s.page(w, r, "Contact").withError(err.Error()),
			Form:     sub,
		})
		return
	}

	s.Notifier.Success(w, r, "Message sent! Thank you for reaching out. We'll get back to you within 24 hours.")
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}
