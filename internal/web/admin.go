package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gaayatricouture/couture/internal/editor"
	"github.com/gaayatricouture/couture/internal/imaging"
	"github.com/gaayatricouture/couture/internal/model"
)

// maxFormBytes bounds a product form including its image.
const maxFormBytes = imaging.MaxUploadBytes + 1<<20

type adminData struct {
	PageData
	Form     editor.Form
	Sections []model.Section
	Products []model.Product
}

type editData struct {
	PageData
	Product  *model.Product
	Form     editor.Form
	Sections []model.Section
	ReturnTo string
}

var sections = []model.Section{model.SectionCatalog, model.SectionShop}

// AdminPage handles GET /admin.
func (s *Server) AdminPage(w http.ResponseWriter, r *http.Request) {
	s.renderAdmin(w, r, http.StatusOK, s.page(w, r, "Admin"), editor.NewForm())
}

func (s *Server) renderAdmin(w http.ResponseWriter, r *http.Request, status int, pd PageData, form editor.Form) {
	products, err := s.Store.ListAllProducts(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products for admin")
		pd = pd.withError(err.Error())
	}

	s.Templates.RenderStatus(w, status, "admin.html", &adminData{
		PageData: pd,
		Form:     form,
		Sections: sections,
		Products: products,
	})
}

// ProductCreateSubmit handles POST /admin/products.
func (s *Server) ProductCreateSubmit(w http.ResponseWriter, r *http.Request) {
	form, upload, err := s.readProductForm(w, r)
	if err == nil {
		_, err = s.Editor.Create(r.Context(), form, upload)
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to create product")
		pd := s.page(w, r, "Admin").withError(err.Error())
		s.renderAdmin(w, r, statusFor(err), pd, form)
		return
	}

	s.Notifier.Success(w, r, "Item added successfully")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// ProductEditPage handles GET /admin/products/{id}/edit.
func (s *Server) ProductEditPage(w http.ResponseWriter, r *http.Request) {
	product, ok := s.loadProduct(w, r)
	if !ok {
		return
	}

	var state editor.EditState
	state.InitializeFrom(product)

	s.Templates.Render(w, "edit.html", &editData{
		PageData: s.page(w, r, "Edit "+product.Title),
		Product:  product,
		Form:     state.Form,
		Sections: sections,
		ReturnTo: safeReturn(r.FormValue("return"), "/admin"),
	})
}

// ProductUpdateSubmit handles POST /admin/products/{id}.
func (s *Server) ProductUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	form, upload, err := s.readProductForm(w, r)
	returnTo := safeReturn(r.FormValue("return"), "/admin")

	if err == nil {
		err = s.Editor.Update(r.Context(), id, form, upload)
	}
	if errors.Is(err, model.ErrNotFound) {
		s.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("failed to update product")
		product, getErr := s.Store.GetProduct(r.Context(), id)
		if getErr != nil || product == nil {
			s.Notifier.Error(w, r, err.Error())
			http.Redirect(w, r, returnTo, http.StatusSeeOther)
			return
		}
		s.Templates.RenderStatus(w, statusFor(err), "edit.html", &editData{
			PageData: s.page(w, r, "Edit "+product.Title).withError(err.Error()),
			Product:  product,
			Form:     form,
			Sections: sections,
			ReturnTo: returnTo,
		})
		return
	}

	s.Notifier.Success(w, r, "Item updated successfully")
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

// ProductDeletePage handles GET /admin/products/{id}/delete.
func (s *Server) ProductDeletePage(w http.ResponseWriter, r *http.Request) {
	product, ok := s.loadProduct(w, r)
	if !ok {
		return
	}

	s.Templates.Render(w, "delete.html", &struct {
		PageData
		Product  *model.Product
		ReturnTo string
	}{
		PageData: s.page(w, r, "Delete "+product.Title),
		Product:  product,
		ReturnTo: safeReturn(r.FormValue("return"), "/admin"),
	})
}

// ProductDeleteSubmit handles POST /admin/products/{id}/delete. Nothing is
// removed unless the form carries confirm=yes.
func (s *Server) ProductDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	returnTo := safeReturn(r.FormValue("return"), "/admin")

	if r.FormValue("confirm") != "yes" {
		http.Redirect(w, r, returnTo, http.StatusSeeOther)
		return
	}

	if err := s.Editor.Delete(r.Context(), id); err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("failed to delete product")
		s.Notifier.Error(w, r, err.Error())
	} else {
		s.Notifier.Success(w, r, "Item deleted successfully")
	}
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

// loadProduct fetches the product named in the path, rendering the 404 page
// or an error when it cannot.
func (s *Server) loadProduct(w http.ResponseWriter, r *http.Request) (*model.Product, bool) {
	id := r.PathValue("id")
	product, err := s.Store.GetProduct(r.Context(), id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	if product == nil {
		s.NotFound(w, r)
		return nil, false
	}
	return product, true
}

// readProductForm parses a product form and its optional image.
func (s *Server) readProductForm(w http.ResponseWriter, r *http.Request) (editor.Form, *editor.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseMultipartForm(maxFormBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return editor.FormFromRequest(r), nil, err
	}

	form := editor.FormFromRequest(r)
	upload, err := editor.UploadFromRequest(r, "image")
	return form, upload, err
}

// statusFor maps a form failure to the status of the re-rendered page.
func statusFor(err error) int {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}

// safeReturn accepts only local absolute paths as redirect targets.
func safeReturn(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	return target
}
