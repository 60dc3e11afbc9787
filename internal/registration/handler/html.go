package handler

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"signup/internal/platform/middleware"
	"signup/internal/registration"
	id "signup/pkg/domain"
	dErrors "signup/pkg/domain-errors"
	"signup/pkg/platform/httputil"
	"signup/pkg/platform/sentinel"
)

// CookieName holds the form token of the browser's current form.
const CookieName = "signup_form"

const maxFormBytes = 64 << 10

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/register.html"))

var fieldLabels = map[registration.Field]struct{ label, inputType, autocomplete string }{
	registration.FieldUsername: {"Username", "text", "username"},
	registration.FieldEmail:    {"Email", "email", "email"},
	registration.FieldPassword: {"Password", "password", "new-password"},
}

type pageField struct {
	Name         string
	Label        string
	Type         string
	Autocomplete string
	Value        string
	Error        string
}

type pageData struct {
	Fields []pageField
	View   registration.View
}

func newPageData(view registration.View) pageData {
	data := pageData{View: view}
	for _, f := range registration.Fields() {
		meta := fieldLabels[f]
		data.Fields = append(data.Fields, pageField{
			Name:         f.String(),
			Label:        meta.label,
			Type:         meta.inputType,
			Autocomplete: meta.autocomplete,
			Value:        view.Values[f],
			Error:        view.Errors[f],
		})
	}
	return data
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, view, err := h.pageForm(ctx, w, r)
	if err != nil {
		h.pageError(w, r, "failed to load form", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTemplate.Execute(w, newPageData(view)); err != nil {
		h.logFailure(ctx, "failed to render page", err)
	}
}

// handlePageSubmit applies every posted field as a change event and then
// submits. A submit that is already in flight is not an error for the page:
// the redirect shows the loading state. The page never renders the password
// back, so a submit that does not go through clears it.
func (h *Handler) handlePageSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := parsePost(w, r); err != nil {
		h.pageError(w, r, "invalid form post", err)
		return
	}

	formID, _, err := h.pageForm(ctx, w, r)
	if err != nil {
		h.pageError(w, r, "failed to load form", err)
		return
	}

	values := make(map[registration.Field]string)
	for _, f := range registration.Fields() {
		if posted, ok := r.PostForm[f.String()]; ok && len(posted) > 0 {
			values[f] = posted[0]
		}
	}
	if _, err := h.forms.SetFields(ctx, formID, values); err != nil {
		h.pageError(w, r, "failed to apply fields", err)
		return
	}

	outcome, _, err := h.forms.Submit(ctx, formID)
	if err != nil && !errors.Is(err, registration.ErrSubmitInProgress) {
		h.pageError(w, r, "submit failed", err)
		return
	}
	if err == nil && outcome != registration.OutcomeAccepted {
		if _, err := h.forms.SetField(ctx, formID, registration.FieldPassword, ""); err != nil {
			h.pageError(w, r, "failed to clear password", err)
			return
		}
	}
	http.Redirect(w, r, "/register", http.StatusSeeOther)
}

// handlePageChange records a change event without touching the field.
func (h *Handler) handlePageChange(w http.ResponseWriter, r *http.Request) {
	h.pageFieldEvent(w, r, false)
}

// handlePageBlur records the field's latest value, if posted, then a blur event.
func (h *Handler) handlePageBlur(w http.ResponseWriter, r *http.Request) {
	h.pageFieldEvent(w, r, true)
}

func (h *Handler) pageFieldEvent(w http.ResponseWriter, r *http.Request, touch bool) {
	ctx := r.Context()
	if err := parsePost(w, r); err != nil {
		h.pageError(w, r, "invalid form post", err)
		return
	}
	field, err := registration.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		h.pageError(w, r, "invalid field", err)
		return
	}

	formID, view, err := h.pageForm(ctx, w, r)
	if err != nil {
		h.pageError(w, r, "failed to load form", err)
		return
	}
	if posted, ok := r.PostForm["value"]; ok && len(posted) > 0 {
		if view, err = h.forms.SetField(ctx, formID, field, posted[0]); err != nil {
			h.pageError(w, r, "failed to apply field", err)
			return
		}
	}
	if touch {
		if view, err = h.forms.MarkTouched(ctx, formID, field); err != nil {
			h.pageError(w, r, "failed to mark field", err)
			return
		}
	}
	h.pageDone(w, r, view)
}

func (h *Handler) handlePageDismiss(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	formID, _, err := h.pageForm(ctx, w, r)
	if err != nil {
		h.pageError(w, r, "failed to load form", err)
		return
	}
	view, err := h.forms.Dismiss(ctx, formID)
	if err != nil {
		h.pageError(w, r, "failed to dismiss notification", err)
		return
	}
	h.pageDone(w, r, view)
}

// pageForm resolves the browser's form from its cookie, starting a new one
// when the cookie is missing, invalid, or points at a form that has expired
// or can no longer be opened.
func (h *Handler) pageForm(ctx context.Context, w http.ResponseWriter, r *http.Request) (id.FormID, registration.View, error) {
	if c, err := r.Cookie(CookieName); err == nil {
		if formID, err := h.tokens.Validate(c.Value); err == nil {
			view, err := h.forms.View(ctx, formID)
			if err == nil {
				return formID, view, nil
			}
			switch {
			case dErrors.HasCode(err, dErrors.CodeNotFound):
			case errors.Is(err, sentinel.ErrCorrupt):
				h.logger.WarnContext(ctx, "unreadable form replaced",
					"request_id", middleware.GetRequestID(ctx),
					"form_id", formID.String(),
					"error", err,
				)
			default:
				return id.FormID{}, registration.View{}, err
			}
		}
	}

	formID, view, err := h.forms.Create(ctx)
	if err != nil {
		return id.FormID{}, registration.View{}, err
	}
	token, err := h.tokens.Issue(formID)
	if err != nil {
		return id.FormID{}, registration.View{}, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/register",
		MaxAge:   int(h.tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return formID, view, nil
}

// pageDone answers a page event: scripts asking for JSON get the view, plain
// form posts are redirected back to the page.
func (h *Handler) pageDone(w http.ResponseWriter, r *http.Request, view registration.View) {
	if wantsJSON(r) {
		httputil.WriteJSON(w, http.StatusOK, view)
		return
	}
	http.Redirect(w, r, "/register", http.StatusSeeOther)
}

func (h *Handler) pageError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logFailure(r.Context(), msg, err)
	if wantsJSON(r) {
		httputil.WriteError(w, err)
		return
	}
	code := dErrors.CodeOf(err)
	text := "Something went wrong. Please reload the page."
	var de *dErrors.Error
	if code != dErrors.CodeInternal && errors.As(err, &de) {
		text = de.Message
	}
	http.Error(w, text, dErrors.ToHTTPStatus(code))
}

func parsePost(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid form body")
	}
	return nil
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
