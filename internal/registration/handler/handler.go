package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"signup/internal/platform/middleware"
	"signup/internal/registration"
	id "signup/pkg/domain"
	dErrors "signup/pkg/domain-errors"
	"signup/pkg/platform/httputil"
)

// Service defines the form operations the handlers drive.
type Service interface {
	Create(ctx context.Context) (id.FormID, registration.View, error)
	View(ctx context.Context, formID id.FormID) (registration.View, error)
	SetField(ctx context.Context, formID id.FormID, field registration.Field, value string) (registration.View, error)
	SetFields(ctx context.Context, formID id.FormID, values map[registration.Field]string) (registration.View, error)
	MarkTouched(ctx context.Context, formID id.FormID, field registration.Field) (registration.View, error)
	Dismiss(ctx context.Context, formID id.FormID) (registration.View, error)
	Submit(ctx context.Context, formID id.FormID) (registration.Outcome, registration.View, error)
}

// Tokens issues and validates form tokens.
type Tokens interface {
	middleware.TokenValidator
	Issue(formID id.FormID) (string, error)
	TTL() time.Duration
}

// Handler serves the registration page and the form API.
type Handler struct {
	logger        *slog.Logger
	forms         Service
	tokens        Tokens
	secureCookies bool
}

// New creates a new registration Handler.
func New(
	forms Service,
	tokens Tokens,
	logger *slog.Logger,
	secureCookies bool) *Handler {
	return &Handler{
		logger:        logger,
		forms:         forms,
		tokens:        tokens,
		secureCookies: secureCookies,
	}
}

// Register registers the page and API routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/register", func(r chi.Router) {
		r.Get("/", h.handlePage)
		r.Post("/", h.handlePageSubmit)
		r.Post("/fields/{field}", h.handlePageChange)
		r.Post("/blur/{field}", h.handlePageBlur)
		r.Post("/notification/dismiss", h.handlePageDismiss)
	})

	r.Route("/api/forms", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireFormToken(h.tokens, h.logger))
			r.Use(requireOwnForm)
			r.Get("/{id}", h.handleGetForm)
			r.Put("/{id}/fields/{field}", h.handleSetField)
			r.Post("/{id}/fields/{field}/blur", h.handleBlur)
			r.Post("/{id}/submit", h.handleSubmit)
			r.Delete("/{id}/notification", h.handleDismiss)
		})
	})
}

// requireOwnForm rejects a token that was issued for a different form than
// the one named in the path.
func requireOwnForm(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		granted, ok := middleware.GetFormID(r.Context())
		if !ok {
			httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing form token"))
			return
		}
		requested, err := id.ParseFormID(chi.URLParam(r, "id"))
		if err != nil || requested != granted {
			httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "form token does not match form"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// logFailure logs err at a level that matches its code.
func (h *Handler) logFailure(ctx context.Context, msg string, err error) {
	attrs := []any{
		"request_id", middleware.GetRequestID(ctx),
		"error", err,
	}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, attrs...)
		return
	}
	h.logger.WarnContext(ctx, msg, attrs...)
}
