package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"signup/internal/platform/middleware"
	"signup/internal/registration"
	id "signup/pkg/domain"
	dErrors "signup/pkg/domain-errors"
	"signup/pkg/platform/httputil"
)

// CreateResponse is returned by POST /api/forms.
type CreateResponse struct {
	FormID string            `json:"form_id"`
	Token  string            `json:"token"`
	View   registration.View `json:"view"`
}

// SubmitResponse is returned by POST /api/forms/{id}/submit.
type SubmitResponse struct {
	Outcome registration.Outcome `json:"outcome"`
	View    registration.View    `json:"view"`
}

// SetFieldRequest is the body of PUT /api/forms/{id}/fields/{field}.
type SetFieldRequest struct {
	Value *string `json:"value"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	formID, view, err := h.forms.Create(ctx)
	if err != nil {
		h.logFailure(ctx, "failed to create form", err)
		httputil.WriteError(w, err)
		return
	}
	token, err := h.tokens.Issue(formID)
	if err != nil {
		h.logFailure(ctx, "failed to issue form token", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, CreateResponse{
		FormID: formID.String(),
		Token:  token,
		View:   view,
	})
}

func (h *Handler) handleGetForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	formID := grantedForm(r)

	view, err := h.forms.View(ctx, formID)
	h.writeView(w, r, view, err)
}

func (h *Handler) handleSetField(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	formID := grantedForm(r)

	field, err := registration.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req SetFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid set field request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Value == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "value is required"))
		return
	}

	view, err := h.forms.SetField(ctx, formID, field, *req.Value)
	h.writeView(w, r, view, err)
}

func (h *Handler) handleBlur(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	formID := grantedForm(r)

	field, err := registration.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	view, err := h.forms.MarkTouched(ctx, formID, field)
	h.writeView(w, r, view, err)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	formID := grantedForm(r)

	outcome, view, err := h.forms.Submit(ctx, formID)
	if err != nil {
		h.logFailure(ctx, "submit failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SubmitResponse{Outcome: outcome, View: view})
}

func (h *Handler) handleDismiss(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	formID := grantedForm(r)

	view, err := h.forms.Dismiss(ctx, formID)
	h.writeView(w, r, view, err)
}

func (h *Handler) writeView(w http.ResponseWriter, r *http.Request, view registration.View, err error) {
	if err != nil {
		h.logFailure(r.Context(), "form operation failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

// grantedForm is only valid behind requireOwnForm.
func grantedForm(r *http.Request) id.FormID {
	formID, _ := middleware.GetFormID(r.Context())
	return formID
}
