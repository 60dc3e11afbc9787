package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	id "signup/pkg/domain"
	dErrors "signup/pkg/domain-errors"
	"signup/pkg/platform/httputil"
)

// TokenValidator resolves a form token to the form it grants access to.
type TokenValidator interface {
	Validate(token string) (id.FormID, error)
}

type contextKeyFormID struct{}

// GetFormID retrieves the form ID granted by the request's token.
func GetFormID(ctx context.Context) (id.FormID, bool) {
	formID, ok := ctx.Value(contextKeyFormID{}).(id.FormID)
	return formID, ok
}

// WithFormID injects a granted form ID into a context.
// Useful for handler tests that don't run the middleware.
func WithFormID(ctx context.Context, formID id.FormID) context.Context {
	return context.WithValue(ctx, contextKeyFormID{}, formID)
}

// RequireFormToken rejects requests without a valid Bearer form token.
func RequireFormToken(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing form token",
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			formID, err := validator.Validate(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid form token",
					"request_id", requestID,
					"error", err,
				)
				httputil.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithFormID(ctx, formID)))
		})
	}
}
