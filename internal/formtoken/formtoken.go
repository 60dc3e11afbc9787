// Package formtoken issues the signed token that binds a browser session or
// API client to the form it created. Holding the token is the only way to
// read or mutate that form.
package formtoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "signup/pkg/domain"
	dErrors "signup/pkg/domain-errors"
)

const (
	issuer   = "signup"
	audience = "signup-form"
)

// Claims carried by a form token.
type Claims struct {
	FormID string `json:"form_id"`
	jwt.RegisteredClaims
}

// Service signs and validates form tokens with HMAC-SHA256.
type Service struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

func NewService(signingKey string, ttl time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		ttl:        ttl,
		now:        time.Now,
	}
}

// TTL reports how long issued tokens stay valid.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue returns a token for formID.
func (s *Service) Issue(formID id.FormID) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		FormID: formID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Audience:  []string{audience},
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign form token")
	}
	return signed, nil
}

// Validate checks signature, expiry, issuer and audience and returns the form id.
func (s *Service) Validate(tokenString string) (id.FormID, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return id.FormID{}, dErrors.New(dErrors.CodeUnauthorized, "form token has expired")
		}
		return id.FormID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid form token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return id.FormID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid form token")
	}

	formID, err := id.ParseFormID(claims.FormID)
	if err != nil {
		return id.FormID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid form token claims")
	}
	return formID, nil
}
