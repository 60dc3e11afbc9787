package formtoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "signup/pkg/domain"
	dErrors "signup/pkg/domain-errors"
)

func TestIssueValidate(t *testing.T) {
	svc := NewService("test-signing-key", time.Hour)
	formID := id.NewFormID()

	token, err := svc.Issue(formID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, formID, got)
}

func TestValidate_InvalidToken(t *testing.T) {
	svc := NewService("test-signing-key", time.Hour)

	_, err := svc.Validate("invalid-token-string")
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid form token"))
}

func TestValidate_ExpiredToken(t *testing.T) {
	svc := NewService("test-signing-key", time.Minute)
	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(id.NewFormID())
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = svc.Validate(token)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "form token has expired"))
}

func TestValidate_WrongKey(t *testing.T) {
	token, err := NewService("key-a", time.Hour).Issue(id.NewFormID())
	require.NoError(t, err)

	_, err = NewService("key-b", time.Hour).Validate(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidate_RejectsForeignAudience(t *testing.T) {
	key := []byte("test-signing-key")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		FormID: id.NewFormID().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  []string{"someone-else"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(key)
	require.NoError(t, err)

	_, err = NewService(string(key), time.Hour).Validate(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidate_RejectsBadFormID(t *testing.T) {
	key := []byte("test-signing-key")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		FormID: "not-a-uuid",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  []string{audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(key)
	require.NoError(t, err)

	_, err = NewService(string(key), time.Hour).Validate(token)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid form token claims"))
}
