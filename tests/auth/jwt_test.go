package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sosmedia/portfolio-api/internal/auth"
	"github.com/sosmedia/portfolio-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func newValidator() *auth.JWTValidator {
	return auth.NewJWTValidator(&config.AuthConfig{
		JWTSecret: testSecret,
		Issuer:    "test-issuer",
		Audience:  "portfolio-api",
	})
}

func signToken(t *testing.T, secret string, claims jwt.Claims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateToken_Valid(t *testing.T) {
	tokenString := signToken(t, testSecret, &auth.Claims{
		Email:       "user@example.com",
		DisplayName: "Test User",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			Audience:  jwt.ClaimStrings{"portfolio-api"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := newValidator().ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "Test User", claims.DisplayName)
}

func TestValidateToken_Expired(t *testing.T) {
	tokenString := signToken(t, testSecret, &auth.Claims{
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			Audience:  jwt.ClaimStrings{"portfolio-api"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := newValidator().ValidateToken(tokenString)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tokenString := signToken(t, "other-secret", &auth.Claims{
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			Audience:  jwt.ClaimStrings{"portfolio-api"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := newValidator().ValidateToken(tokenString)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	tokenString := signToken(t, testSecret, &auth.Claims{
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Audience:  jwt.ClaimStrings{"portfolio-api"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := newValidator().ValidateToken(tokenString)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

// A token without an email claim falls back to the subject
func TestValidateToken_SubjectFallback(t *testing.T) {
	tokenString := signToken(t, testSecret, &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user@example.com",
			Issuer:    "test-issuer",
			Audience:  jwt.ClaimStrings{"portfolio-api"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := newValidator().ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestValidateToken_MissingIdentity(t *testing.T) {
	tokenString := signToken(t, testSecret, &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			Audience:  jwt.ClaimStrings{"portfolio-api"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := newValidator().ValidateToken(tokenString)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := newValidator().ValidateToken("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
