package services_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/backend/internal/services"
)

const testSecret = "unit-test-jwt-secret"

func newTestJWTService(t *testing.T) *services.JWTService {
	t.Setenv("JWT_SECRET", testSecret)
	return services.NewJWTService()
}

func TestGenerateAndValidateToken(t *testing.T) {
	s := newTestJWTService(t)

	token, err := s.GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := s.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, userID, "Subject must round-trip to the same user ID")
}

func TestValidateToken_Garbage(t *testing.T) {
	s := newTestJWTService(t)

	_, err := s.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	s := newTestJWTService(t)

	// 別の鍵で署名されたトークン
	claims := &jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = s.ValidateToken(forged)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	s := newTestJWTService(t)

	// 正しい鍵だが期限切れのトークン
	claims := &jwt.RegisteredClaims{
		Subject:   strconv.Itoa(42),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = s.ValidateToken(expired)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestValidateToken_MissingSubject(t *testing.T) {
	s := newTestJWTService(t)

	claims := &jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = s.ValidateToken(noSubject)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestValidateToken_NonNumericSubject(t *testing.T) {
	s := newTestJWTService(t)

	claims := &jwt.RegisteredClaims{
		Subject:   "not-a-number",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = s.ValidateToken(badSubject)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}
