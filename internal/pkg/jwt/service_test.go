package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("secret", time.Minute)
	id := uuid.New()

	tok, err := svc.GenerateAccessToken(id, "ana@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestHMACService_WrongSecret(t *testing.T) {
	tok, err := NewHMACService("a", time.Minute).GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	_, err = NewHMACService("b", time.Minute).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("secret", time.Minute)
	past := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return past }
	tok, err := svc.GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_RejectsOtherTokenTypes(t *testing.T) {
	c := Claims{
		UserID:    uuid.New(),
		TokenType: "refresh",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewHMACService("secret", time.Minute).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_Garbage(t *testing.T) {
	_, err := NewHMACService("secret", time.Minute).ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
