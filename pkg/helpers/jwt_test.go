package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWTGenerateAndParse(t *testing.T) {
	m := NewJWTManager("secret", "movie-vault", time.Hour)

	token, exp, err := m.Generate("user-1")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := m.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestJWTParseTampered(t *testing.T) {
	m := NewJWTManager("secret", "movie-vault", time.Hour)

	token, _, err := m.Generate("user-1")
	assert.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = m.Parse(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTParseWrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", "movie-vault", time.Hour)
	verifier := NewJWTManager("secret-b", "movie-vault", time.Hour)

	token, _, err := issuer.Generate("user-1")
	assert.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTParseExpired(t *testing.T) {
	m := NewJWTManager("secret", "movie-vault", -time.Minute)

	token, _, err := m.Generate("user-1")
	assert.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTParseWrongIssuer(t *testing.T) {
	issuer := NewJWTManager("secret", "another-app", time.Hour)
	verifier := NewJWTManager("secret", "movie-vault", time.Hour)

	token, _, err := issuer.Generate("user-1")
	assert.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTParseGarbage(t *testing.T) {
	m := NewJWTManager("secret", "movie-vault", time.Hour)

	_, err := m.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
