package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, CheckPassword(hash, "password123"))
	assert.False(t, CheckPassword(hash, "password124"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("password123")
	assert.NoError(t, err)
	h2, err := HashPassword("password123")
	assert.NoError(t, err)

	// bcrypt salts, so two hashes of the same input differ
	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPassword(h2, "password123"))
}

func TestCheckPasswordBadHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "password123"))
}
