package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hasher := NewArgon2Hasher(DefaultArgon2Params())

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	assert.True(t, hasher.Verify("correct horse battery staple", hash))
	assert.False(t, hasher.Verify("wrong password", hash))
}

func TestHashesAreSalted(t *testing.T) {
	hasher := NewArgon2Hasher(DefaultArgon2Params())

	h1, err := hasher.Hash("same password")
	require.NoError(t, err)
	h2, err := hasher.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, hasher.Verify("same password", h1))
	assert.True(t, hasher.Verify("same password", h2))
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	hasher := NewArgon2Hasher(DefaultArgon2Params())

	assert.False(t, hasher.Verify("anything", "not-an-encoded-hash"))
	assert.False(t, hasher.Verify("anything", ""))
}
