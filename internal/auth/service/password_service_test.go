package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordServiceHashAndCompare(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("motdepasse")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "motdepasse", hash)

	assert.True(t, svc.Compare("motdepasse", hash))
	assert.False(t, svc.Compare("wrong", hash))
}

func TestPasswordServiceHashIsSalted(t *testing.T) {
	svc := NewPasswordService()

	hash1, err := svc.Hash("motdepasse")
	require.NoError(t, err)
	hash2, err := svc.Hash("motdepasse")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
	assert.True(t, svc.Compare("motdepasse", hash1))
	assert.True(t, svc.Compare("motdepasse", hash2))
}

func TestPasswordServiceCompareMalformedHash(t *testing.T) {
	svc := NewPasswordService()

	assert.False(t, svc.Compare("motdepasse", ""))
	assert.False(t, svc.Compare("motdepasse", "not-a-hash"))
}
