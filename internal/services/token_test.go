package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	service := NewTokenService("secret")

	token, err := service.Generate("o1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	orderID, err := service.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "o1", orderID)
}

func TestTokenSignedWithAnotherKey(t *testing.T) {
	token, err := NewTokenService("secret").Generate("o1")
	require.NoError(t, err)

	_, err = NewTokenService("other-secret").Validate(token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := NewTokenService("secret").Validate("not-a-token")
	assert.Error(t, err)
}
