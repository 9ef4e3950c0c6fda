package jwtutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	s := NewSigner("secret", time.Hour)

	token, err := s.GenerateToken("ana@example.com", 4, "Ana")
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, uint(4), claims.UserID)
	assert.Equal(t, "Ana", claims.Name)
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	token, err := NewSigner("one", time.Hour).GenerateToken("a@b.c", 1, "")
	require.NoError(t, err)

	_, err = NewSigner("two", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	s := NewSigner("secret", time.Minute)
	s.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := s.GenerateToken("a@b.c", 1, "")
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}
