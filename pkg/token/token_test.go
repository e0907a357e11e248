package token

import (
	"ladder_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAccessToken(t *testing.T) {
	secret := []byte("secret")
	tok, err := GenerateAccessToken(&model.User{ID: 7}, secret, time.Minute)
	require.NoError(t, err)

	claims, err := VerifyToken(tok, secret)
	require.NoError(t, err)
	id, err := UserID(claims)
	require.NoError(t, err)
	require.Equal(t, 7, id)

	_, err = VerifyToken(tok, []byte("other"))
	require.Error(t, err)

	expired, err := GenerateAccessToken(&model.User{ID: 7}, secret, -time.Minute)
	require.NoError(t, err)
	_, err = VerifyToken(expired, secret)
	require.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	tok, err := GenerateRefreshToken()
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	other, err := GenerateRefreshToken()
	require.NoError(t, err)
	require.NotEqual(t, tok, other)

	hash := HashRefreshToken(tok)
	require.True(t, VerifyRefreshToken(tok, hash))
	require.False(t, VerifyRefreshToken(other, hash))
}
