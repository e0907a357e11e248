package pass

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("frog-42")
	require.NoError(t, err)
	require.NotEqual(t, "frog-42", hash)

	require.True(t, VerifyPassword(hash, "frog-42"))
	require.False(t, VerifyPassword(hash, "frog-43"))
	require.False(t, VerifyPassword("not-a-hash", "frog-42"))
}
