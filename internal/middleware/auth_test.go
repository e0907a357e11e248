package middleware

import (
	"ladder_backend/internal/model"
	"ladder_backend/pkg/token"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestAuth(t *testing.T) {
	secret := []byte("secret")
	var gotID int
	h := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		gotID = id
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ladder/state", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	r := httptest.NewRequest(http.MethodGet, "/ladder/state", nil)
	r.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := token.GenerateAccessToken(&model.User{ID: 12}, secret, time.Minute)
	require.NoError(t, err)
	r = httptest.NewRequest(http.MethodGet, "/ladder/state", nil)
	r.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	Logger(zaptest.NewLogger(t))(h).ServeHTTP(rec, r)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, 12, gotID)
}

func TestUserIDFromContext(t *testing.T) {
	_, ok := UserIDFromContext(t.Context())
	require.False(t, ok)

	id, ok := UserIDFromContext(WithUserID(t.Context(), 3))
	require.True(t, ok)
	require.Equal(t, 3, id)
}
