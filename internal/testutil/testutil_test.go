package testutil

import (
	"io"
	"net/http"
	"testing"

	"bookreview/internal/platform/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens(t *testing.T) {
	claims, err := crypto.ParseToken("s3cret", Token(t, "s3cret", "u1", "alice"))
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Sub)
	assert.Equal(t, "alice", claims.Username)

	_, err = crypto.ParseToken("s3cret", ExpiredToken(t, "s3cret", "u1", "alice"))
	assert.Error(t, err)
}

func TestNewRequest(t *testing.T) {
	t.Run("no body", func(t *testing.T) {
		r := NewRequest(http.MethodGet, "/x", nil)
		assert.Empty(t, r.Header.Get("Content-Type"))
	})

	t.Run("raw string", func(t *testing.T) {
		r := NewRequest(http.MethodPost, "/x", `title=Dune`)
		raw, _ := io.ReadAll(r.Body)
		assert.Equal(t, "title=Dune", string(raw))
	})

	t.Run("json with auth", func(t *testing.T) {
		r := NewRequestWithAuth(http.MethodPost, "/x", map[string]int{"rating": 5}, "tok")
		raw, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"rating":5}`, string(raw))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
	})
}
