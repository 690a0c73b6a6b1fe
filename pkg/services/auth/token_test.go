package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/price-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenProvider_GetToken(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the token on success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"Token": "embed-token-123"}`))
		}))
		defer srv.Close()

		provider := NewTokenProvider(srv.URL, 5*time.Second)
		token, err := provider.GetToken(ctx)

		require.NoError(t, err)
		assert.Equal(t, "embed-token-123", token)
	})

	t.Run("fails with a transport error on non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		provider := NewTokenProvider(srv.URL, 5*time.Second)
		_, err := provider.GetToken(ctx)

		var transportErr *domain.TransportError
		require.ErrorAs(t, err, &transportErr)
		assert.Equal(t, http.StatusInternalServerError, transportErr.Status)
	})

	t.Run("fails with a transport error when the server is unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		provider := NewTokenProvider(srv.URL, 5*time.Second)
		_, err := provider.GetToken(ctx)

		var transportErr *domain.TransportError
		require.ErrorAs(t, err, &transportErr)
	})

	t.Run("fails with a format error on invalid JSON", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()

		provider := NewTokenProvider(srv.URL, 5*time.Second)
		_, err := provider.GetToken(ctx)

		var formatErr *domain.FormatError
		require.ErrorAs(t, err, &formatErr)
	})

	t.Run("fails with a format error when the Token field is missing", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"SomethingElse": "value"}`))
		}))
		defer srv.Close()

		provider := NewTokenProvider(srv.URL, 5*time.Second)
		_, err := provider.GetToken(ctx)

		var formatErr *domain.FormatError
		require.ErrorAs(t, err, &formatErr)
	})

	t.Run("fails with a format error when the Token field is empty", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"Token": ""}`))
		}))
		defer srv.Close()

		provider := NewTokenProvider(srv.URL, 5*time.Second)
		_, err := provider.GetToken(ctx)

		require.Error(t, err)
		var formatErr *domain.FormatError
		assert.True(t, errors.As(err, &formatErr))
	})
}
