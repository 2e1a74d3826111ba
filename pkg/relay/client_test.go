package relay_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"tracefield-site/internal/domain"
	"tracefield-site/pkg/relay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	t.Run("Should post JSON once and accept 2xx", func(t *testing.T) {
		var calls atomic.Int32
		var got domain.RelayPayload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"message":"Email sent successfully!"}`))
		}))
		defer srv.Close()

		client := relay.NewClient(relay.Config{Endpoint: srv.URL, AccessKey: "key-123"}, nil)
		resp, err := client.Send(context.Background(), domain.RelayPayload{Name: "Jean"})
		require.NoError(t, err)

		assert.Equal(t, int32(1), calls.Load())
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, resp.Success)
		assert.Equal(t, "key-123", got.AccessKey)
		assert.Equal(t, "Jean", got.Name)
	})

	t.Run("Should return a StatusError on non-2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false}`))
		}))
		defer srv.Close()

		client := relay.NewClient(relay.Config{Endpoint: srv.URL, AccessKey: "k"}, nil)
		_, err := client.Send(context.Background(), domain.RelayPayload{})

		var statusErr *relay.StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
		assert.Contains(t, statusErr.Body, "false")
	})

	t.Run("Should return a NetworkError when the relay is unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		client := relay.NewClient(relay.Config{Endpoint: url, AccessKey: "k"}, nil)
		_, err := client.Send(context.Background(), domain.RelayPayload{})

		var netErr *relay.NetworkError
		assert.True(t, errors.As(err, &netErr))
	})

	t.Run("Should fall back to the placeholder key", func(t *testing.T) {
		client := relay.NewClient(relay.Config{}, nil)
		assert.False(t, client.IsConfigured())
		assert.Equal(t, relay.PlaceholderAccessKey, client.AccessKey())
	})
}
