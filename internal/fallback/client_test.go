// internal/fallback/client_test.go
package fallback

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(baseURL string) *Client {
	return New(Config{BaseURL: baseURL, Model: "gemma:2b", Timeout: 2 * time.Second}, testLogger())
}

func TestRespondSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gemma:2b", req.Model)
		assert.False(t, req.Stream)
		assert.Contains(t, req.Prompt, "mobile money assistant")
		assert.Contains(t, req.Prompt, "what is the weather like")

		_ = json.NewEncoder(w).Encode(generateResponse{Response: "  It is sunny.  "})
	}))
	defer server.Close()

	answer, err := newTestClient(server.URL).Respond(context.Background(), "what is the weather like")
	require.NoError(t, err)
	assert.Equal(t, "It is sunny.", answer)
}

func TestRespondServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Respond(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRespondUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Connection refused from here on.

	_, err := newTestClient(server.URL).Respond(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRespondEmptyAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(generateResponse{Response: "   "})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Respond(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrNoAnswer)
}
