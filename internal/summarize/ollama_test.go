package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaGenerate(t *testing.T) {
	var got ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"message":{"role":"assistant","content":"  a synthesis  "},"done":true}`)
	}))
	defer server.Close()

	m := NewOllamaModel(OllamaConfig{BaseURL: server.URL, Model: "test-model"})
	summary, err := m.Generate(context.Background(), "article text")
	require.NoError(t, err)
	assert.Equal(t, "a synthesis", summary)

	assert.Equal(t, "test-model", got.Model)
	assert.False(t, got.Stream)
	assert.Zero(t, got.Options.Temperature, "generation must be deterministic")
	assert.Equal(t, genMaxTokens, got.Options.NumPredict)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "article text", got.Messages[1].Content)
}

func TestOllamaGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "http error", status: http.StatusInternalServerError, body: "boom", wantErr: "status 500"},
		{name: "model error field", status: http.StatusOK, body: `{"error":"model not found"}`, wantErr: "model not found"},
		{name: "empty content", status: http.StatusOK, body: `{"message":{"content":"   "}}`, wantErr: "empty summary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			m := NewOllamaModel(OllamaConfig{BaseURL: server.URL})
			_, err := m.Generate(context.Background(), "text")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOllamaPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		fmt.Fprint(w, `{"models":[]}`)
	}))
	defer server.Close()

	m := NewOllamaModel(OllamaConfig{BaseURL: server.URL})
	assert.NoError(t, m.Ping(context.Background()))

	down := NewOllamaModel(OllamaConfig{BaseURL: "http://127.0.0.1:1"})
	assert.Error(t, down.Ping(context.Background()))
}
