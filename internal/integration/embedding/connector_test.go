package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/futig/cpf-explainer/internal/config"
	"github.com/futig/cpf-explainer/internal/entity"
	pkgRetry "github.com/futig/cpf-explainer/internal/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(url string) config.EmbeddingConnectorConfig {
	return config.EmbeddingConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			Url:            url,
			Token:          "test-key",
			RequestTimeout: 5 * time.Second,
			ConnTimeout:    time.Second,
		},
		Endpoint: "/embeddings",
		Model:    "text-embedding-3-small",
		Retry: pkgRetry.RetryConfig{
			Attempts: 3,
			Delay:    time.Millisecond,
			MaxDelay: 5 * time.Millisecond,
		},
	}
}

func TestEmbedBatch_ReordersByIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req entity.EmbeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "text-embedding-3-small", req.Model)
		assert.Equal(t, []string{"a", "b"}, req.Input)

		_ = json.NewEncoder(w).Encode(entity.EmbeddingResponse{Data: []entity.EmbeddingData{
			{Index: 1, Embedding: []float64{0, 1}},
			{Index: 0, Embedding: []float64{1, 0}},
		}})
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zap.NewNop())
	vectors, err := c.EmbedBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0}, {0, 1}}, vectors)
}

func TestEmbedBatch_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(entity.EmbeddingResponse{Data: []entity.EmbeddingData{
			{Index: 0, Embedding: []float64{0.5, 0.5}},
		}})
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zap.NewNop())
	vec, err := c.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.5}, vec)
	assert.EqualValues(t, 3, calls.Load())
}

func TestEmbedBatch_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zap.NewNop())
	_, err := c.EmbedBatch(context.Background(), []string{"x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrEmbeddingFailed))
	assert.EqualValues(t, 1, calls.Load())
}

func TestEmbedBatch_CountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(entity.EmbeddingResponse{Data: []entity.EmbeddingData{
			{Index: 0, Embedding: []float64{1}},
		}})
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zap.NewNop())
	_, err := c.EmbedBatch(context.Background(), []string{"x", "y"})
	assert.ErrorIs(t, err, entity.ErrEmbeddingFailed)
}

func TestAlignEmbeddings_Rejects(t *testing.T) {
	_, err := alignEmbeddings([]entity.EmbeddingData{
		{Index: 0, Embedding: []float64{1, 2}},
		{Index: 1, Embedding: []float64{1}},
	}, 2)
	assert.ErrorIs(t, err, entity.ErrEmbeddingFailed)

	_, err = alignEmbeddings([]entity.EmbeddingData{
		{Index: 0, Embedding: []float64{1}},
		{Index: 0, Embedding: []float64{1}},
	}, 2)
	assert.ErrorIs(t, err, entity.ErrEmbeddingFailed)
}

func TestEmbedBatch_Empty(t *testing.T) {
	c := NewConnector(testConfig("http://127.0.0.1:1"), zap.NewNop())
	vectors, err := c.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
}
