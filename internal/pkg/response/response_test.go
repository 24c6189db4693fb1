package response

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", entity.ErrSimulationNotFound), http.StatusNotFound},
		{entity.ErrPresetNotFound, http.StatusNotFound},
		{entity.ErrInvalidRange, http.StatusBadRequest},
		{entity.ErrMissingField, http.StatusBadRequest},
		{entity.ErrInvalidFormat, http.StatusBadRequest},
		{fmt.Errorf("load: %w", entity.ErrCorpusUnavailable), http.StatusServiceUnavailable},
		{entity.ErrEmbeddingFailed, http.StatusBadGateway},
		{entity.ErrDimensionMismatch, http.StatusInternalServerError},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{fmt.Errorf("other"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		status, msg := StatusFor(tc.err)
		assert.Equal(t, tc.want, status, tc.err.Error())
		assert.NotEmpty(t, msg)
	}
}

func TestUsecaseError_WritesBody(t *testing.T) {
	rec := httptest.NewRecorder()
	UsecaseError(context.Background(), rec, entity.ErrCorpusUnavailable)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body entity.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Service Unavailable", body.Error)
	assert.Contains(t, body.Message, "corpus")
}

func TestFile(t *testing.T) {
	rec := httptest.NewRecorder()
	File(rec, &entity.ReportFile{Filename: "r.md", ContentType: "text/markdown", Content: []byte("# hi")})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="r.md"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "# hi", rec.Body.String())
}

func TestJSON_UnencodableValue(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]float64{"projected_savings": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body entity.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Internal Server Error", body.Error)
}

func TestJSON_WritesStatusAndBody(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]int{"n": 1})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())
}
