package embedding

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(na)*math.Sqrt(nb) + 1e-8)
}

func TestMockConnector_Deterministic(t *testing.T) {
	m := NewMockConnector(zap.NewNop())

	vectors, err := m.EmbedBatch(context.Background(), []string{"CPF withdrawal at 55", "cpf Withdrawal at 55!"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Len(t, vectors[0], MockDimensions)
	assert.Equal(t, vectors[0], vectors[1])
}

func TestMockConnector_SharedVocabularyIsCloser(t *testing.T) {
	m := NewMockConnector(zap.NewNop())
	ctx := context.Background()

	q, _ := m.Embed(ctx, "withdraw savings at 55")
	near, _ := m.Embed(ctx, "members can withdraw savings from age 55")
	far, _ := m.Embed(ctx, "housing grants for first flat buyers")

	assert.Greater(t, cosine(q, near), cosine(q, far))
}

func TestMockConnector_EmptyText(t *testing.T) {
	m := NewMockConnector(zap.NewNop())
	vec, err := m.Embed(context.Background(), "   ")
	require.NoError(t, err)
	assert.Len(t, vec, MockDimensions)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}
