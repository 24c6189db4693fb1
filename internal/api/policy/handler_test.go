package policy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/futig/cpf-explainer/internal/config"
	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/futig/cpf-explainer/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExplainer struct {
	explanation *entity.Explanation
	err         error
	question    string
	profile     entity.UserProfile
}

func (f *fakeExplainer) AnswerPolicyQuestion(_ context.Context, q string, p entity.UserProfile) (*entity.Explanation, error) {
	f.question, f.profile = q, p
	return f.explanation, f.err
}

type fakeRetrieval struct {
	hits  []entity.SearchHit
	err   error
	k     int
	topic string
}

func (f *fakeRetrieval) Search(_ context.Context, _ string, k int, topic string) ([]entity.SearchHit, error) {
	f.k, f.topic = k, topic
	return f.hits, f.err
}

func newRouter(exp *fakeExplainer, ret *fakeRetrieval) http.Handler {
	v := validator.NewValidator(config.RetrievalConfig{TopK: 5, MaxK: 20, MaxQuestionLength: 500})
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(exp, ret, v))
	return r
}

func do(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAskQuestion_OK(t *testing.T) {
	exp := &fakeExplainer{explanation: &entity.Explanation{
		Text:     "Here is how it works.",
		Grounded: true,
		Sources:  []entity.SourceRef{{ChunkID: "frs_chunk_0", Title: "FRS"}},
	}}
	h := newRouter(exp, &fakeRetrieval{})

	rec := do(t, h, "/policy/questions", `{"question":" What is FRS? ","profile":{"age_band":"35-44"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp entity.PolicyQuestionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Here is how it works.", resp.Answer)
	assert.True(t, resp.Grounded)
	assert.False(t, resp.Fallback)
	assert.Len(t, resp.Sources, 1)

	assert.Equal(t, "What is FRS?", exp.question)
	assert.Equal(t, "35-44", exp.profile.AgeBand)
}

func TestAskQuestion_Fallback(t *testing.T) {
	exp := &fakeExplainer{explanation: &entity.Explanation{
		Text:    "Sorry",
		Failure: &entity.GenerationFailure{Reason: "timeout"},
	}}
	rec := do(t, newRouter(exp, &fakeRetrieval{}), "/policy/questions", `{"question":"q"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp entity.PolicyQuestionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Fallback)
	assert.Equal(t, "Sorry", resp.Answer)
	assert.NotNil(t, resp.Sources)
}

func TestAskQuestion_EmptyQuestion(t *testing.T) {
	rec := do(t, newRouter(&fakeExplainer{}, &fakeRetrieval{}), "/policy/questions", `{"question":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAskQuestion_BadJSON(t *testing.T) {
	rec := do(t, newRouter(&fakeExplainer{}, &fakeRetrieval{}), "/policy/questions", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAskQuestion_CorpusUnavailable(t *testing.T) {
	exp := &fakeExplainer{err: entity.ErrCorpusUnavailable}
	rec := do(t, newRouter(exp, &fakeRetrieval{}), "/policy/questions", `{"question":"q"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSearch(t *testing.T) {
	ret := &fakeRetrieval{hits: []entity.SearchHit{
		{Record: entity.CorpusRecord{ChunkID: "a_chunk_0", DocID: "a", Topic: "withdrawals", Text: "t"}, Similarity: 0.9},
	}}
	rec := do(t, newRouter(&fakeExplainer{}, ret), "/retrieval/search", `{"query":"withdraw","topic":"withdrawals"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp entity.SearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "a_chunk_0", resp.Results[0].ChunkID)
	assert.InDelta(t, 0.9, resp.Results[0].Similarity, 1e-9)
	assert.NotContains(t, rec.Body.String(), "embedding")

	assert.Equal(t, 5, ret.k)
	assert.Equal(t, "withdrawals", ret.topic)
}

func TestSearch_EmptyResultIsArray(t *testing.T) {
	rec := do(t, newRouter(&fakeExplainer{}, &fakeRetrieval{}), "/retrieval/search", `{"query":"x","k":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"results":[]}`, rec.Body.String())
}

func TestSearch_InvalidK(t *testing.T) {
	rec := do(t, newRouter(&fakeExplainer{}, &fakeRetrieval{}), "/retrieval/search", `{"query":"x","k":100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
