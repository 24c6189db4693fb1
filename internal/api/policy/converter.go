package policy

import "github.com/futig/cpf-explainer/internal/entity"

func toPolicyQuestionResponse(e *entity.Explanation) *entity.PolicyQuestionResponse {
	sources := e.Sources
	if sources == nil {
		sources = []entity.SourceRef{}
	}

	return &entity.PolicyQuestionResponse{
		Answer:   e.Text,
		Grounded: e.Grounded,
		Fallback: !e.OK(),
		Sources:  sources,
	}
}

func toSearchResponse(hits []entity.SearchHit) *entity.SearchResponse {
	items := make([]entity.SearchResultItem, len(hits))
	for i, h := range hits {
		items[i] = entity.SearchResultItem{
			ChunkID:    h.Record.ChunkID,
			DocID:      h.Record.DocID,
			Title:      h.Record.Title,
			Topic:      h.Record.Topic,
			Source:     h.Record.Source,
			Text:       h.Record.Text,
			Similarity: h.Similarity,
		}
	}
	return &entity.SearchResponse{Results: items}
}
