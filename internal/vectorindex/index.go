// Package vectorindex holds the corpus in memory and ranks it by cosine similarity.
package vectorindex

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/futig/cpf-explainer/internal/corpus"
	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Index is a read-only, full-scan vector index over the persisted corpus.
// Load runs at most once successfully; concurrent callers wait for it.
type Index struct {
	path string

	mu         sync.RWMutex
	loaded     bool
	records    []entity.CorpusRecord
	matrix     [][]float32
	dimensions int
}

// New creates an index backed by the corpus file at path. Nothing is read until Load.
func New(path string) *Index {
	return &Index{path: path}
}

// FromRecords builds an already loaded index from in-memory records.
func FromRecords(records []entity.CorpusRecord) (*Index, error) {
	idx := &Index{}
	if err := idx.populate(records); err != nil {
		return nil, err
	}
	return idx, nil
}

// Load reads the corpus file and stacks its embeddings. It is a no-op once loaded.
// A missing file returns entity.ErrCorpusUnavailable and leaves the index unloaded
// so that a later call can succeed after the corpus is built.
func (i *Index) Load(ctx context.Context) error {
	i.mu.RLock()
	loaded := i.loaded
	i.mu.RUnlock()
	if loaded {
		return nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.loaded {
		return nil
	}

	records, err := corpus.ReadRecords(i.path)
	if err != nil {
		return err
	}
	if err := i.populate(records); err != nil {
		return err
	}

	ctxzap.Info(ctx, "vector index loaded",
		zap.String("path", i.path),
		zap.Int("record_count", len(i.records)),
		zap.Int("dimensions", i.dimensions),
	)
	return nil
}

// populate must be called with the write lock held or before the index is shared.
func (i *Index) populate(records []entity.CorpusRecord) error {
	matrix := make([][]float32, len(records))
	dimensions := 0

	for n, rec := range records {
		if n == 0 {
			dimensions = len(rec.Embedding)
		}
		if len(rec.Embedding) != dimensions {
			return fmt.Errorf("%w: record %s has %d dimensions, expected %d",
				entity.ErrCorpusMalformed, rec.ChunkID, len(rec.Embedding), dimensions)
		}
		matrix[n] = rec.Embedding
	}

	i.records = records
	i.matrix = matrix
	i.dimensions = dimensions
	i.loaded = true
	return nil
}

// Loaded reports whether the corpus has been loaded.
func (i *Index) Loaded() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.loaded
}

// Len returns the number of records in the index.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.records)
}

// Dimensions returns the embedding length shared by all records.
func (i *Index) Dimensions() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.dimensions
}

// Search ranks every record by cosine similarity to query, highest first, with ties
// kept in file order. Records whose topic differs from topic are skipped when topic
// is non-empty. At most k hits are returned; fewer is not an error.
func (i *Index) Search(ctx context.Context, query []float32, k int, topic string) ([]entity.SearchHit, error) {
	if err := i.Load(ctx); err != nil {
		return nil, err
	}
	if k <= 0 {
		return []entity.SearchHit{}, nil
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	if len(i.records) > 0 && len(query) != i.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, corpus has %d",
			entity.ErrDimensionMismatch, len(query), i.dimensions)
	}

	similarities := make([]float64, len(i.matrix))
	for n, row := range i.matrix {
		similarities[n] = CosineSimilarity(row, query)
	}

	order := make([]int, len(similarities))
	for n := range order {
		order[n] = n
	}
	sort.SliceStable(order, func(a, b int) bool {
		return similarities[order[a]] > similarities[order[b]]
	})

	hits := make([]entity.SearchHit, 0, min(k, len(order)))
	for _, n := range order {
		rec := i.records[n]
		if topic != "" && rec.Topic != topic {
			continue
		}
		hits = append(hits, entity.SearchHit{Record: rec, Similarity: similarities[n]})
		if len(hits) >= k {
			break
		}
	}

	return hits, nil
}
