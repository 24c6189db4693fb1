// Package corpus builds the retrieval corpus from curated raw documents.
package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const rawDocumentPattern = "*.md"

// Embedder embeds a batch of texts, returning one vector per input in input order.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Builder turns raw documents into the persisted corpus file.
type Builder struct {
	embedder Embedder
	maxChars int
}

// NewBuilder creates a corpus builder. A non-positive maxChars uses DefaultMaxChars.
func NewBuilder(embedder Embedder, maxChars int) *Builder {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Builder{
		embedder: embedder,
		maxChars: maxChars,
	}
}

// Build reads every raw document in rawDir, chunks and embeds it, and overwrites outPath.
// Each document is embedded with a single batch call.
func (b *Builder) Build(ctx context.Context, rawDir, outPath string) (*entity.BuildStats, error) {
	docs, err := LoadRawDocuments(rawDir)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "loaded raw documents",
		zap.String("raw_dir", rawDir),
		zap.Int("document_count", len(docs)),
	)

	var (
		records    []entity.CorpusRecord
		dimensions int
	)

	for _, doc := range docs {
		docRecords, err := b.BuildDocument(ctx, doc)
		if err != nil {
			return nil, err
		}

		for _, rec := range docRecords {
			if dimensions == 0 {
				dimensions = len(rec.Embedding)
			}
			if len(rec.Embedding) != dimensions {
				return nil, fmt.Errorf("%w: document %s has %d dimensions, expected %d",
					entity.ErrDimensionMismatch, doc.ID, len(rec.Embedding), dimensions)
			}
		}

		records = append(records, docRecords...)
	}

	if err := WriteRecords(outPath, records); err != nil {
		return nil, fmt.Errorf("write corpus: %w", err)
	}

	ctxzap.Info(ctx, "corpus written",
		zap.String("path", outPath),
		zap.Int("chunk_count", len(records)),
		zap.Int("dimensions", dimensions),
	)

	return &entity.BuildStats{
		Documents:  len(docs),
		Chunks:     len(records),
		Dimensions: dimensions,
		OutputPath: outPath,
	}, nil
}

// BuildDocument chunks and embeds a single document.
func (b *Builder) BuildDocument(ctx context.Context, doc entity.RawDocument) ([]entity.CorpusRecord, error) {
	chunks := ChunkText(doc.Body, b.maxChars)
	if len(chunks) == 0 {
		ctxzap.Warn(ctx, "document has no content, skipping", zap.String("doc_id", doc.ID))
		return nil, nil
	}

	embeddings, err := b.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embed document %s: %w", doc.ID, err)
	}
	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("%w: document %s: got %d embeddings for %d chunks",
			entity.ErrEmbeddingFailed, doc.ID, len(embeddings), len(chunks))
	}

	records := make([]entity.CorpusRecord, 0, len(chunks))
	for i, chunk := range chunks {
		records = append(records, entity.CorpusRecord{
			DocID:     doc.ID,
			ChunkID:   ChunkID(doc.ID, i),
			Title:     doc.Title,
			Topic:     doc.Topic,
			Source:    doc.Source,
			Text:      chunk,
			Embedding: embeddings[i],
		})
	}

	ctxzap.Debug(ctx, "document embedded",
		zap.String("doc_id", doc.ID),
		zap.Int("chunk_count", len(records)),
	)

	return records, nil
}

// ChunkID derives the corpus-wide chunk identifier.
func ChunkID(docID string, index int) string {
	return fmt.Sprintf("%s_chunk_%d", docID, index)
}

// LoadRawDocuments parses every markdown document in dir, ordered by file name.
func LoadRawDocuments(dir string) ([]entity.RawDocument, error) {
	paths, err := filepath.Glob(filepath.Join(dir, rawDocumentPattern))
	if err != nil {
		return nil, fmt.Errorf("list raw documents: %w", err)
	}
	sort.Strings(paths)

	docs := make([]entity.RawDocument, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		docs = append(docs, ParseDocument(id, string(content)))
	}

	return docs, nil
}
