package entity

// RawDocument is a curated source document before chunking.
type RawDocument struct {
	ID     string
	Title  string
	Topic  string
	Source string
	Body   string
}

// CorpusRecord is one retrievable chunk persisted in the corpus file.
type CorpusRecord struct {
	DocID     string    `json:"doc_id"`
	ChunkID   string    `json:"chunk_id"`
	Title     string    `json:"title"`
	Topic     string    `json:"topic"`
	Source    string    `json:"source"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
}

// SearchHit is a corpus record ranked against a query.
type SearchHit struct {
	Record     CorpusRecord
	Similarity float64
}

// BuildStats summarizes a corpus build run.
type BuildStats struct {
	Documents  int
	Chunks     int
	Dimensions int
	OutputPath string
}
