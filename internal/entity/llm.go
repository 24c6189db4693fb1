package entity

// ChatMessage is a single message of a chat completion prompt.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerationRequest is a structured prompt for the text generation service.
type GenerationRequest struct {
	System  string
	Context string
	User    string
}

type LLMChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type LLMChatCompletionChoice struct {
	Index   int         `json:"index"`
	Message ChatMessage `json:"message"`
}

type LLMChatCompletionResponse struct {
	Choices []LLMChatCompletionChoice `json:"choices"`
}

type EmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type EmbeddingData struct {
	Index     int       `json:"index"`
	Embedding []float64 `json:"embedding"`
}

type EmbeddingResponse struct {
	Data  []EmbeddingData `json:"data"`
	Model string          `json:"model"`
}

// GenerationFailure describes why an explanation fell back to the canned message.
type GenerationFailure struct {
	Reason string `json:"reason"`
}

// Explanation is the outcome of an orchestrated retrieval + generation call.
// Failure is set when the generation service could not produce an answer;
// Text then holds the user-facing fallback message.
type Explanation struct {
	Text     string             `json:"text"`
	Grounded bool               `json:"grounded"`
	Sources  []SourceRef        `json:"sources"`
	Failure  *GenerationFailure `json:"failure,omitempty"`
}

// OK reports whether the explanation came from the generation service.
func (e *Explanation) OK() bool {
	return e.Failure == nil
}

// SourceRef identifies a corpus chunk used to ground an explanation.
type SourceRef struct {
	ChunkID string `json:"chunk_id"`
	Title   string `json:"title"`
	Source  string `json:"source"`
	Topic   string `json:"topic"`
}
