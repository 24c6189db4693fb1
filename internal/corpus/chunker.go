package corpus

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxChars is the default character budget of a chunk.
const DefaultMaxChars = 800

const paragraphSeparator = "\n\n"

// ChunkText packs paragraphs greedily into chunks of at most maxChars characters.
// Chunk boundaries always fall between paragraphs; a paragraph longer than the
// budget becomes its own chunk. Chunks are trimmed and empty chunks are dropped.
func ChunkText(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	var (
		chunks  []string
		current string
	)

	flush := func() {
		if chunk := strings.TrimSpace(current); chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	for _, para := range strings.Split(text, paragraphSeparator) {
		if utf8.RuneCountInString(current)+utf8.RuneCountInString(para)+len(paragraphSeparator) <= maxChars {
			if current != "" {
				current += paragraphSeparator
			}
			current += para
			continue
		}

		if current != "" {
			flush()
		}
		current = para
	}

	if current != "" {
		flush()
	}

	return chunks
}
