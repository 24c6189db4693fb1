package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText(t *testing.T) {
	t.Run("packs paragraphs up to the budget", func(t *testing.T) {
		text := "aaaa\n\nbbbb\n\ncccc"
		// "aaaa\n\nbbbb" is 10 chars; adding "cccc" would need 16.
		chunks := ChunkText(text, 12)
		assert.Equal(t, []string{"aaaa\n\nbbbb", "cccc"}, chunks)
	})

	t.Run("budget counts the separator", func(t *testing.T) {
		chunks := ChunkText("aaaa\n\nbbbb", 9)
		assert.Equal(t, []string{"aaaa", "bbbb"}, chunks)

		chunks = ChunkText("aaaa\n\nbbbb", 10)
		assert.Equal(t, []string{"aaaa\n\nbbbb"}, chunks)
	})

	t.Run("oversized paragraph becomes its own chunk", func(t *testing.T) {
		long := strings.Repeat("x", 50)
		chunks := ChunkText("short\n\n"+long+"\n\ntail", 20)
		require.Len(t, chunks, 3)
		assert.Equal(t, "short", chunks[0])
		assert.Equal(t, long, chunks[1])
		assert.Equal(t, "tail", chunks[2])
	})

	t.Run("never splits mid paragraph", func(t *testing.T) {
		paras := []string{"alpha beta", "gamma delta epsilon", "zeta", "eta theta iota kappa"}
		chunks := ChunkText(strings.Join(paras, "\n\n"), 25)
		for _, chunk := range chunks {
			for _, part := range strings.Split(chunk, "\n\n") {
				assert.Contains(t, paras, part)
			}
		}
	})

	t.Run("chunks are trimmed and empty ones dropped", func(t *testing.T) {
		chunks := ChunkText("  \n\n   ", 800)
		assert.Empty(t, chunks)

		chunks = ChunkText("  padded  ", 800)
		assert.Equal(t, []string{"padded"}, chunks)
	})

	t.Run("empty text", func(t *testing.T) {
		assert.Empty(t, ChunkText("", 800))
	})

	t.Run("deterministic", func(t *testing.T) {
		text := strings.Repeat("paragraph of text\n\n", 40)
		assert.Equal(t, ChunkText(text, 100), ChunkText(text, 100))
	})

	t.Run("non-positive budget uses default", func(t *testing.T) {
		text := strings.Repeat("y", 700) + "\n\n" + strings.Repeat("z", 50)
		assert.Len(t, ChunkText(text, 0), 1)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		// Each "é" is two bytes but one character.
		text := strings.Repeat("é", 4) + "\n\n" + strings.Repeat("é", 4)
		assert.Len(t, ChunkText(text, 10), 1)
	})
}
