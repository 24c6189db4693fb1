package corpus

import (
	"strings"

	"github.com/futig/cpf-explainer/internal/entity"
)

// Header prefixes recognised in raw documents.
const (
	titlePrefix  = "# Title:"
	topicPrefix  = "# Topic:"
	sourcePrefix = "# Source:"

	defaultTitle = "Untitled"
	defaultTopic = "general"
)

// ParseDocument extracts the title, topic and source headers from a raw document.
// Header lines are removed; every other line forms the body.
func ParseDocument(id, content string) entity.RawDocument {
	doc := entity.RawDocument{
		ID:    id,
		Title: defaultTitle,
		Topic: defaultTopic,
	}

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	body := make([]string, 0, len(lines))

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, titlePrefix):
			doc.Title = strings.TrimSpace(strings.TrimPrefix(line, titlePrefix))
		case strings.HasPrefix(line, topicPrefix):
			doc.Topic = strings.TrimSpace(strings.TrimPrefix(line, topicPrefix))
		case strings.HasPrefix(line, sourcePrefix):
			doc.Source = strings.TrimSpace(strings.TrimPrefix(line, sourcePrefix))
		default:
			body = append(body, line)
		}
	}

	doc.Body = strings.TrimSpace(strings.Join(body, "\n"))
	return doc
}
