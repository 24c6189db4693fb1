package formatter

import (
	"fmt"

	"github.com/futig/cpf-explainer/internal/entity"
)

// Report is a format-neutral document: a title followed by sections.
type Report struct {
	Title    string
	Subtitle string
	Sections []Section
}

// Section holds paragraphs and an optional table, rendered in that order.
type Section struct {
	Heading    string
	Paragraphs []string
	Bullets    []string
	Table      *Table
}

type Table struct {
	Header []string
	Rows   [][]string
}

type Formatter interface {
	Format(report *Report) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", entity.ErrInvalidFormat, format)
	}
}
