package formatter

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", report.Title)
	if report.Subtitle != "" {
		fmt.Fprintf(&buf, "_%s_\n\n", report.Subtitle)
	}

	for _, s := range report.Sections {
		fmt.Fprintf(&buf, "## %s\n\n", s.Heading)
		for _, p := range s.Paragraphs {
			fmt.Fprintf(&buf, "%s\n\n", p)
		}
		if len(s.Bullets) > 0 {
			for _, b := range s.Bullets {
				fmt.Fprintf(&buf, "- %s\n", b)
			}
			buf.WriteString("\n")
		}
		if s.Table != nil {
			writeMarkdownTable(&buf, s.Table)
		}
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func writeMarkdownTable(buf *bytes.Buffer, t *Table) {
	row := func(cells []string) {
		escaped := make([]string, len(cells))
		for i, c := range cells {
			escaped[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		fmt.Fprintf(buf, "| %s |\n", strings.Join(escaped, " | "))
	}

	row(t.Header)
	sep := make([]string, len(t.Header))
	for i := range sep {
		sep[i] = "---"
	}
	row(sep)
	for _, r := range t.Rows {
		row(r)
	}
	buf.WriteString("\n")
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
