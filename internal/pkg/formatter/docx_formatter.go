package formatter

import (
	"bytes"

	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (mf *DOCXFormatter) Format(report *Report) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	title := doc.AddParagraph()
	title.SetStyle("Title")
	title.AddRun().AddText(report.Title)

	if report.Subtitle != "" {
		sub := doc.AddParagraph()
		sub.SetStyle("Subtitle")
		sub.AddRun().AddText(report.Subtitle)
	}

	for _, s := range report.Sections {
		heading := doc.AddParagraph()
		heading.SetStyle("Heading1")
		heading.AddRun().AddText(s.Heading)

		for _, p := range s.Paragraphs {
			doc.AddParagraph().AddRun().AddText(p)
		}
		for _, b := range s.Bullets {
			doc.AddParagraph().AddRun().AddText("• " + b)
		}
		if s.Table != nil {
			addDOCXTable(doc, s.Table)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addDOCXTable(doc *document.Document, t *Table) {
	table := doc.AddTable()
	table.Properties().SetWidthPercent(100)
	table.Properties().Borders().SetAll(wml.ST_BorderSingle, color.Auto, 1*measurement.Point)

	header := table.AddRow()
	for _, h := range t.Header {
		run := header.AddCell().AddParagraph().AddRun()
		run.Properties().SetBold(true)
		run.AddText(h)
	}

	for _, r := range t.Rows {
		row := table.AddRow()
		for _, c := range r {
			row.AddCell().AddParagraph().AddRun().AddText(c)
		}
	}

	doc.AddParagraph()
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
