package formatter

import (
	"bytes"
	"os"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the gofpdf family name of the optional UTF-8 font.
	pdfFontName = "DejaVuSans"

	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"
	pdfFontSourcePath  = "internal/pkg/formatter/ttf/DejaVuSans.ttf"

	pdfMargin     = 15.0
	pdfLineHeight = 6.0
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// resolveFontPath looks for DejaVuSans next to the binary, then in the source tree.
func resolveFontPath() string {
	for _, p := range []string{pdfFontRuntimePath, pdfFontSourcePath} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (mf *PDFFormatter) Format(report *Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	fontName := "Arial"
	// core fonts are cp1252; translate so symbols like "×" survive
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
		tr = func(s string) string { return s }
	}

	pdf.SetFont(fontName, "B", 18)
	pdf.CellFormat(0, 10, tr(report.Title), "", 1, "L", false, 0, "")
	if report.Subtitle != "" {
		pdf.SetFont(fontName, "", 10)
		pdf.CellFormat(0, pdfLineHeight, tr(report.Subtitle), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	for _, s := range report.Sections {
		pdf.SetFont(fontName, "B", 13)
		pdf.CellFormat(0, 8, tr(s.Heading), "", 1, "L", false, 0, "")

		pdf.SetFont(fontName, "", 10)
		for _, p := range s.Paragraphs {
			pdf.MultiCell(0, pdfLineHeight, tr(p), "", "L", false)
			pdf.Ln(2)
		}
		for _, b := range s.Bullets {
			pdf.MultiCell(0, pdfLineHeight, tr("- "+b), "", "L", false)
		}
		if s.Table != nil {
			writePDFTable(pdf, fontName, tr, s.Table)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePDFTable(pdf *gofpdf.Fpdf, fontName string, tr func(string) string, t *Table) {
	pageWidth, _ := pdf.GetPageSize()
	colWidth := (pageWidth - 2*pdfMargin) / float64(len(t.Header))

	pdf.SetFont(fontName, "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, h := range t.Header {
		pdf.CellFormat(colWidth, 7, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(fontName, "", 9)
	for _, row := range t.Rows {
		for _, cell := range row {
			pdf.CellFormat(colWidth, 6, tr(truncateCell(pdf, cell, colWidth)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// truncateCell shortens text that would overflow a fixed-width table cell.
func truncateCell(pdf *gofpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width-2 {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width-2 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

func (mf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (mf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
