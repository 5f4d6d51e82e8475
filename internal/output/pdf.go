package output

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/go-pdf/fpdf"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// PDFFormatter renders the report sections as an A4 document.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

type pdfReport struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (p PDFFormatter) Format(out *domain.SimulationOutcome) ([]byte, error) {
	sections, err := Summarize(out)
	if err != nil {
		return nil, err
	}
	r := &pdfReport{pdf: fpdf.New("P", "mm", "A4", "")}
	// Core fonts are cp1252; the translator maps € and accented letters.
	r.tr = r.pdf.UnicodeTranslatorFromDescriptor("")
	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.SetTitle(Title(out), true)
	r.pdf.SetFooterFunc(func() {
		r.pdf.SetY(-15)
		r.pdf.SetFont("Arial", "I", 8)
		r.pdf.SetTextColor(120, 120, 120)
		r.pdf.CellFormat(contentWidth, 10, fmt.Sprintf("Page %d", r.pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	r.pdf.AddPage()
	r.drawTitle(out)
	for _, s := range sections {
		r.drawSectionHeader(s.Title)
		r.drawRows(s.Rows)
		if s.Table != nil {
			r.drawTable(s.Table)
		}
		r.pdf.Ln(4)
	}
	r.drawAssumptions(Assumptions(out))

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) drawTitle(out *domain.SimulationOutcome) {
	r.pdf.SetFont("Arial", "B", 20)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.MultiCell(contentWidth, 10, r.tr(Title(out)), "", "L", false)
	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "L", false, 0, "")
	r.pdf.Ln(4)

	r.pdf.SetFillColor(240, 248, 255)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.SetFont("Arial", "B", 11)
	for _, line := range Headline(out) {
		r.pdf.CellFormat(contentWidth, 7, r.tr(line), "", 1, "L", true, 0, "")
	}
	r.pdf.Ln(6)
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 14)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 9, r.tr(title), "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(3)
}

func (r *pdfReport) drawRows(rows []Row) {
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	for _, row := range rows {
		r.pdf.CellFormat(contentWidth*0.6, 6, r.tr(row.Label), "", 0, "L", false, 0, "")
		r.pdf.CellFormat(contentWidth*0.4, 6, r.tr(row.Value), "", 1, "R", false, 0, "")
	}
	if len(rows) > 0 {
		r.pdf.Ln(2)
	}
}

func (r *pdfReport) drawTable(t *Table) {
	if len(t.Headers) == 0 {
		return
	}
	width := contentWidth / float64(len(t.Headers))
	fontSize := 9.0
	if len(t.Headers) > 5 {
		fontSize = 7
	}
	align := func(i int) string {
		if i == 0 {
			return "L"
		}
		return "R"
	}
	header := func() {
		r.pdf.SetFillColor(0, 51, 102)
		r.pdf.SetTextColor(255, 255, 255)
		r.pdf.SetFont("Arial", "B", fontSize)
		for i, h := range t.Headers {
			r.pdf.CellFormat(width, 6, r.tr(h), "1", 0, align(i), true, 0, "")
		}
		r.pdf.Ln(-1)
	}
	header()
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.SetFont("Arial", "", fontSize)
	for n, row := range t.Rows {
		if r.pdf.GetY() > 270 {
			r.pdf.AddPage()
			header()
			r.pdf.SetFillColor(250, 250, 250)
			r.pdf.SetTextColor(50, 50, 50)
			r.pdf.SetFont("Arial", "", fontSize)
		}
		for i := range t.Headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			r.pdf.CellFormat(width, 5, r.tr(cell), "1", 0, align(i), n%2 == 1, 0, "")
		}
		r.pdf.Ln(-1)
	}
}

func (r *pdfReport) drawAssumptions(notes []string) {
	r.drawSectionHeader("Assumptions")
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(80, 80, 80)
	for _, n := range notes {
		r.pdf.MultiCell(contentWidth, 5, r.tr("• "+n), "", "L", false)
	}
}
