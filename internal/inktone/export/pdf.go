package export

import (
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"

	"github.com/inktone/inktone.go/internal/inktone/editor/edtypes"
)

type pdfWriter struct {
	pdf *fpdf.Fpdf

	defaultMargins margins
}

type margins struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func (m *margins) getMargins(pdf fpdf.Pdf) {
	m.Left, m.Top, m.Right, m.Bottom = pdf.GetMargins()
}

// DocumentToFPDF пишет печатную версию документа в out.
// Используются встроенные шрифты PDF, поэтому символы вне cp1252
// отбрасываются.
func DocumentToFPDF(doc *edtypes.Document, out io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "") // 210*297 mm

	w := pdfWriter{pdf: pdf}
	w.defaultMargins.getMargins(pdf)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)

	for _, rawElement := range doc.Elements {
		switch el := rawElement.(type) {
		case edtypes.Paragraph:
			w.writeParagraph(el)
		case *edtypes.Paragraph:
			w.writeParagraph(*el)
		case *edtypes.Heading:
			w.writeHeading(el)
		case *edtypes.Quote:
			w.writeQuote(el)
		case *edtypes.Code:
			w.writeCode(el)
		case *edtypes.List:
			w.writeList(el)
		case *edtypes.Image:
			w.writeImagePlaceholder(el)
		case *edtypes.HorizontalRule:
			w.writeRule()
		}
		w.resetMargins()
	}

	return pdf.Output(out)
}

func (w *pdfWriter) writeParagraph(p edtypes.Paragraph) {
	for _, t := range p.Content {
		switch tt := t.(type) {
		case edtypes.Text:
			w.writeText(tt)
		case *edtypes.Text:
			w.writeText(*tt)
		case *edtypes.HardBreak:
			w.pdf.Ln(-1)
		}
	}
	w.pdf.Ln(-1)
}

func (w *pdfWriter) writeHeading(h *edtypes.Heading) {
	sizes := []float64{22, 19, 17, 15, 13, 12}
	level := h.Level
	if level < 1 || level > 6 {
		level = 1
	}

	w.pdf.Ln(2)
	w.pdf.SetFont("Helvetica", "B", sizes[level-1])
	for _, t := range h.Content {
		if tt, ok := t.(edtypes.Text); ok {
			w.write(tt.Content)
		}
	}
	w.pdf.Ln(-1)
	w.pdf.SetFont("Helvetica", "", 12)
}

func (w *pdfWriter) writeQuote(q *edtypes.Quote) {
	w.pdf.Ln(2)
	y1 := w.pdf.GetY()
	w.pdf.SetLeftMargin(13)
	for _, p := range q.Content {
		w.writeParagraph(p)
	}
	w.pdf.SetLeftMargin(w.defaultMargins.Left)

	w.pdf.SetLineWidth(0.5)
	w.pdf.SetDrawColor(74, 71, 82)
	w.pdf.Line(11, y1, 11, w.pdf.GetY())
	w.pdf.Ln(2)
}

func (w *pdfWriter) writeCode(c *edtypes.Code) {
	w.pdf.Ln(2)
	w.pdf.SetFont("Courier", "", 11)
	w.pdf.SetFillColor(240, 240, 240)
	w.pdf.MultiCell(0, 5, cleanUnsupportedSymbols(c.Content), "", "L", true)
	w.pdf.SetFont("Helvetica", "", 12)
	w.pdf.Ln(2)
}

func (w *pdfWriter) writeList(l *edtypes.List) {
	w.pdf.SetLeftMargin(13)
	for i, e := range l.Elements {
		switch {
		case l.TaskList && e.Checked:
			w.write("[x]")
		case l.TaskList:
			w.write("[ ]")
		case l.Numbered:
			w.write(fmt.Sprintf("%d.", i+1))
		default:
			w.write("-")
		}

		for _, p := range e.Content {
			w.pdf.SetX(19)
			w.writeParagraph(p)
		}
	}
	w.pdf.SetLeftMargin(w.defaultMargins.Left)
}

// writeImagePlaceholder пишет ссылку на изображение: загрузка
// внешних ресурсов при печати не выполняется.
func (w *pdfWriter) writeImagePlaceholder(img *edtypes.Image) {
	if img.Src == nil {
		return
	}
	label := img.Caption
	if label == "" {
		label = img.Alt
	}
	if label == "" {
		label = img.Src.String()
	}
	w.pdf.SetFont("Helvetica", "I", 11)
	w.write(label, img.Src.String())
	w.pdf.Ln(-1)
	w.pdf.SetFont("Helvetica", "", 12)
}

func (w *pdfWriter) writeRule() {
	w.pdf.Ln(3)
	left, _, right, _ := w.pdf.GetMargins()
	pageW, _ := w.pdf.GetPageSize()
	w.pdf.SetDrawColor(180, 180, 180)
	w.pdf.Line(left, w.pdf.GetY(), pageW-right, w.pdf.GetY())
	w.pdf.Ln(3)
}

func (w *pdfWriter) writeText(t edtypes.Text) {
	styleStr := ""
	if t.Strong {
		styleStr += "B"
	}
	if t.Italic {
		styleStr += "I"
	}
	if t.Strikethrough {
		styleStr += "S"
	}
	if t.Underlined {
		styleStr += "U"
	}

	font := "Helvetica"
	if t.Code {
		font = "Courier"
	}
	w.pdf.SetFont(font, styleStr, 12)

	if t.Color != nil {
		w.pdf.SetTextColor(int(t.Color.R), int(t.Color.G), int(t.Color.B))
	} else {
		w.pdf.SetTextColor(0, 0, 0)
	}

	if t.BgColor != nil {
		w.pdf.SetFillColor(int(t.BgColor.R), int(t.BgColor.G), int(t.BgColor.B))
		_, s := w.pdf.GetFontSize()
		x := w.pdf.GetX()
		w.pdf.SetX(x + w.pdf.GetCellMargin())
		w.pdf.CellFormat(w.pdf.GetStringWidth(cleanUnsupportedSymbols(t.Content)), s+0.1, "", "", 0, "L", true, 0, "")
		w.pdf.SetX(x)
	}

	if t.URL != nil {
		w.write(t.Content, t.URL.String())
	} else {
		w.write(t.Content)
	}
}

func (w *pdfWriter) write(text string, link ...string) {
	_, s := w.pdf.GetFontSize()
	s += 0.1
	text = cleanUnsupportedSymbols(text)
	if len(link) > 0 {
		w.pdf.WriteLinkString(s, text, link[0])
		return
	}
	w.pdf.WriteLinkString(s, text, "")
}

func cleanUnsupportedSymbols(text string) string {
	result := ""
	for _, s := range text {
		if s < 256 {
			result += string(s)
		}
	}
	return result
}

func (w *pdfWriter) resetMargins() {
	w.pdf.SetMargins(w.defaultMargins.Left, w.defaultMargins.Top, w.defaultMargins.Right)
}
