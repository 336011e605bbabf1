package editor

import (
	"encoding/hex"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/inktone/inktone.go/internal/inktone/editor/edtypes"
)

// WriteHTML сериализует Document в HTML разметку схемы Inktone.
// Формат совместим с ParseDocument: WriteHTML(ParseDocument(x)) стабилен.
func WriteHTML(doc *edtypes.Document) string {
	var sb strings.Builder
	for _, elem := range doc.Elements {
		writeElement(&sb, elem)
	}
	return sb.String()
}

func writeElement(sb *strings.Builder, elem any) {
	switch e := elem.(type) {
	case *edtypes.Paragraph:
		writeParagraph(sb, e)
	case edtypes.Paragraph:
		writeParagraph(sb, &e)
	case *edtypes.Heading:
		level := e.Level
		if level < 1 || level > 6 {
			level = 1
		}
		fmt.Fprintf(sb, "<h%d>", level)
		writeInline(sb, e.Content)
		fmt.Fprintf(sb, "</h%d>", level)
	case *edtypes.Quote:
		sb.WriteString("<blockquote>")
		for _, p := range e.Content {
			writeParagraph(sb, &p)
		}
		sb.WriteString("</blockquote>")
	case *edtypes.Code:
		if e.Language != "" {
			fmt.Fprintf(sb, "<pre><code class=\"language-%s\">", html.EscapeString(e.Language))
		} else {
			sb.WriteString("<pre><code>")
		}
		sb.WriteString(html.EscapeString(e.Content))
		sb.WriteString("</code></pre>")
	case *edtypes.List:
		writeList(sb, e)
	case *edtypes.Image:
		writeImage(sb, e)
	case *edtypes.HorizontalRule:
		sb.WriteString("<hr>")
	default:
		slog.Warn("Unknown element type for HTML serialization", "type", fmt.Sprintf("%T", e))
	}
}

func writeParagraph(sb *strings.Builder, p *edtypes.Paragraph) {
	sb.WriteString("<p>")
	writeInline(sb, p.Content)
	sb.WriteString("</p>")
}

func writeList(sb *strings.Builder, l *edtypes.List) {
	tag := "ul"
	if l.Numbered {
		tag = "ol"
	}

	if l.TaskList {
		sb.WriteString(`<ul data-type="taskList">`)
	} else {
		fmt.Fprintf(sb, "<%s>", tag)
	}

	for _, item := range l.Elements {
		if l.TaskList {
			fmt.Fprintf(sb, `<li data-checked="%t">`, item.Checked)
		} else {
			sb.WriteString("<li>")
		}
		for _, p := range item.Content {
			writeParagraph(sb, &p)
		}
		sb.WriteString("</li>")
	}

	if l.TaskList {
		sb.WriteString("</ul>")
	} else {
		fmt.Fprintf(sb, "</%s>", tag)
	}
}

func writeImage(sb *strings.Builder, img *edtypes.Image) {
	src := ""
	if img.Src != nil {
		src = img.Src.String()
	}

	var imgTag strings.Builder
	fmt.Fprintf(&imgTag, `<img src="%s"`, html.EscapeString(src))
	if img.Alt != "" {
		fmt.Fprintf(&imgTag, ` alt="%s"`, html.EscapeString(img.Alt))
	}
	if img.Width > 0 {
		fmt.Fprintf(&imgTag, ` style="width: %dpx"`, img.Width)
	}
	imgTag.WriteString(">")

	if img.Caption != "" {
		sb.WriteString("<figure>")
		sb.WriteString(imgTag.String())
		fmt.Fprintf(sb, "<figcaption>%s</figcaption>", html.EscapeString(img.Caption))
		sb.WriteString("</figure>")
	} else {
		sb.WriteString(imgTag.String())
	}
}

func writeInline(sb *strings.Builder, content []any) {
	for _, c := range content {
		switch t := c.(type) {
		case edtypes.Text:
			writeText(sb, &t)
		case *edtypes.HardBreak:
			sb.WriteString("<br>")
		case *edtypes.Image:
			writeImage(sb, t)
		default:
			slog.Warn("Unknown inline content type for HTML serialization", "type", fmt.Sprintf("%T", t))
		}
	}
}

func writeText(sb *strings.Builder, t *edtypes.Text) {
	var open, closing []string

	if t.URL != nil {
		open = append(open, fmt.Sprintf(`<a href="%s">`, html.EscapeString(t.URL.String())))
		closing = append(closing, "</a>")
	}
	if t.Strong {
		open = append(open, "<strong>")
		closing = append(closing, "</strong>")
	}
	if t.Italic {
		open = append(open, "<em>")
		closing = append(closing, "</em>")
	}
	if t.Underlined {
		open = append(open, "<u>")
		closing = append(closing, "</u>")
	}
	if t.Strikethrough {
		open = append(open, "<s>")
		closing = append(closing, "</s>")
	}
	if t.Code {
		open = append(open, "<code>")
		closing = append(closing, "</code>")
	}
	if style := textStyle(t); style != "" {
		open = append(open, fmt.Sprintf(`<span style="%s">`, style))
		closing = append(closing, "</span>")
	}

	for _, tag := range open {
		sb.WriteString(tag)
	}
	sb.WriteString(html.EscapeString(t.Content))
	for i := len(closing) - 1; i >= 0; i-- {
		sb.WriteString(closing[i])
	}
}

func textStyle(t *edtypes.Text) string {
	var styles []string
	if t.Color != nil {
		styles = append(styles, "color: "+colorToHex(*t.Color))
	}
	if t.BgColor != nil {
		styles = append(styles, "background-color: "+colorToHex(*t.BgColor))
	}
	return strings.Join(styles, "; ")
}

func colorToHex(c edtypes.Color) string {
	return "#" + hex.EncodeToString([]byte{c.R, c.G, c.B, c.A})
}
