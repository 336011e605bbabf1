// Пакет export содержит конвертеры документа сессии в плоские форматы.
//
// Основные возможности:
//   - Экспорт в HTML, включая минифицированный вариант.
//   - Экспорт в Markdown.
//   - Экспорт в plain text без разметки.
//   - Экспорт структуры документа в TipTap JSON с отступами.
//   - Генерация печатной версии документа в PDF.
//
// Все конвертеры синхронны и не имеют состояния: на вход подается
// текущий документ сессии, на выход - файл с именем, типом и телом.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	md "github.com/nao1215/markdown"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"

	"github.com/inktone/inktone.go/internal/inktone/editor"
	"github.com/inktone/inktone.go/internal/inktone/editor/edtypes"
	"github.com/inktone/inktone.go/internal/inktone/engine"
	policy "github.com/inktone/inktone.go/internal/inktone/redactor-policy"
)

// File - результат экспорта.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// filename строит имя файла из фиксированной базы и метки времени.
func filename(ext string, now time.Time) string {
	return fmt.Sprintf("document-%s.%s", now.UTC().Format(time.RFC3339), ext)
}

// HTML экспортирует документ сессии в HTML.
func HTML(s *engine.Session, now time.Time) File {
	return File{
		Name:        filename("html", now),
		ContentType: "text/html",
		Data:        []byte(s.HTML()),
	}
}

// MinifiedHTML экспортирует документ в минифицированный HTML.
func MinifiedHTML(s *engine.Session, now time.Time) (File, error) {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)

	var buf bytes.Buffer
	if err := m.Minify("text/html", &buf, strings.NewReader(s.HTML())); err != nil {
		return File{}, err
	}

	return File{
		Name:        filename("html", now),
		ContentType: "text/html",
		Data:        buf.Bytes(),
	}, nil
}

// Markdown экспортирует документ сессии в Markdown.
func Markdown(s *engine.Session, now time.Time) (File, error) {
	var buf bytes.Buffer
	if err := writeMarkdown(&buf, s.Document()); err != nil {
		return File{}, err
	}

	return File{
		Name:        filename("md", now),
		ContentType: "text/markdown",
		Data:        buf.Bytes(),
	}, nil
}

func writeMarkdown(buf *bytes.Buffer, doc *edtypes.Document) error {
	b := md.NewMarkdown(buf)

	for _, elem := range doc.Elements {
		switch e := elem.(type) {
		case *edtypes.Paragraph:
			b.PlainText(inlineMarkdown(e.Content)).LF()
		case *edtypes.Heading:
			heading(b, e)
		case *edtypes.Quote:
			for _, p := range e.Content {
				b.Blockquote(inlineMarkdown(p.Content))
			}
			b.LF()
		case *edtypes.Code:
			b.CodeBlocks(md.SyntaxHighlight(e.Language), e.Content)
		case *edtypes.List:
			list(b, e)
		case *edtypes.Image:
			if e.Src != nil {
				b.PlainText(fmt.Sprintf("![%s](%s)", e.Alt, e.Src.String())).LF()
			}
		case *edtypes.HorizontalRule:
			b.HorizontalRule()
		}
	}

	return b.Build()
}

func heading(b *md.Markdown, h *edtypes.Heading) {
	text := inlineMarkdown(h.Content)
	switch h.Level {
	case 1:
		b.H1(text)
	case 2:
		b.H2(text)
	case 3:
		b.H3(text)
	case 4:
		b.H4(text)
	case 5:
		b.H5(text)
	default:
		b.H6(text)
	}
}

func list(b *md.Markdown, l *edtypes.List) {
	if l.TaskList {
		boxes := make([]md.CheckBoxSet, 0, len(l.Elements))
		for _, e := range l.Elements {
			boxes = append(boxes, md.CheckBoxSet{
				Text:    itemMarkdown(e),
				Checked: e.Checked,
			})
		}
		b.CheckBox(boxes)
		return
	}

	items := make([]string, 0, len(l.Elements))
	for _, e := range l.Elements {
		items = append(items, itemMarkdown(e))
	}
	if l.Numbered {
		b.OrderedList(items...)
	} else {
		b.BulletList(items...)
	}
}

func itemMarkdown(e edtypes.ListElement) string {
	parts := make([]string, 0, len(e.Content))
	for _, p := range e.Content {
		parts = append(parts, inlineMarkdown(p.Content))
	}
	return strings.Join(parts, " ")
}

// inlineMarkdown переводит inline-содержимое в Markdown с учетом
// жирного, курсива, зачеркивания, кода и ссылок.
func inlineMarkdown(content []any) string {
	var sb strings.Builder
	for _, item := range content {
		switch t := item.(type) {
		case edtypes.Text:
			sb.WriteString(textMarkdown(t))
		case *edtypes.Text:
			sb.WriteString(textMarkdown(*t))
		case *edtypes.HardBreak:
			sb.WriteString("  \n")
		case *edtypes.Image:
			if t.Src != nil {
				sb.WriteString(fmt.Sprintf("![%s](%s)", t.Alt, t.Src.String()))
			}
		}
	}
	return sb.String()
}

func textMarkdown(t edtypes.Text) string {
	out := t.Content
	if t.Code {
		out = md.Code(out)
	}
	if t.Strong {
		out = md.Bold(out)
	}
	if t.Italic {
		out = md.Italic(out)
	}
	if t.Strikethrough {
		out = md.Strikethrough(out)
	}
	if t.URL != nil {
		out = md.Link(out, t.URL.String())
	}
	return out
}

// Text экспортирует документ в plain text: HTML-представление
// прогоняется через политику очистки от всех тегов.
func Text(s *engine.Session, now time.Time) File {
	return File{
		Name:        filename("txt", now),
		ContentType: "text/plain",
		Data:        []byte(policy.StripTags(s.HTML())),
	}
}

// JSON экспортирует структуру документа в TipTap JSON с отступами.
func JSON(s *engine.Session, now time.Time) (File, error) {
	data, err := s.JSON()
	if err != nil {
		return File{}, err
	}
	return File{
		Name:        filename("json", now),
		ContentType: "application/json",
		Data:        data,
	}, nil
}

// PDF экспортирует печатную версию документа.
func PDF(s *engine.Session, now time.Time) (File, error) {
	doc, err := editor.ParseDocument(strings.NewReader(s.HTML()))
	if err != nil {
		return File{}, err
	}

	var buf bytes.Buffer
	if err := DocumentToFPDF(doc, &buf); err != nil {
		return File{}, err
	}

	return File{
		Name:        filename("pdf", now),
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
	}, nil
}
