package engine

import (
	"encoding/json"
	"io"
	"net/url"
	"strings"

	"github.com/inktone/inktone.go/internal/inktone/editor"
	"github.com/inktone/inktone.go/internal/inktone/editor/edtypes"

	// регистрация TipTap парсера и сериализатора в edtypes
	_ "github.com/inktone/inktone.go/internal/inktone/editor/tiptap"
)

// Document строит структурированный документ из блоков сессии.
// Соседние элементы списков одного вида собираются в один список.
func (s *Session) Document() *edtypes.Document {
	blocks := s.Blocks()

	doc := &edtypes.Document{Elements: make([]any, 0, len(blocks))}

	var list *edtypes.List
	flush := func() {
		if list != nil {
			doc.Elements = append(doc.Elements, list)
			list = nil
		}
	}

	for _, b := range blocks {
		switch b.Kind {
		case KindBulletItem, KindOrderedItem, KindTaskItem:
			numbered := b.Kind == KindOrderedItem
			taskList := b.Kind == KindTaskItem
			if list == nil || list.Numbered != numbered || list.TaskList != taskList {
				flush()
				list = &edtypes.List{Numbered: numbered, TaskList: taskList}
			}
			list.Elements = append(list.Elements, edtypes.ListElement{
				Content: []edtypes.Paragraph{{Content: inlineOf(b.Text)}},
				Checked: b.Checked,
			})
			continue
		}

		flush()

		switch b.Kind {
		case KindParagraph:
			doc.Elements = append(doc.Elements, &edtypes.Paragraph{Content: inlineOf(b.Text)})
		case KindHeading:
			doc.Elements = append(doc.Elements, &edtypes.Heading{Level: b.Level, Content: inlineOf(b.Text)})
		case KindQuote:
			doc.Elements = append(doc.Elements, &edtypes.Quote{
				Content: []edtypes.Paragraph{{Content: inlineOf(b.Text)}},
			})
		case KindCode:
			doc.Elements = append(doc.Elements, &edtypes.Code{Content: b.Text, Language: b.Language})
		case KindImage:
			img := &edtypes.Image{Alt: b.Alt, Caption: b.Caption, Width: b.Width}
			if u, err := url.Parse(b.Src); err == nil {
				img.Src = u
			}
			doc.Elements = append(doc.Elements, img)
		case KindRule:
			doc.Elements = append(doc.Elements, &edtypes.HorizontalRule{})
		}
	}
	flush()

	return doc
}

func inlineOf(text string) []any {
	if text == "" {
		return []any{}
	}
	return []any{edtypes.Text{Content: text}}
}

// HTML сериализует документ сессии в HTML.
func (s *Session) HTML() string {
	return editor.WriteHTML(s.Document())
}

// JSON сериализует документ сессии в TipTap JSON с отступами.
func (s *Session) JSON() ([]byte, error) {
	return json.MarshalIndent(s.Document(), "", "  ")
}

// PlainText возвращает текст документа без разметки.
func (s *Session) PlainText() string {
	return s.Text()
}

// LoadDocument замещает содержимое сессии структурированным документом.
// Форматирование inline-текста сводится к plain text, структура блоков
// сохраняется. Курсор переходит в конец документа.
func (s *Session) LoadDocument(doc *edtypes.Document) {
	blocks := make([]Block, 0, len(doc.Elements))

	for _, elem := range doc.Elements {
		switch e := elem.(type) {
		case *edtypes.Paragraph:
			blocks = append(blocks, Block{Kind: KindParagraph, Text: flattenInline(e.Content)})
		case edtypes.Paragraph:
			blocks = append(blocks, Block{Kind: KindParagraph, Text: flattenInline(e.Content)})
		case *edtypes.Heading:
			level := e.Level
			if level < 1 || level > 6 {
				level = 1
			}
			blocks = append(blocks, Block{Kind: KindHeading, Level: level, Text: flattenInline(e.Content)})
		case *edtypes.Quote:
			for _, p := range e.Content {
				blocks = append(blocks, Block{Kind: KindQuote, Text: flattenInline(p.Content)})
			}
		case *edtypes.Code:
			blocks = append(blocks, Block{Kind: KindCode, Text: e.Content, Language: e.Language})
		case *edtypes.List:
			kind := KindBulletItem
			if e.Numbered {
				kind = KindOrderedItem
			}
			if e.TaskList {
				kind = KindTaskItem
			}
			for _, item := range e.Elements {
				var parts []string
				for _, p := range item.Content {
					parts = append(parts, flattenInline(p.Content))
				}
				blocks = append(blocks, Block{
					Kind:    kind,
					Text:    strings.Join(parts, " "),
					Checked: item.Checked,
				})
			}
		case *edtypes.Image:
			img := Block{Kind: KindImage, Alt: e.Alt, Caption: e.Caption, Width: e.Width}
			if e.Src != nil {
				img.Src = e.Src.String()
			}
			blocks = append(blocks, img)
		case *edtypes.HorizontalRule:
			blocks = append(blocks, Block{Kind: KindRule})
		}
	}

	if len(blocks) == 0 {
		blocks = []Block{{Kind: KindParagraph}}
	}

	s.mu.Lock()
	s.blocks = blocks
	s.cursor = s.docLength() - 1
	s.mu.Unlock()
}

// flattenInline сводит inline-содержимое к plain text. Перенос строки
// заменяется пробелом, чтобы не порождать лишние блоки.
func flattenInline(content []any) string {
	var sb strings.Builder
	for _, item := range content {
		switch t := item.(type) {
		case edtypes.Text:
			sb.WriteString(t.Content)
		case *edtypes.Text:
			sb.WriteString(t.Content)
		case *edtypes.HardBreak:
			sb.WriteString(" ")
		}
	}
	return strings.ReplaceAll(sb.String(), "\n", " ")
}

// LoadHTML замещает содержимое сессии документом, распарсенным из HTML.
func (s *Session) LoadHTML(r io.Reader) error {
	doc, err := editor.ParseDocument(r)
	if err != nil {
		return err
	}
	s.LoadDocument(doc)
	return nil
}

// LoadJSON замещает содержимое сессии документом из TipTap JSON.
func (s *Session) LoadJSON(data []byte) error {
	var doc edtypes.Document
	if err := doc.UnmarshalJSON(data); err != nil {
		return err
	}
	s.LoadDocument(&doc)
	return nil
}
