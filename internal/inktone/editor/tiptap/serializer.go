package tiptap

import (
	"encoding/json"

	"github.com/inktone/inktone.go/internal/inktone/editor/edtypes"
)

// Serialize преобразует документ edtypes обратно в TipTap JSON.
func Serialize(doc *edtypes.Document) ([]byte, error) {
	return json.Marshal(BuildDocument(doc))
}

// BuildDocument строит корневой TipTapDocument из документа edtypes.
func BuildDocument(doc *edtypes.Document) *TipTapDocument {
	tipTapDoc := &TipTapDocument{
		Type:    "doc",
		Content: make([]TipTapNode, 0, len(doc.Elements)),
	}

	for _, elem := range doc.Elements {
		node := serializeElement(elem)
		if node != nil {
			tipTapDoc.Content = append(tipTapDoc.Content, *node)
		}
	}

	return tipTapDoc
}

func serializeElement(elem any) *TipTapNode {
	switch e := elem.(type) {
	case *edtypes.Paragraph:
		return serializeParagraph(e)
	case edtypes.Paragraph:
		return serializeParagraph(&e)
	case *edtypes.Heading:
		return serializeHeading(e)
	case *edtypes.Quote:
		return serializeQuote(e)
	case *edtypes.Code:
		return serializeCode(e)
	case *edtypes.List:
		return serializeList(e)
	case *edtypes.Image:
		return serializeImage(e)
	case *edtypes.HorizontalRule:
		return &TipTapNode{Type: "horizontalRule"}
	default:
		return nil
	}
}

func serializeParagraph(p *edtypes.Paragraph) *TipTapNode {
	return &TipTapNode{
		Type:    "paragraph",
		Content: serializeInline(p.Content),
	}
}

func serializeHeading(h *edtypes.Heading) *TipTapNode {
	return &TipTapNode{
		Type:    "heading",
		Attrs:   map[string]interface{}{"level": h.Level},
		Content: serializeInline(h.Content),
	}
}

func serializeInline(content []any) []TipTapNode {
	nodes := make([]TipTapNode, 0, len(content))
	for _, item := range content {
		switch t := item.(type) {
		case edtypes.Text:
			nodes = append(nodes, serializeText(t))
		case *edtypes.Text:
			nodes = append(nodes, serializeText(*t))
		case *edtypes.HardBreak:
			nodes = append(nodes, TipTapNode{Type: "hardBreak"})
		case *edtypes.Image:
			if node := serializeImage(t); node != nil {
				nodes = append(nodes, *node)
			}
		}
	}
	return nodes
}

func serializeText(t edtypes.Text) TipTapNode {
	node := TipTapNode{
		Type: "text",
		Text: t.Content,
	}

	marks := make([]TipTapMark, 0)
	if t.Strong {
		marks = append(marks, TipTapMark{Type: "bold"})
	}
	if t.Italic {
		marks = append(marks, TipTapMark{Type: "italic"})
	}
	if t.Underlined {
		marks = append(marks, TipTapMark{Type: "underline"})
	}
	if t.Strikethrough {
		marks = append(marks, TipTapMark{Type: "strike"})
	}
	if t.Code {
		marks = append(marks, TipTapMark{Type: "code"})
	}
	if t.Color != nil {
		marks = append(marks, TipTapMark{
			Type:  "textStyle",
			Attrs: map[string]interface{}{"color": t.Color.String()},
		})
	}
	if t.BgColor != nil {
		marks = append(marks, TipTapMark{
			Type:  "highlight",
			Attrs: map[string]interface{}{"color": t.BgColor.String()},
		})
	}
	if t.URL != nil {
		marks = append(marks, TipTapMark{
			Type:  "link",
			Attrs: map[string]interface{}{"href": t.URL.String()},
		})
	}

	if len(marks) > 0 {
		node.Marks = marks
	}

	return node
}

func serializeQuote(q *edtypes.Quote) *TipTapNode {
	content := make([]TipTapNode, 0, len(q.Content))
	for i := range q.Content {
		content = append(content, *serializeParagraph(&q.Content[i]))
	}
	return &TipTapNode{
		Type:    "blockquote",
		Content: content,
	}
}

func serializeCode(c *edtypes.Code) *TipTapNode {
	node := &TipTapNode{
		Type: "codeBlock",
	}
	if c.Language != "" {
		node.Attrs = map[string]interface{}{"language": c.Language}
	}
	if c.Content != "" {
		node.Content = []TipTapNode{{Type: "text", Text: c.Content}}
	}
	return node
}

func serializeList(l *edtypes.List) *TipTapNode {
	listType := "bulletList"
	itemType := "listItem"
	if l.Numbered {
		listType = "orderedList"
	}
	if l.TaskList {
		listType = "taskList"
		itemType = "taskItem"
	}

	content := make([]TipTapNode, 0, len(l.Elements))
	for _, elem := range l.Elements {
		item := TipTapNode{
			Type:    itemType,
			Content: make([]TipTapNode, 0, len(elem.Content)),
		}
		if l.TaskList {
			item.Attrs = map[string]interface{}{"checked": elem.Checked}
		}
		for i := range elem.Content {
			item.Content = append(item.Content, *serializeParagraph(&elem.Content[i]))
		}
		content = append(content, item)
	}

	return &TipTapNode{
		Type:    listType,
		Content: content,
	}
}

func serializeImage(img *edtypes.Image) *TipTapNode {
	if img.Src == nil {
		return nil
	}

	attrs := map[string]interface{}{
		"src": img.Src.String(),
	}
	if img.Alt != "" {
		attrs["alt"] = img.Alt
	}
	if img.Caption != "" {
		attrs["caption"] = img.Caption
	}
	if img.Width > 0 {
		attrs["width"] = img.Width
	}

	return &TipTapNode{
		Type:  "image",
		Attrs: attrs,
	}
}
