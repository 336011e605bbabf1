package tiptap

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/inktone/inktone.go/internal/inktone/editor/edtypes"
)

func init() {
	// Регистрация парсера и сериализатора в edtypes
	edtypes.TipTapParser = ParseJSON
	edtypes.TipTapSerializer = Serialize
}

// ParseJSON парсит JSON контент TipTap редактора в структуру edtypes.Document.
// Принимает io.Reader с JSON данными и возвращает распарсенный документ.
func ParseJSON(r io.Reader) (*edtypes.Document, error) {
	var tipTapDoc TipTapDocument
	if err := json.NewDecoder(r).Decode(&tipTapDoc); err != nil {
		return nil, err
	}

	doc := &edtypes.Document{
		Elements: make([]any, 0),
	}

	for _, node := range tipTapDoc.Content {
		elem := parseNode(node)
		if elem != nil {
			doc.Elements = append(doc.Elements, elem)
		}
	}

	return doc, nil
}

// parseNode парсит отдельную ноду TipTap и возвращает соответствующий элемент edtypes.
func parseNode(node TipTapNode) any {
	switch node.Type {
	case "paragraph":
		return parseParagraph(node)
	case "heading":
		return parseHeading(node)
	case "blockquote":
		return parseBlockquote(node)
	case "codeBlock":
		return parseCodeBlock(node)
	case "bulletList", "orderedList", "taskList":
		return parseList(node)
	case "image":
		return parseImage(node)
	case "horizontalRule":
		return &edtypes.HorizontalRule{}
	default:
		slog.Warn("Unknown node type", "type", node.Type)
		return nil
	}
}
