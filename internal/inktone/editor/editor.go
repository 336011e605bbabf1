// Пакет предоставляет инструменты для парсинга HTML-документов редактора и извлечения информации о структуре и содержимом.
// Работает со схемой Inktone: параграфы, заголовки, списки (включая списки задач), цитаты, блоки кода, изображения и горизонтальные линии.
//
// Основные возможности:
//   - Парсинг HTML-документов из io.Reader в editor.Document (edtypes).
//   - Извлечение текста, стилей, атрибутов и ссылок из HTML-элементов.
//   - Обратная сериализация Document в HTML (см. html.go).
package editor

import (
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/inktone/inktone.go/internal/inktone/editor/edtypes"
	"golang.org/x/net/html"
)

func ParseDocument(r io.Reader) (*edtypes.Document, error) {
	rootNode, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var document edtypes.Document

	for el := getBody(rootNode).FirstChild; el != nil; el = el.NextSibling {
		if el.Type != html.ElementNode {
			continue
		}

		switch el.Data {
		case "p":
			p := parseParagraph(el)
			if p != nil {
				document.Elements = append(document.Elements, p)
			}
		case "h1", "h2", "h3", "h4", "h5", "h6":
			document.Elements = append(document.Elements, parseHeading(el))
		case "pre":
			document.Elements = append(document.Elements, parseCode(el))
		case "ul", "ol":
			list := parseList(el)
			if list != nil {
				document.Elements = append(document.Elements, list)
			}
		case "blockquote":
			var quote edtypes.Quote
			iterNodes(el, func(child *html.Node) bool {
				if p := parseParagraph(child); p != nil {
					quote.Content = append(quote.Content, *p)
					return true
				}
				return false
			})
			document.Elements = append(document.Elements, &quote)
		case "hr":
			document.Elements = append(document.Elements, &edtypes.HorizontalRule{})
		case "figure":
			if img := parseFigure(el); img != nil {
				document.Elements = append(document.Elements, img)
			}
		case "img":
			if img := getImage(el); img != nil {
				document.Elements = append(document.Elements, img)
			}
		}
	}

	return &document, nil
}

func parseParagraph(root *html.Node) *edtypes.Paragraph {
	if root.Type != html.ElementNode || root.Data != "p" {
		return nil
	}
	var p edtypes.Paragraph
	p.Content = parseInline(root)
	return &p
}

func parseHeading(root *html.Node) *edtypes.Heading {
	level, err := strconv.Atoi(strings.TrimPrefix(root.Data, "h"))
	if err != nil || level < 1 || level > 6 {
		level = 1
	}
	return &edtypes.Heading{
		Level:   level,
		Content: parseInline(root),
	}
}

// parseInline собирает inline-содержимое блока: текстовые отрезки с форматированием,
// переносы строк и изображения.
func parseInline(root *html.Node) []any {
	var content []any
	for el := root.FirstChild; el != nil; el = el.NextSibling {
		if el.Type == html.ElementNode && el.Data == "br" {
			content = append(content, &edtypes.HardBreak{})
			continue
		}

		if image := getImage(el); image != nil {
			content = append(content, image)
			continue
		}

		text := getText(el)
		if text.Content != "" {
			content = append(content, text)
		}
	}
	return content
}

func parseList(root *html.Node) *edtypes.List {
	var list edtypes.List
	if root.Type != html.ElementNode || (root.Data != "ul" && root.Data != "ol") {
		return nil
	}
	list.Numbered = root.Data == "ol"
	list.TaskList = getAttrValue("data-type", root.Attr) == "taskList"

	for li := root.FirstChild; li != nil; li = li.NextSibling {
		if le := parseListElement(li); le != nil {
			list.Elements = append(list.Elements, *le)
		}
	}

	return &list
}

func parseListElement(li *html.Node) *edtypes.ListElement {
	if li.Type != html.ElementNode || li.Data != "li" {
		return nil
	}

	var listElement edtypes.ListElement

	listElement.Checked = getAttrValue("data-checked", li.Attr) == "true"

	iterNodes(li, func(p *html.Node) bool {
		paragraph := parseParagraph(p)
		if paragraph != nil {
			listElement.Content = append(listElement.Content, *paragraph)
			return true
		}
		return false
	})
	return &listElement
}

func parseCode(root *html.Node) *edtypes.Code {
	code := &edtypes.Code{}

	if codeEl := findElementByTagName(root, "code"); codeEl != nil {
		code.Language = strings.TrimPrefix(getAttrValue("class", codeEl.Attr), "language-")
	}

	iterNodes(root, func(child *html.Node) bool {
		if child.Type != html.TextNode {
			return false
		}
		code.Content += child.Data
		return false
	})
	return code
}

func parseFigure(root *html.Node) *edtypes.Image {
	imgEl := findElementByTagName(root, "img")
	if imgEl == nil {
		return nil
	}

	img := getImage(imgEl)
	if img == nil {
		return nil
	}

	if caption := findElementByTagName(root, "figcaption"); caption != nil {
		iterNodes(caption, func(child *html.Node) bool {
			if child.Type == html.TextNode {
				img.Caption += child.Data
			}
			return false
		})
	}

	return img
}

func getText(root *html.Node) edtypes.Text {
	var text edtypes.Text

	iterNodes(root, func(el *html.Node) bool {
		if el.Type == html.TextNode {
			text.Content = el.Data
			return true
		}
		switch el.Data {
		case "em", "i":
			text.Italic = true
		case "u":
			text.Underlined = true
		case "s":
			text.Strikethrough = true
		case "strong", "b":
			text.Strong = true
		case "code":
			text.Code = true
		case "span", "mark":
			parseTextStyles(el, &text)
		case "a":
			if u, err := url.Parse(getAttrValue("href", el.Attr)); err == nil {
				text.URL = u
			}
		}

		return false
	})

	return text
}

func parseTextStyles(node *html.Node, text *edtypes.Text) {
	for _, attr := range node.Attr {
		if attr.Key != "style" {
			continue
		}
		for _, style := range parseStyles(strings.Split(attr.Val, ";")) {
			if style.Val == "inherit" {
				continue
			}

			switch style.Key {
			case "color":
				rgb, err := edtypes.ParseColor(style.Val)
				if err != nil {
					slog.Error("Parse text color", "input", style.Val, "err", err)
					continue
				}
				text.Color = &rgb
			case "background-color":
				rgb, err := edtypes.ParseColor(style.Val)
				if err != nil {
					slog.Error("Parse text background color", "input", style.Val, "err", err)
					continue
				}
				text.BgColor = &rgb
			}
		}
	}
}

func findElementByTagName(rootNode *html.Node, tagName string) *html.Node {
	var el *html.Node
	iterNodes(rootNode, func(child *html.Node) bool {
		if child.Type == html.ElementNode && child.Data == tagName {
			el = child
			return true
		}
		return false
	})
	return el
}

func getBody(rootNode *html.Node) *html.Node {
	return findElementByTagName(rootNode, "body")
}

func iterNodes(node *html.Node, f func(child *html.Node) bool) {
	if f(node) {
		return
	}
	for p := node.FirstChild; p != nil; p = p.NextSibling {
		iterNodes(p, f)
	}
}

func getAttrValue(key string, attrs []html.Attribute) string {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func getImage(el *html.Node) *edtypes.Image {
	if el.Type != html.ElementNode || el.Data != "img" {
		return nil
	}

	i := &edtypes.Image{}

	imgUrl, err := url.Parse(getAttrValue("src", el.Attr))
	if err != nil {
		return nil
	}
	i.Src = imgUrl
	i.Alt = getAttrValue("alt", el.Attr)

	for _, style := range parseStyles(strings.Split(getAttrValue("style", el.Attr), ";")) {
		if style.Key == "width" {
			i.Width, _ = strconv.Atoi(strings.TrimSuffix(style.Val, "px"))
		}
	}

	return i
}

func parseStyles(rawStyles []string) []html.Attribute {
	res := make([]html.Attribute, 0, len(rawStyles))
	for _, styleRaw := range rawStyles {
		arr := strings.Split(styleRaw, ":")
		if len(arr) < 2 {
			continue
		}
		res = append(res, html.Attribute{
			Key: strings.TrimSpace(arr[0]),
			Val: strings.TrimSpace(arr[1]),
		})
	}
	return res
}
