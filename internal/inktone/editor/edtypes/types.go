package edtypes

import (
	"bytes"
	"database/sql/driver"
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	colorReg = regexp.MustCompile(`[rgb()#\s"]`)
)

// TipTapParser - функция для парсинга TipTap JSON, устанавливается из tiptap пакета
var TipTapParser func(io.Reader) (*Document, error)

// TipTapSerializer - функция для сериализации Document в TipTap JSON, устанавливается из tiptap пакета
var TipTapSerializer func(*Document) ([]byte, error)

type Document struct {
	Elements []any
}

// UnmarshalJSON реализует кастомную десериализацию TipTap JSON в Document.
// Автоматически вызывает зарегистрированный TipTapParser.
func (d *Document) UnmarshalJSON(data []byte) error {
	if TipTapParser == nil {
		return errors.New("TipTapParser not registered, import tiptap package to enable TipTap JSON parsing")
	}

	doc, err := TipTapParser(bytes.NewReader(data))
	if err != nil {
		return err
	}

	d.Elements = doc.Elements
	return nil
}

// MarshalJSON реализует кастомную сериализацию Document в TipTap JSON.
// Автоматически вызывает зарегистрированный TipTapSerializer.
func (d Document) MarshalJSON() ([]byte, error) {
	if TipTapSerializer == nil {
		return nil, errors.New("TipTapSerializer not registered, import tiptap package to enable TipTap JSON serialization")
	}

	return TipTapSerializer(&d)
}

// Value реализует интерфейс driver.Valuer для сохранения Document в колонку БД.
func (d Document) Value() (driver.Value, error) {
	b, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Scan реализует интерфейс sql.Scanner для чтения Document из колонки БД.
func (d *Document) Scan(value interface{}) error {
	if value == nil {
		*d = Document{Elements: make([]any, 0)}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	return d.UnmarshalJSON(bytes)
}

// GormDataType указывает GORM тип колонки для документа.
func (Document) GormDataType() string {
	return "jsonb"
}

// PlainText возвращает текстовое содержимое документа без разметки.
// Блоки разделяются переносом строки.
func (d *Document) PlainText() string {
	var sb strings.Builder
	for i, elem := range d.Elements {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(ElementText(elem))
	}
	return sb.String()
}

// ElementText возвращает текст одного элемента документа.
func ElementText(elem any) string {
	switch e := elem.(type) {
	case *Paragraph:
		return inlineText(e.Content)
	case Paragraph:
		return inlineText(e.Content)
	case *Heading:
		return inlineText(e.Content)
	case *Quote:
		return paragraphsText(e.Content)
	case *Code:
		return e.Content
	case *List:
		var sb strings.Builder
		for i, le := range e.Elements {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(paragraphsText(le.Content))
		}
		return sb.String()
	default:
		return ""
	}
}

func inlineText(content []any) string {
	var sb strings.Builder
	for _, c := range content {
		switch t := c.(type) {
		case Text:
			sb.WriteString(t.Content)
		case *HardBreak:
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func paragraphsText(paragraphs []Paragraph) string {
	var sb strings.Builder
	for i, p := range paragraphs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(inlineText(p.Content))
	}
	return sb.String()
}

type Paragraph struct {
	Content []any
}

type Heading struct {
	Level   int // 1-6
	Content []any
}

type Text struct {
	Content string

	Strong        bool
	Italic        bool
	Underlined    bool
	Strikethrough bool
	Code          bool

	Color   *Color
	BgColor *Color

	URL *url.URL
}

type ListElement struct {
	Content []Paragraph
	Checked bool
}

type List struct {
	Elements []ListElement
	Numbered bool
	TaskList bool
}

type Quote struct {
	Content []Paragraph
}

type Code struct {
	Content  string
	Language string
}

type Image struct {
	Src     *url.URL
	Alt     string
	Caption string
	Width   int
}

type HorizontalRule struct{}

type HardBreak struct {
	// Пустая структура для представления переноса строки <br>
}

type Color color.RGBA

func ParseColor(raw string) (Color, error) {
	if len(raw) < 2 {
		return Color{}, errors.New("unsupported color format")
	}
	isDecRGB := strings.Contains(raw, "rgb(")
	isHex := raw[0] == '#' || raw[1] == '#'
	raw = colorReg.ReplaceAllString(raw, "")
	if isDecRGB {
		c := Color{}
		for i, n := range strings.Split(raw, ",") {
			nn, err := strconv.ParseUint(n, 10, 8)
			if err != nil {
				return c, err
			}

			switch i {
			case 0:
				c.R = uint8(nn)
			case 1:
				c.G = uint8(nn)
			case 2:
				c.B = uint8(nn)
			case 3:
				c.A = uint8(nn)
			}
		}
		return c, nil
	} else if isHex {
		b, err := hex.DecodeString(raw)
		if err != nil {
			return Color{}, err
		}
		if len(b) < 3 {
			return Color{}, errors.New("unsupported color format")
		}
		c := Color{
			R: b[0],
			G: b[1],
			B: b[2],
		}
		if len(b) > 3 {
			c.A = b[3]
		}
		return c, nil
	}
	return Color{}, errors.New("unsupported color format")
}

// String возвращает цвет в hex-формате #RRGGBBAA.
func (c Color) String() string {
	return "#" + hex.EncodeToString([]byte{c.R, c.G, c.B, c.A})
}

func (c Color) MarshalJSON() ([]byte, error) {
	return fmt.Appendf(nil, "\"#%s\"", hex.EncodeToString([]byte{c.R, c.G, c.B, c.A})), nil
}

func (c *Color) UnmarshalJSON(data []byte) error {
	if string(data) == "null" || string(data) == `""` {
		return nil
	}

	cc, err := ParseColor(string(data))
	*c = cc

	return err
}
