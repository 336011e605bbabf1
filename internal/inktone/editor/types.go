package editor

import (
	"github.com/inktone/inktone.go/internal/inktone/editor/edtypes"
)

// Реэкспорт всех типов из edtypes для обратной совместимости
type (
	Document       = edtypes.Document
	Paragraph      = edtypes.Paragraph
	Heading        = edtypes.Heading
	Text           = edtypes.Text
	Code           = edtypes.Code
	ListElement    = edtypes.ListElement
	List           = edtypes.List
	Quote          = edtypes.Quote
	Image          = edtypes.Image
	HorizontalRule = edtypes.HorizontalRule
	Color          = edtypes.Color
	HardBreak      = edtypes.HardBreak
)

// Реэкспорт функций
var (
	ParseColor = edtypes.ParseColor
)
