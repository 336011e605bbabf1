package engine

// BlockKind - тип блока документа.
type BlockKind int

const (
	KindParagraph BlockKind = iota
	KindHeading
	KindBulletItem
	KindOrderedItem
	KindTaskItem
	KindQuote
	KindCode
	KindImage
	KindRule
)

func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindBulletItem:
		return "bulletItem"
	case KindOrderedItem:
		return "orderedItem"
	case KindTaskItem:
		return "taskItem"
	case KindQuote:
		return "blockquote"
	case KindCode:
		return "codeBlock"
	case KindImage:
		return "image"
	case KindRule:
		return "horizontalRule"
	default:
		return "unknown"
	}
}

// Block - один блок документа. Текст хранится как plain text,
// позиции внутри блока считаются в рунах.
type Block struct {
	Kind     BlockKind
	Level    int    // уровень заголовка (1-6), только для KindHeading
	Text     string
	Checked  bool   // только для KindTaskItem
	Language string // только для KindCode
	Src      string // только для KindImage
	Alt      string
	Caption  string
	Width    int
}

// Len возвращает длину текста блока в рунах.
func (b Block) Len() int {
	return len([]rune(b.Text))
}

// BlockRef - ссылка на блок с его абсолютным диапазоном позиций в документе.
// Текст блока занимает [Start, End), разделитель блока занимает позицию End.
type BlockRef struct {
	Index int
	Start int
	End   int
	Block Block
}
