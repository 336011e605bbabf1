// Пакет commands содержит единый реестр команд блочных трансформаций
// и диспетчер их выполнения против сессии документа.
//
// Команды описаны как данные: вариант Kind плюс отображаемый ярлык.
// Выполнение любой команды интерпретируется одной функцией Execute,
// что делает реестр фильтруемым и тестируемым без живой сессии.
package commands

import (
	"strings"

	"github.com/inktone/inktone.go/internal/inktone/engine"
)

// Kind - вид блочной трансформации.
type Kind int

const (
	// KindHeadingMenu - псевдокоманда: открывает подсписок заголовков,
	// документ не меняет.
	KindHeadingMenu Kind = iota
	KindParagraph
	KindHeading1
	KindHeading2
	KindHeading3
	KindHeading4
	KindHeading5
	KindHeading6
	KindBulletList
	KindOrderedList
	KindTaskList
	KindBlockquote
	KindCodeBlock
	KindImage
	KindHorizontalRule
)

// HeadingLevel возвращает уровень заголовка для KindHeading1-6, иначе 0.
func (k Kind) HeadingLevel() int {
	if k >= KindHeading1 && k <= KindHeading6 {
		return int(k-KindHeading1) + 1
	}
	return 0
}

// Command - одна запись реестра.
type Command struct {
	ID    string
	Label string
	Kind  Kind
}

var topLevel = []Command{
	{ID: "h", Label: "Heading", Kind: KindHeadingMenu},
	{ID: "p", Label: "Paragraph", Kind: KindParagraph},
	{ID: "ul", Label: "Bullet List", Kind: KindBulletList},
	{ID: "ol", Label: "Ordered List", Kind: KindOrderedList},
	{ID: "task", Label: "Task List", Kind: KindTaskList},
	{ID: "quote", Label: "Blockquote", Kind: KindBlockquote},
	{ID: "code", Label: "Code Block", Kind: KindCodeBlock},
	{ID: "img", Label: "Image", Kind: KindImage},
	{ID: "hr", Label: "Horizontal Rule", Kind: KindHorizontalRule},
}

var headings = []Command{
	{ID: "h1", Label: "Heading 1", Kind: KindHeading1},
	{ID: "h2", Label: "Heading 2", Kind: KindHeading2},
	{ID: "h3", Label: "Heading 3", Kind: KindHeading3},
	{ID: "h4", Label: "Heading 4", Kind: KindHeading4},
	{ID: "h5", Label: "Heading 5", Kind: KindHeading5},
	{ID: "h6", Label: "Heading 6", Kind: KindHeading6},
}

// Commands возвращает копию списка команд верхнего уровня.
// Первая запись всегда псевдокоманда подсписка заголовков.
func Commands() []Command {
	out := make([]Command, len(topLevel))
	copy(out, topLevel)
	return out
}

// HeadingCommands возвращает копию подсписка заголовков.
func HeadingCommands() []Command {
	out := make([]Command, len(headings))
	copy(out, headings)
	return out
}

// Filter возвращает команды, подходящие под поисковый запрос.
// Пустой запрос дает весь верхний уровень. Непустой запрос ищет
// подстроку без учета регистра среди команд верхнего уровня без
// псевдокоманды заголовков плюс всех шести команд заголовков,
// чтобы запрос вида "head" находил заголовки напрямую.
func Filter(term string) []Command {
	if term == "" {
		return Commands()
	}

	pool := make([]Command, 0, len(topLevel)-1+len(headings))
	pool = append(pool, topLevel[1:]...)
	pool = append(pool, headings...)

	term = strings.ToLower(term)
	out := make([]Command, 0, len(pool))
	for _, cmd := range pool {
		if strings.Contains(strings.ToLower(cmd.Label), term) {
			out = append(out, cmd)
		}
	}
	return out
}

// Execute применяет трансформацию вида kind внутри транзакции tx.
// Псевдокоманда KindHeadingMenu не меняет документ, ее интерпретирует
// контроллер меню.
func Execute(kind Kind, tx *engine.Tx) {
	switch kind {
	case KindParagraph:
		tx.SetParagraph()
	case KindHeading1, KindHeading2, KindHeading3, KindHeading4, KindHeading5, KindHeading6:
		tx.ToggleHeading(kind.HeadingLevel())
	case KindBulletList:
		tx.ToggleBulletList()
	case KindOrderedList:
		tx.ToggleOrderedList()
	case KindTaskList:
		tx.ToggleTaskList()
	case KindBlockquote:
		tx.ToggleBlockquote()
	case KindCodeBlock:
		tx.ToggleCodeBlock()
	case KindImage:
		tx.InsertImage("", "", "", 0)
	case KindHorizontalRule:
		tx.InsertHorizontalRule()
	}
}
