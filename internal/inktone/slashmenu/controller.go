// Пакет slashmenu реализует машину состояний меню slash-команд.
//
// Контроллер наблюдает транзакции сессии документа, обнаруживает
// активный триггер "/" перед курсором, выводит живой поисковый запрос,
// фильтрует реестр команд и ведет двухуровневый навигируемый список
// (плоские команды и вложенный подсписок заголовков).
package slashmenu

import (
	"strings"
	"sync"

	"github.com/inktone/inktone.go/internal/inktone/commands"
	"github.com/inktone/inktone.go/internal/inktone/engine"
)

// DefaultMenuHeight - высота меню до первого рендера.
const DefaultMenuHeight = 400.0

// Key - клавиша, обрабатываемая меню.
type Key string

const (
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowRight Key = "ArrowRight"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyTab        Key = "Tab"
	KeyEnter      Key = "Enter"
	KeyEscape     Key = "Escape"
)

// Anchor - координаты якоря меню на экране.
type Anchor struct {
	Left float64
	Top  float64
}

// State - снимок состояния меню.
// Инвариант: IsOpen == false влечет Anchor == nil.
// Инвариант: SelectedIndex всегда меньше длины видимого списка.
type State struct {
	IsOpen        bool
	SearchTerm    string
	ShowHeadings  bool
	SelectedIndex int
	Anchor        *Anchor
}

// Controller - контроллер меню slash-команд одной сессии.
type Controller struct {
	mu      sync.Mutex
	session *engine.Session

	state State

	// абсолютная позиция последнего триггера "/" и флаг ручного
	// закрытия меню для этой позиции
	lastSlashPos   int
	manuallyClosed bool

	menuHeight     float64
	viewportHeight float64
}

// New создает контроллер и подписывает его на транзакции сессии.
func New(session *engine.Session, viewportHeight float64) *Controller {
	c := &Controller{
		session:        session,
		lastSlashPos:   -1,
		menuHeight:     DefaultMenuHeight,
		viewportHeight: viewportHeight,
	}
	session.OnTransaction(c.handleTransaction)
	return c
}

// State возвращает снимок текущего состояния меню.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// VisibleCommands возвращает список команд, видимый в данный момент:
// подсписок заголовков, если он открыт, иначе отфильтрованный
// верхний уровень.
func (c *Controller) VisibleCommands() []commands.Command {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visibleLocked()
}

func (c *Controller) visibleLocked() []commands.Command {
	if c.state.ShowHeadings {
		return commands.HeadingCommands()
	}
	return commands.Filter(c.state.SearchTerm)
}

// SetMenuHeight сообщает контроллеру фактическую высоту меню после
// рендера. До первого вызова используется DefaultMenuHeight.
func (c *Controller) SetMenuHeight(h float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h > 0 {
		c.menuHeight = h
	}
}

// handleTransaction пересчитывает состояние меню после каждой
// транзакции сессии.
func (c *Controller) handleTransaction(tr *engine.Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastSlashPos >= 0 && tr.DocChanged {
		c.lastSlashPos = tr.Mapping.Map(c.lastSlashPos)
	}

	cursor := c.session.Cursor()
	block := c.session.BlockAt(cursor)

	prefix := c.session.TextBetween(block.Start, cursor)
	slash := strings.LastIndex(prefix, "/")
	if slash < 0 {
		c.resetLocked()
		return
	}

	// меню взводится только пока текст блока, без пробелов по краям,
	// начинается с "/"
	if !strings.HasPrefix(strings.TrimSpace(block.Block.Text), "/") {
		c.resetLocked()
		return
	}

	slashPos := block.Start + len([]rune(prefix[:slash]))
	if slashPos != c.lastSlashPos {
		c.lastSlashPos = slashPos
		c.manuallyClosed = false
	}
	if c.manuallyClosed {
		return
	}

	c.state.SearchTerm = prefix[slash+1:]
	c.state.IsOpen = true

	visible := c.visibleLocked()
	if len(visible) == 0 {
		c.resetLocked()
		return
	}
	c.clampSelectionLocked(visible)
	c.state.Anchor = c.anchorLocked(slashPos)
}

// anchorLocked вычисляет координаты якоря: меню откидывается вверх,
// когда под триггером не хватает места.
func (c *Controller) anchorLocked(triggerPos int) *Anchor {
	coords := c.session.CoordsAt(triggerPos)

	top := coords.Bottom
	if c.viewportHeight-coords.Bottom < c.menuHeight {
		top = coords.Top - c.menuHeight
	}

	return &Anchor{Left: coords.Left, Top: top}
}

func (c *Controller) clampSelectionLocked(visible []commands.Command) {
	if c.state.SelectedIndex >= len(visible) {
		c.state.SelectedIndex = len(visible) - 1
	}
	if c.state.SelectedIndex < 0 {
		c.state.SelectedIndex = 0
	}
}

// HandleKey обрабатывает клавишу при открытом меню.
// Возвращает true, если клавиша была поглощена меню.
func (c *Controller) HandleKey(key Key) bool {
	c.mu.Lock()

	if !c.state.IsOpen {
		c.mu.Unlock()
		return false
	}

	visible := c.visibleLocked()

	switch key {
	case KeyArrowDown:
		if c.state.SelectedIndex < len(visible)-1 {
			c.state.SelectedIndex++
		}
		c.mu.Unlock()
		return true
	case KeyArrowUp:
		if c.state.SelectedIndex > 0 {
			c.state.SelectedIndex--
		}
		c.mu.Unlock()
		return true
	case KeyArrowRight, KeyTab:
		if !c.state.ShowHeadings &&
			c.state.SelectedIndex < len(visible) &&
			visible[c.state.SelectedIndex].Kind == commands.KindHeadingMenu {
			c.state.ShowHeadings = true
			c.state.SelectedIndex = 0
		}
		c.mu.Unlock()
		return true
	case KeyArrowLeft:
		if c.state.ShowHeadings {
			c.state.ShowHeadings = false
			c.state.SelectedIndex = 0
		}
		c.mu.Unlock()
		return true
	case KeyEnter:
		var cmd *commands.Command
		if c.state.SelectedIndex < len(visible) {
			cmd = &visible[c.state.SelectedIndex]
		}
		c.mu.Unlock()
		if cmd != nil {
			c.Execute(*cmd)
		}
		return true
	case KeyEscape:
		if c.state.ShowHeadings {
			c.state.ShowHeadings = false
			c.state.SelectedIndex = 0
			c.mu.Unlock()
			return true
		}
		c.manuallyClosed = true
		c.resetLocked()
		c.mu.Unlock()
		return true
	}

	c.mu.Unlock()
	return false
}

// Execute выполняет команду: одной атомарной транзакцией удаляет
// триггер "/" вместе с поисковым запросом и применяет трансформацию,
// затем сбрасывает состояние меню. Псевдокоманда заголовков только
// открывает подсписок.
func (c *Controller) Execute(cmd commands.Command) {
	c.mu.Lock()

	if !c.state.IsOpen {
		c.mu.Unlock()
		return
	}

	if cmd.Kind == commands.KindHeadingMenu {
		c.state.ShowHeadings = true
		c.state.SelectedIndex = 0
		c.mu.Unlock()
		return
	}

	triggerPos := c.lastSlashPos
	termLen := len([]rune(c.state.SearchTerm))
	c.mu.Unlock()

	// удаление триггера строго до трансформации: после нее позиции
	// триггера устаревают
	c.session.Apply(func(tx *engine.Tx) {
		if triggerPos >= 0 {
			tx.Delete(triggerPos, triggerPos+1+termLen)
			tx.SetCursor(triggerPos)
		}
		commands.Execute(cmd.Kind, tx)
	})

	c.mu.Lock()
	c.resetLocked()
	c.mu.Unlock()
}

// ClickOutside закрывает меню по клику вне его, помечая триггер
// как закрытый вручную.
func (c *Controller) ClickOutside() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.IsOpen {
		c.manuallyClosed = true
		c.resetLocked()
	}
}

func (c *Controller) resetLocked() {
	c.state = State{}
}
