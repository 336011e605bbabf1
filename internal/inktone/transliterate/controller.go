package transliterate

import (
	"context"
	"log/slog"
	"sync"
	"time"
	"unicode"

	"github.com/inktone/inktone.go/internal/inktone/engine"
)

// lookbackLimit ограничивает обратный проход при поиске начала
// кандидата от точки вставки.
const lookbackLimit = 50

// DefaultSuggestDelay - задержка дебаунса запроса вариантов.
const DefaultSuggestDelay = 200 * time.Millisecond

// Fetcher - источник вариантов транслитерации.
type Fetcher interface {
	Fetch(ctx context.Context, text, itc string) ([]string, error)
}

// Key - клавиша, обрабатываемая контроллером.
type Key string

const (
	KeyArrowDown Key = "ArrowDown"
	KeyArrowUp   Key = "ArrowUp"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
)

// State - снимок состояния контроллера.
// Инвариант: SpanStart <= SpanEnd; границы пересчитываются через
// маппинг позиций на каждой транзакции, пока контроллер активен.
type State struct {
	Active        bool
	SpanStart     int
	SpanEnd       int
	CandidateText string
	Suggestions   []string
	SelectedIndex int
}

// Controller - контроллер транслитерации одной сессии документа.
// Владеет дескриптором сессии: принятие варианта выполняется методом
// контроллера, без внешних ссылок на редактор.
type Controller struct {
	mu      sync.Mutex
	session *engine.Session
	fetcher Fetcher
	itc     string
	delay   time.Duration

	state State

	// монотонный счетчик поколений: ответ применяется, только если
	// его поколение совпадает с текущим
	generation uint64
	timer      *time.Timer
}

// New создает контроллер и подписывает его на транзакции сессии.
// Пустой itc полностью отключает контроллер.
func New(session *engine.Session, fetcher Fetcher, itc string, delay time.Duration) *Controller {
	if delay <= 0 {
		delay = DefaultSuggestDelay
	}
	c := &Controller{
		session: session,
		fetcher: fetcher,
		itc:     itc,
		delay:   delay,
	}
	session.OnTransaction(c.handleTransaction)
	return c
}

// State возвращает снимок текущего состояния контроллера.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func isLatinLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func qualifies(text string) bool {
	for _, r := range text {
		if !isLatinLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// handleTransaction обрабатывает каждую транзакцию сессии: пересчет
// границ кандидата, активация по вводу латиницы, обработка удалений.
// Кандидат выводится только из набора текста под курсором; любая другая
// правка лишь сдвигает границы активного диапазона через маппинг.
func (c *Controller) handleTransaction(tr *engine.Transaction) {
	if c.itc == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Active && tr.DocChanged {
		c.state.SpanStart = tr.Mapping.Map(c.state.SpanStart)
		c.state.SpanEnd = tr.Mapping.Map(c.state.SpanEnd)
	}

	if !tr.DocChanged {
		return
	}

	inserted := tr.InsertedText()
	if inserted != "" {
		if c.typedAtCursor(tr, inserted) {
			c.handleInsert(tr, inserted)
		} else if c.state.Active {
			c.revalidateSpanLocked()
		}
		return
	}
	if tr.HasDeletion() && c.state.Active {
		c.revalidateSpanLocked()
	}
}

// insertionPoint возвращает точку вставки последнего шага транзакции
// с непустым Insert.
func insertionPoint(tr *engine.Transaction) int {
	var from int
	for _, step := range tr.Steps {
		if step.Insert != "" {
			from = step.From
		}
	}
	return from
}

// typedAtCursor сообщает, была ли вставка набором текста под курсором:
// после набора курсор стоит сразу за вставленным текстом.
func (c *Controller) typedAtCursor(tr *engine.Transaction, inserted string) bool {
	return c.session.Cursor() == insertionPoint(tr)+len([]rune(inserted))
}

func (c *Controller) handleInsert(tr *engine.Transaction, inserted string) {
	if !qualifies(inserted) {
		c.deactivateLocked()
		return
	}

	from := insertionPoint(tr)
	run := c.precedingRun(from)
	candidate := run + inserted
	if len([]rune(candidate)) < 2 {
		c.deactivateLocked()
		return
	}

	c.state.Active = true
	c.state.SpanStart = from - len([]rune(run))
	c.state.SpanEnd = from + len([]rune(inserted))
	c.state.CandidateText = candidate
	c.scheduleFetchLocked()
}

// precedingRun возвращает непрерывную последовательность латинских
// букв непосредственно перед позицией pos, не глубже lookbackLimit.
func (c *Controller) precedingRun(pos int) string {
	lo := pos - lookbackLimit
	if lo < 0 {
		lo = 0
	}
	text := []rune(c.session.TextBetween(lo, pos))

	i := len(text)
	for i > 0 && isLatinLetter(text[i-1]) {
		i--
	}
	return string(text[i:])
}

// revalidateSpanLocked пересчитывает кандидата по текущему тексту
// диапазона после чужой правки: неизменившийся текст сохраняет
// состояние как есть, изменившийся порождает новый запрос, невалидный
// или слишком короткий диапазон деактивирует контроллер.
func (c *Controller) revalidateSpanLocked() {
	if c.state.SpanStart < 0 ||
		c.state.SpanEnd < c.state.SpanStart ||
		c.state.SpanEnd > c.session.DocumentLength() {
		c.deactivateLocked()
		return
	}

	candidate := c.session.TextBetween(c.state.SpanStart, c.state.SpanEnd)
	if len([]rune(candidate)) < 2 || !qualifies(candidate) {
		c.deactivateLocked()
		return
	}

	if candidate == c.state.CandidateText {
		return
	}

	c.state.CandidateText = candidate
	c.scheduleFetchLocked()
}

// scheduleFetchLocked дебаунсит запрос вариантов: отменяет ожидающий
// таймер и взводит новый, побеждает последний ввод.
func (c *Controller) scheduleFetchLocked() {
	c.generation++
	gen := c.generation
	text := c.state.CandidateText

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, func() {
		c.fetch(gen, text)
	})
}

// fetch выполняет запрос и применяет ответ, только если поколение
// не изменилось с момента постановки запроса.
func (c *Controller) fetch(gen uint64, text string) {
	suggestions, err := c.fetcher.Fetch(context.Background(), text, c.itc)
	if err != nil {
		slog.Debug("Transliteration fetch failed", "err", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Active || gen != c.generation {
		return
	}

	c.state.Suggestions = suggestions
	c.state.SelectedIndex = 0
}

// HandleKey обрабатывает клавишу при активном контроллере.
// Возвращает true, если клавиша была поглощена. Навигация по вариантам
// циклическая, в отличие от меню slash-команд.
func (c *Controller) HandleKey(key Key) bool {
	c.mu.Lock()

	if !c.state.Active {
		c.mu.Unlock()
		return false
	}

	n := len(c.state.Suggestions)

	switch key {
	case KeyArrowDown:
		if n > 0 {
			c.state.SelectedIndex = (c.state.SelectedIndex + 1) % n
		}
		c.mu.Unlock()
		return true
	case KeyArrowUp:
		if n > 0 {
			c.state.SelectedIndex = (c.state.SelectedIndex - 1 + n) % n
		}
		c.mu.Unlock()
		return true
	case KeyEnter:
		idx := c.state.SelectedIndex
		c.mu.Unlock()
		return c.Accept(idx)
	case KeyEscape:
		c.deactivateLocked()
		c.mu.Unlock()
		return true
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '5' {
		idx := int(key[0] - '1')
		c.mu.Unlock()
		return c.Accept(idx)
	}

	c.mu.Unlock()
	return false
}

// Accept заменяет текст кандидата вариантом с индексом idx плюс
// пробел, переносит курсор сразу за вставку и деактивирует контроллер.
// Замена и курсор применяются одной атомарной транзакцией.
func (c *Controller) Accept(idx int) bool {
	c.mu.Lock()

	if !c.state.Active || idx < 0 || idx >= len(c.state.Suggestions) {
		c.mu.Unlock()
		return false
	}

	suggestion := c.state.Suggestions[idx]
	from := c.state.SpanStart
	to := c.state.SpanEnd
	c.deactivateLocked()
	c.mu.Unlock()

	replacement := suggestion + " "
	c.session.Apply(func(tx *engine.Tx) {
		tx.Replace(from, to, replacement)
		tx.SetCursor(from + len([]rune(replacement)))
	})

	return true
}

// deactivateLocked сбрасывает состояние и обесценивает ответы
// всех запросов в полете.
func (c *Controller) deactivateLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.generation++
	c.state = State{}
}
