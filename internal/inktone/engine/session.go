// Пакет engine реализует headless-сессию документа блочного редактора.
//
// Основные возможности:
//   - Документ как упорядоченный список блоков с позициями в рунах
//   - Атомарные транзакции (Apply) со списком шагов и маппингом позиций
//   - Подписка на транзакции (OnTransaction) для реактивных контроллеров
//   - Детерминированная геометрия (CoordsAt) для позиционирования меню
//   - Сериализация в HTML, TipTap JSON и plain text
package engine

import (
	"slices"
	"strings"
	"sync"
)

// Геометрические константы headless-раскладки. Каждый блок занимает
// одну строку, перенос строк внутри блока не моделируется.
const (
	lineHeight = 24.0
	charWidth  = 8.0
)

// Coords - экранные координаты позиции документа.
type Coords struct {
	Left   float64
	Top    float64
	Bottom float64
}

// Session - сессия редактирования одного документа.
// Все методы потокобезопасны, но модель однопоточная: изменения
// сериализуются мьютексом, слушатели вызываются вне блокировки.
type Session struct {
	mu        sync.Mutex
	blocks    []Block
	cursor    int
	listeners []func(*Transaction)
}

// NewSession создает сессию с одним пустым параграфом.
func NewSession() *Session {
	return &Session{
		blocks: []Block{{Kind: KindParagraph}},
	}
}

// OnTransaction подписывает слушателя на все транзакции сессии,
// включая транзакции, не меняющие документ (перемещение курсора).
func (s *Session) OnTransaction(fn func(*Transaction)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Apply выполняет атомарную транзакцию. Все шаги внутри fn применяются
// как единое изменение, после чего слушатели получают Transaction
// с шагами и маппингом позиций.
func (s *Session) Apply(fn func(*Tx)) *Transaction {
	s.mu.Lock()

	tx := &Tx{s: s}
	fn(tx)

	if tx.cursorSet {
		s.cursor = s.clampPos(tx.cursor)
	} else {
		s.cursor = s.clampPos(tx.mapping().Map(s.cursor))
	}

	tr := &Transaction{
		Steps:      tx.steps,
		Mapping:    tx.mapping(),
		DocChanged: tx.docChanged,
	}

	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(tr)
	}

	return tr
}

// Cursor возвращает текущую позицию курсора.
func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// SetCursor перемещает курсор без изменения документа.
// Слушатели получают транзакцию с DocChanged=false.
func (s *Session) SetCursor(pos int) {
	s.Apply(func(tx *Tx) {
		tx.SetCursor(pos)
	})
}

// DocumentLength возвращает длину документа в позициях: текст каждого
// блока плюс один разделитель на блок.
func (s *Session) DocumentLength() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docLength()
}

// Text возвращает полный текст документа, блоки разделены переводом строки.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	parts := make([]string, len(s.blocks))
	for i, b := range s.blocks {
		parts[i] = b.Text
	}
	return strings.Join(parts, "\n")
}

// TextBetween возвращает текст в диапазоне позиций [from, to).
// Разделители блоков отдаются как перевод строки.
func (s *Session) TextBetween(from, to int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	from = s.clampPosLocked(from)
	to = s.clampPosLocked(to)
	if from >= to {
		return ""
	}

	var sb strings.Builder
	start := 0
	for _, b := range s.blocks {
		runes := []rune(b.Text)
		end := start + len(runes)
		if from < end && to > start {
			lo := max(from-start, 0)
			hi := min(to-start, len(runes))
			sb.WriteString(string(runes[lo:hi]))
		}
		// разделитель блока на позиции end
		if from <= end && to > end {
			sb.WriteRune('\n')
		}
		start = end + 1
	}
	return sb.String()
}

// BlockAt возвращает блок, содержащий позицию pos, вместе с его
// абсолютным диапазоном. Позиция разделителя относится к блоку слева.
func (s *Session) BlockAt(pos int) BlockRef {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos = s.clampPosLocked(pos)
	idx, start := s.locate(pos)
	b := s.blocks[idx]
	return BlockRef{
		Index: idx,
		Start: start,
		End:   start + b.Len(),
		Block: b,
	}
}

// CoordsAt возвращает детерминированные экранные координаты позиции:
// каждый блок занимает одну строку фиксированной высоты.
func (s *Session) CoordsAt(pos int) Coords {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos = s.clampPosLocked(pos)
	idx, start := s.locate(pos)
	top := float64(idx) * lineHeight
	return Coords{
		Left:   float64(pos-start) * charWidth,
		Top:    top,
		Bottom: top + lineHeight,
	}
}

// Blocks возвращает копию блоков документа.
func (s *Session) Blocks() []Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.blocks)
}

func (s *Session) docLength() int {
	n := 0
	for _, b := range s.blocks {
		n += b.Len() + 1
	}
	return n
}

func (s *Session) clampPos(pos int) int {
	return s.clampPosLocked(pos)
}

func (s *Session) clampPosLocked(pos int) int {
	if pos < 0 {
		return 0
	}
	// последняя валидная позиция - конец текста последнего блока
	last := s.docLength() - 1
	if pos > last {
		return last
	}
	return pos
}

// locate возвращает индекс блока, содержащего позицию pos, и абсолютную
// позицию начала его текста. Позиция разделителя принадлежит блоку слева.
func (s *Session) locate(pos int) (idx, start int) {
	for i, b := range s.blocks {
		end := start + b.Len()
		if pos <= end {
			return i, start
		}
		start = end + 1
	}
	return len(s.blocks) - 1, start - s.blocks[len(s.blocks)-1].Len() - 1
}
