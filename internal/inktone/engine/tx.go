package engine

import (
	"slices"
	"strings"
)

// Step - один шаг транзакции: замена диапазона [From, To) на Insert.
// Вставка без удаления имеет From == To, удаление - пустой Insert.
type Step struct {
	From   int
	To     int
	Insert string
}

// StepMap описывает сдвиг позиций одним шагом.
type StepMap struct {
	From    int
	OldSize int
	NewSize int
}

// Mapping переводит позиции документа через серию шагов транзакции.
// Это центральный механизм, позволяющий контроллерам держать позиции
// (границы кандидата транслитерации, позиция триггера меню) валидными
// после чужих правок.
type Mapping struct {
	maps []StepMap
}

// Map возвращает позицию pos, пересчитанную через все шаги маппинга.
// Позиции внутри замененного диапазона схлопываются к его новому концу.
func (m Mapping) Map(pos int) int {
	for _, sm := range m.maps {
		if pos <= sm.From {
			continue
		}
		if pos >= sm.From+sm.OldSize {
			pos += sm.NewSize - sm.OldSize
			continue
		}
		pos = sm.From + sm.NewSize
	}
	return pos
}

// Transaction - результат применения Apply, передается слушателям.
type Transaction struct {
	Steps      []Step
	Mapping    Mapping
	DocChanged bool
}

// InsertedText возвращает конкатенацию вставленного шагами текста.
// Используется контроллерами для классификации ввода.
func (t *Transaction) InsertedText() string {
	var sb strings.Builder
	for _, step := range t.Steps {
		sb.WriteString(step.Insert)
	}
	return sb.String()
}

// HasDeletion сообщает, удалял ли хотя бы один шаг транзакции текст.
func (t *Transaction) HasDeletion() bool {
	for _, step := range t.Steps {
		if step.To > step.From {
			return true
		}
	}
	return false
}

// Tx - собираемая транзакция. Шаги применяются к документу немедленно
// и последовательно: позиции каждого следующего шага интерпретируются
// относительно документа после предыдущих шагов.
type Tx struct {
	s          *Session
	steps      []Step
	maps       []StepMap
	docChanged bool
	cursor     int
	cursorSet  bool
}

func (tx *Tx) mapping() Mapping {
	return Mapping{maps: tx.maps}
}

// SetCursor задает позицию курсора после транзакции.
func (tx *Tx) SetCursor(pos int) {
	tx.cursor = pos
	tx.cursorSet = true
}

// Cursor возвращает позицию курсора с учетом уже примененных шагов.
func (tx *Tx) Cursor() int {
	if tx.cursorSet {
		return tx.cursor
	}
	return tx.mapping().Map(tx.s.cursor)
}

// InsertText вставляет текст в позицию pos. Перевод строки в тексте
// разбивает блок.
func (tx *Tx) InsertText(pos int, text string) {
	tx.Replace(pos, pos, text)
}

// Delete удаляет диапазон [from, to). Удаление разделителя блоков
// сливает соседние блоки.
func (tx *Tx) Delete(from, to int) {
	tx.Replace(from, to, "")
}

// Replace заменяет диапазон [from, to) на text одним шагом.
func (tx *Tx) Replace(from, to int, text string) {
	s := tx.s

	from = s.clampPosLocked(from)
	to = s.clampPosLocked(to)
	if to < from {
		from, to = to, from
	}
	if from == to && text == "" {
		return
	}

	bi, bStart := s.locate(from)
	ei, eStart := s.locate(to)

	headRunes := []rune(s.blocks[bi].Text)
	tailRunes := []rune(s.blocks[ei].Text)
	head := string(headRunes[:min(from-bStart, len(headRunes))])
	tailOffset := to - eStart
	var tail string
	if tailOffset < len(tailRunes) {
		tail = string(tailRunes[tailOffset:])
	}

	parts := strings.Split(text, "\n")

	first := s.blocks[bi]
	first.Text = head + parts[0]

	replacement := []Block{first}
	for _, part := range parts[1:] {
		replacement = append(replacement, Block{
			Kind:  first.Kind,
			Level: first.Level,
			Text:  part,
		})
	}
	replacement[len(replacement)-1].Text += tail

	s.blocks = slices.Concat(s.blocks[:bi], replacement, s.blocks[ei+1:])

	insLen := len([]rune(text))
	tx.steps = append(tx.steps, Step{From: from, To: to, Insert: text})
	tx.maps = append(tx.maps, StepMap{From: from, OldSize: to - from, NewSize: insLen})
	tx.docChanged = true
}

// insertBlocks вставляет блоки после блока с индексом after и
// регистрирует сдвиг позиций на их суммарную длину.
func (tx *Tx) insertBlocks(after int, blocks ...Block) {
	s := tx.s

	boundary := 0
	for i := 0; i <= after; i++ {
		boundary += s.blocks[i].Len() + 1
	}

	inserted := 0
	for _, b := range blocks {
		inserted += b.Len() + 1
	}

	s.blocks = slices.Concat(s.blocks[:after+1], slices.Clone(blocks), s.blocks[after+1:])

	tx.maps = append(tx.maps, StepMap{From: boundary, OldSize: 0, NewSize: inserted})
	tx.docChanged = true
}
