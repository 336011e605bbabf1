package engine

// Трансформации блоков, вызываемые командами slash-меню.
// Все операции работают с блоком, содержащим текущий курсор транзакции,
// и переключают вид блока, не трогая его текст.

func (tx *Tx) currentBlockIndex() int {
	idx, _ := tx.s.locate(tx.s.clampPosLocked(tx.Cursor()))
	return idx
}

func (tx *Tx) setKind(kind BlockKind, level int) {
	idx := tx.currentBlockIndex()
	b := &tx.s.blocks[idx]
	b.Kind = kind
	b.Level = level
	if kind != KindCode {
		b.Language = ""
	}
	if kind != KindTaskItem {
		b.Checked = false
	}
	tx.docChanged = true
}

// SetParagraph превращает текущий блок в параграф.
func (tx *Tx) SetParagraph() {
	tx.setKind(KindParagraph, 0)
}

// ToggleHeading переключает текущий блок между заголовком уровня level
// и параграфом. Уровень вне 1-6 приводится к ближайшей границе.
func (tx *Tx) ToggleHeading(level int) {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}

	idx := tx.currentBlockIndex()
	b := tx.s.blocks[idx]
	if b.Kind == KindHeading && b.Level == level {
		tx.setKind(KindParagraph, 0)
		return
	}
	tx.setKind(KindHeading, level)
}

// ToggleBulletList переключает текущий блок между элементом
// маркированного списка и параграфом.
func (tx *Tx) ToggleBulletList() {
	tx.toggle(KindBulletItem)
}

// ToggleOrderedList переключает текущий блок между элементом
// нумерованного списка и параграфом.
func (tx *Tx) ToggleOrderedList() {
	tx.toggle(KindOrderedItem)
}

// ToggleTaskList переключает текущий блок между элементом
// списка задач и параграфом.
func (tx *Tx) ToggleTaskList() {
	tx.toggle(KindTaskItem)
}

// ToggleBlockquote переключает текущий блок между цитатой и параграфом.
func (tx *Tx) ToggleBlockquote() {
	tx.toggle(KindQuote)
}

// ToggleCodeBlock переключает текущий блок между блоком кода и параграфом.
func (tx *Tx) ToggleCodeBlock() {
	tx.toggle(KindCode)
}

func (tx *Tx) toggle(kind BlockKind) {
	idx := tx.currentBlockIndex()
	if tx.s.blocks[idx].Kind == kind {
		tx.setKind(KindParagraph, 0)
		return
	}
	tx.setKind(kind, 0)
}

// InsertHorizontalRule вставляет горизонтальную линию после текущего
// блока и пустой параграф за ней, курсор переходит в параграф.
func (tx *Tx) InsertHorizontalRule() {
	idx := tx.currentBlockIndex()
	tx.insertBlocks(idx,
		Block{Kind: KindRule},
		Block{Kind: KindParagraph},
	)

	// позиция начала нового параграфа: конец текущего блока,
	// разделитель, пустая линия с разделителем
	start := 0
	for i := 0; i <= idx; i++ {
		start += tx.s.blocks[i].Len() + 1
	}
	tx.SetCursor(start + 1)
}

// InsertImage вставляет блок изображения. Пустой параграф под курсором
// заменяется на месте, иначе изображение вставляется следом.
func (tx *Tx) InsertImage(src, alt, caption string, width int) {
	idx := tx.currentBlockIndex()
	b := &tx.s.blocks[idx]

	if b.Kind == KindParagraph && b.Text == "" {
		b.Kind = KindImage
		b.Src = src
		b.Alt = alt
		b.Caption = caption
		b.Width = width
		tx.docChanged = true
		return
	}

	tx.insertBlocks(idx,
		Block{Kind: KindImage, Src: src, Alt: alt, Caption: caption, Width: width},
		Block{Kind: KindParagraph},
	)

	start := 0
	for i := 0; i <= idx; i++ {
		start += tx.s.blocks[i].Len() + 1
	}
	tx.SetCursor(start + 1)
}
