package transliterate

// Span - диапазон позиций документа для inline-подсветки кандидата.
type Span struct {
	From int
	To   int
}

// SuggestionItem - один вариант в плавающем списке.
type SuggestionItem struct {
	Index    int // 1-based, показывается как префикс и клавиша выбора
	Text     string
	Selected bool
}

// SuggestionList - плавающий список вариантов, якорь под текущей
// строкой кандидата.
type SuggestionList struct {
	Left  float64
	Top   float64
	Items []SuggestionItem
}

// Decorations - декорации активного контроллера для рендера.
type Decorations struct {
	Highlight *Span
	List      *SuggestionList
}

// Decorations возвращает текущие декорации или nil, если контроллер
// неактивен. Координаты якоря запрашиваются у сессии при каждом
// вызове: раскладка документа могла сдвинуться.
func (c *Controller) Decorations() *Decorations {
	c.mu.Lock()
	state := c.state
	c.mu.Unlock()

	if !state.Active {
		return nil
	}

	d := &Decorations{
		Highlight: &Span{From: state.SpanStart, To: state.SpanEnd},
	}

	if len(state.Suggestions) > 0 {
		coords := c.session.CoordsAt(state.SpanStart)
		list := &SuggestionList{
			Left:  coords.Left,
			Top:   coords.Bottom,
			Items: make([]SuggestionItem, 0, len(state.Suggestions)),
		}
		for i, s := range state.Suggestions {
			list.Items = append(list.Items, SuggestionItem{
				Index:    i + 1,
				Text:     s,
				Selected: i == state.SelectedIndex,
			})
		}
		d.List = list
	}

	return d
}
