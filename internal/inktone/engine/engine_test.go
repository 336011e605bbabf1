package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndText(t *testing.T) {
	s := NewSession()
	s.Apply(func(tx *Tx) {
		tx.InsertText(0, "hello")
	})

	assert.Equal(t, "hello", s.Text())
	assert.Equal(t, 6, s.DocumentLength())
}

func TestInsertSplitsBlocks(t *testing.T) {
	s := NewSession()
	s.Apply(func(tx *Tx) {
		tx.InsertText(0, "one\ntwo")
	})

	blocks := s.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, "one", blocks[0].Text)
	assert.Equal(t, "two", blocks[1].Text)
	assert.Equal(t, "one\ntwo", s.Text())
}

func TestDeleteMergesBlocks(t *testing.T) {
	s := NewSession()
	s.Apply(func(tx *Tx) {
		tx.InsertText(0, "one\ntwo")
	})
	// удаление разделителя между блоками
	s.Apply(func(tx *Tx) {
		tx.Delete(3, 4)
	})

	blocks := s.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, "onetwo", blocks[0].Text)
}

func TestMappingShiftsPositionsAfterInsert(t *testing.T) {
	s := NewSession()
	s.Apply(func(tx *Tx) {
		tx.InsertText(0, "abcdefghijklmnop")
	})

	tr := s.Apply(func(tx *Tx) {
		tx.InsertText(2, "xyz")
	})

	// позиции за точкой вставки сдвигаются на длину вставки
	assert.Equal(t, 13, tr.Mapping.Map(10))
	assert.Equal(t, 17, tr.Mapping.Map(14))
	// позиции до вставки не меняются
	assert.Equal(t, 1, tr.Mapping.Map(1))
	assert.Equal(t, 2, tr.Mapping.Map(2))
}

func TestMappingShrinksPositionsAfterDelete(t *testing.T) {
	s := NewSession()
	s.Apply(func(tx *Tx) {
		tx.InsertText(0, "abcdefghij")
	})

	tr := s.Apply(func(tx *Tx) {
		tx.Delete(2, 5)
	})

	assert.Equal(t, 7, tr.Mapping.Map(10))
	assert.Equal(t, 1, tr.Mapping.Map(1))
	// позиция внутри удаленного диапазона схлопывается к его началу
	assert.Equal(t, 2, tr.Mapping.Map(4))
}

func TestTextBetween(t *testing.T) {
	s := NewSession()
	s.Apply(func(tx *Tx) {
		tx.InsertText(0, "one\ntwo")
	})

	assert.Equal(t, "ne", s.TextBetween(1, 3))
	assert.Equal(t, "one\ntwo", s.TextBetween(0, 7))
	assert.Equal(t, "e\ntw", s.TextBetween(2, 6))
}

func TestBlockAt(t *testing.T) {
	s := NewSession()
	s.Apply(func(tx *Tx) {
		tx.InsertText(0, "one\ntwo")
	})

	ref := s.BlockAt(5)
	assert.Equal(t, 1, ref.Index)
	assert.Equal(t, 4, ref.Start)
	assert.Equal(t, 7, ref.End)
	assert.Equal(t, "two", ref.Block.Text)
}

func TestToggleHeading(t *testing.T) {
	s := NewSession()
	s.Apply(func(tx *Tx) {
		tx.InsertText(0, "title")
	})

	s.Apply(func(tx *Tx) {
		tx.ToggleHeading(2)
	})
	blocks := s.Blocks()
	assert.Equal(t, KindHeading, blocks[0].Kind)
	assert.Equal(t, 2, blocks[0].Level)

	// повторное переключение возвращает параграф
	s.Apply(func(tx *Tx) {
		tx.ToggleHeading(2)
	})
	assert.Equal(t, KindParagraph, s.Blocks()[0].Kind)
}

func TestInsertHorizontalRule(t *testing.T) {
	s := NewSession()
	s.Apply(func(tx *Tx) {
		tx.InsertText(0, "text")
	})

	s.Apply(func(tx *Tx) {
		tx.InsertHorizontalRule()
	})

	blocks := s.Blocks()
	require.Len(t, blocks, 3)
	assert.Equal(t, KindRule, blocks[1].Kind)
	assert.Equal(t, KindParagraph, blocks[2].Kind)
	// курсор в новом параграфе
	assert.Equal(t, 6, s.Cursor())
}

func TestCoordsAtDeterministic(t *testing.T) {
	s := NewSession()
	s.Apply(func(tx *Tx) {
		tx.InsertText(0, "one\ntwo")
	})

	first := s.CoordsAt(2)
	second := s.CoordsAt(5)
	assert.Equal(t, first.Left, 2*charWidth)
	assert.Equal(t, 0.0, first.Top)
	assert.Equal(t, lineHeight, second.Top)
	assert.Greater(t, second.Bottom, second.Top)
}

func TestJSONRoundTripReproducesHTML(t *testing.T) {
	s := NewSession()
	s.Apply(func(tx *Tx) {
		tx.InsertText(0, "Title\nbody text\nitem")
	})
	s.Apply(func(tx *Tx) {
		tx.SetCursor(2)
		tx.ToggleHeading(1)
	})
	end := s.DocumentLength() - 1
	s.Apply(func(tx *Tx) {
		tx.SetCursor(end)
		tx.ToggleBulletList()
	})

	original := s.HTML()
	data, err := s.JSON()
	require.NoError(t, err)

	fresh := NewSession()
	require.NoError(t, fresh.LoadJSON(data))
	assert.Equal(t, original, fresh.HTML())
}

func TestLoadHTML(t *testing.T) {
	s := NewSession()
	err := s.LoadHTML(strings.NewReader("<h1>Title</h1><p>body</p>"))
	require.NoError(t, err)

	blocks := s.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, KindHeading, blocks[0].Kind)
	assert.Equal(t, "Title", blocks[0].Text)
	assert.Equal(t, "body", blocks[1].Text)
}

func TestListenerObservesTransactions(t *testing.T) {
	s := NewSession()

	var got *Transaction
	s.OnTransaction(func(tr *Transaction) { got = tr })

	s.Apply(func(tx *Tx) {
		tx.InsertText(0, "ab")
	})

	require.NotNil(t, got)
	assert.True(t, got.DocChanged)
	assert.Equal(t, "ab", got.InsertedText())

	s.SetCursor(1)
	assert.False(t, got.DocChanged)
}
