package slashmenu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inktone/inktone.go/internal/inktone/commands"
	"github.com/inktone/inktone.go/internal/inktone/engine"
)

func typeText(t *testing.T, s *engine.Session, text string) {
	t.Helper()
	for _, r := range text {
		ch := string(r)
		s.Apply(func(tx *engine.Tx) {
			pos := tx.Cursor()
			tx.InsertText(pos, ch)
			tx.SetCursor(pos + 1)
		})
	}
}

func TestTriggerOpensMenu(t *testing.T) {
	s := engine.NewSession()
	m := New(s, 1000)

	typeText(t, s, "/")

	st := m.State()
	assert.True(t, st.IsOpen)
	assert.Equal(t, "", st.SearchTerm)
	require.NotNil(t, st.Anchor)
	assert.Len(t, m.VisibleCommands(), len(commands.Commands()))
}

func TestSearchTermFollowsTyping(t *testing.T) {
	s := engine.NewSession()
	m := New(s, 1000)

	typeText(t, s, "/head")

	st := m.State()
	assert.True(t, st.IsOpen)
	assert.Equal(t, "head", st.SearchTerm)
	// шесть заголовков, без псевдокоманды подсписка
	assert.Len(t, m.VisibleCommands(), 6)
}

func TestSlashMidTextDoesNotArm(t *testing.T) {
	s := engine.NewSession()
	m := New(s, 1000)

	typeText(t, s, "hello /x")

	assert.False(t, m.State().IsOpen)
}

func TestLeadingSpacesStillArm(t *testing.T) {
	s := engine.NewSession()
	m := New(s, 1000)

	typeText(t, s, "  /qu")

	st := m.State()
	assert.True(t, st.IsOpen)
	assert.Equal(t, "qu", st.SearchTerm)
}

func TestSelectionClampsWhenFilterNarrows(t *testing.T) {
	s := engine.NewSession()
	m := New(s, 1000)

	typeText(t, s, "/")
	for range 5 {
		m.HandleKey(KeyArrowDown)
	}
	assert.Equal(t, 5, m.State().SelectedIndex)

	for _, r := range "code" {
		typeText(t, s, string(r))
		st := m.State()
		visible := m.VisibleCommands()
		require.True(t, st.IsOpen)
		assert.Less(t, st.SelectedIndex, len(visible))
	}

	visible := m.VisibleCommands()
	require.Len(t, visible, 1)
	assert.Equal(t, commands.KindCodeBlock, visible[0].Kind)
	assert.Equal(t, 0, m.State().SelectedIndex)
}

func TestNavigationStopsAtEdges(t *testing.T) {
	s := engine.NewSession()
	m := New(s, 1000)

	typeText(t, s, "/")

	m.HandleKey(KeyArrowUp)
	assert.Equal(t, 0, m.State().SelectedIndex)

	n := len(m.VisibleCommands())
	for range n + 3 {
		m.HandleKey(KeyArrowDown)
	}
	assert.Equal(t, n-1, m.State().SelectedIndex)
}

func TestHeadingSublist(t *testing.T) {
	s := engine.NewSession()
	m := New(s, 1000)

	typeText(t, s, "/")
	// первая команда верхнего уровня открывает подсписок заголовков
	require.True(t, m.HandleKey(KeyArrowRight))

	st := m.State()
	assert.True(t, st.ShowHeadings)
	assert.Equal(t, 0, st.SelectedIndex)
	assert.Len(t, m.VisibleCommands(), 6)

	require.True(t, m.HandleKey(KeyArrowLeft))
	assert.False(t, m.State().ShowHeadings)
}

func TestEscapeClosesSublistFirst(t *testing.T) {
	s := engine.NewSession()
	m := New(s, 1000)

	typeText(t, s, "/")
	m.HandleKey(KeyTab)
	require.True(t, m.State().ShowHeadings)

	m.HandleKey(KeyEscape)
	st := m.State()
	assert.False(t, st.ShowHeadings)
	assert.True(t, st.IsOpen)

	m.HandleKey(KeyEscape)
	assert.False(t, m.State().IsOpen)
}

func TestManualCloseSuppressesSameTrigger(t *testing.T) {
	s := engine.NewSession()
	m := New(s, 1000)

	typeText(t, s, "/")
	m.HandleKey(KeyEscape)
	assert.False(t, m.State().IsOpen)

	// ввод поверх закрытого вручную триггера не открывает меню
	typeText(t, s, "he")
	assert.False(t, m.State().IsOpen)
}

func TestNewTriggerPositionReopens(t *testing.T) {
	s := engine.NewSession()
	m := New(s, 1000)

	typeText(t, s, "/")
	m.HandleKey(KeyEscape)
	require.False(t, m.State().IsOpen)

	// триггер на новой позиции сбрасывает ручное закрытие
	typeText(t, s, " /")
	st := m.State()
	assert.True(t, st.IsOpen)
	assert.Equal(t, "", st.SearchTerm)
}

func TestEmptyFilterAutoCloses(t *testing.T) {
	s := engine.NewSession()
	m := New(s, 1000)

	typeText(t, s, "/zzz")

	assert.False(t, m.State().IsOpen)
}

func TestExecuteRemovesTriggerBeforeTransform(t *testing.T) {
	s := engine.NewSession()
	m := New(s, 1000)

	typeText(t, s, "Note\n/head")
	require.True(t, m.State().IsOpen)

	visible := m.VisibleCommands()
	var cmd commands.Command
	for _, c := range visible {
		if c.Kind == commands.KindHeading3 {
			cmd = c
		}
	}
	require.NotZero(t, cmd.ID)

	m.Execute(cmd)

	blocks := s.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, "Note", blocks[0].Text)
	assert.Equal(t, engine.KindHeading, blocks[1].Kind)
	assert.Equal(t, 3, blocks[1].Level)
	assert.Equal(t, "", blocks[1].Text)
	assert.False(t, m.State().IsOpen)
}

func TestEnterExecutesSelection(t *testing.T) {
	s := engine.NewSession()
	m := New(s, 1000)

	typeText(t, s, "/quote")
	require.True(t, m.State().IsOpen)

	require.True(t, m.HandleKey(KeyEnter))

	blocks := s.Blocks()
	assert.Equal(t, engine.KindQuote, blocks[0].Kind)
	assert.Equal(t, "", blocks[0].Text)
	assert.False(t, m.State().IsOpen)
}

func TestAnchorFlipsAboveWhenNoRoomBelow(t *testing.T) {
	s := engine.NewSession()

	tall := New(s, 10000)
	typeText(t, s, "/")
	st := tall.State()
	require.NotNil(t, st.Anchor)
	assert.Equal(t, s.CoordsAt(0).Bottom, st.Anchor.Top)

	short := engine.NewSession()
	flipped := New(short, 300)
	typeText(t, short, "/")
	st = flipped.State()
	require.NotNil(t, st.Anchor)
	assert.Equal(t, short.CoordsAt(0).Top-DefaultMenuHeight, st.Anchor.Top)
}

func TestClickOutsideCloses(t *testing.T) {
	s := engine.NewSession()
	m := New(s, 1000)

	typeText(t, s, "/")
	m.ClickOutside()

	assert.False(t, m.State().IsOpen)
	assert.False(t, m.HandleKey(KeyArrowDown))
}
