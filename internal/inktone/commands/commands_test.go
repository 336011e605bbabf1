package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inktone/inktone.go/internal/inktone/engine"
)

func TestFilterEmptyTermReturnsTopLevel(t *testing.T) {
	got := Filter("")
	require.Len(t, got, len(Commands()))
	assert.Equal(t, KindHeadingMenu, got[0].Kind)
}

func TestFilterHeadReturnsSixHeadings(t *testing.T) {
	got := Filter("head")

	require.Len(t, got, 6)
	for i, cmd := range got {
		assert.Equal(t, Kind(int(KindHeading1)+i), cmd.Kind)
		// псевдокоманда подсписка не попадает в результат
		assert.NotEqual(t, KindHeadingMenu, cmd.Kind)
	}
}

func TestFilterCaseInsensitive(t *testing.T) {
	got := Filter("BULLET")
	require.Len(t, got, 1)
	assert.Equal(t, KindBulletList, got[0].Kind)
}

func TestFilterNoMatches(t *testing.T) {
	assert.Empty(t, Filter("zzz"))
}

func TestHeadingLevel(t *testing.T) {
	assert.Equal(t, 3, KindHeading3.HeadingLevel())
	assert.Equal(t, 0, KindBulletList.HeadingLevel())
	assert.Equal(t, 0, KindHeadingMenu.HeadingLevel())
}

func TestExecuteTogglesBlocks(t *testing.T) {
	s := engine.NewSession()
	s.Apply(func(tx *engine.Tx) {
		tx.InsertText(0, "text")
	})

	s.Apply(func(tx *engine.Tx) {
		Execute(KindHeading2, tx)
	})
	blocks := s.Blocks()
	assert.Equal(t, engine.KindHeading, blocks[0].Kind)
	assert.Equal(t, 2, blocks[0].Level)

	s.Apply(func(tx *engine.Tx) {
		Execute(KindCodeBlock, tx)
	})
	assert.Equal(t, engine.KindCode, s.Blocks()[0].Kind)
}

func TestExecuteHeadingMenuIsNoop(t *testing.T) {
	s := engine.NewSession()
	s.Apply(func(tx *engine.Tx) {
		tx.InsertText(0, "text")
	})

	tr := s.Apply(func(tx *engine.Tx) {
		Execute(KindHeadingMenu, tx)
	})
	assert.False(t, tr.DocChanged)
	assert.Equal(t, engine.KindParagraph, s.Blocks()[0].Kind)
}
