package autosave

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/inktone/inktone.go/internal/inktone/dao"
	"github.com/inktone/inktone.go/internal/inktone/engine"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&dao.Post{}))
	return db
}

func TestDebouncedSaveWritesOnce(t *testing.T) {
	db := testDB(t)
	s := engine.NewSession()
	c := New(s, db, 30*time.Millisecond)
	defer c.Stop()

	// пять правок внутри окна дебаунса дают одну запись
	for _, word := range []string{"one", " two", " three", " four", " five"} {
		w := word
		s.Apply(func(tx *engine.Tx) {
			pos := tx.Cursor()
			tx.InsertText(pos, w)
			tx.SetCursor(pos + len([]rune(w)))
		})
	}

	time.Sleep(150 * time.Millisecond)

	posts, err := dao.GetPosts(db)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Untitled", posts[0].Title)
	assert.Contains(t, posts[0].Content, "one two three four five")
	assert.Equal(t, posts[0].ID, c.PostID())
}

func TestSubsequentSavesUpdateSamePost(t *testing.T) {
	db := testDB(t)
	s := engine.NewSession()
	c := New(s, db, 10*time.Millisecond)
	defer c.Stop()

	s.Apply(func(tx *engine.Tx) {
		tx.InsertText(0, "first")
		tx.SetCursor(5)
	})
	time.Sleep(100 * time.Millisecond)

	first, err := dao.GetPost(db, c.PostID())
	require.NoError(t, err)

	s.Apply(func(tx *engine.Tx) {
		tx.InsertText(5, " second")
		tx.SetCursor(12)
	})
	time.Sleep(100 * time.Millisecond)

	posts, err := dao.GetPosts(db)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, first.ID, posts[0].ID)
	assert.Contains(t, posts[0].Content, "first second")
	assert.Equal(t, first.CreatedAt.Unix(), posts[0].CreatedAt.Unix())
}

func TestEmptyDocumentNeverPersisted(t *testing.T) {
	db := testDB(t)
	s := engine.NewSession()
	c := New(s, db, 10*time.Millisecond)
	defer c.Stop()

	// ввод и полное удаление оставляют документ пустым
	s.Apply(func(tx *engine.Tx) {
		tx.InsertText(0, "draft")
	})
	s.Apply(func(tx *engine.Tx) {
		tx.Delete(0, 5)
	})
	time.Sleep(100 * time.Millisecond)

	posts, err := dao.GetPosts(db)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Empty(t, c.PostID())
}

func TestTitleAloneTriggersSave(t *testing.T) {
	db := testDB(t)
	s := engine.NewSession()
	c := New(s, db, 10*time.Millisecond)
	defer c.Stop()

	c.SetTitle("Notes")
	time.Sleep(100 * time.Millisecond)

	posts, err := dao.GetPosts(db)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Notes", posts[0].Title)
}

func TestAttachUpdatesExistingPost(t *testing.T) {
	db := testDB(t)
	existing, err := dao.CreatePost(db, "Old title", "<p>old</p>")
	require.NoError(t, err)

	s := engine.NewSession()
	c := New(s, db, 10*time.Millisecond)
	defer c.Stop()
	c.Attach(existing.ID, existing.Title)

	s.Apply(func(tx *engine.Tx) {
		tx.InsertText(0, "new body")
	})
	time.Sleep(100 * time.Millisecond)

	posts, err := dao.GetPosts(db)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, existing.ID, posts[0].ID)
	assert.Equal(t, "Old title", posts[0].Title)
	assert.Contains(t, posts[0].Content, "new body")
}

func TestStopCancelsPendingSave(t *testing.T) {
	db := testDB(t)
	s := engine.NewSession()
	c := New(s, db, 30*time.Millisecond)

	s.Apply(func(tx *engine.Tx) {
		tx.InsertText(0, "text")
	})
	c.Stop()
	time.Sleep(100 * time.Millisecond)

	posts, err := dao.GetPosts(db)
	require.NoError(t, err)
	assert.Empty(t, posts)
}
