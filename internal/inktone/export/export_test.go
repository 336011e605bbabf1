package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inktone/inktone.go/internal/inktone/engine"
)

func sampleSession(t *testing.T) *engine.Session {
	t.Helper()
	s := engine.NewSession()
	s.Apply(func(tx *engine.Tx) {
		tx.InsertText(0, "Title\nbody text\nfirst\nsecond")
	})
	s.Apply(func(tx *engine.Tx) {
		tx.SetCursor(0)
		tx.ToggleHeading(1)
	})
	s.Apply(func(tx *engine.Tx) {
		tx.SetCursor(17)
		tx.ToggleBulletList()
	})
	s.Apply(func(tx *engine.Tx) {
		tx.SetCursor(23)
		tx.ToggleBulletList()
	})
	return s
}

func TestFilenameCarriesTimestamp(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	f := HTML(sampleSession(t), now)

	assert.Equal(t, "document-2025-03-14T15:09:26Z.html", f.Name)
	assert.Equal(t, "text/html", f.ContentType)
}

func TestMinifiedHTMLSmallerOrEqual(t *testing.T) {
	s := sampleSession(t)
	now := time.Now()

	plain := HTML(s, now)
	minified, err := MinifiedHTML(s, now)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(minified.Data), len(plain.Data))
	assert.Contains(t, string(minified.Data), "Title")
}

func TestMarkdownExport(t *testing.T) {
	f, err := Markdown(sampleSession(t), time.Now())
	require.NoError(t, err)

	out := string(f.Data)
	assert.Contains(t, out, "# Title")
	assert.Contains(t, out, "body text")
	assert.Contains(t, out, "- first")
	assert.Contains(t, out, "- second")
	assert.Equal(t, "text/markdown", f.ContentType)
}

func TestTextExportHasNoTags(t *testing.T) {
	f := Text(sampleSession(t), time.Now())

	out := string(f.Data)
	assert.NotContains(t, out, "<")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body text")
}

func TestJSONExportParsesBack(t *testing.T) {
	s := sampleSession(t)
	f, err := JSON(s, time.Now())
	require.NoError(t, err)

	fresh := engine.NewSession()
	require.NoError(t, fresh.LoadJSON(f.Data))
	assert.Equal(t, s.HTML(), fresh.HTML())
}

func TestPDFExportProducesDocument(t *testing.T) {
	f, err := PDF(sampleSession(t), time.Now())
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", f.ContentType)
	assert.True(t, strings.HasPrefix(string(f.Data), "%PDF-"))
}
