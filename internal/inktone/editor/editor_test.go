package editor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inktone/inktone.go/internal/inktone/editor/edtypes"
)

func TestParseTaskList(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(
		`<ul data-type="taskList"><li data-checked="true"><p>done</p></li><li data-checked="false"><p>todo</p></li></ul>`))
	require.NoError(t, err)
	require.Len(t, doc.Elements, 1)

	list, ok := doc.Elements[0].(*edtypes.List)
	require.True(t, ok)
	assert.True(t, list.TaskList)
	assert.False(t, list.Numbered)
	require.Len(t, list.Elements, 2)
	assert.True(t, list.Elements[0].Checked)
	assert.False(t, list.Elements[1].Checked)
}

func TestParseFigureWithCaption(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(
		`<figure><img src="https://cdn.example/pic.png" alt="pic" style="width: 300px"><figcaption>cap</figcaption></figure>`))
	require.NoError(t, err)
	require.Len(t, doc.Elements, 1)

	img, ok := doc.Elements[0].(*edtypes.Image)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example/pic.png", img.Src.String())
	assert.Equal(t, "pic", img.Alt)
	assert.Equal(t, "cap", img.Caption)
	assert.Equal(t, 300, img.Width)
}

func TestParseCodeLanguageClass(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(
		`<pre><code class="language-go">x := 1</code></pre>`))
	require.NoError(t, err)
	require.Len(t, doc.Elements, 1)

	code, ok := doc.Elements[0].(*edtypes.Code)
	require.True(t, ok)
	assert.Equal(t, "go", code.Language)
	assert.Equal(t, "x := 1", code.Content)
}

func TestParseInlineMarks(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(
		`<p>plain <strong>bold</strong><em>italic</em><a href="https://example.com">link</a></p>`))
	require.NoError(t, err)

	p, ok := doc.Elements[0].(*edtypes.Paragraph)
	require.True(t, ok)
	require.Len(t, p.Content, 4)

	bold := p.Content[1].(edtypes.Text)
	assert.True(t, bold.Strong)
	italic := p.Content[2].(edtypes.Text)
	assert.True(t, italic.Italic)
	linked := p.Content[3].(edtypes.Text)
	require.NotNil(t, linked.URL)
	assert.Equal(t, "https://example.com", linked.URL.String())
}

func TestHTMLRoundTripStable(t *testing.T) {
	const src = `<h2>Title</h2>` +
		`<p>plain <strong>bold</strong></p>` +
		`<blockquote><p>quoted</p></blockquote>` +
		`<pre><code class="language-go">x := 1</code></pre>` +
		`<ol><li><p>first</p></li><li><p>second</p></li></ol>` +
		`<ul data-type="taskList"><li data-checked="true"><p>done</p></li></ul>` +
		`<figure><img src="https://cdn.example/pic.png" alt="pic"><figcaption>cap</figcaption></figure>` +
		`<hr>`

	doc, err := ParseDocument(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, src, WriteHTML(doc))

	// повторный проход не меняет разметку
	again, err := ParseDocument(strings.NewReader(WriteHTML(doc)))
	require.NoError(t, err)
	assert.Equal(t, src, WriteHTML(again))
}
