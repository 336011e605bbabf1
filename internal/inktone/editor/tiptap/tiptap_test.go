package tiptap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inktone/inktone.go/internal/inktone/editor/edtypes"
)

const sampleDoc = `{
  "type": "doc",
  "content": [
    {"type": "heading", "attrs": {"level": 2}, "content": [{"type": "text", "text": "Title"}]},
    {"type": "paragraph", "content": [
      {"type": "text", "text": "plain "},
      {"type": "text", "text": "bold", "marks": [{"type": "bold"}]},
      {"type": "text", "text": " link", "marks": [{"type": "link", "attrs": {"href": "https://example.com"}}]}
    ]},
    {"type": "codeBlock", "attrs": {"language": "go"}, "content": [{"type": "text", "text": "x := 1"}]},
    {"type": "taskList", "content": [
      {"type": "taskItem", "attrs": {"checked": true}, "content": [
        {"type": "paragraph", "content": [{"type": "text", "text": "done"}]}
      ]},
      {"type": "taskItem", "attrs": {"checked": false}, "content": [
        {"type": "paragraph", "content": [{"type": "text", "text": "todo"}]}
      ]}
    ]},
    {"type": "horizontalRule"}
  ]
}`

func TestParseJSONSampleDocument(t *testing.T) {
	doc, err := ParseJSON(strings.NewReader(sampleDoc))
	require.NoError(t, err)
	require.Len(t, doc.Elements, 5)

	h, ok := doc.Elements[0].(*edtypes.Heading)
	require.True(t, ok)
	assert.Equal(t, 2, h.Level)

	p, ok := doc.Elements[1].(*edtypes.Paragraph)
	require.True(t, ok)
	require.Len(t, p.Content, 3)
	bold := p.Content[1].(edtypes.Text)
	assert.True(t, bold.Strong)
	linked := p.Content[2].(edtypes.Text)
	require.NotNil(t, linked.URL)
	assert.Equal(t, "https://example.com", linked.URL.String())

	code, ok := doc.Elements[2].(*edtypes.Code)
	require.True(t, ok)
	assert.Equal(t, "go", code.Language)
	assert.Equal(t, "x := 1", code.Content)

	list, ok := doc.Elements[3].(*edtypes.List)
	require.True(t, ok)
	assert.True(t, list.TaskList)
	require.Len(t, list.Elements, 2)
	assert.True(t, list.Elements[0].Checked)
	assert.False(t, list.Elements[1].Checked)

	_, ok = doc.Elements[4].(*edtypes.HorizontalRule)
	assert.True(t, ok)
}

func TestHeadingLevelClamped(t *testing.T) {
	doc, err := ParseJSON(strings.NewReader(
		`{"type":"doc","content":[{"type":"heading","attrs":{"level":9},"content":[{"type":"text","text":"x"}]}]}`))
	require.NoError(t, err)

	h := doc.Elements[0].(*edtypes.Heading)
	assert.Equal(t, 6, h.Level)
}

func TestUnknownNodeSkipped(t *testing.T) {
	doc, err := ParseJSON(strings.NewReader(
		`{"type":"doc","content":[{"type":"mention"},{"type":"paragraph","content":[{"type":"text","text":"x"}]}]}`))
	require.NoError(t, err)
	require.Len(t, doc.Elements, 1)
}

func TestImageWithoutSrcDropped(t *testing.T) {
	doc, err := ParseJSON(strings.NewReader(
		`{"type":"doc","content":[{"type":"image","attrs":{"alt":"no src"}}]}`))
	require.NoError(t, err)
	assert.Empty(t, doc.Elements)
}

func TestRoundTripPreservesStructure(t *testing.T) {
	doc, err := ParseJSON(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	data, err := Serialize(doc)
	require.NoError(t, err)

	again, err := ParseJSON(strings.NewReader(string(data)))
	require.NoError(t, err)
	require.Len(t, again.Elements, len(doc.Elements))

	h := again.Elements[0].(*edtypes.Heading)
	assert.Equal(t, 2, h.Level)

	list := again.Elements[3].(*edtypes.List)
	assert.True(t, list.TaskList)
	assert.True(t, list.Elements[0].Checked)
	assert.False(t, list.Elements[1].Checked)
}

func TestSerializeMarks(t *testing.T) {
	node := serializeText(edtypes.Text{
		Content:       "x",
		Strong:        true,
		Italic:        true,
		Strikethrough: true,
	})

	require.Len(t, node.Marks, 3)
	types := make([]string, 0, len(node.Marks))
	for _, m := range node.Marks {
		types = append(types, m.Type)
	}
	assert.Equal(t, []string{"bold", "italic", "strike"}, types)
}
