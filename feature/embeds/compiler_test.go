package embeds

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChannelFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/rules/foo.png", []byte("png"), 0o644))
	return fs
}

func TestCompile_List(t *testing.T) {
	fs := newChannelFs(t)
	doc := &Document{Shape: ShapeList, Embeds: []Embed{
		{"title": "1"}, {"title": "2"}, {"title": "3"},
	}}

	messages := Compile(doc, fs, "/rules")
	require.Len(t, messages, 3)
	for i, msg := range messages {
		require.Len(t, msg.Embeds, 1)
		assert.Equal(t, doc.Embeds[i], msg.Embeds[0])
		assert.Empty(t, msg.Attachments)
	}
}

func TestCompile_Envelope(t *testing.T) {
	fs := newChannelFs(t)
	doc := &Document{Shape: ShapeEnvelope, Embeds: []Embed{
		{"title": "a"}, {"title": "b"},
	}}

	messages := Compile(doc, fs, "/rules")
	require.Len(t, messages, 1)
	assert.Equal(t, doc.Embeds, messages[0].Embeds)
}

func TestCompile_Single(t *testing.T) {
	fs := newChannelFs(t)
	embed := Embed{"title": "solo"}

	messages := Compile(&Document{Shape: ShapeSingle, Embeds: []Embed{embed}}, fs, "/rules")
	require.Len(t, messages, 1)
	require.Len(t, messages[0].Embeds, 1)
	assert.Equal(t, embed, messages[0].Embeds[0])
}

func TestCompile_EmptyEnvelope(t *testing.T) {
	messages := Compile(&Document{Shape: ShapeEnvelope, Embeds: []Embed{}}, newChannelFs(t), "/rules")
	assert.Empty(t, messages)
}

func TestCompile_AttachmentsPerMessage(t *testing.T) {
	fs := newChannelFs(t)
	doc := &Document{Shape: ShapeList, Embeds: []Embed{
		{"image": map[string]any{"url": "attachment://foo.png"}},
		{"thumbnail": map[string]any{"url": "attachment://foo.png"}},
		{"title": "plain"},
	}}

	messages := Compile(doc, fs, "/rules")
	require.Len(t, messages, 3)
	assert.Equal(t, []Attachment{{Path: "/rules/foo.png", Name: "foo.png"}}, messages[0].Attachments)
	assert.Equal(t, []Attachment{{Path: "/rules/foo.png", Name: "foo.png"}}, messages[1].Attachments)
	assert.Empty(t, messages[2].Attachments)
}

func TestCompile_MissingAttachment(t *testing.T) {
	fs := newChannelFs(t)
	doc := &Document{Shape: ShapeSingle, Embeds: []Embed{
		{"image": map[string]any{"url": "attachment://missing.png"}},
	}}

	messages := Compile(doc, fs, "/rules")
	require.Len(t, messages, 1)
	assert.Empty(t, messages[0].Attachments)
	assert.Len(t, messages[0].Embeds, 1)
}

func TestCompile_DeduplicatesWithinMessage(t *testing.T) {
	fs := newChannelFs(t)
	doc := &Document{Shape: ShapeEnvelope, Embeds: []Embed{
		{"image": map[string]any{"url": "attachment://foo.png"}},
		{"footer": map[string]any{"icon_url": "attachment://foo.png"}},
	}}

	messages := Compile(doc, fs, "/rules")
	require.Len(t, messages, 1)
	assert.Len(t, messages[0].Attachments, 1)
}
