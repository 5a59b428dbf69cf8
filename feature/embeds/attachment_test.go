package embeds

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	tests := []struct {
		name string
		doc  any
		want []string
	}{
		{
			name: "NoPlaceholders",
			doc:  map[string]any{"title": "Rules", "color": 5814783, "inline": true, "extra": nil},
			want: []string{},
		},
		{
			name: "TopLevelString",
			doc:  "attachment://logo.png",
			want: []string{"logo.png"},
		},
		{
			name: "NestedAnyKey",
			doc: map[string]any{
				"image":  map[string]any{"url": "attachment://banner.png"},
				"footer": map[string]any{"icon_url": "attachment://icon.png"},
				"fields": []any{
					map[string]any{"name": "x", "value": "attachment://banner.png"},
					[]any{"attachment://deep.gif"},
				},
			},
			want: []string{"banner.png", "deep.gif", "icon.png"},
		},
		{
			name: "PrefixMustLead",
			doc:  map[string]any{"description": "see attachment://logo.png"},
			want: []string{},
		},
		{
			name: "YAMLInterfaceKeys",
			doc:  map[any]any{1: "attachment://one.png"},
			want: []string{"one.png"},
		},
		{
			name: "EmbedSlice",
			doc:  []Embed{{"thumbnail": map[string]any{"url": "attachment://a.png"}}},
			want: []string{"a.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Collect(tt.doc)
			names := make([]string, 0, len(got))
			for name := range got {
				names = append(names, name)
			}
			assert.ElementsMatch(t, tt.want, names)
		})
	}
}

func TestResolve(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/channels/rules/logo.png", []byte("png"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/channels/rules/banner.png", []byte("png"), 0o644))
	require.NoError(t, fs.MkdirAll("/channels/rules/folder.png", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/channels/secret.png", []byte("png"), 0o644))

	t.Run("ExistingFiles", func(t *testing.T) {
		names := map[string]struct{}{"logo.png": {}, "banner.png": {}}
		got := Resolve(fs, "/channels/rules", names)
		assert.Equal(t, []Attachment{
			{Path: "/channels/rules/banner.png", Name: "banner.png"},
			{Path: "/channels/rules/logo.png", Name: "logo.png"},
		}, got)
	})

	t.Run("MissingFileDropped", func(t *testing.T) {
		names := map[string]struct{}{"logo.png": {}, "missing.png": {}}
		got := Resolve(fs, "/channels/rules", names)
		require.Len(t, got, 1)
		assert.Equal(t, "logo.png", got[0].Name)
	})

	t.Run("DirectoryDropped", func(t *testing.T) {
		got := Resolve(fs, "/channels/rules", map[string]struct{}{"folder.png": {}})
		assert.Empty(t, got)
	})

	t.Run("EscapingNamesDropped", func(t *testing.T) {
		names := map[string]struct{}{"../secret.png": {}, "": {}, "..": {}}
		got := Resolve(fs, "/channels/rules", names)
		assert.Empty(t, got)
	})

	t.Run("NoNames", func(t *testing.T) {
		got := Resolve(fs, "/channels/rules", map[string]struct{}{})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "attachment://logo.png", Placeholder("logo.png"))
}
