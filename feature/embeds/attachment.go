package embeds

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// AttachmentPrefix marks a string value as a reference to a local file.
const AttachmentPrefix = "attachment://"

// Attachment is a resolved local file and the name it is uploaded under.
type Attachment struct {
	// Path is the location of the file on the local filesystem.
	Path string `json:"path"`
	// Name is the upload name referenced by "attachment://<Name>".
	Name string `json:"name"`
}

// Placeholder returns the placeholder string that references name.
func Placeholder(name string) string {
	return AttachmentPrefix + name
}

// Collect walks v and returns the set of names referenced by attachment placeholders.
// Every mapping value and sequence element is visited regardless of its key.
func Collect(v any) map[string]struct{} {
	names := make(map[string]struct{})
	collect(v, names)
	return names
}

func collect(v any, names map[string]struct{}) {
	switch node := v.(type) {
	case string:
		if strings.HasPrefix(node, AttachmentPrefix) {
			names[strings.TrimPrefix(node, AttachmentPrefix)] = struct{}{}
		}
	case []any:
		for _, item := range node {
			collect(item, names)
		}
	case []Embed:
		for _, item := range node {
			collect(item, names)
		}
	case Embed:
		for _, item := range node {
			collect(item, names)
		}
	case map[string]any:
		for _, item := range node {
			collect(item, names)
		}
	case map[any]any:
		for _, item := range node {
			collect(item, names)
		}
	}
}

// Resolve maps attachment names to files inside dir.
// Names that do not point at an existing regular file are dropped.
// The result is sorted by name.
func Resolve(fs afero.Fs, dir string, names map[string]struct{}) []Attachment {
	keys := make([]string, 0, len(names))
	for name := range names {
		keys = append(keys, name)
	}
	sort.Strings(keys)

	attachments := make([]Attachment, 0, len(keys))
	for _, name := range keys {
		if !isLocalName(name) {
			continue
		}

		path := filepath.Join(dir, name)
		info, err := fs.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		attachments = append(attachments, Attachment{Path: path, Name: name})
	}

	return attachments
}

// isLocalName rejects names that would escape the channel directory.
func isLocalName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
