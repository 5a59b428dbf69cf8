package embeds

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedDocument is returned when a definition matches none of the accepted shapes.
var ErrUnsupportedDocument = errors.New("unsupported definition document")

// Embed is one opaque message embed.
type Embed map[string]any

// Shape identifies how a definition document is interpreted.
type Shape string

const (
	// ShapeList is a top-level sequence of embeds, one message per embed.
	ShapeList Shape = "list"
	// ShapeEnvelope is an object with an "embeds" field, one message for all embeds.
	ShapeEnvelope Shape = "envelope"
	// ShapeSingle is any other object, sent as a single embed.
	ShapeSingle Shape = "single"
)

// envelopeField is the field that turns an object into an envelope.
const envelopeField = "embeds"

// Document is a decoded definition file.
type Document struct {
	// Shape is the interpretation chosen for the document.
	Shape Shape
	// Embeds holds the embeds in document order.
	Embeds []Embed
}

// IsDefinitionFile reports whether name has a recognized definition extension.
func IsDefinitionFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// ListDefinitionFiles returns the definition files directly inside dir,
// sorted byte-wise. Subdirectories are not descended into.
func ListDefinitionFiles(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsDefinitionFile(entry.Name()) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

// ParseFile reads a definition file and decodes it according to its extension.
func ParseFile(fs afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	raw, err := Unmarshal(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	doc, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return doc, nil
}

// Unmarshal parses data as JSON or YAML based on ext and normalizes the result
// so that every mapping has string keys.
func Unmarshal(ext string, data []byte) (any, error) {
	var raw any

	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		var extra any
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			if err != nil {
				return nil, err
			}
			return nil, errors.New("multiple YAML documents in one file")
		}
	default:
		return nil, fmt.Errorf("unknown definition extension %q", ext)
	}

	return normalize(raw), nil
}

// Decode classifies an already parsed value into a Document.
// Sequences are checked first, then objects carrying an "embeds" field,
// then any other object.
func Decode(v any) (*Document, error) {
	switch node := normalize(v).(type) {
	case []any:
		embeds, err := toEmbeds(node)
		if err != nil {
			return nil, err
		}
		return &Document{Shape: ShapeList, Embeds: embeds}, nil

	case map[string]any:
		field, ok := node[envelopeField]
		if !ok {
			return &Document{Shape: ShapeSingle, Embeds: []Embed{Embed(node)}}, nil
		}

		list, ok := field.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %q must be a list, got %T", ErrUnsupportedDocument, envelopeField, field)
		}
		embeds, err := toEmbeds(list)
		if err != nil {
			return nil, err
		}
		return &Document{Shape: ShapeEnvelope, Embeds: embeds}, nil

	default:
		return nil, fmt.Errorf("%w: top level is %T", ErrUnsupportedDocument, v)
	}
}

func toEmbeds(list []any) ([]Embed, error) {
	embeds := make([]Embed, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: embed %d is %T, not an object", ErrUnsupportedDocument, i, item)
		}
		embeds = append(embeds, Embed(obj))
	}
	return embeds, nil
}

// normalize converts YAML mappings with non-string keys into map[string]any.
func normalize(v any) any {
	switch node := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(node))
		for k, item := range node {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case map[string]any:
		for k, item := range node {
			node[k] = normalize(item)
		}
		return node
	case Embed:
		return normalize(map[string]any(node))
	case []any:
		for i, item := range node {
			node[i] = normalize(item)
		}
		return node
	default:
		return v
	}
}
