package embeds

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var (
	// ErrChannelNotFound is returned when a channel has no local directory.
	ErrChannelNotFound = errors.New("channel directory not found")
	// ErrInvalidDefinition is returned when a definition file cannot be parsed.
	ErrInvalidDefinition = errors.New("invalid definition")
)

// MessagePreview is one outbound message as it would be sent.
type MessagePreview struct {
	Embeds      []Embed  `json:"embeds"`
	Attachments []string `json:"attachments"`
}

// FilePreview is the compiled output of one definition file.
type FilePreview struct {
	File     string           `json:"file"`
	Shape    Shape            `json:"shape"`
	Messages []MessagePreview `json:"messages"`
}

// Preview is the compiled output of a channel directory.
type Preview struct {
	Channel string        `json:"channel"`
	Files   []FilePreview `json:"files"`
}

// Service compiles local channel directories without contacting Discord.
type Service struct {
	fs     afero.Fs
	root   string
	logger *zap.Logger
}

// NewService creates a new embeds service reading from root.
func NewService(fs afero.Fs, root string, logger *zap.Logger) *Service {
	return &Service{
		fs:     fs,
		root:   root,
		logger: logger,
	}
}

// Preview parses and compiles every definition file of a channel.
func (s *Service) Preview(channel string) (*Preview, error) {
	if channel == "" || channel == "." || channel == ".." || strings.ContainsAny(channel, `/\`) {
		return nil, ErrChannelNotFound
	}

	dir := filepath.Join(s.root, channel)
	exists, err := afero.DirExists(s.fs, dir)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrChannelNotFound
	}

	files, err := ListDefinitionFiles(s.fs, dir)
	if err != nil {
		return nil, err
	}

	preview := &Preview{Channel: channel, Files: make([]FilePreview, 0, len(files))}
	for _, file := range files {
		doc, err := ParseFile(s.fs, filepath.Join(dir, file))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
		}

		fp := FilePreview{File: file, Shape: doc.Shape, Messages: []MessagePreview{}}
		for _, msg := range Compile(doc, s.fs, dir) {
			names := make([]string, 0, len(msg.Attachments))
			for _, att := range msg.Attachments {
				names = append(names, att.Name)
			}
			fp.Messages = append(fp.Messages, MessagePreview{Embeds: msg.Embeds, Attachments: names})
		}
		preview.Files = append(preview.Files, fp)
	}

	return preview, nil
}
