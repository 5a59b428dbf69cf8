package embeds

import "github.com/spf13/afero"

// OutboundMessage is one message to send: its embeds and the files they reference.
type OutboundMessage struct {
	// Embeds are sent in order in a single message.
	Embeds []Embed `json:"embeds"`
	// Attachments are the resolved local files for this message only.
	Attachments []Attachment `json:"attachments"`
}

// Compile builds the ordered list of outbound messages for a document.
// Attachments are resolved against dir separately for each message, so two
// messages referencing the same file each carry it. A document without
// embeds compiles to no messages.
func Compile(doc *Document, fs afero.Fs, dir string) []OutboundMessage {
	if doc == nil || len(doc.Embeds) == 0 {
		return []OutboundMessage{}
	}

	var groups [][]Embed
	switch doc.Shape {
	case ShapeList:
		groups = make([][]Embed, 0, len(doc.Embeds))
		for _, embed := range doc.Embeds {
			groups = append(groups, []Embed{embed})
		}
	default:
		groups = [][]Embed{doc.Embeds}
	}

	messages := make([]OutboundMessage, 0, len(groups))
	for _, embeds := range groups {
		messages = append(messages, OutboundMessage{
			Embeds:      embeds,
			Attachments: Resolve(fs, dir, Collect(embeds)),
		})
	}

	return messages
}
