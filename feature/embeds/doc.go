// Package embeds turns local definition files into the messages that are sent
// to a Discord channel.
//
// A channel directory holds definition files (.json, .yaml) and the local files
// they reference through attachment placeholders.
//
// # Definition Shapes
//
// A parsed definition is decoded once into one of three shapes:
//  1. ShapeList: a sequence of embeds. Every embed becomes its own message.
//  2. ShapeEnvelope: an object with an "embeds" field. All embeds go into one message.
//  3. ShapeSingle: any other object. The object itself is the only embed.
//
// # Attachments
//
// Any string value of the form "attachment://<name>" references a file named
// <name> in the channel directory. Collect finds the names and Resolve keeps
// the ones that exist on disk. Missing files are dropped without an error so a
// definition may reference an image that is intentionally absent.
//
// # Components
//
//   - ParseFile / Decode: read and classify a definition.
//   - Compile: build the ordered OutboundMessage list for a definition.
//   - Service / Handler: preview the compiled output over HTTP.
//
// # HTTP Endpoints
//
//   - GET /embeds/:channel : Compiled outbound messages for a local channel directory.
package embeds
