package state

import "time"

// Format constants for the .heron trained-parameter blob.
const (
	MagicBytes    = "HGPR"
	FormatVersion = 1

	FixedHeaderSize = 64   // fixed header size (0x40 bytes)
	ChecksumSize    = 32   // SHA-256 checksum size
	ChecksumOffset  = 0x20 // checksum offset in the fixed header
	DataAlignment   = 64   // parameter data aligned to 64 bytes
)

// Header is the JSON header embedded in a .heron file.
type Header struct {
	FormatVersion int               `json:"format_version"` // version of the .heron format
	HeronVersion  string            `json:"heron_version"`  // version of heron that created this file
	ModelType     string            `json:"model_type"`     // model the parameters belong to
	CreatedAt     time.Time         `json:"created_at"`     // when the file was created
	Params        []ParamMeta       `json:"params"`         // parameter metadata, in data order
	Metadata      map[string]string `json:"metadata"`       // custom metadata
}

// ParamMeta describes one scalar hyperparameter in the data section.
type ParamMeta struct {
	Name   string `json:"name"`   // dotted parameter name (e.g. "kernel.time.lengthscale")
	Offset int64  `json:"offset"` // offset in the data section, bytes
}
