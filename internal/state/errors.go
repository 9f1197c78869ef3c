package state

import "errors"

// Common errors.
var (
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrDuplicateParam     = errors.New("duplicate parameter name")
	ErrTruncated          = errors.New("file truncated")
)
