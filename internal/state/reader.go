package state

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
)

// Headers larger than this are rejected as corrupt.
const maxHeaderSize = 16 << 20

// Read loads a parameter dictionary written by Write. The data-section
// checksum is verified before any value is returned.
func Read(path string) (map[string]float64, *Header, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	fixed := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(file, fixed); err != nil {
		return nil, nil, fmt.Errorf("%w: fixed header: %v", ErrTruncated, err)
	}
	if !bytes.Equal(fixed[0:4], []byte(MagicBytes)) {
		return nil, nil, ErrInvalidMagic
	}
	if version := binary.LittleEndian.Uint32(fixed[4:8]); version != FormatVersion {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	headerSize := binary.LittleEndian.Uint64(fixed[16:24])
	dataSize := binary.LittleEndian.Uint64(fixed[24:32])
	if headerSize > maxHeaderSize {
		return nil, nil, ErrHeaderTooLarge
	}
	// The declared sizes must fit in what is actually on disk, or a
	// corrupt file could drive an arbitrarily large allocation below.
	info, err := file.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if dataSize > uint64(info.Size()) || headerSize > uint64(info.Size()) {
		return nil, nil, fmt.Errorf("%w: declared sizes exceed file size %d", ErrTruncated, info.Size())
	}
	var checksum [ChecksumSize]byte
	copy(checksum[:], fixed[ChecksumOffset:ChecksumOffset+ChecksumSize])

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(file, headerJSON); err != nil {
		return nil, nil, fmt.Errorf("%w: header: %v", ErrTruncated, err)
	}
	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, nil, fmt.Errorf("failed to parse header: %w", err)
	}

	pos := int64(FixedHeaderSize) + int64(headerSize)
	if padding := (DataAlignment - (pos % DataAlignment)) % DataAlignment; padding > 0 {
		if _, err := io.CopyN(io.Discard, file, padding); err != nil {
			return nil, nil, fmt.Errorf("%w: padding: %v", ErrTruncated, err)
		}
	}

	data := make([]byte, dataSize)
	if _, err := io.ReadFull(file, data); err != nil {
		return nil, nil, fmt.Errorf("%w: data section: %v", ErrTruncated, err)
	}
	if sha256.Sum256(data) != checksum {
		return nil, nil, ErrChecksumMismatch
	}

	params := make(map[string]float64, len(header.Params))
	for _, meta := range header.Params {
		if meta.Offset < 0 || meta.Offset+8 > int64(len(data)) {
			return nil, nil, fmt.Errorf("parameter %q: offset %d out of bounds", meta.Name, meta.Offset)
		}
		if _, ok := params[meta.Name]; ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrDuplicateParam, meta.Name)
		}
		bits := binary.LittleEndian.Uint64(data[meta.Offset : meta.Offset+8])
		params[meta.Name] = math.Float64frombits(bits)
	}
	return params, &header, nil
}
