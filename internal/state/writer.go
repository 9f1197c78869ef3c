package state

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"time"
)

const heronVersion = "0.2.0" // Current heron version

// Write persists a flat parameter dictionary to path in .heron format.
//
// The layout follows a fixed 64-byte header (magic, version, sizes and a
// SHA-256 checksum of the data section), a JSON header describing each
// parameter, padding to a 64-byte boundary, then the float64 values in
// little-endian order. Parameters are written sorted by name so the file
// is deterministic for a given dictionary.
func Write(path string, params map[string]float64, modelType string, metadata map[string]string) error {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	header := Header{
		FormatVersion: FormatVersion,
		HeronVersion:  heronVersion,
		ModelType:     modelType,
		CreatedAt:     time.Now().UTC(),
		Params:        make([]ParamMeta, 0, len(names)),
		Metadata:      metadata,
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	data := make([]byte, 0, 8*len(names))
	var offset int64
	for _, name := range names {
		header.Params = append(header.Params, ParamMeta{Name: name, Offset: offset})
		data = binary.LittleEndian.AppendUint64(data, math.Float64bits(params[name]))
		offset += 8
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	checksum := sha256.Sum256(data)

	fixed := make([]byte, FixedHeaderSize)
	// 0x00-0x03: magic bytes.
	copy(fixed[0:4], MagicBytes)
	// 0x04-0x07: format version.
	binary.LittleEndian.PutUint32(fixed[4:8], uint32(FormatVersion))
	// 0x08-0x0F: reserved.
	// 0x10-0x17: JSON header size.
	binary.LittleEndian.PutUint64(fixed[16:24], uint64(len(headerJSON)))
	// 0x18-0x1F: data size.
	binary.LittleEndian.PutUint64(fixed[24:32], uint64(len(data)))
	// 0x20-0x3F: SHA-256 checksum of the data section.
	copy(fixed[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(fixed); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if _, err := file.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	pos := int64(FixedHeaderSize) + int64(len(headerJSON))
	if padding := (DataAlignment - (pos % DataAlignment)) % DataAlignment; padding > 0 {
		if _, err := file.Write(make([]byte, padding)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}
	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("failed to write parameter data: %w", err)
	}
	return nil
}
