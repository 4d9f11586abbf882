package attrcodec

import (
	"encoding/binary"
	"path"
	"strings"
)

const (
	// HeaderSize is the width of the length prefix at the start of every file.
	HeaderSize = 8

	// RowIDSize is the width of one serialized row identifier.
	RowIDSize = 8

	// DefaultAttributeExtension names raw attribute files: <field_name>.ra
	DefaultAttributeExtension = ".ra"

	// DefaultRowIDExtension names the row-id file: <anything>.uid
	DefaultRowIDExtension = ".uid"
)

// Lengths and row identifiers are stored in host byte order, so segment
// files only move between hosts of the same endianness.
var byteOrder = binary.NativeEndian

func encodeHeader(n uint64) []byte {
	var hdr [HeaderSize]byte
	byteOrder.PutUint64(hdr[:], n)
	return hdr[:]
}

func decodeHeader(hdr []byte) uint64 {
	return byteOrder.Uint64(hdr)
}

func encodeRowIDs(ids []int64) []byte {
	buf := make([]byte, len(ids)*RowIDSize)
	for i, id := range ids {
		byteOrder.PutUint64(buf[i*RowIDSize:], uint64(id))
	}
	return buf
}

func decodeRowIDs(dst []int64, buf []byte) []int64 {
	for i := 0; i+RowIDSize <= len(buf); i += RowIDSize {
		dst = append(dst, int64(byteOrder.Uint64(buf[i:])))
	}
	return dst
}

// clampCount returns how many payload bytes a read of count bytes at offset
// may return from a payload of total bytes. An offset at or past the end
// yields zero instead of wrapping around.
func clampCount(total, offset, count uint64) uint64 {
	if offset >= total {
		return 0
	}
	return min(count, total-offset)
}

// baseName returns the last element of a slash or backslash separated path.
func baseName(p string) string {
	return p[strings.LastIndexAny(p, `/\`)+1:]
}

// extension returns the text from the last dot of base. A base name whose
// only dot is its first character, like ".ra", has no extension.
func extension(base string) string {
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return ""
	}
	return base[i:]
}

// fieldName strips ext from a file's base name when ext is the base name's
// extension. Extensions with more than one dot therefore never match.
func fieldName(base, ext string) (string, bool) {
	if extension(base) != ext {
		return "", false
	}
	return base[:len(base)-len(ext)], true
}

// normalizeExtension adds the leading dot; an empty extension keeps def.
func normalizeExtension(ext, def string) string {
	switch {
	case ext == "":
		return def
	case strings.HasPrefix(ext, "."):
		return ext
	default:
		return "." + ext
	}
}

// joinPath builds handler paths. Paths are slash separated; the local
// handler converts them to the host separator.
func joinPath(dir, name string) string {
	return path.Join(dir, name)
}
