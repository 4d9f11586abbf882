// Package attrcodec reads and writes the attribute columns of a storage
// segment.
//
// A segment directory holds one file per attribute column and, optionally,
// a row-id file:
//
//	<field_name>.ra   attribute payload
//	<anything>.uid    row identifiers
//
// Every file is a length-prefixed blob:
//
//	+--------------------+---------------------+
//	| N (8 bytes, uint64)| N bytes of payload  |
//	+--------------------+---------------------+
//
// N and the row identifiers (int64, N/8 of them) use the host byte order.
// There is no checksum or version tag, and the field name lives only in the
// file name.
//
// # Quick Start
//
//	h := fshandler.NewLocal("/data/segments/42")
//	c := attrcodec.New(attrcodec.WithLogLevel(slog.LevelDebug))
//
//	set := segment.NewAttributeSet(segment.NewAttribute("age", ages, nil))
//	if err := c.WriteAll(ctx, h, set); err != nil { ... }
//
//	attrs, err := c.ReadAll(ctx, h)
//	age, _ := attrs.Get("age")
//
//	// First 16 payload bytes of one column, plus its stored length.
//	head, total, err := c.ReadRange(ctx, h, "age", 0, 16)
//
// # Row identifiers
//
// WriteAll persists attribute payloads only. The row-id file is produced by
// whoever owns the identifiers, or by WriteAll when the codec is created with
// WithRowIDPersistence. ReadAll attaches the identifiers of the first row-id
// file to every attribute; ReadRowIDs concatenates all row-id files.
//
// # Concurrency
//
// A Codec serializes its own operations with a mutex. Nothing coordinates
// two Codec values, or two processes, that use the same directory.
//
// # Storage backends
//
// All I/O goes through a fshandler.Handler: local disk (optionally memory
// mapped), memory, Amazon S3 or MinIO.
package attrcodec
