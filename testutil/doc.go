// Package testutil provides testing utilities for attrcodec.
//
// This package is intended for use in tests and benchmarks only.
// It generates deterministic random payloads and row identifiers.
//
//	rng := testutil.NewRNG(seed)
//	set := rng.AttributeSet(8, 1024, 4) // 8 fields, 1024 rows, 4 bytes per row
package testutil
