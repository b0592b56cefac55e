// Package trace holds the materialized trace model consumed and mutated by
// the grouping engine.
//
// A Trace is a flat collection of Planes (trace sources), each with Lines
// (threads) carrying ordered Events. Events expose typed attribute values
// looked up by AttrKind; the mapping from kinds to meaning belongs to the
// caller's vocabulary, not to this package.
//
// The package also provides the ingestion surface: JSON codec (sonic),
// transparent gzip/zstd decompression, directory scanning with glob filters,
// and remote fetch with retries.
package trace
