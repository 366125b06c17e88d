// Package formats implements line-oriented trace file readers and writers
// for the layouts common in cache research: key-only, JSONL, CSV, ARC,
// LIRS and cachelib. Every reader implements sim.EventSource, so a file
// trace plugs into the replay loop exactly like a synthetic generator.
//
// Readers are lenient by convention: empty lines, comment lines and lines
// that fail to parse are skipped rather than aborting the replay. I/O
// errors terminate the stream.
package formats
