// Package transcript defines the utterance data model and the file formats
// the deduplication pipeline reads and writes.
//
// Input is newline-delimited JSON, one utterance per line, with the fields
// user, start, end, and text. Timestamps may be ISO-8601 instants or bare
// numeric offsets; both forms expose a comparable seconds value. Output is
// plain text, one "speaker: text" line per kept utterance.
//
// Parsing is strict: a malformed line or a missing field aborts the load
// with a RecordError naming the offending line and field.
package transcript
