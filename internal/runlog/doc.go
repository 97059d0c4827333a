// Package runlog persists deduplication run history in SQLite.
//
// The Store manages database connections and schema initialization, records
// one row per completed pipeline run (paths, counts, per-speaker stats, and
// timing), and serves the queries behind the history CLI surface.
//
// The database is an audit trail, not working state; nothing in the pipeline
// reads it back. Schema changes bump the version in schema.go; users delete
// the database to adopt the new schema.
package runlog
