// Package sqlite provides SQLite-backed implementations of the driven
// history ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. A single Store owns the connection and hands out:
//
//   - HistoryStore: translations that were published
//   - RunStore: outcomes of scheduled passes
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory, applied in order on open. Applied versions are tracked in
// schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.transqiita/data/history.db
package sqlite
