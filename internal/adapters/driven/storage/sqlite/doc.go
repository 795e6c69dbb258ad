// Package sqlite provides a SQLite-backed remote store for inspection reports
// and user accounts.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements two store interfaces
// through a single database connection:
//
//   - ReportStore: Inspection report persistence, keyed by primary and short id
//   - UserStore: Account persistence for email/password sign-in
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// A database opened without migrations reports missing tables as
// domain.ErrSchemaMissing, and a read-only database reports writes as
// domain.ErrPermissionDenied, so the report gateway can fall back to the
// local copy.
//
// # Data Location
//
// By default, the database is stored at ~/.walkthrough/data/remote.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
