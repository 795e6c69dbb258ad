package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/walkthrough/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driven"
)

// dbFile is the database file name inside the data directory.
const dbFile = "remote.db"

// Options configures how the database is opened.
type Options struct {
	// ReadOnly opens the database without write access.
	ReadOnly bool

	// SkipMigrations leaves the schema as found on disk.
	SkipMigrations bool
}

// Store is a unified SQLite-based storage that provides access to
// the report and user store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory
// and brings its schema up to date.
// If dataDir is empty, defaults to ~/.walkthrough/data/remote.db.
func NewStore(dataDir string) (*Store, error) {
	return Open(dataDir, Options{})
}

// Open opens a SQLite store with explicit options.
func Open(dataDir string, opts Options) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".walkthrough", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	dsn := dbPath + "?_pragma=busy_timeout(5000)"
	if opts.ReadOnly {
		dsn = "file:" + dbPath + "?mode=ro&_pragma=busy_timeout(5000)"
	} else {
		dsn += "&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if !opts.ReadOnly && !opts.SkipMigrations {
		if err := s.migrate(migrations.FS); err != nil {
			db.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ReportStore returns a ReportStore interface backed by this store.
func (s *Store) ReportStore() driven.ReportStore {
	return &reportStore{store: s}
}

// UserStore returns a UserStore interface backed by this store.
func (s *Store) UserStore() driven.UserStore {
	return &userStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Report Store ====================

// reportStore implements driven.ReportStore.
type reportStore struct {
	store *Store
}

var _ driven.ReportStore = (*reportStore)(nil)

// Name identifies the backend.
func (r *reportStore) Name() string {
	return "sqlite"
}

// Save upserts a report. The stored creation time survives updates.
func (r *reportStore) Save(ctx context.Context, record *domain.ReportRecord) (*domain.ReportRecord, error) {
	if record == nil || record.ID == "" {
		return nil, fmt.Errorf("%w: report id is required", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	createdAt := record.CreatedAt.UTC()
	if record.CreatedAt.IsZero() {
		createdAt = now
	}

	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO reports (id, short_id, user_id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			short_id = excluded.short_id,
			user_id = excluded.user_id,
			data = excluded.data,
			updated_at = excluded.updated_at
	`, record.ID, record.ShortID, nullString(record.UserID), string(record.Data), createdAt, now)
	if err != nil {
		return nil, classifyError("saving report", err)
	}

	return r.Get(ctx, record.ID)
}

// Get retrieves a report by primary key.
func (r *reportStore) Get(ctx context.Context, id string) (*domain.ReportRecord, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT id, short_id, user_id, data, created_at FROM reports WHERE id = ?
	`, id)
	return scanReport(row)
}

// GetByShortID retrieves the most recent report with the given short key.
func (r *reportStore) GetByShortID(ctx context.Context, shortID string) (*domain.ReportRecord, error) {
	if shortID == "" {
		return nil, domain.ErrNotFound
	}
	row := r.store.db.QueryRowContext(ctx, `
		SELECT id, short_id, user_id, data, created_at FROM reports
		WHERE short_id = ? ORDER BY created_at DESC LIMIT 1
	`, shortID)
	return scanReport(row)
}

// Delete removes a report by primary key.
func (r *reportStore) Delete(ctx context.Context, id string) error {
	if _, err := r.store.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id); err != nil {
		return classifyError("deleting report", err)
	}
	return nil
}

// List returns reports newest first, restricted to userID when set.
func (r *reportStore) List(ctx context.Context, userID string) ([]domain.ReportRecord, error) {
	query := `SELECT id, short_id, user_id, data, created_at FROM reports`
	var args []any
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyError("querying reports", err)
	}
	defer rows.Close()

	var reports []domain.ReportRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, err := scanReportRows(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError("iterating reports", err)
	}
	return reports, nil
}

// ==================== User Store ====================

// userStore implements driven.UserStore.
type userStore struct {
	store *Store
}

var _ driven.UserStore = (*userStore)(nil)

// Create registers a new account. Emails are unique regardless of case.
func (u *userStore) Create(ctx context.Context, creds domain.UserCredentials) error {
	if creds.ID == "" || creds.Email == "" {
		return fmt.Errorf("%w: user id and email are required", domain.ErrInvalidInput)
	}
	createdAt := creds.CreatedAt.UTC()
	if creds.CreatedAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := u.store.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)
	`, creds.ID, creds.Email, creds.PasswordHash, createdAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: email %s", domain.ErrAlreadyExists, creds.Email)
		}
		return classifyError("creating user", err)
	}
	return nil
}

// GetByEmail retrieves an account by email.
func (u *userStore) GetByEmail(ctx context.Context, email string) (*domain.UserCredentials, error) {
	row := u.store.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at FROM users WHERE email = ?
	`, email)
	return scanUser(row)
}

// Get retrieves an account by id.
func (u *userStore) Get(ctx context.Context, id string) (*domain.User, error) {
	row := u.store.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at FROM users WHERE id = ?
	`, id)
	creds, err := scanUser(row)
	if err != nil {
		return nil, err
	}
	return &creds.User, nil
}

// ==================== Helper Functions ====================

// classifyError maps driver failures onto the domain's remote error kinds.
func classifyError(op string, err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "no such table"), strings.Contains(msg, "no such column"):
		return fmt.Errorf("%s: %w: %v", op, domain.ErrSchemaMissing, err)
	case strings.Contains(msg, "readonly"),
		strings.Contains(msg, "read-only"),
		strings.Contains(msg, "not authorized"),
		strings.Contains(msg, "permission denied"):
		return fmt.Errorf("%s: %w: %v", op, domain.ErrPermissionDenied, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func scanReport(row *sql.Row) (*domain.ReportRecord, error) {
	var rec domain.ReportRecord
	var userID sql.NullString
	var data string

	err := row.Scan(&rec.ID, &rec.ShortID, &userID, &data, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, classifyError("scanning report", err)
	}
	rec.UserID = userID.String
	rec.Data = []byte(data)
	return &rec, nil
}

func scanReportRows(rows *sql.Rows) (*domain.ReportRecord, error) {
	var rec domain.ReportRecord
	var userID sql.NullString
	var data string

	if err := rows.Scan(&rec.ID, &rec.ShortID, &userID, &data, &rec.CreatedAt); err != nil {
		return nil, fmt.Errorf("scanning report: %w", err)
	}
	rec.UserID = userID.String
	rec.Data = []byte(data)
	return &rec, nil
}

func scanUser(row *sql.Row) (*domain.UserCredentials, error) {
	var creds domain.UserCredentials
	err := row.Scan(&creds.ID, &creds.Email, &creds.PasswordHash, &creds.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, classifyError("scanning user", err)
	}
	return &creds, nil
}
