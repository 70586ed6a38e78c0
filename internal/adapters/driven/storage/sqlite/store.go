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

	"github.com/speaktech/transqiita/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
)

// Store owns the SQLite connection and provides the history ports.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.transqiita/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".transqiita", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
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

// HistoryStore returns a HistoryStore backed by this store.
func (s *Store) HistoryStore() driven.HistoryStore {
	return &historyStore{store: s}
}

// RunStore returns a RunStore backed by this store.
func (s *Store) RunStore() driven.RunStore {
	return &runStore{store: s}
}

// migrate applies every *.up.sql newer than the recorded schema version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) apply(version int, content string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(content); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ==================== History Store ====================

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

const historyColumns = `id, source_id, translated_id, title, url, disposition, translator, repository, published_at`

// Record stores a publish record. Re-recording an id replaces it.
func (h *historyStore) Record(ctx context.Context, r domain.PublishRecord) error {
	if r.ID == "" || r.SourceID == "" {
		return fmt.Errorf("%w: history record needs an id and source id", domain.ErrInvalidInput)
	}

	_, err := h.store.db.ExecContext(ctx, `
		INSERT INTO publish_history (`+historyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_id = excluded.source_id,
			translated_id = excluded.translated_id,
			title = excluded.title,
			url = excluded.url,
			disposition = excluded.disposition,
			translator = excluded.translator,
			repository = excluded.repository,
			published_at = excluded.published_at
	`, r.ID, r.SourceID, r.TranslatedID, r.Title, r.URL,
		string(r.Disposition), r.Translator, r.Repository, r.PublishedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("recording history: %w", err)
	}
	return nil
}

// List returns records newest first. A limit of zero or less returns everything.
func (h *historyStore) List(ctx context.Context, limit int) ([]domain.PublishRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := h.store.db.QueryContext(ctx, `
		SELECT `+historyColumns+`
		FROM publish_history
		ORDER BY published_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []domain.PublishRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return records, nil
}

// LastFor returns the newest record for a source article.
func (h *historyStore) LastFor(ctx context.Context, sourceID string) (*domain.PublishRecord, error) {
	row := h.store.db.QueryRowContext(ctx, `
		SELECT `+historyColumns+`
		FROM publish_history
		WHERE source_id = ?
		ORDER BY published_at DESC, rowid DESC
		LIMIT 1
	`, sourceID)

	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return r, err
}

// Close is a no-op; the owning Store closes the connection.
func (h *historyStore) Close() error {
	return nil
}

// ==================== Run Store ====================

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// RecordRun stores one pass.
func (r *runStore) RecordRun(ctx context.Context, run domain.RunRecord) error {
	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO scheduled_runs (started_at, ended_at, selected, published, error)
		VALUES (?, ?, ?, ?, ?)
	`, run.StartedAt.UnixNano(), run.EndedAt.UnixNano(), run.Selected, run.Published, nullString(run.Error))
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// ListRuns returns passes newest first.
func (r *runStore) ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT started_at, ended_at, selected, published, error
		FROM scheduled_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var run domain.RunRecord
		var started, ended int64
		var errMsg sql.NullString
		if err := rows.Scan(&started, &ended, &run.Selected, &run.Published, &errMsg); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.StartedAt = fromUnixNano(started)
		run.EndedAt = fromUnixNano(ended)
		run.Error = errMsg.String
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// PruneRuns keeps the newest keep passes.
func (r *runStore) PruneRuns(ctx context.Context, keep int) error {
	_, err := r.store.db.ExecContext(ctx, `
		DELETE FROM scheduled_runs
		WHERE id NOT IN (
			SELECT id FROM scheduled_runs ORDER BY started_at DESC, id DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning runs: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*domain.PublishRecord, error) {
	var r domain.PublishRecord
	var disposition string
	var published int64

	err := row.Scan(&r.ID, &r.SourceID, &r.TranslatedID, &r.Title, &r.URL,
		&disposition, &r.Translator, &r.Repository, &published)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning history record: %w", err)
	}

	r.Disposition = domain.Disposition(disposition)
	r.PublishedAt = fromUnixNano(published)
	return &r, nil
}

func fromUnixNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
