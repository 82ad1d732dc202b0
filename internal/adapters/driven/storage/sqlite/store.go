package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/futureready-labs/futureready-kb/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/futureready-labs/futureready-kb/internal/core/domain"
	"github.com/futureready-labs/futureready-kb/internal/core/ports/driven"
)

// Store is a SQLite-based storage for operational records that sit
// beside the document store, currently alerts.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.futureready/data/kb.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".futureready", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "kb.db")

	// WAL mode for better concurrency
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

// AlertStore returns an AlertStore interface backed by this store.
func (s *Store) AlertStore() driven.AlertStore {
	return &alertStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
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
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
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
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Alert Store ====================

// alertStore implements driven.AlertStore.
type alertStore struct {
	store *Store
}

var _ driven.AlertStore = (*alertStore)(nil)

// Save stores or updates an alert.
func (s *alertStore) Save(ctx context.Context, alert *domain.Alert) error {
	if alert == nil || alert.ID == "" {
		return domain.ErrInvalidInput
	}

	docIDsJSON, err := json.Marshal(alert.AffectedDocIDs)
	if err != nil {
		return fmt.Errorf("marshalling affected doc ids: %w", err)
	}
	metadataJSON, err := json.Marshal(alert.Metadata)
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO alerts (id, type, severity, message, affected_doc_ids, metadata, created_at, acknowledged)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			severity = excluded.severity,
			message = excluded.message,
			affected_doc_ids = excluded.affected_doc_ids,
			metadata = excluded.metadata,
			acknowledged = excluded.acknowledged
	`, alert.ID, alert.Type, string(alert.Severity), alert.Message,
		string(docIDsJSON), string(metadataJSON), alert.CreatedAt,
		boolToInt(alert.Acknowledged))

	if err != nil {
		return fmt.Errorf("saving alert: %w", err)
	}
	return nil
}

// List returns alerts, newest first.
func (s *alertStore) List(ctx context.Context, includeAcknowledged bool) ([]domain.Alert, error) {
	query := `
		SELECT id, type, severity, message, affected_doc_ids, metadata, created_at, acknowledged
		FROM alerts
	`
	if !includeAcknowledged {
		query += " WHERE acknowledged = 0"
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying alerts: %w", err)
	}
	defer rows.Close()

	var alerts []domain.Alert //nolint:prealloc // size unknown from query
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, *alert)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating alerts: %w", err)
	}

	return alerts, nil
}

// Acknowledge marks an alert as handled.
func (s *alertStore) Acknowledge(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx,
		"UPDATE alerts SET acknowledged = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("acknowledging alert: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking acknowledge result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: alert %s", domain.ErrNotFound, id)
	}
	return nil
}

// scanAlert scans an alert from *sql.Rows.
func scanAlert(rows *sql.Rows) (*domain.Alert, error) {
	var alert domain.Alert
	var severity, docIDsJSON, metadataJSON string
	var acknowledged int

	if err := rows.Scan(&alert.ID, &alert.Type, &severity, &alert.Message,
		&docIDsJSON, &metadataJSON, &alert.CreatedAt, &acknowledged); err != nil {
		return nil, fmt.Errorf("scanning alert: %w", err)
	}

	alert.Severity = domain.AlertSeverity(severity)
	alert.Acknowledged = acknowledged == 1

	if err := json.Unmarshal([]byte(docIDsJSON), &alert.AffectedDocIDs); err != nil {
		return nil, fmt.Errorf("unmarshalling affected doc ids: %w", err)
	}
	if err := json.Unmarshal([]byte(metadataJSON), &alert.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshalling metadata: %w", err)
	}

	return &alert, nil
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
