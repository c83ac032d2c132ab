package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/wdylt/wdylt/internal/model"
)

// migrations are applied in order; migrations[i] brings the schema to
// version i+1.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS folders (
		id          TEXT PRIMARY KEY NOT NULL,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		parent_id   TEXT REFERENCES folders(id) ON DELETE CASCADE,
		is_private  INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_folders_parent_id ON folders(parent_id);

	CREATE TABLE IF NOT EXISTS bookmarks (
		id          TEXT PRIMARY KEY NOT NULL,
		title       TEXT NOT NULL,
		url         TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		folder_id   TEXT REFERENCES folders(id) ON DELETE CASCADE,
		is_private  INTEGER NOT NULL DEFAULT 0,
		tags        TEXT NOT NULL DEFAULT '[]',
		icon        TEXT NOT NULL DEFAULT '',
		summary     TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		visited_at  TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_bookmarks_folder_id ON bookmarks(folder_id);
	CREATE INDEX IF NOT EXISTS idx_bookmarks_url ON bookmarks(url);`,

	`CREATE TABLE IF NOT EXISTS bookmarked_bits (
		bit_id   TEXT PRIMARY KEY NOT NULL,
		position INTEGER NOT NULL
	);`,
}

// SQLiteStorage keeps the library in three tables (folders, bookmarks,
// bookmarked_bits). Save rewrites them in one transaction.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage opens (creating if needed) the database at path and
// brings its schema up to date.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Pragmas are per connection
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStorage) Path() string { return s.path }

func (s *SQLiteStorage) Close() error { return s.db.Close() }

// SchemaVersion returns the applied schema version, 0 for a new database.
func (s *SQLiteStorage) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version").Scan(&version)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return version, err
}

func (s *SQLiteStorage) migrate() error {
	if _, err := s.db.Exec("CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)"); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}
	version, err := s.SchemaVersion()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for v := version; v < len(migrations); v++ {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migrations[v]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migrate to v%d: %w", v+1, err)
		}
		if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
			tx.Rollback()
			return err
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", v+1); err != nil {
			tx.Rollback()
			return fmt.Errorf("record v%d: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the whole library.
func (s *SQLiteStorage) Load(ctx context.Context) (*model.Store, error) {
	store := model.NewStore()
	var err error

	if store.Folders, err = s.loadFolders(ctx); err != nil {
		return nil, fmt.Errorf("load folders: %w", err)
	}
	if store.Bookmarks, err = s.loadBookmarks(ctx); err != nil {
		return nil, fmt.Errorf("load bookmarks: %w", err)
	}
	if store.BookmarkedBits, err = s.loadBits(ctx); err != nil {
		return nil, fmt.Errorf("load bookmarked bits: %w", err)
	}
	return store, nil
}

func (s *SQLiteStorage) loadFolders(ctx context.Context) ([]model.Folder, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, parent_id, is_private, created_at, updated_at
		FROM folders ORDER BY created_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	folders := []model.Folder{}
	for rows.Next() {
		var (
			f                model.Folder
			parentID         sql.Null[string]
			created, updated string
		)
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &parentID, &f.IsPrivate, &created, &updated); err != nil {
			return nil, err
		}
		f.ParentID = nullable(parentID)
		f.CreatedAt, f.UpdatedAt = parseTime(created), parseTime(updated)
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

func (s *SQLiteStorage) loadBookmarks(ctx context.Context) ([]model.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, url, description, folder_id, is_private, tags, icon, summary,
		       created_at, updated_at, visited_at
		FROM bookmarks ORDER BY created_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookmarks := []model.Bookmark{}
	for rows.Next() {
		var (
			b                      model.Bookmark
			folderID, visited      sql.Null[string]
			tags, created, updated string
		)
		if err := rows.Scan(
			&b.ID, &b.Title, &b.URL, &b.Description, &folderID, &b.IsPrivate,
			&tags, &b.Icon, &b.Summary, &created, &updated, &visited,
		); err != nil {
			return nil, err
		}
		b.FolderID = nullable(folderID)
		if err := json.Unmarshal([]byte(tags), &b.Tags); err != nil || b.Tags == nil {
			b.Tags = []string{}
		}
		b.CreatedAt, b.UpdatedAt = parseTime(created), parseTime(updated)
		if visited.Valid {
			t := parseTime(visited.V)
			b.VisitedAt = &t
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

func (s *SQLiteStorage) loadBits(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT bit_id FROM bookmarked_bits ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bits := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		bits = append(bits, id)
	}
	return bits, rows.Err()
}

// Save replaces the stored library with store, all or nothing.
func (s *SQLiteStorage) Save(ctx context.Context, store *model.Store) error {
	// Rows are inserted in slice order, so a child folder may precede its
	// parent. foreign_keys cannot be toggled inside a transaction.
	if _, err := s.db.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return err
	}
	defer s.db.Exec("PRAGMA foreign_keys = ON")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM bookmarks; DELETE FROM folders; DELETE FROM bookmarked_bits"); err != nil {
		return fmt.Errorf("clear tables: %w", err)
	}

	for _, f := range store.Folders {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO folders (id, name, description, parent_id, is_private, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			f.ID, f.Name, f.Description, f.ParentID, f.IsPrivate,
			formatTime(f.CreatedAt), formatTime(f.UpdatedAt),
		); err != nil {
			return fmt.Errorf("insert folder %s: %w", f.ID, err)
		}
	}

	for _, b := range store.Bookmarks {
		tags, err := json.Marshal(b.Tags)
		if err != nil || b.Tags == nil {
			tags = []byte("[]")
		}
		var visited *string
		if b.VisitedAt != nil {
			v := formatTime(*b.VisitedAt)
			visited = &v
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO bookmarks (id, title, url, description, folder_id, is_private, tags, icon, summary,
			                       created_at, updated_at, visited_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID, b.Title, b.URL, b.Description, b.FolderID, b.IsPrivate,
			string(tags), b.Icon, b.Summary,
			formatTime(b.CreatedAt), formatTime(b.UpdatedAt), visited,
		); err != nil {
			return fmt.Errorf("insert bookmark %s: %w", b.ID, err)
		}
	}

	for i, id := range store.BookmarkedBits {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO bookmarked_bits (bit_id, position) VALUES (?, ?)", id, i,
		); err != nil {
			return fmt.Errorf("insert bit %s: %w", id, err)
		}
	}

	return tx.Commit()
}

// DefaultSQLitePath returns ~/.config/wdylt/bookmarks.db.
func DefaultSQLitePath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bookmarks.db"), nil
}

func nullable(v sql.Null[string]) *string {
	if !v.Valid {
		return nil
	}
	return &v.V
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
