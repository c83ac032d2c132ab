package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wdylt/wdylt/internal/model"
)

// Storage defines the load/save contract for persisting the whole store.
type Storage interface {
	Load(ctx context.Context) (*model.Store, error)
	Save(ctx context.Context, store *model.Store) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Options selects and configures a storage backend.
type Options struct {
	Backend string
	Path    string // file path for json and sqlite

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Open returns the backend named in opts.
func Open(ctx context.Context, opts Options) (Storage, error) {
	switch opts.Backend {
	case BackendJSON, "":
		path := opts.Path
		if path == "" {
			var err error
			if path, err = DefaultJSONPath(); err != nil {
				return nil, err
			}
		}
		return NewJSONStorage(path), nil
	case BackendSQLite:
		path := opts.Path
		if path == "" {
			var err error
			if path, err = DefaultSQLitePath(); err != nil {
				return nil, err
			}
		}
		return NewSQLiteStorage(path)
	case BackendRedis:
		return NewRedisStorage(ctx, RedisOptions{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			Prefix:   opts.RedisPrefix,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

// JSONStorage implements Storage using a JSON file keyed like browser local
// storage: wdylt_folders, wdylt_bookmarks, bookmarkedBits.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the store from the JSON file.
// Returns an empty store if the file doesn't exist.
func (s *JSONStorage) Load(_ context.Context) (*model.Store, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewStore(), nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var store model.Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	store.EnsureInitialized()

	return &store, nil
}

// Save writes the store to the JSON file.
// The file is written to a temp file first and renamed into place.
func (s *JSONStorage) Save(_ context.Context, store *model.Store) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Close is a no-op for file storage.
func (s *JSONStorage) Close() error {
	return nil
}

// DefaultDir returns the data directory: ~/.config/wdylt
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "wdylt"), nil
}

// DefaultJSONPath returns the default JSON path: ~/.config/wdylt/bookmarks.json
func DefaultJSONPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bookmarks.json"), nil
}
