package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wdylt/wdylt/internal/model"
)

// RedisOptions configures RedisStorage.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // prepended to every key, e.g. "user:42:"
}

// RedisStorage implements Storage with one JSON string value per local
// storage key.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage connects to Redis and pings it.
func NewRedisStorage(ctx context.Context, opts RedisOptions) (*RedisStorage, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewRedisStorageFromClient(client, opts.Prefix), nil
}

// NewRedisStorageFromClient wraps an existing client.
func NewRedisStorageFromClient(client *redis.Client, prefix string) *RedisStorage {
	return &RedisStorage{client: client, prefix: prefix}
}

func (s *RedisStorage) key(name string) string {
	return s.prefix + name
}

// Load reads the three keys. Missing keys yield empty collections.
func (s *RedisStorage) Load(ctx context.Context) (*model.Store, error) {
	values, err := s.client.MGet(ctx,
		s.key(model.KeyFolders),
		s.key(model.KeyBookmarks),
		s.key(model.KeyBookmarkedBits),
	).Result()
	if err != nil {
		return nil, fmt.Errorf("redis load: %w", err)
	}

	store := model.NewStore()
	targets := []any{&store.Folders, &store.Bookmarks, &store.BookmarkedBits}
	names := []string{model.KeyFolders, model.KeyBookmarks, model.KeyBookmarkedBits}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok || raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(raw), targets[i]); err != nil {
			return nil, fmt.Errorf("decode %s: %w", names[i], err)
		}
	}
	store.EnsureInitialized()

	return store, nil
}

// Save writes all three keys in one MULTI/EXEC transaction.
func (s *RedisStorage) Save(ctx context.Context, store *model.Store) error {
	folders, err := json.Marshal(store.Folders)
	if err != nil {
		return err
	}
	bookmarks, err := json.Marshal(store.Bookmarks)
	if err != nil {
		return err
	}
	bits, err := json.Marshal(store.BookmarkedBits)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(model.KeyFolders), folders, 0)
		pipe.Set(ctx, s.key(model.KeyBookmarks), bookmarks, 0)
		pipe.Set(ctx, s.key(model.KeyBookmarkedBits), bits, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (s *RedisStorage) Close() error {
	return s.client.Close()
}
