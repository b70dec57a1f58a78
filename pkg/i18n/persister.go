package i18n

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

// Persister stores a single preference value. Load returns "" with a nil
// error when nothing has been stored yet.
type Persister interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, value string) error
}

// --- Redis ---

type RedisPersister struct {
	rdb *redis.Client
	key string
}

func NewRedisPersister(rdb *redis.Client, key string) *RedisPersister {
	return &RedisPersister{rdb: rdb, key: key}
}

func (p *RedisPersister) Load(ctx context.Context) (string, error) {
	val, err := p.rdb.Get(ctx, p.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", p.key, err)
	}
	return val, nil
}

func (p *RedisPersister) Save(ctx context.Context, value string) error {
	if err := p.rdb.Set(ctx, p.key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", p.key, err)
	}
	return nil
}

// --- In-memory ---

// MemoryPersister keeps values for the lifetime of the process only.
type MemoryPersister struct {
	cache *cache.Cache
	key   string
}

func NewMemoryPersister(c *cache.Cache, key string) *MemoryPersister {
	return &MemoryPersister{cache: c, key: key}
}

func (p *MemoryPersister) Load(_ context.Context) (string, error) {
	if x, found := p.cache.Get(p.key); found {
		if s, ok := x.(string); ok {
			return s, nil
		}
	}
	return "", nil
}

func (p *MemoryPersister) Save(_ context.Context, value string) error {
	p.cache.Set(p.key, value, cache.NoExpiration)
	return nil
}

// --- YAML file ---

// FilePersister stores one key of a flat YAML preferences file, leaving the
// other keys untouched.
type FilePersister struct {
	path string
	key  string
}

var fileMu sync.Mutex

func NewFilePersister(path, key string) *FilePersister {
	return &FilePersister{path: path, key: key}
}

func (p *FilePersister) Load(_ context.Context) (string, error) {
	fileMu.Lock()
	defer fileMu.Unlock()

	prefs, err := p.read()
	if err != nil {
		return "", err
	}
	return prefs[p.key], nil
}

func (p *FilePersister) Save(_ context.Context, value string) error {
	fileMu.Lock()
	defer fileMu.Unlock()

	prefs, err := p.read()
	if err != nil {
		return err
	}
	prefs[p.key] = value

	out, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if dir := filepath.Dir(p.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create prefs dir: %w", err)
		}
	}
	if err := os.WriteFile(p.path, out, 0o600); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func (p *FilePersister) read() (map[string]string, error) {
	prefs := map[string]string{}

	raw, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read prefs: %w", err)
	}
	if err := yaml.Unmarshal(raw, &prefs); err != nil {
		return nil, fmt.Errorf("decode prefs %s: %w", p.path, err)
	}
	if prefs == nil {
		prefs = map[string]string{}
	}
	return prefs, nil
}
