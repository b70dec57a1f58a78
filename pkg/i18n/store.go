package i18n

import (
	"context"
	"fmt"
	"sync"
)

// Translator resolves a message key against whatever locale is active at
// call time.
type Translator func(key string) string

// Store is the locale selection of one visitor (or of the CLI process) plus
// the catalog it resolves against.
type Store struct {
	catalog   *Catalog
	persister Persister

	mu          sync.RWMutex
	locale      Locale
	subscribers []func(from, to Locale)
}

// NewStore reads the persisted locale. Anything outside the supported set,
// an absent value or a failed read all resolve to DefaultLocale.
func NewStore(ctx context.Context, catalog *Catalog, persister Persister) *Store {
	return NewStoreWithFallback(ctx, catalog, persister, DefaultLocale)
}

// NewStoreWithFallback is NewStore with a configurable fallback. An
// unsupported fallback is replaced by DefaultLocale.
func NewStoreWithFallback(ctx context.Context, catalog *Catalog, persister Persister, fallback Locale) *Store {
	if l, ok := ParseLocale(string(fallback)); ok {
		fallback = l
	} else {
		fallback = DefaultLocale
	}

	s := &Store{
		catalog:   catalog,
		persister: persister,
		locale:    fallback,
	}

	if persister == nil {
		return s
	}

	saved, err := persister.Load(ctx)
	if err != nil {
		return s
	}
	if l, ok := ParseLocale(saved); ok {
		s.locale = l
	}
	return s
}

// Locale returns the active locale.
func (s *Store) Locale() Locale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locale
}

// Lookup resolves key in the active table; unknown keys come back verbatim.
func (s *Store) Lookup(key string) string {
	return s.catalog.Lookup(s.Locale(), key)
}

// Translator returns a late-bound lookup: a later SetLocale changes what an
// already obtained Translator returns.
func (s *Store) Translator() Translator {
	return s.Lookup
}

// SetLocale switches the active locale and persists it. The in-memory switch
// happens even when persisting fails; the persist error is returned.
func (s *Store) SetLocale(ctx context.Context, l Locale) error {
	if _, ok := ParseLocale(string(l)); !ok {
		return fmt.Errorf("unsupported locale %q", l)
	}

	s.mu.Lock()
	previous := s.locale
	s.locale = l
	subscribers := append([]func(from, to Locale){}, s.subscribers...)
	s.mu.Unlock()

	if previous != l {
		for _, fn := range subscribers {
			fn(previous, l)
		}
	}

	if s.persister == nil {
		return nil
	}
	if err := s.persister.Save(ctx, string(l)); err != nil {
		return fmt.Errorf("persist locale: %w", err)
	}
	return nil
}

// Subscribe registers fn to be called after every locale change, outside the
// store's lock.
func (s *Store) Subscribe(fn func(from, to Locale)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}
