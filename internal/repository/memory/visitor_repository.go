package memory

import (
	"context"
	"sync"
	"time"

	"ai-hukum-web/pkg/i18n"
	"ai-hukum-web/pkg/store"

	"github.com/patrickmn/go-cache"
)

// LocaleFactory builds the locale store of a new visitor.
type LocaleFactory func(ctx context.Context, visitorID string) *i18n.Store

// VisitorRepository keeps per-browser page state in memory. Each access
// pushes the expiry forward, so an active visitor is never evicted.
type VisitorRepository struct {
	cache     *cache.Cache
	ttl       time.Duration
	newLocale LocaleFactory
	onCreate  []func(*store.Visitor)

	mu sync.Mutex // serialises GetOrCreate
}

// NewVisitorRepository builds the repository. Each onCreate hook runs once
// for every visitor, before it is visible to other requests.
func NewVisitorRepository(ttl time.Duration, newLocale LocaleFactory, onCreate ...func(*store.Visitor)) *VisitorRepository {
	c := cache.New(ttl, 10*time.Minute)
	return &VisitorRepository{
		cache:     c,
		ttl:       ttl,
		newLocale: newLocale,
		onCreate:  onCreate,
	}
}

func (r *VisitorRepository) Save(v *store.Visitor) {
	r.cache.Set(v.ID, v, cache.DefaultExpiration)
}

func (r *VisitorRepository) Get(visitorID string) (*store.Visitor, bool) {
	if x, found := r.cache.Get(visitorID); found {
		v := x.(*store.Visitor)
		r.cache.Set(visitorID, v, cache.DefaultExpiration)
		return v, true
	}
	return nil, false
}

// GetOrCreate returns the visitor for id, creating it on first sight. The
// locale store of a new visitor reads its persisted preference.
func (r *VisitorRepository) GetOrCreate(ctx context.Context, visitorID string) *store.Visitor {
	if v, ok := r.Get(visitorID); ok {
		return v
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.Get(visitorID); ok {
		return v
	}

	var locale *i18n.Store
	if r.newLocale != nil {
		locale = r.newLocale(ctx, visitorID)
	}
	v := store.NewVisitor(visitorID, locale)
	for _, fn := range r.onCreate {
		fn(v)
	}
	r.Save(v)
	return v
}

func (r *VisitorRepository) Delete(visitorID string) {
	r.cache.Delete(visitorID)
}

func (r *VisitorRepository) Count() int {
	return r.cache.ItemCount()
}
