package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ai-hukum-web/pkg/i18n"
	"ai-hukum-web/pkg/store"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateBuildsOnce(t *testing.T) {
	var built atomic.Int32
	prefs := cache.New(cache.NoExpiration, 0)
	repo := NewVisitorRepository(time.Hour, func(ctx context.Context, id string) *i18n.Store {
		built.Add(1)
		return i18n.NewStore(ctx, i18n.MustCatalog(), i18n.NewMemoryPersister(prefs, "lang:"+id))
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo.GetOrCreate(context.Background(), "v1")
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), built.Load())
	assert.Equal(t, 1, repo.Count())

	v, ok := repo.Get("v1")
	require.True(t, ok)
	assert.Equal(t, i18n.DefaultLocale, v.Locale.Locale())
}

func TestLocaleSurvivesEviction(t *testing.T) {
	prefs := cache.New(cache.NoExpiration, 0)
	repo := NewVisitorRepository(time.Hour, func(ctx context.Context, id string) *i18n.Store {
		return i18n.NewStore(ctx, i18n.MustCatalog(), i18n.NewMemoryPersister(prefs, "lang:"+id))
	})
	ctx := context.Background()

	v := repo.GetOrCreate(ctx, "v2")
	require.NoError(t, v.Locale.SetLocale(ctx, i18n.English))

	repo.Delete("v2")
	_, ok := repo.Get("v2")
	assert.False(t, ok)

	again := repo.GetOrCreate(ctx, "v2")
	assert.Equal(t, i18n.English, again.Locale.Locale())
}

func TestExpiry(t *testing.T) {
	repo := NewVisitorRepository(20*time.Millisecond, nil)
	repo.GetOrCreate(context.Background(), "short")
	time.Sleep(40 * time.Millisecond)
	_, ok := repo.Get("short")
	assert.False(t, ok)
}

func TestOnCreateRunsOncePerVisitor(t *testing.T) {
	var created atomic.Int32
	repo := NewVisitorRepository(time.Hour, nil, func(v *store.Visitor) {
		created.Add(1)
		assert.NotNil(t, v.Locale)
	})
	ctx := context.Background()

	repo.GetOrCreate(ctx, "v1")
	repo.GetOrCreate(ctx, "v1")
	repo.GetOrCreate(ctx, "v2")

	assert.Equal(t, int32(2), created.Load())
}
