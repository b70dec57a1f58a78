package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"ai-hukum-web/internal/pkg/logger"
	"ai-hukum-web/pkg/events"
	"ai-hukum-web/pkg/i18n"
	"ai-hukum-web/pkg/legalapi"
	"ai-hukum-web/pkg/store"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"
)

// fakeBackend is an httptest legal API that counts calls per path.
type fakeBackend struct {
	mu       sync.Mutex
	calls    map[string]int
	handlers map[string]http.HandlerFunc
	srv      *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{calls: map[string]int{}, handlers: map[string]http.HandlerFunc{}}
	fb.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		fb.calls[r.URL.Path]++
		h := fb.handlers[r.URL.Path]
		fb.mu.Unlock()

		if h == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h(w, r)
	}))
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeBackend) handle(path string, h http.HandlerFunc) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.handlers[path] = h
}

func (fb *fakeBackend) reply(path string, status int, body string) {
	fb.handle(path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func (fb *fakeBackend) count(path string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.calls[path]
}

func (fb *fakeBackend) total() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	n := 0
	for _, c := range fb.calls {
		n += c
	}
	return n
}

func (fb *fakeBackend) client() *legalapi.Client {
	return legalapi.NewClient(func() string { return fb.srv.URL }, legalapi.WithHTTPClient(fb.srv.Client()))
}

// recordingActivity keeps recorded event types.
type recordingActivity struct {
	mu    sync.Mutex
	types []string
}

func (r *recordingActivity) Record(_ context.Context, e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, e.EventType())
}

func (r *recordingActivity) Consume(context.Context) error { return nil }

func (r *recordingActivity) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.types...)
}

func newVisitor(t *testing.T, locale i18n.Locale) *store.Visitor {
	t.Helper()
	p := i18n.NewMemoryPersister(cache.New(cache.NoExpiration, 0), "lang")
	s := i18n.NewStore(context.Background(), i18n.MustCatalog(), p)
	require.NoError(t, s.SetLocale(context.Background(), locale))
	return store.NewVisitor("visitor-1", s)
}

func nopLogger() logger.ILogger {
	return logger.NewNopLogger()
}
