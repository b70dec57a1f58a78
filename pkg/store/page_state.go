package store

import (
	"context"
	"sync"

	"ai-hukum-web/pkg/i18n"
	"ai-hukum-web/pkg/legalapi"
)

// FormStatus is the lifecycle of one form: Loading is true only while its
// request chain is outstanding, Error holds the single display message.
type FormStatus struct {
	Loading bool
	Error   string
}

// Begin clears the error and marks the form as submitting.
func (s *FormStatus) Begin() {
	s.Error = ""
	s.Loading = true
}

// UploadView is the home page: upload form plus the ask form.
type UploadView struct {
	SessionID string
	Summary   string
	Answer    string
	ChatID    string // set only when the analysis was stored (non-confidential)

	Upload FormStatus
	Ask    FormStatus
}

type DraftView struct {
	Draft string
	Title string

	// last submitted inputs, echoed back into the form
	SessionID    string
	DocType      string
	Requirements string
	Tone         string
	Length       string

	Status FormStatus
}

type ReviewView struct {
	Result *legalapi.Review
	Status FormStatus
}

type HistoryView struct {
	Chats  []legalapi.ChatSummary
	Loaded bool
	Status FormStatus
}

// Guarded serialises access to a view. It gives memory safety only; two
// flows touching the same view are not ordered against each other.
type Guarded[T any] struct {
	mu sync.Mutex
	v  T
}

func NewGuarded[T any](v T) *Guarded[T] {
	return &Guarded[T]{v: v}
}

// Update applies fn under the lock.
func (g *Guarded[T]) Update(fn func(v *T)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(&g.v)
}

// Snapshot returns a shallow copy of the current view.
func (g *Guarded[T]) Snapshot() T {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.v
}

// Visitor is the server-side state of one browser.
type Visitor struct {
	ID     string
	Locale *i18n.Store

	Upload  *Guarded[UploadView]
	Draft   *Guarded[DraftView]
	Review  *Guarded[ReviewView]
	History *Guarded[HistoryView]
}

// DefaultDraftTitle is the export title before the user edits it.
const DefaultDraftTitle = "Draft Dokumen"

// NewVisitor builds empty page state. A nil locale store is replaced by an
// unpersisted one on the default locale.
func NewVisitor(id string, locale *i18n.Store) *Visitor {
	if locale == nil {
		locale = i18n.NewStore(context.Background(), i18n.MustCatalog(), nil)
	}
	return &Visitor{
		ID:      id,
		Locale:  locale,
		Upload:  NewGuarded(UploadView{}),
		Draft:   NewGuarded(DraftView{Title: DefaultDraftTitle}),
		Review:  NewGuarded(ReviewView{}),
		History: NewGuarded(HistoryView{}),
	}
}
