package service

import (
	"context"
	"io"

	"ai-hukum-web/internal/pkg/logger"
	"ai-hukum-web/pkg/events"
	"ai-hukum-web/pkg/legalapi"
	"ai-hukum-web/pkg/store"
)

// IHistoryService lists stored (non-confidential) analyses and exposes the
// chat transcript export.
type IHistoryService interface {
	Load(ctx context.Context, v *store.Visitor) store.HistoryView
	ExportTarget() string
	Export(ctx context.Context, chatID string, w io.Writer) (string, error)
}

type historyService struct {
	backend  LegalBackend
	activity IActivityService
	logger   logger.ILogger
}

func NewHistoryService(backend LegalBackend, activity IActivityService, log logger.ILogger) IHistoryService {
	return &historyService{
		backend:  backend,
		activity: activity,
		logger:   log,
	}
}

func (s *historyService) Load(ctx context.Context, v *store.Visitor) store.HistoryView {
	s.load(ctx, v)
	return v.History.Snapshot()
}

func (s *historyService) load(ctx context.Context, v *store.Visitor) {
	t := v.Locale.Translator()

	v.History.Update(func(h *store.HistoryView) {
		h.Chats = nil
		h.Loaded = false
		h.Status.Begin()
	})
	defer v.History.Update(func(h *store.HistoryView) { h.Status.Loading = false })

	res, err := s.backend.Chats(ctx)
	if err != nil {
		s.logger.Warn("HISTORY", "Loading chats failed", map[string]interface{}{"visitor_id": v.ID, "error": err.Error()})
		v.History.Update(func(h *store.HistoryView) { h.Status.Error = legalapi.ErrorMessage(err, t("error.history")) })
		return
	}

	v.History.Update(func(h *store.HistoryView) {
		h.Chats = res.Chats
		h.Loaded = true
	})
	s.activity.Record(ctx, events.New(events.TypeHistoryLoaded, v.ID, map[string]interface{}{"count": len(res.Chats)}))
}

func (s *historyService) ExportTarget() string {
	return s.backend.ExportURL(legalapi.PathExportChatPDF)
}

func (s *historyService) Export(ctx context.Context, chatID string, w io.Writer) (string, error) {
	return s.backend.ExportChatPDF(ctx, chatID, w)
}
