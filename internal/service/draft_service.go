package service

import (
	"context"
	"io"
	"strings"

	"ai-hukum-web/internal/dto"
	"ai-hukum-web/internal/pkg/logger"
	"ai-hukum-web/pkg/events"
	"ai-hukum-web/pkg/legalapi"
	"ai-hukum-web/pkg/store"
)

type IDraftService interface {
	Generate(ctx context.Context, v *store.Visitor, in dto.DraftInput) store.DraftView
	// ExportTargets are the native form actions for the draft downloads.
	ExportTargets() ExportTargets
	// Export fetches a rendered draft for clients without a browser.
	Export(ctx context.Context, format legalapi.ExportFormat, text, title string, w io.Writer) (string, error)
}

type ExportTargets struct {
	PDF  string
	DOCX string
}

type draftService struct {
	backend  LegalBackend
	activity IActivityService
	logger   logger.ILogger
}

func NewDraftService(backend LegalBackend, activity IActivityService, log logger.ILogger) IDraftService {
	return &draftService{
		backend:  backend,
		activity: activity,
		logger:   log,
	}
}

// withDraftDefaults fills blank selections the way the form preselects them.
func withDraftDefaults(in dto.DraftInput) dto.DraftInput {
	in.SessionID = strings.TrimSpace(in.SessionID)
	if strings.TrimSpace(in.DocType) == "" {
		in.DocType = dto.DefaultDocType
	}
	if in.Tone == "" {
		in.Tone = dto.DefaultTone
	}
	if in.Length == "" {
		in.Length = dto.DefaultLength
	}
	if strings.TrimSpace(in.Title) == "" {
		in.Title = store.DefaultDraftTitle
	}
	return in
}

func (s *draftService) Generate(ctx context.Context, v *store.Visitor, in dto.DraftInput) store.DraftView {
	s.generate(ctx, v, withDraftDefaults(in))
	return v.Draft.Snapshot()
}

func (s *draftService) generate(ctx context.Context, v *store.Visitor, in dto.DraftInput) {
	t := v.Locale.Translator()

	v.Draft.Update(func(d *store.DraftView) {
		d.Draft = ""
		d.Title = in.Title
		d.SessionID = in.SessionID
		d.DocType = in.DocType
		d.Requirements = in.Requirements
		d.Tone = in.Tone
		d.Length = in.Length
		d.Status.Begin()
	})
	defer v.Draft.Update(func(d *store.DraftView) { d.Status.Loading = false })

	res, err := s.backend.Draft(ctx, legalapi.DraftRequest{
		SessionID:    in.SessionID,
		DocType:      in.DocType,
		Requirements: in.Requirements,
		Tone:         in.Tone,
		Length:       in.Length,
		Lang:         string(v.Locale.Locale()),
	})
	if err != nil {
		s.logger.Warn("DRAFT", "Draft failed", map[string]interface{}{"visitor_id": v.ID, "error": err.Error()})
		s.activity.Record(ctx, events.New(events.TypeRequestFailed, v.ID, map[string]interface{}{"step": "draft"}))
		v.Draft.Update(func(d *store.DraftView) { d.Status.Error = legalapi.ErrorMessage(err, t("error.draft")) })
		return
	}

	v.Draft.Update(func(d *store.DraftView) { d.Draft = res.Draft })
	s.activity.Record(ctx, events.New(events.TypeDraftGenerated, v.ID, map[string]interface{}{
		"doc_type": in.DocType,
		"tone":     in.Tone,
		"length":   in.Length,
	}))
}

func (s *draftService) ExportTargets() ExportTargets {
	return ExportTargets{
		PDF:  s.backend.ExportURL(legalapi.FormatPDF.Path()),
		DOCX: s.backend.ExportURL(legalapi.FormatDOCX.Path()),
	}
}

func (s *draftService) Export(ctx context.Context, format legalapi.ExportFormat, text, title string, w io.Writer) (string, error) {
	if strings.TrimSpace(title) == "" {
		title = store.DefaultDraftTitle
	}
	return s.backend.ExportDraft(ctx, format, text, title, w)
}
