package service

import (
	"context"
	"strings"

	"ai-hukum-web/internal/dto"
	"ai-hukum-web/internal/pkg/logger"
	"ai-hukum-web/pkg/events"
	"ai-hukum-web/pkg/legalapi"
	"ai-hukum-web/pkg/store"
)

// SummaryDivider separates the analysis result from the plain summary.
const SummaryDivider = "\n\n---\n\n"

// IUploadService runs the home page flows: upload, summarize and the
// optional analysis, then questions against the resulting session.
type IUploadService interface {
	Submit(ctx context.Context, v *store.Visitor, in dto.UploadInput) store.UploadView
	Ask(ctx context.Context, v *store.Visitor, in dto.AskInput) store.UploadView
}

type uploadService struct {
	backend  LegalBackend
	activity IActivityService
	logger   logger.ILogger
}

func NewUploadService(backend LegalBackend, activity IActivityService, log logger.ILogger) IUploadService {
	return &uploadService{
		backend:  backend,
		activity: activity,
		logger:   log,
	}
}

func (s *uploadService) Submit(ctx context.Context, v *store.Visitor, in dto.UploadInput) store.UploadView {
	s.submit(ctx, v, in)
	return v.Upload.Snapshot()
}

func (s *uploadService) submit(ctx context.Context, v *store.Visitor, in dto.UploadInput) {
	t := v.Locale.Translator()
	lang := string(v.Locale.Locale())

	v.Upload.Update(func(u *store.UploadView) {
		u.SessionID = ""
		u.Summary = ""
		u.Answer = ""
		u.ChatID = ""
		u.Upload.Begin()
	})
	defer v.Upload.Update(func(u *store.UploadView) { u.Upload.Loading = false })

	if in.Preset == "" {
		in.Preset = dto.PresetSummary
	}

	text := strings.TrimSpace(in.Text)
	if key := violation(uploadGuard{HasFile: in.File != nil, Text: text}); key != "" {
		s.fail(v, t(key))
		return
	}

	uploaded, err := s.backend.Upload(ctx, legalapi.UploadRequest{
		File:         in.File,
		Text:         text,
		Confidential: in.Confidential,
		Preset:       in.Preset,
		Lang:         lang,
	})
	if err != nil {
		s.logger.Warn("UPLOAD", "Upload failed", map[string]interface{}{"visitor_id": v.ID, "error": err.Error()})
		s.activity.Record(ctx, events.New(events.TypeUploadFailed, v.ID, map[string]interface{}{"step": "upload"}))
		s.fail(v, legalapi.ErrorMessage(err, t("error.upload")))
		return
	}

	sessionID := uploaded.SessionID
	v.Upload.Update(func(u *store.UploadView) { u.SessionID = sessionID })

	summarized, err := s.backend.Summarize(ctx, legalapi.SummarizeRequest{SessionID: sessionID, Lang: lang})
	if err != nil {
		s.logger.Warn("UPLOAD", "Summarize failed", map[string]interface{}{"session_id": sessionID, "error": err.Error()})
		s.activity.Record(ctx, events.New(events.TypeUploadFailed, v.ID, map[string]interface{}{"step": "summarize", "session_id": sessionID}))
		s.fail(v, legalapi.ErrorMessage(err, t("error.summarize")))
		return
	}
	v.Upload.Update(func(u *store.UploadView) { u.Summary = summarized.Summary })

	analyzed, err := s.analyze(ctx, in, text, lang)
	if err != nil {
		s.discardAnalyzeFailure(ctx, v, sessionID, err)
	} else {
		v.Upload.Update(func(u *store.UploadView) {
			if analyzed.Result != "" {
				u.Summary = analyzed.Result + SummaryDivider + u.Summary
			}
			u.ChatID = analyzed.ChatID
		})
	}

	s.activity.Record(ctx, events.New(events.TypeUploadSucceeded, v.ID, map[string]interface{}{
		"session_id":   sessionID,
		"num_chars":    uploaded.NumChars,
		"confidential": in.Confidential,
		"preset":       in.Preset,
	}))
}

// analyze resends the upload inputs for the extended analysis.
func (s *uploadService) analyze(ctx context.Context, in dto.UploadInput, text, lang string) (*legalapi.AnalyzeResponse, error) {
	req := legalapi.AnalyzeRequest{
		Text:         text,
		Confidential: in.Confidential,
		Preset:       in.Preset,
		Lang:         lang,
	}
	if in.File != nil {
		req.Files = []legalapi.Document{*in.File}
	}
	return s.backend.Analyze(ctx, req)
}

// discardAnalyzeFailure drops the error of the optional analysis: the summary
// is shown as is and no error reaches the page.
func (s *uploadService) discardAnalyzeFailure(ctx context.Context, v *store.Visitor, sessionID string, err error) {
	s.logger.Debug("UPLOAD", "Analyze failed, keeping plain summary", map[string]interface{}{"session_id": sessionID, "error": err.Error()})
	s.activity.Record(ctx, events.New(events.TypeAnalyzeDiscarded, v.ID, map[string]interface{}{"session_id": sessionID}))
}

func (s *uploadService) fail(v *store.Visitor, msg string) {
	v.Upload.Update(func(u *store.UploadView) { u.Upload.Error = msg })
}

func (s *uploadService) Ask(ctx context.Context, v *store.Visitor, in dto.AskInput) store.UploadView {
	s.ask(ctx, v, in)
	return v.Upload.Snapshot()
}

func (s *uploadService) ask(ctx context.Context, v *store.Visitor, in dto.AskInput) {
	t := v.Locale.Translator()
	lang := string(v.Locale.Locale())

	var sessionID string
	v.Upload.Update(func(u *store.UploadView) {
		u.Ask.Error = ""
		u.Answer = ""
		sessionID = u.SessionID
	})

	question := strings.TrimSpace(in.Question)
	if key := violation(askGuard{SessionID: sessionID, Question: question}); key != "" {
		v.Upload.Update(func(u *store.UploadView) { u.Ask.Error = t(key) })
		return
	}

	v.Upload.Update(func(u *store.UploadView) { u.Ask.Loading = true })
	defer v.Upload.Update(func(u *store.UploadView) { u.Ask.Loading = false })

	res, err := s.backend.Ask(ctx, legalapi.AskRequest{SessionID: sessionID, Question: question, Lang: lang})
	if err != nil {
		s.logger.Warn("ASK", "Ask failed", map[string]interface{}{"session_id": sessionID, "error": err.Error()})
		s.activity.Record(ctx, events.New(events.TypeRequestFailed, v.ID, map[string]interface{}{"step": "ask", "session_id": sessionID}))
		v.Upload.Update(func(u *store.UploadView) { u.Ask.Error = legalapi.ErrorMessage(err, t("error.ask")) })
		return
	}

	v.Upload.Update(func(u *store.UploadView) { u.Answer = res.Answer })
	s.activity.Record(ctx, events.New(events.TypeQuestionAsked, v.ID, map[string]interface{}{"session_id": sessionID}))
}
