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

type IReviewService interface {
	Review(ctx context.Context, v *store.Visitor, in dto.ReviewInput) store.ReviewView
}

type reviewService struct {
	backend  LegalBackend
	activity IActivityService
	logger   logger.ILogger
}

func NewReviewService(backend LegalBackend, activity IActivityService, log logger.ILogger) IReviewService {
	return &reviewService{
		backend:  backend,
		activity: activity,
		logger:   log,
	}
}

func (s *reviewService) Review(ctx context.Context, v *store.Visitor, in dto.ReviewInput) store.ReviewView {
	s.review(ctx, v, in)
	return v.Review.Snapshot()
}

func (s *reviewService) review(ctx context.Context, v *store.Visitor, in dto.ReviewInput) {
	t := v.Locale.Translator()

	v.Review.Update(func(r *store.ReviewView) {
		r.Result = nil
		r.Status.Begin()
	})
	defer v.Review.Update(func(r *store.ReviewView) { r.Status.Loading = false })

	res, err := s.backend.Review(ctx, legalapi.ReviewRequest{
		CurrentFile:  in.CurrentFile,
		PreviousFile: in.PreviousFile,
		CurrentText:  strings.TrimSpace(in.CurrentText),
		PreviousText: strings.TrimSpace(in.PreviousText),
		Lang:         string(v.Locale.Locale()),
	})
	if err != nil {
		s.logger.Warn("REVIEW", "Review failed", map[string]interface{}{"visitor_id": v.ID, "error": err.Error()})
		s.activity.Record(ctx, events.New(events.TypeRequestFailed, v.ID, map[string]interface{}{"step": "review"}))
		v.Review.Update(func(r *store.ReviewView) { r.Status.Error = legalapi.ErrorMessage(err, t("error.review")) })
		return
	}

	result := res.Review
	if result == nil {
		result = &legalapi.Review{}
	}
	v.Review.Update(func(r *store.ReviewView) { r.Result = result })

	s.activity.Record(ctx, events.New(events.TypeReviewCompleted, v.ID, map[string]interface{}{
		"has_previous": in.PreviousFile != nil || strings.TrimSpace(in.PreviousText) != "",
		"issues":       len(result.Issues),
		"missing":      len(result.Missing),
	}))
}
