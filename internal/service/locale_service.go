package service

import (
	"context"
	"fmt"

	"ai-hukum-web/internal/pkg/logger"
	"ai-hukum-web/pkg/events"
	"ai-hukum-web/pkg/i18n"
	"ai-hukum-web/pkg/store"
)

type ILocaleService interface {
	SetLocale(ctx context.Context, v *store.Visitor, lang string) error
	Track(v *store.Visitor)
}

type localeService struct {
	activity IActivityService
	logger   logger.ILogger
}

func NewLocaleService(activity IActivityService, log logger.ILogger) ILocaleService {
	return &localeService{activity: activity, logger: log}
}

// SetLocale switches the visitor's language. A failed persist is logged and
// the switch still applies to this visitor.
func (s *localeService) SetLocale(ctx context.Context, v *store.Visitor, lang string) error {
	l, ok := i18n.ParseLocale(lang)
	if !ok {
		return fmt.Errorf("unsupported locale %q", lang)
	}

	if err := v.Locale.SetLocale(ctx, l); err != nil {
		s.logger.Warn("LOCALE", "Locale not persisted", map[string]interface{}{"visitor_id": v.ID, "error": err.Error()})
	}
	return nil
}

// Track records LOCALE_CHANGED for every switch of v's locale. Call it once
// per visitor.
func (s *localeService) Track(v *store.Visitor) {
	v.Locale.Subscribe(func(from, to i18n.Locale) {
		s.activity.Record(context.Background(), events.New(events.TypeLocaleChanged, v.ID, map[string]interface{}{
			"from": string(from),
			"to":   string(to),
		}))
	})
}
