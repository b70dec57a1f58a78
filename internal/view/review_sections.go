package view

import (
	"strings"

	"ai-hukum-web/pkg/i18n"
	"ai-hukum-web/pkg/legalapi"
)

// Section is one rendered block of a review result. Text is set for the
// summary, Items for the list fields.
type Section struct {
	Key   string
	Title string
	Text  string
	Items []string
}

// ReviewSections lists the non-empty parts of r in display order. Absent and
// empty fields produce no section.
func ReviewSections(r *legalapi.Review, t i18n.Translator) []Section {
	if r == nil {
		return nil
	}

	var sections []Section
	if strings.TrimSpace(r.Summary) != "" {
		sections = append(sections, Section{Key: "summary", Title: t("review.summary"), Text: r.Summary})
	}

	lists := []struct {
		key   string
		items []string
	}{
		{"missing", r.Missing},
		{"issues", r.Issues},
		{"changes", r.Changes},
		{"recommendations", r.Recommendations},
		{"citations", r.Citations},
	}
	for _, l := range lists {
		if len(l.items) == 0 {
			continue
		}
		sections = append(sections, Section{Key: l.key, Title: t("review." + l.key), Items: l.items})
	}
	return sections
}
