package dto

import "ai-hukum-web/pkg/legalapi"

// Preset values accepted by the analyze endpoint.
const (
	PresetSummary  = "summary"
	PresetRisk     = "risk"
	PresetClauses  = "clauses"
	PresetTimeline = "timeline"
)

func Presets() []string {
	return []string{PresetSummary, PresetRisk, PresetClauses, PresetTimeline}
}

// Draft defaults, mirrored in the form's initial values.
const (
	DefaultDocType = "Surat Kuasa"
	DefaultTone    = "formal"
	DefaultLength  = "medium"
)

func Tones() []string   { return []string{"formal", "neutral", "persuasive"} }
func Lengths() []string { return []string{"short", "medium", "long"} }

// UploadInput is the upload form. File is nil when no file was chosen.
type UploadInput struct {
	File         *legalapi.Document `form:"-"`
	Text         string             `form:"text"`
	Confidential bool               `form:"confidential"`
	Preset       string             `form:"preset"`
}

type AskInput struct {
	Question string `form:"question"`
}

type DraftInput struct {
	SessionID    string `form:"session_id"`
	DocType      string `form:"doc_type"`
	Requirements string `form:"requirements"`
	Tone         string `form:"tone"`
	Length       string `form:"length"`
	Title        string `form:"title"`
}

type ReviewInput struct {
	CurrentFile  *legalapi.Document `form:"-"`
	PreviousFile *legalapi.Document `form:"-"`
	CurrentText  string             `form:"text_current"`
	PreviousText string             `form:"text_previous"`
}

type LocaleInput struct {
	Lang string `form:"lang"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}
