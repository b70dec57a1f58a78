package legalapi

// Document is one uploaded file part.
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

type UploadRequest struct {
	File         *Document
	Text         string
	Confidential bool
	Preset       string
	Lang         string
}

type UploadResponse struct {
	SessionID string `json:"session_id"`
	NumChars  int    `json:"num_chars"`
}

type SummarizeRequest struct {
	SessionID string `json:"session_id"`
	Lang      string `json:"lang"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type AnalyzeRequest struct {
	Files        []Document
	Text         string
	Confidential bool
	Preset       string
	Lang         string
}

type AnalyzeResponse struct {
	Result string `json:"result"`
	ChatID string `json:"chat_id"` // null when the analysis ran in confidential mode
}

type AskRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
	Lang      string `json:"lang"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type DraftRequest struct {
	SessionID    string `json:"session_id,omitempty"`
	DocType      string `json:"doc_type"`
	Requirements string `json:"requirements"`
	Tone         string `json:"tone"`
	Length       string `json:"length"`
	Lang         string `json:"lang"`
}

type DraftResponse struct {
	Draft string `json:"draft"`
}

type ReviewRequest struct {
	CurrentFile  *Document
	PreviousFile *Document
	CurrentText  string
	PreviousText string
	Lang         string
}

// Review is the structured result of /review. Every field is optional.
type Review struct {
	Summary         string   `json:"summary,omitempty"`
	Missing         []string `json:"missing,omitempty"`
	Issues          []string `json:"issues,omitempty"`
	Changes         []string `json:"changes,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	Citations       []string `json:"citations,omitempty"`
}

type ReviewResponse struct {
	Review *Review `json:"review"`
}

// ChatSummary is one row of the analysis history.
type ChatSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Confidential bool   `json:"confidential"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type ChatsResponse struct {
	Chats []ChatSummary `json:"chats"`
}

// ExportFormat selects a draft export endpoint.
type ExportFormat string

const (
	FormatPDF  ExportFormat = "pdf"
	FormatDOCX ExportFormat = "docx"
)

// Path is the backend path accepting the native form submission.
func (f ExportFormat) Path() string {
	return "/export_draft_" + string(f)
}

const (
	PathUpload        = "/upload"
	PathSummarize     = "/summarize"
	PathAnalyze       = "/analyze"
	PathAsk           = "/ask"
	PathDraft         = "/draft"
	PathReview        = "/review"
	PathChats         = "/chats"
	PathExportChatPDF = "/export_pdf"
)
