package service

import (
	"context"
	"io"

	"ai-hukum-web/pkg/legalapi"
)

// LegalBackend is the part of the legal assistant API the services drive.
// *legalapi.Client implements it.
type LegalBackend interface {
	Upload(ctx context.Context, req legalapi.UploadRequest) (*legalapi.UploadResponse, error)
	Summarize(ctx context.Context, req legalapi.SummarizeRequest) (*legalapi.SummarizeResponse, error)
	Analyze(ctx context.Context, req legalapi.AnalyzeRequest) (*legalapi.AnalyzeResponse, error)
	Ask(ctx context.Context, req legalapi.AskRequest) (*legalapi.AskResponse, error)
	Draft(ctx context.Context, req legalapi.DraftRequest) (*legalapi.DraftResponse, error)
	Review(ctx context.Context, req legalapi.ReviewRequest) (*legalapi.ReviewResponse, error)
	Chats(ctx context.Context) (*legalapi.ChatsResponse, error)
	ExportDraft(ctx context.Context, format legalapi.ExportFormat, text, title string, w io.Writer) (string, error)
	ExportChatPDF(ctx context.Context, chatID string, w io.Writer) (string, error)
	ExportURL(path string) string
}

var _ LegalBackend = (*legalapi.Client)(nil)
