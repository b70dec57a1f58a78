package legalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBaseURL is used when no base address is configured.
const DefaultBaseURL = "http://localhost:8000"

var tracer = otel.Tracer("ai-hukum-web/legalapi")

// BaseURLFunc resolves the backend address. It is called on every request.
type BaseURLFunc func() string

// Client talks to the legal assistant backend.
type Client struct {
	baseURL    BaseURLFunc
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default traced client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient builds a client. The default HTTP client has no timeout: a slow
// backend keeps the caller waiting for as long as its context allows.
func NewClient(baseURL BaseURLFunc, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the currently configured backend address.
func (c *Client) BaseURL() string {
	base := ""
	if c.baseURL != nil {
		base = strings.TrimSpace(c.baseURL())
	}
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/")
}

// ExportURL is the absolute address a native form posts to.
func (c *Client) ExportURL(path string) string {
	return c.BaseURL() + path
}

func (c *Client) Upload(ctx context.Context, req UploadRequest) (*UploadResponse, error) {
	ctx, span := tracer.Start(ctx, "legalapi.upload")
	defer span.End()
	span.SetAttributes(
		attribute.Bool("legalapi.has_file", req.File != nil),
		attribute.Bool("legalapi.confidential", req.Confidential),
	)

	body, contentType, err := buildMultipart(func(w *multipart.Writer) error {
		if req.File != nil {
			if err := writeFile(w, "file", *req.File); err != nil {
				return err
			}
		}
		return writeFields(w, formFields{
			{"text", req.Text},
			{"confidential", confidentialValue(req.Confidential)},
			{"preset", req.Preset},
			{"lang", req.Lang},
		})
	})
	if err != nil {
		return nil, recordErr(span, err)
	}

	var out UploadResponse
	if err := c.send(ctx, PathUpload, body, contentType, &out); err != nil {
		return nil, recordErr(span, err)
	}
	span.SetAttributes(attribute.String("legalapi.session_id", out.SessionID))
	return &out, nil
}

func (c *Client) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	ctx, span := tracer.Start(ctx, "legalapi.summarize")
	defer span.End()

	var out SummarizeResponse
	if err := c.postJSON(ctx, PathSummarize, req, &out); err != nil {
		return nil, recordErr(span, err)
	}
	return &out, nil
}

func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error) {
	ctx, span := tracer.Start(ctx, "legalapi.analyze")
	defer span.End()
	span.SetAttributes(attribute.String("legalapi.preset", req.Preset))

	body, contentType, err := buildMultipart(func(w *multipart.Writer) error {
		for _, f := range req.Files {
			if err := writeFile(w, "files", f); err != nil {
				return err
			}
		}
		return writeFields(w, formFields{
			{"text", req.Text},
			{"confidential", confidentialValue(req.Confidential)},
			{"preset", req.Preset},
			{"lang", req.Lang},
		})
	})
	if err != nil {
		return nil, recordErr(span, err)
	}

	var out AnalyzeResponse
	if err := c.send(ctx, PathAnalyze, body, contentType, &out); err != nil {
		return nil, recordErr(span, err)
	}
	return &out, nil
}

func (c *Client) Ask(ctx context.Context, req AskRequest) (*AskResponse, error) {
	ctx, span := tracer.Start(ctx, "legalapi.ask")
	defer span.End()

	var out AskResponse
	if err := c.postJSON(ctx, PathAsk, req, &out); err != nil {
		return nil, recordErr(span, err)
	}
	return &out, nil
}

func (c *Client) Draft(ctx context.Context, req DraftRequest) (*DraftResponse, error) {
	ctx, span := tracer.Start(ctx, "legalapi.draft")
	defer span.End()
	span.SetAttributes(attribute.String("legalapi.doc_type", req.DocType))

	var out DraftResponse
	if err := c.postJSON(ctx, PathDraft, req, &out); err != nil {
		return nil, recordErr(span, err)
	}
	return &out, nil
}

func (c *Client) Review(ctx context.Context, req ReviewRequest) (*ReviewResponse, error) {
	ctx, span := tracer.Start(ctx, "legalapi.review")
	defer span.End()

	body, contentType, err := buildMultipart(func(w *multipart.Writer) error {
		if req.CurrentFile != nil {
			if err := writeFile(w, "file_current", *req.CurrentFile); err != nil {
				return err
			}
		}
		if req.PreviousFile != nil {
			if err := writeFile(w, "file_previous", *req.PreviousFile); err != nil {
				return err
			}
		}
		return writeFields(w, formFields{
			{"text_current", req.CurrentText},
			{"text_previous", req.PreviousText},
			{"lang", req.Lang},
		})
	})
	if err != nil {
		return nil, recordErr(span, err)
	}

	var out ReviewResponse
	if err := c.send(ctx, PathReview, body, contentType, &out); err != nil {
		return nil, recordErr(span, err)
	}
	return &out, nil
}

func (c *Client) Chats(ctx context.Context) (*ChatsResponse, error) {
	ctx, span := tracer.Start(ctx, "legalapi.chats")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL()+PathChats, nil)
	if err != nil {
		return nil, recordErr(span, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	var out ChatsResponse
	if err := c.do(req, &out); err != nil {
		return nil, recordErr(span, err)
	}
	return &out, nil
}

// ExportDraft fetches a rendered draft and streams it into w. Browsers use a
// native form post to the same endpoint instead; this is for clients with no
// browsing context. The returned name comes from Content-Disposition.
func (c *Client) ExportDraft(ctx context.Context, format ExportFormat, text, title string, w io.Writer) (string, error) {
	ctx, span := tracer.Start(ctx, "legalapi.export_draft")
	defer span.End()
	span.SetAttributes(attribute.String("legalapi.format", string(format)))

	form := url.Values{}
	form.Set("text", text)
	form.Set("title", title)

	name, err := c.download(ctx, format.Path(), form, w)
	if err != nil {
		return "", recordErr(span, err)
	}
	return name, nil
}

// ExportChatPDF downloads the PDF transcript of a stored analysis.
func (c *Client) ExportChatPDF(ctx context.Context, chatID string, w io.Writer) (string, error) {
	ctx, span := tracer.Start(ctx, "legalapi.export_chat_pdf")
	defer span.End()

	form := url.Values{}
	form.Set("chat_id", chatID)

	name, err := c.download(ctx, PathExportChatPDF, form, w)
	if err != nil {
		return "", recordErr(span, err)
	}
	return name, nil
}

// --- transport helpers ---

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	return c.send(ctx, path, bytes.NewReader(payloadBytes), "application/json", out)
}

func (c *Client) send(ctx context.Context, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL()+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Path: req.URL.Path, Status: resp.StatusCode, Body: string(bodyBytes)}
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

func (c *Client) download(ctx context.Context, path string, form url.Values, w io.Writer) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL()+path, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", &APIError{Path: path, Status: resp.StatusCode, Body: string(bodyBytes)}
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("copy download: %w", err)
	}
	return attachmentName(resp.Header.Get("Content-Disposition")), nil
}

type formFields [][2]string

func buildMultipart(fill func(w *multipart.Writer) error) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := fill(w); err != nil {
		return nil, "", fmt.Errorf("build multipart: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// writeFields skips empty values: absent inputs are not sent at all.
func writeFields(w *multipart.Writer, fields formFields) error {
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		if err := w.WriteField(f[0], f[1]); err != nil {
			return fmt.Errorf("write field %s: %w", f[0], err)
		}
	}
	return nil
}

func writeFile(w *multipart.Writer, field string, doc Document) error {
	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     field,
		"filename": doc.Name,
	}))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create part %s: %w", field, err)
	}
	if _, err := part.Write(doc.Data); err != nil {
		return fmt.Errorf("write part %s: %w", field, err)
	}
	return nil
}

func confidentialValue(on bool) string {
	if on {
		return "1"
	}
	return ""
}

func attachmentName(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}

func recordErr(span trace.Span, err error) error {
	span.RecordError(err)
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", apiErr.Status))
	} else {
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
