package legalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(func() string { return srv.URL }, WithHTTPClient(srv.Client())), srv
}

func TestBaseURLFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewClient(nil).BaseURL())
	assert.Equal(t, DefaultBaseURL, NewClient(func() string { return "  " }).BaseURL())
	assert.Equal(t, "http://api.test", NewClient(func() string { return "http://api.test/" }).BaseURL())
	assert.Equal(t, "http://api.test/export_draft_pdf", NewClient(func() string { return "http://api.test" }).ExportURL(FormatPDF.Path()))
}

func TestBaseURLResolvedPerCall(t *testing.T) {
	var hitsA, hitsB atomic.Int32
	a := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hitsA.Add(1)
		_, _ = w.Write([]byte(`{"answer":"a"}`))
	}))
	defer a.Close()
	b := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hitsB.Add(1)
		_, _ = w.Write([]byte(`{"answer":"b"}`))
	}))
	defer b.Close()

	base := a.URL
	c := NewClient(func() string { return base })

	res, err := c.Ask(context.Background(), AskRequest{SessionID: "s", Question: "q"})
	require.NoError(t, err)
	assert.Equal(t, "a", res.Answer)

	base = b.URL
	res, err = c.Ask(context.Background(), AskRequest{SessionID: "s", Question: "q"})
	require.NoError(t, err)
	assert.Equal(t, "b", res.Answer)

	assert.Equal(t, int32(1), hitsA.Load())
	assert.Equal(t, int32(1), hitsB.Load())
}

func TestUploadSendsMultipart(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathUpload, r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "contract.txt", hdr.Filename)
		assert.Equal(t, "text/plain", hdr.Header.Get("Content-Type"))
		assert.Equal(t, "isi", string(data))

		assert.Equal(t, "1", r.FormValue("confidential"))
		assert.Equal(t, "risk", r.FormValue("preset"))
		assert.Equal(t, "en", r.FormValue("lang"))
		_, hasText := r.MultipartForm.Value["text"]
		assert.False(t, hasText, "empty text must not be sent")

		_, _ = w.Write([]byte(`{"session_id":"abc","num_chars":3}`))
	})

	res, err := c.Upload(context.Background(), UploadRequest{
		File:         &Document{Name: "contract.txt", ContentType: "text/plain", Data: []byte("isi")},
		Confidential: true,
		Preset:       "risk",
		Lang:         "en",
	})
	require.NoError(t, err)
	assert.Equal(t, "abc", res.SessionID)
	assert.Equal(t, 3, res.NumChars)
}

func TestAnalyzeUsesFilesField(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Len(t, r.MultipartForm.File["files"], 1)
		_, hasConfidential := r.MultipartForm.Value["confidential"]
		assert.False(t, hasConfidential)
		_, _ = w.Write([]byte(`{"result":"R","chat_id":null}`))
	})

	res, err := c.Analyze(context.Background(), AnalyzeRequest{
		Files:  []Document{{Name: "a.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}},
		Preset: "summary",
		Lang:   "id",
	})
	require.NoError(t, err)
	assert.Equal(t, "R", res.Result)
	assert.Empty(t, res.ChatID)
}

func TestMissingFieldDegradesToEmpty(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	sum, err := c.Summarize(context.Background(), SummarizeRequest{SessionID: "abc", Lang: "id"})
	require.NoError(t, err)
	assert.Empty(t, sum.Summary)

	rev, err := c.Review(context.Background(), ReviewRequest{CurrentText: "x", Lang: "id"})
	require.NoError(t, err)
	assert.Nil(t, rev.Review)
}

func TestDraftOmitsBlankSession(t *testing.T) {
	var got map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"draft":"D"}`))
	})

	res, err := c.Draft(context.Background(), DraftRequest{DocType: "Surat Kuasa", Tone: "formal", Length: "medium", Lang: "id"})
	require.NoError(t, err)
	assert.Equal(t, "D", res.Draft)
	_, hasSession := got["session_id"]
	assert.False(t, hasSession)
	assert.Equal(t, "Surat Kuasa", got["doc_type"])
}

func TestNon2xxReturnsRawBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad doc"))
	})

	_, err := c.Summarize(context.Background(), SummarizeRequest{SessionID: "abc"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "bad doc", ErrorMessage(err, "Gagal merangkum"))
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"body", &APIError{Status: 500, Body: "boom"}, "boom"},
		{"empty body", &APIError{Status: 500}, "fallback"},
		{"whitespace body", &APIError{Status: 502, Body: "  \n"}, "fallback"},
		{"transport", errors.New("connection refused"), "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err, "fallback"))
		})
	}
}

func TestChats(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, PathChats, r.URL.Path)
		_, _ = w.Write([]byte(`{"chats":[{"id":"c1","title":"Kontrak","confidential":false,"created_at":"2026-01-01T00:00:00"}]}`))
	})

	res, err := c.Chats(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Chats, 1)
	assert.Equal(t, "c1", res.Chats[0].ID)
	assert.Equal(t, "Kontrak", res.Chats[0].Title)
}

func TestExportDraftStreamsBinary(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/export_draft_docx", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "isi draft", r.PostForm.Get("text"))
		assert.Equal(t, "Judul", r.PostForm.Get("title"))
		w.Header().Set("Content-Disposition", `attachment; filename="Judul.docx"`)
		_, _ = w.Write([]byte("PK\x03\x04"))
	})

	var buf bytes.Buffer
	name, err := c.ExportDraft(context.Background(), FormatDOCX, "isi draft", "Judul", &buf)
	require.NoError(t, err)
	assert.Equal(t, "Judul.docx", name)
	assert.Equal(t, "PK\x03\x04", buf.String())
}

func TestExportChatPDFFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "c9", r.PostForm.Get("chat_id"))
		w.WriteHeader(http.StatusNotFound)
	})

	var buf bytes.Buffer
	_, err := c.ExportChatPDF(context.Background(), "c9", &buf)
	require.Error(t, err)
	assert.Equal(t, "fallback", ErrorMessage(err, "fallback"))
	assert.Zero(t, buf.Len())
}
