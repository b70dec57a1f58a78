package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"ai-hukum-web/internal/dto"
	"ai-hukum-web/pkg/i18n"
	"ai-hukum-web/pkg/legalapi"
	"ai-hukum-web/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAppliesDefaultsAndOmitsBlankSession(t *testing.T) {
	fb := newFakeBackend(t)
	var got map[string]any
	fb.handle(legalapi.PathDraft, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"draft":"SURAT KUASA ..."}`))
	})
	svc := NewDraftService(fb.client(), &recordingActivity{}, nopLogger())

	view := svc.Generate(context.Background(), newVisitor(t, i18n.Indonesian), dto.DraftInput{SessionID: "  "})

	assert.Equal(t, "SURAT KUASA ...", view.Draft)
	assert.Equal(t, store.DefaultDraftTitle, view.Title)
	assert.False(t, view.Status.Loading)
	assert.Empty(t, view.Status.Error)

	_, hasSession := got["session_id"]
	assert.False(t, hasSession)
	assert.Equal(t, dto.DefaultDocType, got["doc_type"])
	assert.Equal(t, "formal", got["tone"])
	assert.Equal(t, "medium", got["length"])
	assert.Equal(t, "id", got["lang"])
}

func TestGenerateFailureClearsDraft(t *testing.T) {
	fb := newFakeBackend(t)
	fb.reply(legalapi.PathDraft, http.StatusInternalServerError, "")
	svc := NewDraftService(fb.client(), &recordingActivity{}, nopLogger())

	v := newVisitor(t, i18n.English)
	v.Draft.Update(func(d *store.DraftView) { d.Draft = "previous draft" })

	view := svc.Generate(context.Background(), v, dto.DraftInput{
		SessionID:    "abc",
		DocType:      "Perjanjian Sewa",
		Requirements: "para pihak",
		Tone:         "neutral",
		Length:       "long",
		Title:        "Sewa Ruko",
	})

	assert.Empty(t, view.Draft)
	assert.Equal(t, "Failed to draft", view.Status.Error)
	assert.Equal(t, "Sewa Ruko", view.Title)
	assert.Equal(t, "Perjanjian Sewa", view.DocType, "inputs are echoed back")
}

func TestExportTargetsFollowBaseURL(t *testing.T) {
	base := "http://one:8000"
	client := legalapi.NewClient(func() string { return base })
	svc := NewDraftService(client, &recordingActivity{}, nopLogger())

	assert.Equal(t, ExportTargets{PDF: "http://one:8000/export_draft_pdf", DOCX: "http://one:8000/export_draft_docx"}, svc.ExportTargets())

	base = "http://two:9000/"
	assert.Equal(t, "http://two:9000/export_draft_pdf", svc.ExportTargets().PDF)
}

func TestExportDefaultsTitle(t *testing.T) {
	fb := newFakeBackend(t)
	fb.handle("/export_draft_pdf", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, store.DefaultDraftTitle, r.PostForm.Get("title"))
		w.Header().Set("Content-Disposition", `attachment; filename="draft.pdf"`)
		_, _ = w.Write([]byte("%PDF"))
	})
	svc := NewDraftService(fb.client(), &recordingActivity{}, nopLogger())

	var buf bytes.Buffer
	name, err := svc.Export(context.Background(), legalapi.FormatPDF, "isi", "", &buf)
	require.NoError(t, err)
	assert.Equal(t, "draft.pdf", name)
	assert.Equal(t, "%PDF", buf.String())
}
