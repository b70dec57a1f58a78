package main

import (
	"errors"
	"flag"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"ai-hukum-web/internal/dto"
	"ai-hukum-web/internal/view"
	"ai-hukum-web/pkg/i18n"
	"ai-hukum-web/pkg/legalapi"

	"github.com/fatih/color"
)

// errShown marks a failure whose message was already printed.
var errShown = errors.New("request failed")

func (a *app) t(key string) string {
	return a.visitor.Locale.Lookup(key)
}

func readDocument(path string) (*legalapi.Document, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &legalapi.Document{Name: filepath.Base(path), ContentType: contentType, Data: data}, nil
}

func heading(s string) {
	color.New(color.FgCyan, color.Bold).Println(s)
}

func showError(msg string) error {
	if msg == "" {
		return nil
	}
	color.Red("%s", msg)
	return errShown
}

func (a *app) runUpload(args []string) error {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	file := fs.String("file", "", "PDF or TXT file")
	text := fs.String("text", "", "document text instead of a file")
	confidential := fs.Bool("confidential", false, "do not store the chat history")
	preset := fs.String("preset", dto.PresetSummary, "analysis preset: "+strings.Join(dto.Presets(), ", "))
	_ = fs.Parse(args)

	doc, err := readDocument(*file)
	if err != nil {
		return err
	}

	color.Yellow("%s", a.t("upload.loading"))
	view := a.upload.Submit(a.ctx, a.visitor, dto.UploadInput{
		File:         doc,
		Text:         *text,
		Confidential: *confidential,
		Preset:       *preset,
	})

	// the session is stored even when summarizing failed, so ask can still use it
	if err := a.session.Save(a.ctx, view.SessionID); err != nil {
		color.Yellow("session not saved: %v", err)
	}
	if err := showError(view.Upload.Error); err != nil {
		return err
	}

	color.Green("%s: %s", a.t("upload.session"), view.SessionID)
	heading(a.t("summary.title"))
	fmt.Println(view.Summary)
	if view.ChatID != "" {
		fmt.Printf("\nchat: %s (ai-hukum history -export %s)\n", view.ChatID, view.ChatID)
	}
	return nil
}

func (a *app) runAsk(args []string) error {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	question := fs.String("q", "", "question about the uploaded document")
	_ = fs.Parse(args)

	q := *question
	if q == "" {
		q = strings.Join(fs.Args(), " ")
	}

	view := a.upload.Ask(a.ctx, a.visitor, dto.AskInput{Question: q})
	if err := showError(view.Ask.Error); err != nil {
		return err
	}

	heading(a.t("answer.title"))
	fmt.Println(view.Answer)
	return nil
}

func (a *app) runDraft(args []string) error {
	fs := flag.NewFlagSet("draft", flag.ExitOnError)
	docType := fs.String("type", dto.DefaultDocType, "document type")
	requirements := fs.String("req", "", "requirements / points to include")
	tone := fs.String("tone", dto.DefaultTone, strings.Join(dto.Tones(), ", "))
	length := fs.String("length", dto.DefaultLength, strings.Join(dto.Lengths(), ", "))
	useSession := fs.Bool("with-session", false, "use the last upload session as context")
	title := fs.String("title", "", "export title")
	out := fs.String("out", "", "also save the draft to this .pdf or .docx file")
	_ = fs.Parse(args)

	in := dto.DraftInput{
		DocType:      *docType,
		Requirements: *requirements,
		Tone:         *tone,
		Length:       *length,
		Title:        *title,
	}
	if *useSession {
		in.SessionID = a.visitor.Upload.Snapshot().SessionID
	}

	color.Yellow("%s", a.t("draft.loading"))
	view := a.draft.Generate(a.ctx, a.visitor, in)
	if err := showError(view.Status.Error); err != nil {
		return err
	}

	heading(a.t("draft.result"))
	fmt.Println(view.Draft)

	if *out == "" {
		return nil
	}
	return a.saveExport(*out, view.Draft, view.Title)
}

func (a *app) runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	in := fs.String("in", "", "draft text file")
	title := fs.String("title", "", "document title")
	out := fs.String("out", "", "target .pdf or .docx file")
	_ = fs.Parse(args)

	if *in == "" || *out == "" {
		return errors.New("export needs -in and -out")
	}
	text, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("read %s: %w", *in, err)
	}
	return a.saveExport(*out, string(text), *title)
}

func exportFormat(path string) (legalapi.ExportFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return legalapi.FormatPDF, nil
	case ".docx":
		return legalapi.FormatDOCX, nil
	}
	return "", fmt.Errorf("unsupported export file %s, use .pdf or .docx", path)
}

var exportLabels = map[legalapi.ExportFormat]string{
	legalapi.FormatPDF:  "draft.downloadPdf",
	legalapi.FormatDOCX: "draft.downloadDocx",
}

func (a *app) saveExport(path, text, title string) error {
	format, err := exportFormat(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := a.draft.Export(a.ctx, format, text, title, f); err != nil {
		_ = os.Remove(path)
		return showError(legalapi.ErrorMessage(err, a.t("error.generic")))
	}
	color.Green("%s -> %s", a.t(exportLabels[format]), path)
	return nil
}

func (a *app) runReview(args []string) error {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	current := fs.String("current", "", "current document file")
	previous := fs.String("previous", "", "previous document file")
	currentText := fs.String("current-text", "", "current document text")
	previousText := fs.String("previous-text", "", "previous document text")
	_ = fs.Parse(args)

	cur, err := readDocument(*current)
	if err != nil {
		return err
	}
	prev, err := readDocument(*previous)
	if err != nil {
		return err
	}

	color.Yellow("%s", a.t("review.loading"))
	view := a.review.Review(a.ctx, a.visitor, dto.ReviewInput{
		CurrentFile:  cur,
		PreviousFile: prev,
		CurrentText:  *currentText,
		PreviousText: *previousText,
	})
	if err := showError(view.Status.Error); err != nil {
		return err
	}

	printReview(view.Result, a.visitor.Locale.Translator())
	return nil
}

func (a *app) runHistory(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	export := fs.String("export", "", "chat id to export as PDF")
	out := fs.String("out", "", "target file for -export (default <chat id>.pdf)")
	_ = fs.Parse(args)

	if *export != "" {
		path := *out
		if path == "" {
			path = *export + ".pdf"
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()

		if _, err := a.history.Export(a.ctx, *export, f); err != nil {
			_ = os.Remove(path)
			return showError(legalapi.ErrorMessage(err, a.t("error.generic")))
		}
		color.Green("%s -> %s", a.t("history.export"), path)
		return nil
	}

	view := a.history.Load(a.ctx, a.visitor)
	if err := showError(view.Status.Error); err != nil {
		return err
	}

	heading(a.t("history.title"))
	if len(view.Chats) == 0 {
		fmt.Println(a.t("history.empty"))
		return nil
	}
	for _, c := range view.Chats {
		mark := ""
		if c.Confidential {
			mark = " [" + a.t("history.confidential") + "]"
		}
		updated := c.UpdatedAt
		if updated == "" {
			updated = c.CreatedAt
		}
		fmt.Printf("%s  %s%s  %s\n", color.CyanString(c.ID), c.Title, mark, updated)
	}
	return nil
}

func (a *app) runLang(args []string) error {
	if len(args) == 0 {
		current := a.visitor.Locale.Locale()
		for _, l := range i18n.Locales() {
			marker := "  "
			if l == current {
				marker = "* "
			}
			fmt.Printf("%s%s  %s\n", marker, l, a.t("lang."+string(l)))
		}
		return nil
	}

	if err := a.locale.SetLocale(a.ctx, a.visitor, args[0]); err != nil {
		return err
	}
	color.Green("%s: %s", a.t("nav.language"), a.t("lang."+args[0]))
	return nil
}

func printReview(r *legalapi.Review, t i18n.Translator) {
	sections := view.ReviewSections(r, t)
	if len(sections) == 0 {
		fmt.Println("-")
		return
	}
	for _, s := range sections {
		heading(s.Title)
		if s.Text != "" {
			fmt.Println(s.Text)
		}
		for _, item := range s.Items {
			fmt.Println("  - " + item)
		}
		fmt.Println()
	}
}
