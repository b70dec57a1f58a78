package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ai-hukum-web/internal/config"
	"ai-hukum-web/internal/pkg/logger"
	"ai-hukum-web/internal/service"
	"ai-hukum-web/pkg/i18n"
	"ai-hukum-web/pkg/legalapi"
	"ai-hukum-web/pkg/store"

	"github.com/fatih/color"
)

const usage = `ai-hukum <command> [flags]

Commands:
  upload   upload a file or text, then summarize and analyze it
  ask      ask a question about the last uploaded document
  draft    generate a legal draft (optionally save it as PDF/DOCX)
  export   render a draft text file as PDF/DOCX
  review   review a document against an optional previous version
  history  list stored analyses or export one as PDF
  lang     show or change the display language
`

// app is the CLI's single visitor plus the services it drives.
type app struct {
	ctx     context.Context
	visitor *store.Visitor
	session *i18n.FilePersister
	upload  service.IUploadService
	draft   service.IDraftService
	review  service.IReviewService
	history service.IHistoryService
	locale  service.ILocaleService
}

func prefsPath() string {
	if p := os.Getenv("AI_HUKUM_PREFS"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ai-hukum.yaml"
	}
	return filepath.Join(home, ".ai-hukum.yaml")
}

func newApp(ctx context.Context) *app {
	cfg := config.Load()
	path := prefsPath()

	backend := legalapi.NewClient(cfg.Backend.BaseURL)
	activity := service.NewNoopActivityService()
	log := logger.NewNopLogger()

	locale := i18n.NewStoreWithFallback(ctx, i18n.MustCatalog(), i18n.NewFilePersister(path, "lang"), i18n.Locale(cfg.Locale.Default))
	visitor := store.NewVisitor("cli", locale)

	a := &app{
		ctx:     ctx,
		visitor: visitor,
		session: i18n.NewFilePersister(path, "session_id"),
		upload:  service.NewUploadService(backend, activity, log),
		draft:   service.NewDraftService(backend, activity, log),
		review:  service.NewReviewService(backend, activity, log),
		history: service.NewHistoryService(backend, activity, log),
		locale:  service.NewLocaleService(activity, log),
	}

	a.locale.Track(visitor)

	if id, err := a.session.Load(ctx); err == nil && id != "" {
		visitor.Upload.Update(func(u *store.UploadView) { u.SessionID = id })
	}
	return a
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	a := newApp(context.Background())

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "upload":
		err = a.runUpload(args)
	case "ask":
		err = a.runAsk(args)
	case "draft":
		err = a.runDraft(args)
	case "export":
		err = a.runExport(args)
	case "review":
		err = a.runReview(args)
	case "history":
		err = a.runHistory(args)
	case "lang":
		err = a.runLang(args)
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}

	if err != nil {
		if !errors.Is(err, errShown) {
			color.Red("%v", err)
		}
		os.Exit(1)
	}
}
