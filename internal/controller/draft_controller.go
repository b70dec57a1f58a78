package controller

import (
	"ai-hukum-web/internal/dto"
	"ai-hukum-web/internal/pkg/serverutils"
	"ai-hukum-web/internal/service"
	"ai-hukum-web/internal/view"
	"ai-hukum-web/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type IDraftController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Generate(ctx *fiber.Ctx) error
}

type draftController struct {
	service service.IDraftService
}

func NewDraftController(service service.IDraftService) IDraftController {
	return &draftController{service: service}
}

func (c *draftController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/draft")
	h.Get("/", c.Show)
	h.Post("/", c.Generate)
}

func (c *draftController) Show(ctx *fiber.Ctx) error {
	v := serverutils.CurrentVisitor(ctx)
	snap := v.Draft.Snapshot()

	return ctx.Render("draft", view.With(view.Base(v, "draft"), fiber.Map{
		"View":    snap,
		"Form":    draftForm(snap, v.Upload.Snapshot().SessionID),
		"Tones":   dto.Tones(),
		"Lengths": dto.Lengths(),
		"Export":  c.service.ExportTargets(),
	}), view.Layout)
}

func (c *draftController) Generate(ctx *fiber.Ctx) error {
	v := serverutils.CurrentVisitor(ctx)

	var in dto.DraftInput
	if err := ctx.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form")
	}

	c.service.Generate(ctx.UserContext(), v, in)
	return ctx.Redirect("/draft", fiber.StatusSeeOther)
}

// draftForm prefills the form from the last submission, falling back to the
// defaults and to the home page session.
func draftForm(d store.DraftView, uploadSession string) dto.DraftInput {
	form := dto.DraftInput{
		SessionID:    d.SessionID,
		DocType:      d.DocType,
		Requirements: d.Requirements,
		Tone:         d.Tone,
		Length:       d.Length,
		Title:        d.Title,
	}
	if form.DocType == "" {
		form.DocType = dto.DefaultDocType
	}
	if form.Tone == "" {
		form.Tone = dto.DefaultTone
	}
	if form.Length == "" {
		form.Length = dto.DefaultLength
	}
	if form.SessionID == "" {
		form.SessionID = uploadSession
	}
	if form.Title == "" {
		form.Title = store.DefaultDraftTitle
	}
	return form
}
