package controller

import (
	"ai-hukum-web/internal/dto"
	"ai-hukum-web/internal/pkg/serverutils"
	"ai-hukum-web/internal/service"
	"ai-hukum-web/internal/view"

	"github.com/gofiber/fiber/v2"
)

type IHomeController interface {
	RegisterRoutes(r fiber.Router)
	Index(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
}

type homeController struct {
	uploadService  service.IUploadService
	historyService service.IHistoryService
}

func NewHomeController(uploadService service.IUploadService, historyService service.IHistoryService) IHomeController {
	return &homeController{
		uploadService:  uploadService,
		historyService: historyService,
	}
}

func (c *homeController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Index)
	r.Post("/upload", c.Upload)
	r.Post("/ask", c.Ask)
}

func (c *homeController) Index(ctx *fiber.Ctx) error {
	v := serverutils.CurrentVisitor(ctx)

	return ctx.Render("index", view.With(view.Base(v, "home"), fiber.Map{
		"View":          v.Upload.Snapshot(),
		"Presets":       dto.Presets(),
		"ChatExportURL": c.historyService.ExportTarget(),
	}), view.Layout)
}

func (c *homeController) Upload(ctx *fiber.Ctx) error {
	v := serverutils.CurrentVisitor(ctx)

	var in dto.UploadInput
	if err := ctx.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form")
	}

	file, err := serverutils.FormDocument(ctx, "file")
	if err != nil {
		return err
	}
	in.File = file

	c.uploadService.Submit(ctx.UserContext(), v, in)
	return ctx.Redirect("/#mulai", fiber.StatusSeeOther)
}

func (c *homeController) Ask(ctx *fiber.Ctx) error {
	v := serverutils.CurrentVisitor(ctx)

	var in dto.AskInput
	if err := ctx.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form")
	}

	c.uploadService.Ask(ctx.UserContext(), v, in)
	return ctx.Redirect("/#mulai", fiber.StatusSeeOther)
}
