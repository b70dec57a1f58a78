package controller

import (
	"ai-hukum-web/internal/pkg/serverutils"
	"ai-hukum-web/internal/service"
	"ai-hukum-web/internal/view"

	"github.com/gofiber/fiber/v2"
)

type IHistoryController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

type historyController struct {
	service service.IHistoryService
}

func NewHistoryController(service service.IHistoryService) IHistoryController {
	return &historyController{service: service}
}

func (c *historyController) RegisterRoutes(r fiber.Router) {
	r.Get("/riwayat", c.Show)
}

func (c *historyController) Show(ctx *fiber.Ctx) error {
	v := serverutils.CurrentVisitor(ctx)

	return ctx.Render("history", view.With(view.Base(v, "history"), fiber.Map{
		"View":      c.service.Load(ctx.UserContext(), v),
		"ExportURL": c.service.ExportTarget(),
	}), view.Layout)
}
