package controller

import (
	"ai-hukum-web/internal/dto"
	"ai-hukum-web/internal/pkg/serverutils"
	"ai-hukum-web/internal/service"
	"ai-hukum-web/internal/view"

	"github.com/gofiber/fiber/v2"
)

type IReviewController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Review(ctx *fiber.Ctx) error
}

type reviewController struct {
	service service.IReviewService
}

func NewReviewController(service service.IReviewService) IReviewController {
	return &reviewController{service: service}
}

func (c *reviewController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/review")
	h.Get("/", c.Show)
	h.Post("/", c.Review)
}

func (c *reviewController) Show(ctx *fiber.Ctx) error {
	v := serverutils.CurrentVisitor(ctx)
	snap := v.Review.Snapshot()

	return ctx.Render("review", view.With(view.Base(v, "review"), fiber.Map{
		"View":     snap,
		"Sections": view.ReviewSections(snap.Result, v.Locale.Translator()),
	}), view.Layout)
}

func (c *reviewController) Review(ctx *fiber.Ctx) error {
	v := serverutils.CurrentVisitor(ctx)

	var in dto.ReviewInput
	if err := ctx.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form")
	}

	var err error
	if in.CurrentFile, err = serverutils.FormDocument(ctx, "file_current"); err != nil {
		return err
	}
	if in.PreviousFile, err = serverutils.FormDocument(ctx, "file_previous"); err != nil {
		return err
	}

	c.service.Review(ctx.UserContext(), v, in)
	return ctx.Redirect("/review", fiber.StatusSeeOther)
}
