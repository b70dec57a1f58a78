package controller

import (
	"net/url"
	"strings"

	"ai-hukum-web/internal/dto"
	"ai-hukum-web/internal/pkg/serverutils"
	"ai-hukum-web/internal/service"
	"ai-hukum-web/internal/view"

	"github.com/gofiber/fiber/v2"
)

// IPageController serves the static pages and the language switch.
type IPageController interface {
	RegisterRoutes(r fiber.Router)
	Features(ctx *fiber.Ctx) error
	About(ctx *fiber.Ctx) error
	SetLocale(ctx *fiber.Ctx) error
}

type pageController struct {
	localeService service.ILocaleService
}

func NewPageController(localeService service.ILocaleService) IPageController {
	return &pageController{localeService: localeService}
}

func (c *pageController) RegisterRoutes(r fiber.Router) {
	r.Get("/fitur", c.Features)
	r.Get("/tentang", c.About)
	r.Post("/lang", c.SetLocale)
}

func (c *pageController) Features(ctx *fiber.Ctx) error {
	v := serverutils.CurrentVisitor(ctx)
	return ctx.Render("features", view.Base(v, "features"), view.Layout)
}

func (c *pageController) About(ctx *fiber.Ctx) error {
	v := serverutils.CurrentVisitor(ctx)
	return ctx.Render("about", view.Base(v, "about"), view.Layout)
}

func (c *pageController) SetLocale(ctx *fiber.Ctx) error {
	v := serverutils.CurrentVisitor(ctx)

	var in dto.LocaleInput
	if err := ctx.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form")
	}
	if err := c.localeService.SetLocale(ctx.UserContext(), v, in.Lang); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return ctx.Redirect(backTarget(ctx.Get(fiber.HeaderReferer)), fiber.StatusSeeOther)
}

// backTarget keeps only the path of the referring page so the redirect never
// leaves the site.
func backTarget(referer string) string {
	u, err := url.Parse(referer)
	if err != nil || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
