package view

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"ai-hukum-web/pkg/i18n"
	"ai-hukum-web/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templateFiles embed.FS

// Layout wraps every page.
const Layout = "layouts/main"

// NewEngine parses the embedded templates.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("hasText", func(s string) bool { return strings.TrimSpace(s) != "" })
	return engine
}

// LocaleOption is one entry of the language switcher.
type LocaleOption struct {
	Code   string
	Label  string
	Active bool
}

// Base is the data every page gets: the late-bound translator as T, the
// language switcher and the active nav entry.
func Base(v *store.Visitor, active string) fiber.Map {
	t := v.Locale.Translator()
	current := v.Locale.Locale()

	options := make([]LocaleOption, 0, len(i18n.Locales()))
	for _, l := range i18n.Locales() {
		options = append(options, LocaleOption{
			Code:   string(l),
			Label:  t("lang." + string(l)),
			Active: l == current,
		})
	}

	return fiber.Map{
		"T":       t,
		"Lang":    string(current),
		"Locales": options,
		"Active":  active,
		"Title":   t("app.title"),
	}
}

// With copies base and adds page specific keys.
func With(base fiber.Map, extra fiber.Map) fiber.Map {
	out := make(fiber.Map, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
