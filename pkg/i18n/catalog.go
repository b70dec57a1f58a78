package i18n

import (
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFiles embed.FS

// Locale is the active display language.
type Locale string

const (
	Indonesian Locale = "id"
	English    Locale = "en"

	DefaultLocale = Indonesian
)

var localeTags = map[Locale]language.Tag{
	Indonesian: language.Indonesian,
	English:    language.English,
}

// Locales lists the supported locales in display order.
func Locales() []Locale {
	return []Locale{Indonesian, English}
}

// ParseLocale accepts exactly the supported values and returns the package
// constant, never a value sharing memory with s.
func ParseLocale(s string) (Locale, bool) {
	for _, l := range Locales() {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

func (l Locale) String() string {
	return string(l)
}

// Catalog holds one message table per locale. Each locale gets its own
// bundle so a missing key is reported instead of resolved from another table.
type Catalog struct {
	localizers map[Locale]*goi18n.Localizer
}

// NewCatalog loads the embedded message files.
func NewCatalog() (*Catalog, error) {
	c := &Catalog{localizers: make(map[Locale]*goi18n.Localizer, len(localeTags))}

	for locale, tag := range localeTags {
		bundle := goi18n.NewBundle(tag)
		bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

		path := fmt.Sprintf("locales/messages.%s.toml", locale)
		if _, err := bundle.LoadMessageFileFS(localeFiles, path); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}

		c.localizers[locale] = goi18n.NewLocalizer(bundle, tag.String())
	}

	return c, nil
}

var sharedCatalog = sync.OnceValues(NewCatalog)

// MustCatalog returns the process-wide catalog, loading it on first use.
func MustCatalog() *Catalog {
	c, err := sharedCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup resolves key in the table of locale, returning key itself when the
// table has no entry.
func (c *Catalog) Lookup(locale Locale, key string) string {
	localizer, ok := c.localizers[locale]
	if !ok {
		return key
	}

	msg, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: key})
	if err != nil {
		var notFound *goi18n.MessageNotFoundErr
		if errors.As(err, &notFound) || msg == "" {
			return key
		}
	}
	return msg
}

// Has reports whether the table of locale defines key.
func (c *Catalog) Has(locale Locale, key string) bool {
	localizer, ok := c.localizers[locale]
	if !ok {
		return false
	}
	_, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: key})
	return err == nil
}
