package serverutils

import (
	"context"
	"time"

	"ai-hukum-web/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	VisitorCookie    = "visitor_id"
	visitorLocalsKey = "visitor"
)

// VisitorSource resolves page state by visitor id.
type VisitorSource interface {
	GetOrCreate(ctx context.Context, visitorID string) *store.Visitor
}

// VisitorMiddleware identifies the browser by cookie, issuing a new id when
// the cookie is absent or malformed, and stores its state in Locals.
func VisitorMiddleware(source VisitorSource) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id := ctx.Cookies(VisitorCookie)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		ctx.Cookie(&fiber.Cookie{
			Name:     VisitorCookie,
			Value:    id,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Expires:  time.Now().Add(365 * 24 * time.Hour),
		})

		ctx.Locals(visitorLocalsKey, source.GetOrCreate(ctx.UserContext(), id))
		return ctx.Next()
	}
}

// CurrentVisitor returns the state attached by VisitorMiddleware.
func CurrentVisitor(ctx *fiber.Ctx) *store.Visitor {
	v, _ := ctx.Locals(visitorLocalsKey).(*store.Visitor)
	return v
}
