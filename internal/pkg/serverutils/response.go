package serverutils

import (
	"errors"
	"fmt"
	"io"

	"ai-hukum-web/internal/pkg/logger"
	"ai-hukum-web/pkg/legalapi"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the Fiber error handler: it logs and renders a plain
// text page. Handler flows keep their own errors as form state, so this only
// sees routing and rendering failures.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
		}

		ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return ctx.Status(code).SendString(fmt.Sprintf("%d %s", code, statusText(fe)))
	}
}

func statusText(fe *fiber.Error) string {
	if fe != nil && fe.Message != "" {
		return fe.Message
	}
	return fiber.ErrInternalServerError.Message
}

// FormDocument reads an optional uploaded file. A missing or empty part
// yields nil without error.
func FormDocument(ctx *fiber.Ctx, field string) (*legalapi.Document, error) {
	fh, err := ctx.FormFile(field)
	if err != nil || fh.Filename == "" {
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}

	contentType := fh.Header.Get(fiber.HeaderContentType)
	return &legalapi.Document{Name: fh.Filename, ContentType: contentType, Data: data}, nil
}
