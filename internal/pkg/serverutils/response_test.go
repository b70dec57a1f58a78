package serverutils

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-hukum-web/internal/pkg/logger"
	"ai-hukum-web/pkg/legalapi"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandlerRendersPlainText(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger.NewNopLogger())})
	app.Get("/bad", func(ctx *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadRequest, "Invalid form") })
	app.Get("/boom", func(ctx *fiber.Ctx) error { return errors.New("template failed") })

	tests := []struct {
		path string
		code int
		want string
	}{
		{"/bad", http.StatusBadRequest, "400 Invalid form"},
		{"/boom", http.StatusInternalServerError, "500 Internal Server Error"},
		{"/missing", http.StatusNotFound, "404 Cannot GET /missing"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil), -1)
			require.NoError(t, err)
			b, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.code, resp.StatusCode)
			assert.Equal(t, tt.want, string(b))
			assert.Equal(t, fiber.MIMETextPlainCharsetUTF8, resp.Header.Get(fiber.HeaderContentType))
		})
	}
}

func TestFormDocument(t *testing.T) {
	var got, absent *legalapi.Document
	app := fiber.New()
	app.Post("/", func(ctx *fiber.Ctx) error {
		var err error
		if got, err = FormDocument(ctx, "file"); err != nil {
			return err
		}
		absent, err = FormDocument(ctx, "other")
		return err
	})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "kontrak.txt")
	require.NoError(t, err)
	_, _ = part.Write([]byte("isi"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set(fiber.HeaderContentType, mw.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, got)
	assert.Equal(t, "kontrak.txt", got.Name)
	assert.Equal(t, "isi", string(got.Data))
	assert.Nil(t, absent)
}
