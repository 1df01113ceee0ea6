package service

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theapemachine/wicker-go/pkg/errors"
)

func TestAsRequest_RejectsForeignTypes(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "nil", value: nil},
		{name: "string", value: "not a request"},
		{name: "typed nil", value: (*RequestAdapter)(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AsRequest(tt.value)
			assert.ErrorIs(t, err, errors.ErrInvalidRequestType)
		})
	}
}

func TestRequestFrom_WithoutMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(ctx fiber.Ctx) error {
		_, err := RequestFrom(ctx)
		assert.ErrorIs(t, err, errors.ErrInvalidRequestType)
		return ctx.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestAdapter_SessionID(t *testing.T) {
	app := fiber.New()
	app.Use(Sessions("wicker_session"))

	var noCreate, created, reread string
	app.Get("/", func(ctx fiber.Ctx) error {
		r, err := RequestFrom(ctx)
		require.NoError(t, err)

		noCreate = r.SessionID(false)
		created = r.SessionID(true)
		reread = r.SessionID(false)
		return ctx.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	assert.Empty(t, noCreate)
	assert.NotEmpty(t, created)
	assert.Equal(t, created, reread)

	// The minted id travels back as a cookie
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Equal(t, created, cookie.Value)
}

func TestRequestAdapter_ExistingCookie(t *testing.T) {
	app := fiber.New()
	app.Use(Sessions("wicker_session"))

	var sid string
	app.Get("/", func(ctx fiber.Ctx) error {
		r, err := RequestFrom(ctx)
		require.NoError(t, err)
		sid = r.SessionID(false)
		return ctx.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "wicker_session", Value: "existing-id"})

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "existing-id", sid)
	assert.Nil(t, sessionCookie(resp))
}
