package service

import (
	"github.com/gofiber/fiber/v3"
)

// requestLocalsKey parks the request adapter in the fiber locals.
const requestLocalsKey = "wicker.request"

/*
Sessions returns the middleware that attaches a RequestAdapter to every
request. Handlers retrieve it with RequestFrom.
*/
func Sessions(cookieName string) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		ctx.Locals(requestLocalsKey, NewRequestAdapter(ctx, cookieName))
		return ctx.Next()
	}
}

/*
RequestFrom returns the adapter attached by the Sessions middleware.
Running without the middleware, or with a foreign value under the key,
fails with ErrInvalidRequestType.
*/
func RequestFrom(ctx fiber.Ctx) (*RequestAdapter, error) {
	return AsRequest(ctx.Locals(requestLocalsKey))
}
