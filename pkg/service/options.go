package service

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// SupportedMethods is the default method list advertised by the OPTIONS
// responder.
var SupportedMethods = []string{
	fiber.MethodGet,
	fiber.MethodHead,
	fiber.MethodPost,
	fiber.MethodPut,
	fiber.MethodDelete,
	fiber.MethodConnect,
	fiber.MethodOptions,
	fiber.MethodTrace,
	fiber.MethodPatch,
}

/*
Options returns the fixed OPTIONS responder: status 200, an Allow header
enumerating the supported methods, Content-Length 0 and no body. With no
arguments it advertises SupportedMethods.
*/
func Options(methods ...string) fiber.Handler {
	if len(methods) == 0 {
		methods = SupportedMethods
	}
	allow := strings.Join(methods, ", ")

	return func(ctx fiber.Ctx) error {
		ctx.Set(fiber.HeaderAllow, allow)
		ctx.Set(fiber.HeaderContentLength, "0")
		return ctx.Status(fiber.StatusOK).Send(nil)
	}
}
