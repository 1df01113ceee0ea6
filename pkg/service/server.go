package service

import (
	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	fiberadaptor "github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/theapemachine/wicker-go/pkg/errors"
	"github.com/theapemachine/wicker-go/pkg/metrics"
	"github.com/theapemachine/wicker-go/pkg/session"
	"github.com/theapemachine/wicker-go/pkg/stores"
)

type Config struct {
	AppName    string
	CookieName string
}

/*
Server mounts the session middleware, the OPTIONS responder, a metrics
endpoint and a small session API on a Fiber app. It owns the store's
container and closes it on shutdown.
*/
type Server struct {
	app       *fiber.App
	store     session.Store
	container stores.Container
}

func NewServer(cfg Config, store session.Store, container stores.Container) *Server {
	srv := &Server{
		app: fiber.New(fiber.Config{
			AppName:      cfg.AppName,
			ServerHeader: "Wicker-Session-Server",
		}),
		store:     store,
		container: container,
	}

	srv.app.Use(logger.New(logger.Config{
		// Skip logging for the metrics endpoint to reduce noise
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/metrics"
		},
	}), healthcheck.NewHealthChecker())

	srv.app.Use(Sessions(cfg.CookieName))

	srv.app.Options("/*", Options())
	srv.app.Get("/metrics", fiberadaptor.HTTPHandler(metrics.Handler()))

	srv.app.Get("/", srv.handleRoot)
	srv.app.Get("/session", srv.handleSession)
	srv.app.Delete("/session", srv.handleInvalidate)
	srv.app.Get("/session/attributes/:name", srv.handleGetAttribute)
	srv.app.Put("/session/attributes/:name", srv.handlePutAttribute)
	srv.app.Delete("/session/attributes/:name", srv.handleDeleteAttribute)

	return srv
}

func (srv *Server) Start(addr string) error {
	log.Info("starting session server", "addr", addr)
	return srv.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

/*
Stop shuts down the Fiber app, destroys the store and closes the
container, aggregating any failures.
*/
func (srv *Server) Stop() error {
	var errs []any

	if err := srv.app.Shutdown(); err != nil {
		errs = append(errs, err)
	}

	srv.store.Destroy()

	if err := srv.container.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.NewError(append(errs, "session server shutdown")...)
	}
	return nil
}

// App exposes the underlying Fiber app for tests.
func (srv *Server) App() *fiber.App {
	return srv.app
}

func (srv *Server) handleRoot(ctx fiber.Ctx) error {
	return ctx.SendString("OK")
}

func (srv *Server) handleSession(ctx fiber.Ctx) error {
	r, err := RequestFrom(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}

	s := srv.store.GetOrCreate(r)
	if s == nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString("failed to create session")
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":         s.ID(),
		"userAgent":  s.ClientInfo().UserAgent,
		"attributes": srv.store.AttributeNames(r),
	})
}

func (srv *Server) handleInvalidate(ctx fiber.Ctx) error {
	r, err := RequestFrom(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}

	if err := srv.store.Invalidate(r); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (srv *Server) handleGetAttribute(ctx fiber.Ctx) error {
	r, err := RequestFrom(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}

	value, ok := srv.store.Attribute(r, ctx.Params("name"))
	if !ok {
		return ctx.Status(fiber.StatusNotFound).SendString("attribute not found")
	}

	return ctx.Status(fiber.StatusOK).SendString(value)
}

func (srv *Server) handlePutAttribute(ctx fiber.Ctx) error {
	r, err := RequestFrom(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}

	if s := srv.store.GetOrCreate(r); s == nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString("failed to create session")
	}

	if err := srv.store.SetAttribute(r, ctx.Params("name"), string(ctx.Body())); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (srv *Server) handleDeleteAttribute(ctx fiber.Ctx) error {
	r, err := RequestFrom(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}

	if err := srv.store.RemoveAttribute(r, ctx.Params("name")); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
