package service

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/theapemachine/wicker-go/pkg/errors"
	"github.com/theapemachine/wicker-go/pkg/session"
)

/*
RequestAdapter exposes a fiber.Ctx through the session.Request contract.
One adapter lives per request; the session middleware constructs it and
parks it in the context locals.
*/
type RequestAdapter struct {
	ctx        fiber.Ctx
	cookieName string
	sid        string
}

func NewRequestAdapter(ctx fiber.Ctx, cookieName string) *RequestAdapter {
	return &RequestAdapter{
		ctx:        ctx,
		cookieName: cookieName,
	}
}

/*
AsRequest checks that v is the pipeline's request adapter. Anything else
is a wiring mistake and fails with ErrInvalidRequestType.
*/
func AsRequest(v any) (*RequestAdapter, error) {
	adapter, ok := v.(*RequestAdapter)
	if !ok || adapter == nil {
		return nil, errors.ErrInvalidRequestType
	}
	return adapter, nil
}

/*
SessionID returns the identifier carried by the session cookie. With
create true and no cookie present, a fresh uuid is minted and set on the
response.
*/
func (r *RequestAdapter) SessionID(create bool) string {
	if r.sid != "" {
		return r.sid
	}

	if sid := r.ctx.Cookies(r.cookieName); sid != "" {
		r.sid = sid
		return r.sid
	}

	if !create {
		return ""
	}

	r.sid = uuid.NewString()
	r.ctx.Cookie(&fiber.Cookie{
		Name:     r.cookieName,
		Value:    r.sid,
		Path:     "/",
		HTTPOnly: true,
	})

	return r.sid
}

func (r *RequestAdapter) Header(key string) string {
	return r.ctx.Get(key)
}

func (r *RequestAdapter) Context() context.Context {
	return r.ctx.Context()
}

func (r *RequestAdapter) ContainerRequest() any {
	return r.ctx
}

// compile-time contract check
var _ session.Request = (*RequestAdapter)(nil)
