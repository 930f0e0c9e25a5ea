package adminkit

import (
	"context"

	"github.com/goliatone/go-router"
)

type contextKey string

const sessionContextKey contextKey = "adminkit:session"

// SessionLocalsKey is where guards stash the resolved session for
// downstream handlers and template helpers.
var SessionLocalsKey any = "current_session"

// WithSessionContext stores the resolved session in the standard context.
func WithSessionContext(ctx context.Context, session *SessionObject) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionContextKey, session)
}

// SessionFromContext retrieves a session stored by WithSessionContext.
func SessionFromContext(ctx context.Context) (*SessionObject, bool) {
	session, ok := ctx.Value(sessionContextKey).(*SessionObject)
	return session, ok && session != nil
}

// SessionFromRouterContext retrieves the session a guard stashed in the
// router locals.
func SessionFromRouterContext(c router.Context) (*SessionObject, bool) {
	session, ok := c.Locals(SessionLocalsKey).(*SessionObject)
	return session, ok && session != nil
}

func stashSession(c router.Context, session *SessionObject) {
	c.Locals(SessionLocalsKey, session)
	c.SetContext(WithSessionContext(c.Context(), session))
}
