package adminkit

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// GuardRoutes holds the redirect targets used by the route guards.
type GuardRoutes struct {
	SignIn       string
	AdminLanding string
	UserLanding  string
	Dashboard    string
}

func DefaultGuardRoutes() *GuardRoutes {
	return &GuardRoutes{
		SignIn:       "/sign-in",
		AdminLanding: "/admin/projects/my-projects",
		UserLanding:  "/commissions",
		Dashboard:    "/dashboard",
	}
}

// RouteGuard gates navigation on session presence and admin-registry
// membership. Registry lookup failures always resolve toward the
// less-privileged redirect.
type RouteGuard struct {
	sessions SessionResolver
	admins   AdminFinder
	Routes   *GuardRoutes
	Logger   Logger
}

type RouteGuardOption func(*RouteGuard) *RouteGuard

func NewRouteGuard(sessions SessionResolver, admins AdminFinder, opts ...RouteGuardOption) *RouteGuard {
	g := &RouteGuard{
		sessions: sessions,
		admins:   admins,
		Routes:   DefaultGuardRoutes(),
		Logger:   defLogger{},
	}

	for _, opt := range opts {
		g = opt(g)
	}

	return g
}

func WithGuardRoutes(routes *GuardRoutes) RouteGuardOption {
	return func(g *RouteGuard) *RouteGuard {
		if routes != nil {
			g.Routes = routes
		}
		return g
	}
}

func WithGuardLogger(logger Logger) RouteGuardOption {
	return func(g *RouteGuard) *RouteGuard {
		if logger != nil {
			g.Logger = logger
		}
		return g
	}
}

// AdminOnly requires a signed-in identity with an admin record. Anonymous
// visitors go to sign-in; authenticated non-admins to the dashboard.
func (g *RouteGuard) AdminOnly() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			session := g.session(c)
			if session == nil {
				return redirect(c, g.Routes.SignIn)
			}

			if !g.isAdmin(c.Context(), session) {
				return redirect(c, g.Routes.Dashboard)
			}

			stashSession(c, session)
			return next(c)
		}
	}
}

// GuestOnly gates pages meant for anonymous visitors: signed-in admins go to
// the admin landing route, signed-in users to the user landing route.
func (g *RouteGuard) GuestOnly() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			session := g.session(c)
			if session == nil {
				return next(c)
			}

			if g.isAdmin(c.Context(), session) {
				return redirect(c, g.Routes.AdminLanding)
			}

			return redirect(c, g.Routes.UserLanding)
		}
	}
}

// UserOnly requires a signed-in identity that is not an admin. Admins are
// sent to the admin landing route.
func (g *RouteGuard) UserOnly() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			session := g.session(c)
			if session == nil {
				return redirect(c, g.Routes.SignIn)
			}

			if g.isAdmin(c.Context(), session) {
				return redirect(c, g.Routes.AdminLanding)
			}

			stashSession(c, session)
			return next(c)
		}
	}
}

// session resolves the request session; resolution errors count as "no
// session" so an expired or garbled token behaves like an anonymous visit.
func (g *RouteGuard) session(c router.Context) *SessionObject {
	session, err := g.sessions.SessionFromRequest(c)
	if err != nil {
		g.Logger.Debug("session resolution failed: %v", err)
		return nil
	}
	return session
}

func (g *RouteGuard) isAdmin(ctx context.Context, session *SessionObject) bool {
	id, err := session.GetUserUUID()
	if err != nil {
		return false
	}

	record, err := g.admins.GetByID(ctx, id)
	if err != nil {
		if !errors.IsNotFound(err) {
			g.Logger.Error("admin lookup failed for user %s: %v", session.UserID, err)
		}
		return false
	}

	return record != nil
}

func redirect(c router.Context, path string) error {
	statusCode := fiber.StatusSeeOther
	if c.Method() == string(router.GET) {
		statusCode = fiber.StatusFound
	}
	return c.Redirect(path, statusCode)
}

// JSONErrorHandler renders rich errors as API responses, mapping the error
// code to the HTTP status and forwarding the message.
func JSONErrorHandler(logger Logger) router.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c router.Context, err error) error {
		var richErr *errors.Error
		if !errors.As(err, &richErr) {
			richErr = errors.Wrap(err, errors.CategoryInternal, "an unexpected server error occurred").
				WithCode(errors.CodeInternal)
		}

		status := richErr.Code
		if status < fiber.StatusBadRequest {
			status = fiber.StatusInternalServerError
		}

		logger.Info("request failed status=%d category=%s: %s", status, richErr.Category, richErr.Message)

		return c.JSON(status, map[string]any{
			"ok":      false,
			"error":   richErr.TextCode,
			"message": richErr.Message,
		})
	}
}
