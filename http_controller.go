package adminkit

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// RegisterAdminRoutes mounts the admin provisioning endpoint.
func RegisterAdminRoutes[T any](app router.Router[T], opts ...AdminControllerOption) {
	controller := NewAdminController(opts...)

	app.
		Post(controller.Routes.Invite, controller.InvitePost).
		SetName("admin-invite.post")
}

type AdminControllerRoutes struct {
	Invite string
}

type AdminController struct {
	Debug        bool
	Logger       Logger
	Admins       AdminStore
	Profiles     ProfileStore
	Verifier     IdentityVerifier
	Identity     IdentityAdmin
	Routes       *AdminControllerRoutes
	ErrorHandler router.ErrorHandler

	provision *ProvisionAccountHandler
}

type AdminControllerOption func(*AdminController) *AdminController

func NewAdminController(opts ...AdminControllerOption) *AdminController {
	c := &AdminController{
		Logger: defLogger{},
		Routes: &AdminControllerRoutes{
			Invite: "/api/admin/invite",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Admins == nil || c.Profiles == nil {
		panic("Missing registry stores in admin controller...")
	}

	if c.Verifier == nil || c.Identity == nil {
		panic("Missing identity service in admin controller...")
	}

	if c.ErrorHandler == nil {
		c.ErrorHandler = JSONErrorHandler(c.Logger)
	}

	if c.provision == nil {
		c.provision = NewProvisionAccountHandler(
			c.Admins,
			c.Profiles,
			c.Identity,
			WithProvisionLogger(c.Logger),
		)
	}

	return c
}

func WithAdminRepositories(repo RepositoryManager) AdminControllerOption {
	return func(c *AdminController) *AdminController {
		c.Admins = repo.Admins()
		c.Profiles = repo.Profiles()
		return c
	}
}

func WithAdminStores(admins AdminStore, profiles ProfileStore) AdminControllerOption {
	return func(c *AdminController) *AdminController {
		c.Admins = admins
		c.Profiles = profiles
		return c
	}
}

func WithIdentityService(verifier IdentityVerifier, admin IdentityAdmin) AdminControllerOption {
	return func(c *AdminController) *AdminController {
		c.Verifier = verifier
		c.Identity = admin
		return c
	}
}

func WithAdminLogger(logger Logger) AdminControllerOption {
	return func(c *AdminController) *AdminController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithAdminErrorHandler(handler router.ErrorHandler) AdminControllerOption {
	return func(c *AdminController) *AdminController {
		c.ErrorHandler = handler
		return c
	}
}

// InvitePayload is the provisioning request body
type InvitePayload struct {
	Email     string `form:"email" json:"email"`
	Name      string `form:"name" json:"name"`
	MakeAdmin bool   `form:"makeAdmin" json:"makeAdmin"`
}

// Validate will run validation rules
func (r InvitePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
	)
}

// InvitePost provisions or demotes the account behind the target email.
// The caller must present a bearer token that resolves to an identity with
// an admin record.
func (c *AdminController) InvitePost(ctx router.Context) error {
	token := BearerToken(ctx)
	if token == "" {
		return c.ErrorHandler(ctx, ErrMissingBearerToken)
	}

	caller, err := c.Verifier.UserFromToken(ctx.Context(), token)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) && richErr.Category == goerrors.CategoryInternal {
			// Deployment problems (missing identity-service config) are
			// server errors, not caller auth failures.
			return c.ErrorHandler(ctx, err)
		}
		c.Logger.Info("token exchange failed: %v", err)
		return c.ErrorHandler(ctx, ErrInvalidToken)
	}

	if caller == nil {
		return c.ErrorHandler(ctx, ErrInvalidToken)
	}

	callerID, err := uuid.Parse(caller.ID())
	if err != nil {
		return c.ErrorHandler(ctx, ErrInvalidToken)
	}

	if _, err := c.Admins.GetByID(ctx.Context(), callerID); err != nil {
		c.Logger.Info("caller %s is not an admin: %v", callerID, err)
		return c.ErrorHandler(ctx, ErrAdminRequired)
	}

	payload := new(InvitePayload)
	if err := ctx.Bind(payload); err != nil {
		return c.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return c.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryValidation, "email is required").
			WithCode(goerrors.CodeBadRequest))
	}

	if c.Debug {
		fmt.Println("======= ADMIN INVITE ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("===========================")
	}

	var res *ProvisionAccountResponse
	msg := ProvisionAccountMessage{
		Email:     payload.Email,
		Name:      payload.Name,
		MakeAdmin: payload.MakeAdmin,
		OnResponse: func(r *ProvisionAccountResponse) {
			res = r
		},
	}

	if err := c.provision.Execute(ctx.Context(), msg); err != nil {
		c.Logger.Error("account provisioning failed for %s: %v", payload.Email, err)
		return c.ErrorHandler(ctx, err)
	}

	if res != nil && (res.CleanupErr != nil || res.ProfileWriteErr != nil) {
		c.Logger.Info(
			"provisioning for %s finished with partial registry state: cleanup=%v profile=%v",
			res.AccountID, res.CleanupErr, res.ProfileWriteErr,
		)
	}

	return ctx.JSON(fiber.StatusOK, map[string]any{"ok": true})
}
