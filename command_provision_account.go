package adminkit

import (
	"context"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

const (
	// ListUsersPageSize is the page size used by the already-exists fallback scan.
	ListUsersPageSize = 100
	// ListUsersMaxPages bounds the fallback scan to 1000 accounts. Accounts
	// beyond that bound cannot be resolved; the original invite error is
	// surfaced instead.
	ListUsersMaxPages = 10
)

type ProvisionAccountMessage struct {
	Email      string                          `json:"email"`
	Name       string                          `json:"name,omitempty"`
	MakeAdmin  bool                            `json:"makeAdmin,omitempty"`
	OnResponse func(*ProvisionAccountResponse) `json:"-"`
}

func (e ProvisionAccountMessage) Type() string { return "account.provision" }

// ProvisionAccountResponse reports the terminal state of a provisioning run.
// ProfileWriteErr and CleanupErr record best-effort registry writes that
// failed without failing the operation.
type ProvisionAccountResponse struct {
	AccountID       uuid.UUID `json:"account_id"`
	Invited         bool      `json:"invited"`
	GrantedAdmin    bool      `json:"granted_admin"`
	ProfileWriteErr error     `json:"-"`
	CleanupErr      error     `json:"-"`
}

// ProvisionAccountHandler resolves or creates the target account in the
// identity service and reconciles the admin/user-profile registry rows so
// that exactly one of the two exists for the account.
type ProvisionAccountHandler struct {
	admins   AdminStore
	profiles ProfileStore
	identity IdentityAdmin
	logger   Logger
	pageSize int
	maxPages int
}

type ProvisionAccountOption func(*ProvisionAccountHandler) *ProvisionAccountHandler

func NewProvisionAccountHandler(admins AdminStore, profiles ProfileStore, identity IdentityAdmin, opts ...ProvisionAccountOption) *ProvisionAccountHandler {
	h := &ProvisionAccountHandler{
		admins:   admins,
		profiles: profiles,
		identity: identity,
		logger:   defLogger{},
		pageSize: ListUsersPageSize,
		maxPages: ListUsersMaxPages,
	}

	for _, opt := range opts {
		h = opt(h)
	}

	return h
}

func WithProvisionLogger(logger Logger) ProvisionAccountOption {
	return func(h *ProvisionAccountHandler) *ProvisionAccountHandler {
		if logger != nil {
			h.logger = logger
		}
		return h
	}
}

func (h *ProvisionAccountHandler) Execute(ctx context.Context, event ProvisionAccountMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during account provisioning",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *ProvisionAccountHandler) execute(ctx context.Context, event ProvisionAccountMessage) error {
	accountID, invited, err := h.resolveAccount(ctx, event.Email)
	if err != nil {
		return err
	}

	res := &ProvisionAccountResponse{
		AccountID:    accountID,
		Invited:      invited,
		GrantedAdmin: event.MakeAdmin,
	}

	if event.MakeAdmin {
		if err := h.grantAdmin(ctx, accountID, event, res); err != nil {
			return err
		}
	} else {
		h.grantUser(ctx, accountID, event, res)
	}

	if event.OnResponse != nil {
		event.OnResponse(res)
	}

	return nil
}

// resolveAccount finds the account id for the target email: registry tables
// first, then an invite, then a bounded scan of the identity service's user
// list when the invite reports the email already exists.
func (h *ProvisionAccountHandler) resolveAccount(ctx context.Context, email string) (uuid.UUID, bool, error) {
	if profile, err := h.profiles.GetByEmail(ctx, email); err == nil && profile != nil {
		return profile.ID, false, nil
	}

	if admin, err := h.admins.GetByEmail(ctx, email); err == nil && admin != nil {
		return admin.ID, false, nil
	}

	invited, err := h.identity.InviteUserByEmail(ctx, email)
	if err == nil {
		id, perr := uuid.Parse(invited.ID())
		if perr != nil {
			return uuid.Nil, false, goerrors.Wrap(perr, goerrors.CategoryInternal, "identity service returned a malformed account id").
				WithCode(goerrors.CodeInternal)
		}
		return id, true, nil
	}

	if !IsAlreadyExistsError(err) {
		return uuid.Nil, false, upstreamError(err)
	}

	if id, found := h.scanForEmail(ctx, email); found {
		return id, false, nil
	}

	return uuid.Nil, false, upstreamError(err)
}

// scanForEmail pages through the identity service's account list looking for
// an exact email match. A short page terminates the scan early.
func (h *ProvisionAccountHandler) scanForEmail(ctx context.Context, email string) (uuid.UUID, bool) {
	for page := 0; page < h.maxPages; page++ {
		users, err := h.identity.ListUsers(ctx, page, h.pageSize)
		if err != nil {
			h.logger.Error("user list scan failed on page %d: %v", page, err)
			return uuid.Nil, false
		}

		for _, user := range users {
			if user.Email() != email {
				continue
			}
			if id, perr := uuid.Parse(user.ID()); perr == nil {
				return id, true
			}
		}

		if len(users) < h.pageSize {
			break
		}
	}

	return uuid.Nil, false
}

// grantAdmin upserts the admin record, preserving an existing row's role,
// then deletes any user-profile row. The admin write is the one registry
// mutation that fails the request; the cleanup is best effort.
func (h *ProvisionAccountHandler) grantAdmin(ctx context.Context, id uuid.UUID, event ProvisionAccountMessage, res *ProvisionAccountResponse) error {
	role := RoleGlobalAdmin
	if existing, err := h.admins.GetByID(ctx, id); err == nil {
		role = ResolveAdminRole(existing)
	}

	record := &Admin{
		ID:    id,
		Email: event.Email,
		Name:  event.Name,
		Role:  role,
	}

	if _, err := h.admins.Save(ctx, record); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create admin").
			WithCode(goerrors.CodeInternal)
	}

	if err := h.profiles.DeleteByID(ctx, id); err != nil {
		res.CleanupErr = err
		h.logger.Error("failed to delete user profile %s after admin grant: %v", id, err)
	}

	return nil
}

// grantUser upserts the user-profile record and deletes any admin row. Both
// writes are best effort; failures are recorded on the response only.
func (h *ProvisionAccountHandler) grantUser(ctx context.Context, id uuid.UUID, event ProvisionAccountMessage, res *ProvisionAccountResponse) {
	record := &UserProfile{
		ID:    id,
		Email: event.Email,
		Name:  event.Name,
	}

	if _, err := h.profiles.Save(ctx, record); err != nil {
		res.ProfileWriteErr = err
		h.logger.Error("failed to upsert user profile %s: %v", id, err)
	}

	if err := h.admins.DeleteByID(ctx, id); err != nil {
		res.CleanupErr = err
		h.logger.Error("failed to delete admin %s after user grant: %v", id, err)
	}
}

// upstreamError forwards an identity-service failure with its status code
// and message. Failures without a status map to 400.
func upstreamError(err error) error {
	status := http.StatusBadRequest
	var coder interface{ StatusCode() int }
	if goerrors.As(err, &coder) && coder.StatusCode() > 0 {
		status = coder.StatusCode()
	}

	return goerrors.Wrap(err, goerrors.CategoryOperation, err.Error()).
		WithCode(status).
		WithTextCode("IDENTITY_UPSTREAM")
}
