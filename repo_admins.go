package adminkit

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Admins is the admin registry repository. The uuid-keyed accessors shadow
// the generic repository ones, so the embedded repository stays on the
// implementation struct only.
type Admins interface {
	AdminStore

	GetByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Admin, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*Admin, error)
	SaveTx(ctx context.Context, tx bun.IDB, record *Admin) (*Admin, error)
	DeleteByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error
}

type admins struct {
	repository.Repository[*Admin]
	db *bun.DB
}

var (
	_ Admins     = (*admins)(nil)
	_ AdminStore = (*admins)(nil)
)

func NewAdminsRepository(db *bun.DB) Admins {
	repo := repository.NewRepository[*Admin](db, repository.ModelHandlers[*Admin]{
		NewRecord: func() *Admin { return &Admin{} },
		GetID: func(a *Admin) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Admin, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &admins{
		Repository: repo,
		db:         db,
	}
}

func (a *admins) GetByID(ctx context.Context, id uuid.UUID) (*Admin, error) {
	return a.GetByIDTx(ctx, a.db, id)
}

func (a *admins) GetByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Admin, error) {
	return getAdminBy(ctx, tx, "id", id.String())
}

func (a *admins) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	return a.GetByEmailTx(ctx, a.db, email)
}

func (a *admins) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*Admin, error) {
	return getAdminBy(ctx, tx, "email", email)
}

// Save upserts an admin record keyed by the account id. The id always
// originates in the identity service, so the registry key is the conflict
// column rather than a generated value.
func (a *admins) Save(ctx context.Context, record *Admin) (*Admin, error) {
	return a.SaveTx(ctx, a.db, record)
}

func (a *admins) SaveTx(ctx context.Context, tx bun.IDB, record *Admin) (*Admin, error) {
	if record.Role == "" {
		record.Role = RoleGlobalAdmin
	}

	_, err := tx.NewInsert().
		Model(record).
		On("CONFLICT (id) DO UPDATE").
		Set("email = EXCLUDED.email").
		Set("name = EXCLUDED.name").
		Set("role = EXCLUDED.role").
		Set("updated_at = CURRENT_TIMESTAMP").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (a *admins) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return a.DeleteByIDTx(ctx, a.db, id)
}

func (a *admins) DeleteByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	_, err := tx.NewDelete().
		Model((*Admin)(nil)).
		Where("?TableAlias.id = ?", id.String()).
		Exec(ctx)
	return err
}

func getAdminBy(ctx context.Context, tx bun.IDB, column, value string) (*Admin, error) {
	record := &Admin{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias."+column+" = ?", value).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, goerrors.New("admin record not found", goerrors.CategoryNotFound).
				WithCode(goerrors.CodeNotFound).
				WithTextCode("NOT_FOUND").
				WithMetadata(map[string]any{
					column: value,
				})
		}
		return nil, err
	}

	return record, nil
}
