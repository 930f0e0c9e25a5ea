package adminkit

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Profiles is the user-profile registry repository. Like Admins, it exposes
// only the uuid-keyed surface; the generic repository lives on the struct.
type Profiles interface {
	ProfileStore

	GetByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*UserProfile, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*UserProfile, error)
	SaveTx(ctx context.Context, tx bun.IDB, record *UserProfile) (*UserProfile, error)
	DeleteByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error
}

type profiles struct {
	repository.Repository[*UserProfile]
	db *bun.DB
}

var (
	_ Profiles     = (*profiles)(nil)
	_ ProfileStore = (*profiles)(nil)
)

func NewProfilesRepository(db *bun.DB) Profiles {
	repo := repository.NewRepository[*UserProfile](db, repository.ModelHandlers[*UserProfile]{
		NewRecord: func() *UserProfile { return &UserProfile{} },
		GetID: func(p *UserProfile) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *UserProfile, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &profiles{
		Repository: repo,
		db:         db,
	}
}

func (p *profiles) GetByID(ctx context.Context, id uuid.UUID) (*UserProfile, error) {
	return p.GetByIDTx(ctx, p.db, id)
}

func (p *profiles) GetByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*UserProfile, error) {
	return getProfileBy(ctx, tx, "id", id.String())
}

func (p *profiles) GetByEmail(ctx context.Context, email string) (*UserProfile, error) {
	return p.GetByEmailTx(ctx, p.db, email)
}

func (p *profiles) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*UserProfile, error) {
	return getProfileBy(ctx, tx, "email", email)
}

// Save upserts a profile record keyed by the account id.
func (p *profiles) Save(ctx context.Context, record *UserProfile) (*UserProfile, error) {
	return p.SaveTx(ctx, p.db, record)
}

func (p *profiles) SaveTx(ctx context.Context, tx bun.IDB, record *UserProfile) (*UserProfile, error) {
	_, err := tx.NewInsert().
		Model(record).
		On("CONFLICT (id) DO UPDATE").
		Set("email = EXCLUDED.email").
		Set("name = EXCLUDED.name").
		Set("updated_at = CURRENT_TIMESTAMP").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (p *profiles) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return p.DeleteByIDTx(ctx, p.db, id)
}

func (p *profiles) DeleteByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	_, err := tx.NewDelete().
		Model((*UserProfile)(nil)).
		Where("?TableAlias.id = ?", id.String()).
		Exec(ctx)
	return err
}

func getProfileBy(ctx context.Context, tx bun.IDB, column, value string) (*UserProfile, error) {
	record := &UserProfile{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias."+column+" = ?", value).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, goerrors.New("user profile record not found", goerrors.CategoryNotFound).
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
