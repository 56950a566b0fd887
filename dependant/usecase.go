package dependant

import (
	"context"
	"strings"
	"time"

	"movieclub/user"
)

type Service interface {
	AddDependant(ctx context.Context, loginID string, d Dependant) (int64, error)
	ListDependants(ctx context.Context, loginID string) ([]Dependant, error)
	UpdateDependant(ctx context.Context, d Dependant) error
	DeleteDependant(ctx context.Context, id int64) error
}

// Repository resolves the owning user by login id inside the same statement
// that writes the dependant, so an unknown login id leaves no row behind.
type Repository interface {
	Create(ctx context.Context, loginID string, d Dependant) (int64, error)
	ListByLoginID(ctx context.Context, loginID string) ([]Dependant, error)
	Update(ctx context.Context, d Dependant) error
	Delete(ctx context.Context, id int64) error
}

type Usecase struct {
	r   Repository
	now func() time.Time
	loc *time.Location
}

type Option func(uc *Usecase)

// WithLocation sets the zone whose calendar date bounds a date of birth.
func WithLocation(loc *time.Location) Option {
	return func(uc *Usecase) {
		if loc != nil {
			uc.loc = loc
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(uc *Usecase) {
		if now != nil {
			uc.now = now
		}
	}
}

func NewUsecase(r Repository, opts ...Option) *Usecase {
	uc := &Usecase{
		r:   r,
		now: time.Now,
		loc: time.Local,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *Usecase) today() time.Time {
	return Today(uc.now(), uc.loc)
}

func (uc *Usecase) AddDependant(ctx context.Context, loginID string, d Dependant) (int64, error) {
	loginID = strings.TrimSpace(loginID)
	if loginID == "" {
		return 0, user.ErrInvalidLoginID
	}
	d.Name = strings.TrimSpace(d.Name)
	if err := d.Validate(uc.today()); err != nil {
		return 0, err
	}
	return uc.r.Create(ctx, loginID, d)
}

func (uc *Usecase) ListDependants(ctx context.Context, loginID string) ([]Dependant, error) {
	loginID = strings.TrimSpace(loginID)
	if loginID == "" {
		return nil, user.ErrInvalidLoginID
	}
	return uc.r.ListByLoginID(ctx, loginID)
}

func (uc *Usecase) UpdateDependant(ctx context.Context, d Dependant) error {
	if d.ID <= 0 {
		return ErrInvalidID
	}
	d.Name = strings.TrimSpace(d.Name)
	if err := d.Validate(uc.today()); err != nil {
		return err
	}
	return uc.r.Update(ctx, d)
}

func (uc *Usecase) DeleteDependant(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	return uc.r.Delete(ctx, id)
}
