package user

import (
	"context"
	"strings"
)

type Service interface {
	AddAdmin(ctx context.Context, u User) (int64, error)
	AddEmployee(ctx context.Context, u User) (int64, error)
	UpdateEmployee(ctx context.Context, loginID string, p Profile) error
}

type Repository interface {
	CreateUser(ctx context.Context, u User) (int64, error)
	UpdateProfile(ctx context.Context, loginID string, p Profile) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashed, plain string) error
}

type Usecase struct {
	r      Repository
	hasher PasswordHasher
}

func NewUsecase(r Repository, h PasswordHasher) *Usecase {
	return &Usecase{
		r:      r,
		hasher: h,
	}
}

func (uc *Usecase) AddAdmin(ctx context.Context, u User) (int64, error) {
	u.Role = RoleAdmin
	u.Status = StatusActive
	return uc.add(ctx, u)
}

func (uc *Usecase) AddEmployee(ctx context.Context, u User) (int64, error) {
	u.Role = RoleEmployee
	if u.Status == "" {
		u.Status = StatusActive
	}
	return uc.add(ctx, u)
}

func (uc *Usecase) add(ctx context.Context, u User) (int64, error) {
	u.LoginID = strings.TrimSpace(u.LoginID)
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	u.Phone = strings.TrimSpace(u.Phone)
	if err := u.Validate(); err != nil {
		return 0, err
	}
	hashed, err := uc.hasher.Hash(u.Password)
	if err != nil {
		return 0, err
	}
	u.Password = hashed
	return uc.r.CreateUser(ctx, u)
}

// UpdateEmployee overwrites name, email, phone and status of the user with loginID.
func (uc *Usecase) UpdateEmployee(ctx context.Context, loginID string, p Profile) error {
	loginID = strings.TrimSpace(loginID)
	if loginID == "" {
		return ErrInvalidLoginID
	}
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	if err := validateProfile(p); err != nil {
		return err
	}
	return uc.r.UpdateProfile(ctx, loginID, p)
}
