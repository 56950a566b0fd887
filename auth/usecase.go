package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"movieclub/errs"
	"movieclub/user"
)

var (
	ErrInvalidCredentials = errs.Errorf(errs.EUNAUTHORIZED, "Invalid login ID or password")
	ErrAccountLocked      = errs.Errorf(errs.EFORBIDDEN, "Account temporarily locked")
)

type Service interface {
	Login(ctx context.Context, loginID, password string) (Identity, error)
}

type UserRepository interface {
	GetByLoginID(ctx context.Context, loginID string) (user.User, error)
}

type LoginAttempt struct {
	FailedCount int
	JailedUntil time.Time
}

type LoginAttemptRepository interface {
	Get(ctx context.Context, loginID string) (LoginAttempt, error)
	Save(ctx context.Context, loginID string, attempt LoginAttempt) error
	Reset(ctx context.Context, loginID string) error
}

type PasswordHasher interface {
	Compare(hashed, plain string) error
}

type TokenProvider interface {
	GenerateAccessToken(u user.User) (string, error)
}

// LockoutPolicy jails a login id for JailDuration after MaxRetries consecutive failures.
// A zero MaxRetries disables lockout.
type LockoutPolicy struct {
	MaxRetries   int
	JailDuration time.Duration
}

// Identity is what a successful login reveals to the client.
// AccessToken is empty when no token provider is configured.
type Identity struct {
	Name        string
	Role        user.Role
	AccessToken string
}

type Usecase struct {
	userRepo       UserRepository
	attemptsRepo   LoginAttemptRepository
	passwordHasher PasswordHasher
	tokenProvider  TokenProvider
	policy         LockoutPolicy
	now            func() time.Time
}

// NewUsecase builds the login flow. attemptsRepo and tokenProvider may be nil.
func NewUsecase(
	userRepo UserRepository,
	attemptsRepo LoginAttemptRepository,
	passwordHasher PasswordHasher,
	tokenProvider TokenProvider,
	policy LockoutPolicy,
) *Usecase {
	return &Usecase{
		userRepo:       userRepo,
		attemptsRepo:   attemptsRepo,
		passwordHasher: passwordHasher,
		tokenProvider:  tokenProvider,
		policy:         policy,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (uc *Usecase) Login(ctx context.Context, loginID, password string) (Identity, error) {
	loginID = strings.TrimSpace(loginID)
	if loginID == "" || password == "" {
		return Identity{}, ErrInvalidCredentials
	}

	attempt, err := uc.checkJail(ctx, loginID)
	if err != nil {
		return Identity{}, err
	}

	u, err := uc.userRepo.GetByLoginID(ctx, loginID)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			return Identity{}, err
		}
		if err := uc.recordFailure(ctx, loginID, attempt); err != nil {
			return Identity{}, err
		}
		return Identity{}, ErrInvalidCredentials
	}

	if err := uc.passwordHasher.Compare(u.Password, password); err != nil {
		if err := uc.recordFailure(ctx, loginID, attempt); err != nil {
			return Identity{}, err
		}
		return Identity{}, ErrInvalidCredentials
	}

	if uc.lockoutEnabled() && attempt.FailedCount > 0 {
		if err := uc.attemptsRepo.Reset(ctx, loginID); err != nil {
			return Identity{}, err
		}
	}

	id := Identity{Name: u.Name, Role: u.Role}
	if uc.tokenProvider != nil {
		id.AccessToken, err = uc.tokenProvider.GenerateAccessToken(u)
		if err != nil {
			return Identity{}, err
		}
	}
	return id, nil
}

func (uc *Usecase) lockoutEnabled() bool {
	return uc.attemptsRepo != nil && uc.policy.MaxRetries > 0
}

func (uc *Usecase) checkJail(ctx context.Context, loginID string) (LoginAttempt, error) {
	if !uc.lockoutEnabled() {
		return LoginAttempt{}, nil
	}

	attempt, err := uc.attemptsRepo.Get(ctx, loginID)
	if err != nil {
		return LoginAttempt{}, err
	}
	if attempt.JailedUntil.IsZero() {
		return attempt, nil
	}
	if attempt.JailedUntil.After(uc.now()) {
		return LoginAttempt{}, ErrAccountLocked
	}

	attempt = LoginAttempt{}
	if err := uc.attemptsRepo.Save(ctx, loginID, attempt); err != nil {
		return LoginAttempt{}, err
	}
	return attempt, nil
}

func (uc *Usecase) recordFailure(ctx context.Context, loginID string, attempt LoginAttempt) error {
	if !uc.lockoutEnabled() {
		return nil
	}
	attempt.FailedCount++
	if attempt.FailedCount >= uc.policy.MaxRetries {
		attempt.FailedCount = 0
		attempt.JailedUntil = uc.now().Add(uc.policy.JailDuration)
	}
	return uc.attemptsRepo.Save(ctx, loginID, attempt)
}
