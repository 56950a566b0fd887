package user

import (
	"net/mail"
	"strings"

	"movieclub/errs"
)

var (
	ErrInvalidLoginID  = errs.Errorf(errs.EINVALID, "user: login id is required")
	ErrInvalidPassword = errs.Errorf(errs.EINVALID, "user: password is required")
	ErrInvalidName     = errs.Errorf(errs.EINVALID, "user: name is required")
	ErrInvalidEmail    = errs.Errorf(errs.EINVALID, "user: invalid email")
	ErrInvalidPhone    = errs.Errorf(errs.EINVALID, "user: phone is required")
	ErrInvalidRole     = errs.Errorf(errs.EINVALID, "user: invalid role")
	ErrInvalidStatus   = errs.Errorf(errs.EINVALID, "user: invalid status")
	ErrLoginIDTaken    = errs.Errorf(errs.ECONFLICT, "Login ID already exists")
	ErrUserNotFound    = errs.Errorf(errs.ENOTFOUND, "Employee not found")
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

// User is a club member. LoginID is the employee code used to sign in.
type User struct {
	ID       int64
	LoginID  string
	Password string
	Name     string
	Email    string
	Phone    string
	Role     Role
	Status   Status
}

func (u User) Validate() error {
	if strings.TrimSpace(u.LoginID) == "" {
		return ErrInvalidLoginID
	}
	if strings.TrimSpace(u.Password) == "" {
		return ErrInvalidPassword
	}
	return validateProfile(Profile{Name: u.Name, Email: u.Email, Phone: u.Phone, Status: u.Status})
}

// Profile is the mutable part of an employee record.
type Profile struct {
	Name   string
	Email  string
	Phone  string
	Status Status
}

func validateProfile(p Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	if err := validateEmail(p.Email); err != nil {
		return err
	}
	if strings.TrimSpace(p.Phone) == "" {
		return ErrInvalidPhone
	}
	if !p.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}
