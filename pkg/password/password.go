// Package password holds the hashers accepted by the user and auth usecases.
package password

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrMismatch = errors.New("password mismatch")

// PlainText stores passwords as given. It keeps compatibility with existing club records.
type PlainText struct{}

func (PlainText) Hash(password string) (string, error) {
	return password, nil
}

func (PlainText) Compare(hashed, plain string) error {
	if subtle.ConstantTimeCompare([]byte(hashed), []byte(plain)) != 1 {
		return ErrMismatch
	}
	return nil
}

type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (Bcrypt) Compare(hashed, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return ErrMismatch
	}
	return nil
}

// Hasher is satisfied by both PlainText and Bcrypt.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hashed, plain string) error
}

// New picks bcrypt when hashing is enabled and plain text otherwise.
func New(hash bool, cost int) Hasher {
	if hash {
		return Bcrypt{Cost: cost}
	}
	return PlainText{}
}
