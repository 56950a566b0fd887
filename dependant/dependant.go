package dependant

import (
	"strings"
	"time"

	"movieclub/errs"
)

const DateOfBirthLayout = "2006-01-02"

var (
	ErrInvalidID          = errs.Errorf(errs.EINVALID, "dependant: invalid id")
	ErrInvalidName        = errs.Errorf(errs.EINVALID, "dependant: name is required")
	ErrInvalidRelation    = errs.Errorf(errs.EINVALID, "dependant: invalid relation")
	ErrInvalidGender      = errs.Errorf(errs.EINVALID, "dependant: invalid gender")
	ErrInvalidDateOfBirth = errs.Errorf(errs.EINVALID, "dependant: date of birth must be YYYY-MM-DD or RFC 3339 and not in the future")
	ErrDependantNotFound  = errs.Errorf(errs.ENOTFOUND, "Dependant not found")
)

type Relation string

const (
	RelationSpouse Relation = "spouse"
	RelationChild  Relation = "child"
	RelationParent Relation = "parent"
	RelationOther  Relation = "other"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Dependant is a family member an employee may bring to screenings.
type Dependant struct {
	ID          int64
	Name        string
	Relation    Relation
	DateOfBirth time.Time
	Gender      Gender
}

// Validate checks d against today, a calendar date at UTC midnight as returned by Today.
func (d Dependant) Validate(today time.Time) error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrInvalidName
	}
	switch d.Relation {
	case RelationSpouse, RelationChild, RelationParent, RelationOther:
	default:
		return ErrInvalidRelation
	}
	switch d.Gender {
	case GenderMale, GenderFemale, GenderOther:
	default:
		return ErrInvalidGender
	}
	if d.DateOfBirth.IsZero() || d.DateOfBirth.After(today) {
		return ErrInvalidDateOfBirth
	}
	return nil
}

// ParseDateOfBirth parses a YYYY-MM-DD date, or the date part of an RFC 3339
// timestamp, as UTC midnight.
func ParseDateOfBirth(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateOfBirthLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateOfBirth
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Today returns the calendar date of now in loc, as UTC midnight, so it compares
// directly with dates from ParseDateOfBirth.
func Today(now time.Time, loc *time.Location) time.Time {
	y, m, day := now.In(loc).Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
