package httpserver

import (
	"movieclub/dependant"
	"movieclub/movie"
	"movieclub/user"
)

type LoginRequest struct {
	LoginID  string `json:"loginId" validate:"required,notblank,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

type AddAdminRequest struct {
	LoginID  string `json:"loginId" validate:"required,notblank,max=64"`
	Password string `json:"password" validate:"required,notblank,max=72"`
	Name     string `json:"name" validate:"required,notblank,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Phone    string `json:"phone" validate:"required,phone"`
}

func (r AddAdminRequest) ToUser() user.User {
	return user.User{
		LoginID:  r.LoginID,
		Password: r.Password,
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
	}
}

type AddEmployeeRequest struct {
	AddAdminRequest
	Status string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

func (r AddEmployeeRequest) ToUser() user.User {
	u := r.AddAdminRequest.ToUser()
	u.Status = user.Status(r.Status)
	return u
}

type UpdateEmployeeRequest struct {
	LoginID string `json:"loginId" validate:"required,notblank,max=64"`
	Name    string `json:"name" validate:"required,notblank,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"required,phone"`
	Status  string `json:"status" validate:"required,oneof=active inactive suspended"`
}

func (r UpdateEmployeeRequest) ToProfile() user.Profile {
	return user.Profile{
		Name:   r.Name,
		Email:  r.Email,
		Phone:  r.Phone,
		Status: user.Status(r.Status),
	}
}

type AddMovieRequest struct {
	Name      string `json:"name" validate:"required,notblank,max=255"`
	Starring  string `json:"starring" validate:"required,notblank"`
	Shows     int    `json:"shows" validate:"required,min=1"`
	Languages string `json:"languages" validate:"required,notblank"`
	Venue     string `json:"venue" validate:"required,notblank,max=255"`
	Seats     int    `json:"seats" validate:"required,min=1"`
}

func (r AddMovieRequest) ToMovie() movie.Movie {
	return movie.Movie{
		Name:      r.Name,
		Starring:  r.Starring,
		Shows:     r.Shows,
		Languages: movie.ParseLanguages(r.Languages),
		Venue:     r.Venue,
		Seats:     r.Seats,
	}
}

// ShowtimeRequest names one showtime by movie, date and time.
type ShowtimeRequest struct {
	MovieID  int64  `json:"movieId" validate:"required,min=1"`
	ShowDate string `json:"showDate" validate:"required,notblank"`
	ShowTime string `json:"showTime" validate:"required,notblank"`
}

func (r ShowtimeRequest) ToKey() (movie.ShowtimeKey, error) {
	return movie.NewShowtimeKey(r.MovieID, r.ShowDate, r.ShowTime)
}

type AddDependantRequest struct {
	LoginID  string `json:"loginId" validate:"required,notblank,max=64"`
	Name     string `json:"name" validate:"required,notblank,max=255"`
	Relation string `json:"relation" validate:"required,oneof=spouse child parent other"`
	DOB      string `json:"dob" validate:"required,notblank"`
	Gender   string `json:"gender" validate:"required,oneof=male female other"`
}

func (r AddDependantRequest) ToDependant() (dependant.Dependant, error) {
	dob, err := dependant.ParseDateOfBirth(r.DOB)
	if err != nil {
		return dependant.Dependant{}, err
	}
	return dependant.Dependant{
		Name:        r.Name,
		Relation:    dependant.Relation(r.Relation),
		DateOfBirth: dob,
		Gender:      dependant.Gender(r.Gender),
	}, nil
}

type UpdateDependantRequest struct {
	DependantID int64  `json:"dependantId" validate:"required,min=1"`
	Name        string `json:"name" validate:"required,notblank,max=255"`
	Relation    string `json:"relation" validate:"required,oneof=spouse child parent other"`
	DOB         string `json:"dob" validate:"required,notblank"`
	Gender      string `json:"gender" validate:"required,oneof=male female other"`
}

func (r UpdateDependantRequest) ToDependant() (dependant.Dependant, error) {
	dob, err := dependant.ParseDateOfBirth(r.DOB)
	if err != nil {
		return dependant.Dependant{}, err
	}
	return dependant.Dependant{
		ID:          r.DependantID,
		Name:        r.Name,
		Relation:    dependant.Relation(r.Relation),
		DateOfBirth: dob,
		Gender:      dependant.Gender(r.Gender),
	}, nil
}

// DependantResponse is the wire form of a dependant.
type DependantResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Relation string `json:"relation"`
	DOB      string `json:"dob"`
	Gender   string `json:"gender"`
}

func toDependantResponse(d dependant.Dependant) DependantResponse {
	return DependantResponse{
		ID:       d.ID,
		Name:     d.Name,
		Relation: string(d.Relation),
		DOB:      d.DateOfBirth.Format(dependant.DateOfBirthLayout),
		Gender:   string(d.Gender),
	}
}
