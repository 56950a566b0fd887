package movie

import (
	"context"
	"strings"
	"time"
)

type Service interface {
	CreateMovie(ctx context.Context, m Movie) (Movie, bool, error)
	ListMovies(ctx context.Context) ([]Summary, error)
	AvailableMovies(ctx context.Context) ([]Availability, error)
	GetMovie(ctx context.Context, id int64) (Movie, error)
	AttachShowtimes(ctx context.Context, batch ShowtimeBatch) (int, error)
	Schedules(ctx context.Context, status Lifecycle) ([]Schedule, error)
	MarkScreening(ctx context.Context, key ShowtimeKey) error
	DeleteShowtime(ctx context.Context, key ShowtimeKey) error
	EndElapsedScreenings(ctx context.Context, now time.Time) (int64, error)
}

type Repository interface {
	// MergeByName creates m, or when a movie with the same case-insensitive name exists,
	// adds m.Shows to its target and overwrites its descriptive fields.
	// created reports which of the two happened.
	MergeByName(ctx context.Context, m Movie) (merged Movie, created bool, err error)
	Summaries(ctx context.Context) ([]Summary, error)
	Availability(ctx context.Context) ([]Availability, error)
	GetByID(ctx context.Context, id int64) (Movie, error)
	AttachShowtimes(ctx context.Context, movieID int64, poster, trailerURL string, slots []Slot) error
	ShowsByStatus(ctx context.Context, status Lifecycle) ([]ScheduledShow, error)
	Transition(ctx context.Context, key ShowtimeKey, from, to Lifecycle) error
	DeleteShowtime(ctx context.Context, key ShowtimeKey) error
	EndElapsed(ctx context.Context, cutoff Cutoff) (int64, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

// CreateMovie adds m, or merges it into the existing movie of the same name.
// The returned flag is true when a new movie was created.
func (uc *Usecase) CreateMovie(ctx context.Context, m Movie) (Movie, bool, error) {
	m.Name = strings.TrimSpace(m.Name)
	m.Starring = strings.TrimSpace(m.Starring)
	m.Venue = strings.TrimSpace(m.Venue)
	langs := make([]string, 0, len(m.Languages))
	for _, l := range m.Languages {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	m.Languages = langs
	if err := m.Validate(); err != nil {
		return Movie{}, false, err
	}
	return uc.r.MergeByName(ctx, m)
}

func (uc *Usecase) ListMovies(ctx context.Context) ([]Summary, error) {
	return uc.r.Summaries(ctx)
}

func (uc *Usecase) AvailableMovies(ctx context.Context) ([]Availability, error) {
	return uc.r.Availability(ctx)
}

func (uc *Usecase) GetMovie(ctx context.Context, id int64) (Movie, error) {
	if id <= 0 {
		return Movie{}, ErrInvalidID
	}
	return uc.r.GetByID(ctx, id)
}

// AttachShowtimes stores every (date, time) pair of the batch as an upcoming showtime
// and returns how many were created.
func (uc *Usecase) AttachShowtimes(ctx context.Context, batch ShowtimeBatch) (int, error) {
	slots, err := batch.Slots()
	if err != nil {
		return 0, err
	}
	err = uc.r.AttachShowtimes(ctx, batch.MovieID, strings.TrimSpace(batch.Poster), strings.TrimSpace(batch.TrailerURL), slots)
	if err != nil {
		return 0, err
	}
	return len(slots), nil
}

func (uc *Usecase) Schedules(ctx context.Context, status Lifecycle) ([]Schedule, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	rows, err := uc.r.ShowsByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return GroupByMovie(rows), nil
}

func (uc *Usecase) MarkScreening(ctx context.Context, key ShowtimeKey) error {
	next, err := Upcoming.Advance(Screening)
	if err != nil {
		return err
	}
	return uc.r.Transition(ctx, key, Upcoming, next)
}

func (uc *Usecase) DeleteShowtime(ctx context.Context, key ShowtimeKey) error {
	return uc.r.DeleteShowtime(ctx, key)
}

// EndElapsedScreenings ends every screening showtime that started before now.
// now must already be expressed in the club time zone.
func (uc *Usecase) EndElapsedScreenings(ctx context.Context, now time.Time) (int64, error) {
	if _, err := Screening.Advance(Ended); err != nil {
		return 0, err
	}
	return uc.r.EndElapsed(ctx, CutoffAt(now))
}
