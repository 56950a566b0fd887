package movie

import (
	"fmt"
	"strings"
	"time"

	"movieclub/errs"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

var (
	ErrInvalidTransition  = errs.Errorf(errs.EINVALID, "showtime: invalid lifecycle transition")
	ErrInvalidStatus      = errs.Errorf(errs.EINVALID, "showtime: unknown lifecycle status")
	ErrShowtimeNotFound   = errs.Errorf(errs.ENOTFOUND, "Showtime not found")
	ErrDuplicateShowtime  = errs.Errorf(errs.ECONFLICT, "showtime: slot already scheduled")
	ErrMissingUploadData  = errs.Errorf(errs.EINVALID, "Missing data")
	ErrInvalidShowDate    = errs.Errorf(errs.EINVALID, "showtime: date must be YYYY-MM-DD")
	ErrInvalidShowTime    = errs.Errorf(errs.EINVALID, "showtime: time must be HH:MM or HH:MM:SS")
	ErrNoShowtimesInBatch = errs.Errorf(errs.EINVALID, "showtime: no times given for the listed dates")
)

// Lifecycle is the state of a showtime. It only moves forward:
// Upcoming -> Screening -> Ended.
type Lifecycle string

const (
	Upcoming  Lifecycle = "upcoming"
	Screening Lifecycle = "screening"
	Ended     Lifecycle = "ended"
)

func (l Lifecycle) Valid() bool {
	switch l {
	case Upcoming, Screening, Ended:
		return true
	}
	return false
}

// CanAdvanceTo reports whether next is the single state that follows l.
func (l Lifecycle) CanAdvanceTo(next Lifecycle) bool {
	switch l {
	case Upcoming:
		return next == Screening
	case Screening:
		return next == Ended
	}
	return false
}

// Advance returns next if the transition is allowed.
func (l Lifecycle) Advance(next Lifecycle) (Lifecycle, error) {
	if !l.CanAdvanceTo(next) {
		return l, ErrInvalidTransition
	}
	return next, nil
}

// Showtime is one scheduled screening of a movie.
type Showtime struct {
	ID      int64
	MovieID int64
	Date    time.Time
	Time    string
	Status  Lifecycle
}

// Slot identifies a showtime inside a movie by its wall-clock date and time.
type Slot struct {
	Date time.Time
	Time string
}

// ParseSlot validates and normalizes a date ("2006-01-02") and a time ("15:04" or "15:04:05").
// Dates are returned as UTC midnight so they round-trip through DATE columns unchanged.
func ParseSlot(date, clock string) (Slot, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return Slot{}, ErrInvalidShowDate
	}
	t, err := ParseClock(clock)
	if err != nil {
		return Slot{}, err
	}
	return Slot{Date: d, Time: t}, nil
}

// ParseClock normalizes a time of day to HH:MM:SS.
func ParseClock(clock string) (string, error) {
	clock = strings.TrimSpace(clock)
	for _, layout := range []string{TimeLayout, "15:04"} {
		if t, err := time.Parse(layout, clock); err == nil {
			return t.Format(TimeLayout), nil
		}
	}
	return "", ErrInvalidShowTime
}

// ShowtimeKey addresses exactly one showtime.
type ShowtimeKey struct {
	MovieID int64
	Slot    Slot
}

func NewShowtimeKey(movieID int64, date, clock string) (ShowtimeKey, error) {
	if movieID <= 0 {
		return ShowtimeKey{}, ErrInvalidID
	}
	slot, err := ParseSlot(date, clock)
	if err != nil {
		return ShowtimeKey{}, err
	}
	return ShowtimeKey{MovieID: movieID, Slot: slot}, nil
}

// ShowtimeBatch is one upload of showtimes for a movie, together with its poster and trailer.
type ShowtimeBatch struct {
	MovieID     int64
	Poster      string
	TrailerURL  string
	Dates       []string
	TimesByDate map[string][]string
}

// Slots expands the batch into one slot per (date, time) pair, in the order given.
// Dates without an entry in TimesByDate contribute nothing.
func (b ShowtimeBatch) Slots() ([]Slot, error) {
	if b.MovieID <= 0 || strings.TrimSpace(b.Poster) == "" || strings.TrimSpace(b.TrailerURL) == "" ||
		len(b.Dates) == 0 || b.TimesByDate == nil {
		return nil, ErrMissingUploadData
	}

	var slots []Slot
	for _, date := range b.Dates {
		for _, clock := range b.TimesByDate[date] {
			slot, err := ParseSlot(date, clock)
			if err != nil {
				return nil, err
			}
			slots = append(slots, slot)
		}
	}
	if len(slots) == 0 {
		return nil, ErrNoShowtimesInBatch
	}
	return slots, nil
}

// ScheduledShow is one row of a lifecycle view: a showtime joined with its movie.
type ScheduledShow struct {
	MovieID   int64
	MovieName string
	Date      time.Time
	Time      string
}

// ShowSlot is the wire form of a showtime inside a Schedule.
type ShowSlot struct {
	Date string `json:"show_date"`
	Time string `json:"show_time"`
}

// Schedule groups the showtimes of one movie in a lifecycle view.
type Schedule struct {
	ID    int64      `json:"id"`
	Name  string     `json:"name"`
	Shows []ShowSlot `json:"shows"`
}

// GroupByMovie groups rows by movie, keeping the order in which movies first appear.
// Rows are expected to be sorted by movie name, date and time already.
func GroupByMovie(rows []ScheduledShow) []Schedule {
	schedules := make([]Schedule, 0)
	index := make(map[int64]int)
	for _, r := range rows {
		i, ok := index[r.MovieID]
		if !ok {
			i = len(schedules)
			index[r.MovieID] = i
			schedules = append(schedules, Schedule{ID: r.MovieID, Name: r.MovieName, Shows: []ShowSlot{}})
		}
		schedules[i].Shows = append(schedules[i].Shows, ShowSlot{
			Date: r.Date.Format(DateLayout),
			Time: r.Time,
		})
	}
	return schedules
}

// Cutoff is the wall-clock instant a sweep compares showtimes against.
type Cutoff struct {
	Date time.Time
	Time string
}

// CutoffAt converts now, already in the club time zone, into a cutoff.
func CutoffAt(now time.Time) Cutoff {
	return Cutoff{
		Date: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Time: now.Format(TimeLayout),
	}
}

func (c Cutoff) String() string {
	return fmt.Sprintf("%s %s", c.Date.Format(DateLayout), c.Time)
}
