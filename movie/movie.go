package movie

import (
	"strings"

	"movieclub/errs"
)

var (
	ErrInvalidName      = errs.Errorf(errs.EINVALID, "movie: name is required")
	ErrInvalidStarring  = errs.Errorf(errs.EINVALID, "movie: starring is required")
	ErrInvalidShowCount = errs.Errorf(errs.EINVALID, "movie: shows must be at least 1")
	ErrInvalidLanguages = errs.Errorf(errs.EINVALID, "movie: at least one language is required")
	ErrInvalidVenue     = errs.Errorf(errs.EINVALID, "movie: venue is required")
	ErrInvalidSeats     = errs.Errorf(errs.EINVALID, "movie: seats must be at least 1")
	ErrInvalidID        = errs.Errorf(errs.EINVALID, "movie: invalid id")
	ErrMovieNotFound    = errs.Errorf(errs.ENOTFOUND, "Movie not found")
)

// Movie is a title in the club programme. Shows is the target number of showtimes;
// showtimes beyond it are accepted, the count only drives availability.
type Movie struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Starring   string   `json:"starring"`
	Shows      int      `json:"shows"`
	Languages  []string `json:"languages"`
	Venue      string   `json:"venue"`
	Seats      int      `json:"seats"`
	Poster     string   `json:"poster,omitempty"`
	TrailerURL string   `json:"trailer_url,omitempty"`
}

func (m Movie) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(m.Starring) == "" {
		return ErrInvalidStarring
	}
	if m.Shows < 1 {
		return ErrInvalidShowCount
	}
	if len(m.Languages) == 0 {
		return ErrInvalidLanguages
	}
	if strings.TrimSpace(m.Venue) == "" {
		return ErrInvalidVenue
	}
	if m.Seats < 1 {
		return ErrInvalidSeats
	}
	return nil
}

// Summary is the id/name projection used by pickers.
type Summary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Availability compares scheduled showtimes against the movie's target count.
type Availability struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Shows         int    `json:"shows"`
	UploadedShows int    `json:"total_uploaded_shows"`
}

// ParseLanguages splits a comma separated list such as "Hindi, English".
func ParseLanguages(raw string) []string {
	var langs []string
	for _, l := range strings.Split(raw, ",") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return langs
}
