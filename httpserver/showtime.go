package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"movieclub/errs"
	"movieclub/movie"
	"movieclub/pkg/sentry"

	"github.com/labstack/echo/v4"
)

var errPostersDisabled = errs.Errorf(errs.ENOTIMPLEMENTED, "poster uploads are not configured")

func (s *Server) RegisterShowtimeRoutes(admin ...echo.MiddlewareFunc) {
	s.Router.POST("/upload-movie-details", s.handleUploadMovieDetails, admin...)
	s.Router.GET("/movies-with-shows", s.handleSchedules(movie.Upcoming))
	s.Router.GET("/screening-movies", s.handleSchedules(movie.Screening))
	s.Router.GET("/ended-movies", s.handleSchedules(movie.Ended))
	s.Router.POST("/mark-screening", s.handleMarkScreening, admin...)
	s.Router.DELETE("/delete-showtime", s.handleDeleteShowtime, admin...)
}

func (s *Server) RegisterPosterRoutes() {
	dir := s.Config.Upload.Dir
	if dir == "" {
		return
	}
	s.Router.Static("/posters", dir)
}

// handleUploadMovieDetails godoc
// @Summary Upload showtimes
// @Description Store a poster and trailer for a movie and schedule one upcoming showtime per date and time
// @Tags showtimes
// @Accept multipart/form-data
// @Produce json
// @Param movieId formData int true "Movie ID"
// @Param dates formData string true "JSON array of YYYY-MM-DD dates"
// @Param timesByDate formData string true "JSON object mapping each date to its HH:MM times"
// @Param trailerUrl formData string true "Trailer URL"
// @Param poster formData file true "Poster image"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /upload-movie-details [post]
func (s *Server) handleUploadMovieDetails(c echo.Context) error {
	if s.Posters == nil {
		return errPostersDisabled
	}

	batch, err := parseShowtimeBatch(c)
	if err != nil {
		return err
	}

	header, err := c.FormFile("poster")
	if err != nil {
		return movie.ErrMissingUploadData
	}
	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	poster, err := s.Posters.Save(file, header.Filename)
	if err != nil {
		return err
	}
	batch.Poster = poster

	created, err := s.MovieService.AttachShowtimes(c.Request().Context(), batch)
	if err != nil {
		if rmErr := s.Posters.Remove(poster); rmErr != nil {
			s.Logger.Warnw("remove orphaned poster", "poster", poster, "error", rmErr)
			sentry.WithContext(c).
				WithExtras(map[string]interface{}{"poster": poster, "error": rmErr.Error()}).
				Warning("orphaned poster left on disk")
		}
		return err
	}

	s.Logger.Infow("uploaded movie details", "movie_id", batch.MovieID, "showtimes", created)
	return writeMessage(c, http.StatusOK, "Movie details uploaded successfully", map[string]interface{}{
		"movieId": batch.MovieID,
		"poster":  poster,
		"created": created,
	})
}

// parseShowtimeBatch reads the form fields of an upload. dates and timesByDate
// arrive as JSON strings.
func parseShowtimeBatch(c echo.Context) (movie.ShowtimeBatch, error) {
	rawID := strings.TrimSpace(c.FormValue("movieId"))
	rawDates := strings.TrimSpace(c.FormValue("dates"))
	rawTimes := strings.TrimSpace(c.FormValue("timesByDate"))
	trailerURL := strings.TrimSpace(c.FormValue("trailerUrl"))
	if rawID == "" || rawDates == "" || rawTimes == "" || trailerURL == "" {
		return movie.ShowtimeBatch{}, movie.ErrMissingUploadData
	}

	movieID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || movieID <= 0 {
		return movie.ShowtimeBatch{}, movie.ErrInvalidID
	}

	var dates []string
	if err := json.Unmarshal([]byte(rawDates), &dates); err != nil {
		return movie.ShowtimeBatch{}, errs.Errorf(errs.EINVALID, "dates must be a JSON array of strings")
	}
	var timesByDate map[string][]string
	if err := json.Unmarshal([]byte(rawTimes), &timesByDate); err != nil {
		return movie.ShowtimeBatch{}, errs.Errorf(errs.EINVALID, "timesByDate must be a JSON object of string arrays")
	}

	return movie.ShowtimeBatch{
		MovieID:     movieID,
		TrailerURL:  trailerURL,
		Dates:       dates,
		TimesByDate: timesByDate,
	}, nil
}

// handleSchedules godoc
// @Summary List showtimes by lifecycle
// @Description Upcoming, screening or ended showtimes grouped by movie
// @Tags showtimes
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /movies-with-shows [get]
// @Router /screening-movies [get]
// @Router /ended-movies [get]
func (s *Server) handleSchedules(status movie.Lifecycle) echo.HandlerFunc {
	return func(c echo.Context) error {
		schedules, err := s.MovieService.Schedules(c.Request().Context(), status)
		if err != nil {
			return err
		}
		return writeList(c, http.StatusOK, schedules)
	}
}

// handleMarkScreening godoc
// @Summary Mark showtime as screening
// @Tags showtimes
// @Accept json
// @Produce json
// @Param payload body ShowtimeRequest true "Showtime"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /mark-screening [post]
func (s *Server) handleMarkScreening(c echo.Context) error {
	key, err := bindShowtimeKey(c)
	if err != nil {
		return err
	}
	if err := s.MovieService.MarkScreening(c.Request().Context(), key); err != nil {
		return err
	}
	return writeMessage(c, http.StatusOK, "Show marked as screening", nil)
}

// handleDeleteShowtime godoc
// @Summary Delete showtime
// @Tags showtimes
// @Accept json
// @Produce json
// @Param payload body ShowtimeRequest true "Showtime"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /delete-showtime [delete]
func (s *Server) handleDeleteShowtime(c echo.Context) error {
	key, err := bindShowtimeKey(c)
	if err != nil {
		return err
	}
	if err := s.MovieService.DeleteShowtime(c.Request().Context(), key); err != nil {
		return err
	}
	return writeMessage(c, http.StatusOK, "Showtime deleted successfully", nil)
}

func bindShowtimeKey(c echo.Context) (movie.ShowtimeKey, error) {
	var req ShowtimeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return movie.ShowtimeKey{}, err
	}
	return req.ToKey()
}
