package httpserver

import (
	"net/http"
	"strconv"

	"movieclub/movie"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(admin ...echo.MiddlewareFunc) {
	s.Router.POST("/add-movie", s.handleAddMovie, admin...)
	s.Router.GET("/movies", s.handleListMovies)
	s.Router.GET("/available-movies", s.handleAvailableMovies)
	s.Router.GET("/movie/:id", s.handleGetMovie)
}

// handleAddMovie godoc
// @Summary Add movie
// @Description Create a movie, or add to the show count of an existing one with the same name (case-insensitive)
// @Tags movies
// @Accept json
// @Produce json
// @Param payload body AddMovieRequest true "Movie"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /add-movie [post]
func (s *Server) handleAddMovie(c echo.Context) error {
	var req AddMovieRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	m, created, err := s.MovieService.CreateMovie(c.Request().Context(), req.ToMovie())
	if err != nil {
		return err
	}

	message := "Movie updated successfully"
	if created {
		message = "Movie added successfully"
	}
	return writeMessage(c, http.StatusOK, message, m)
}

// handleListMovies godoc
// @Summary List movies
// @Description Return the id and name of every movie
// @Tags movies
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	movies, err := s.MovieService.ListMovies(c.Request().Context())
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, movies)
}

// handleAvailableMovies godoc
// @Summary List movies with unscheduled shows
// @Description Return movies whose uploaded showtimes are fewer than their show count
// @Tags movies
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /available-movies [get]
func (s *Server) handleAvailableMovies(c echo.Context) error {
	movies, err := s.MovieService.AvailableMovies(c.Request().Context())
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, movies)
}

// handleGetMovie godoc
// @Summary Get movie
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /movie/{id} [get]
func (s *Server) handleGetMovie(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return movie.ErrInvalidID
	}

	m, err := s.MovieService.GetMovie(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, m)
}
