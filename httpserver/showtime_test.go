package httpserver_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"movieclub/diskstore"
	"movieclub/httpserver"
	"movieclub/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func uploadForm(t *testing.T, fields map[string]string, withPoster bool) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if withPoster {
		part, err := w.CreateFormFile("poster", "inception.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func uploadFields() map[string]string {
	return map[string]string{
		"movieId":     "1",
		"dates":       `["2025-08-15","2025-08-16"]`,
		"timesByDate": `{"2025-08-15":["18:30","21:00"],"2025-08-16":["18:30"]}`,
		"trailerUrl":  "https://youtu.be/YoHD9XEInc0",
	}
}

func postUpload(server *httpserver.Server, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	return serve(server, newUploadRequest(body, contentType, nil))
}

func TestUploadMovieDetails(t *testing.T) {
	expectedBatch := movie.ShowtimeBatch{
		MovieID:    1,
		Poster:     "poster-inception.png",
		TrailerURL: "https://youtu.be/YoHD9XEInc0",
		Dates:      []string{"2025-08-15", "2025-08-16"},
		TimesByDate: map[string][]string{
			"2025-08-15": {"18:30", "21:00"},
			"2025-08-16": {"18:30"},
		},
	}

	t.Run("stores poster and schedules showtimes", func(t *testing.T) {
		svc := new(MockMovieService)
		posters := newMemoryPosters()
		server := httpserver.Default(testConfig())
		server.MovieService = svc
		server.Posters = posters
		svc.On("AttachShowtimes", mock.Anything, expectedBatch).Return(3, nil).Once()

		body, ct := uploadForm(t, uploadFields(), true)
		rec := postUpload(server, body, ct)

		assertEnvelope(t, rec, http.StatusOK, "Movie details uploaded successfully")
		var result struct {
			MovieID int64  `json:"movieId"`
			Poster  string `json:"poster"`
			Created int    `json:"created"`
		}
		decodeResult(t, rec, &result)
		assert.Equal(t, 3, result.Created)
		assert.Equal(t, "poster-inception.png", result.Poster)
		assert.Equal(t, []byte("png-bytes"), posters.files["poster-inception.png"])
		svc.AssertExpectations(t)
	})

	t.Run("removes poster when scheduling fails", func(t *testing.T) {
		svc := new(MockMovieService)
		posters := newMemoryPosters()
		server := httpserver.Default(testConfig())
		server.MovieService = svc
		server.Posters = posters
		svc.On("AttachShowtimes", mock.Anything, expectedBatch).Return(0, movie.ErrDuplicateShowtime).Once()

		body, ct := uploadForm(t, uploadFields(), true)
		rec := postUpload(server, body, ct)

		assertEnvelope(t, rec, http.StatusConflict, "showtime: slot already scheduled")
		assert.Empty(t, posters.files)
		assert.Equal(t, []string{"poster-inception.png"}, posters.removed)
	})

	t.Run("unknown movie", func(t *testing.T) {
		svc := new(MockMovieService)
		posters := newMemoryPosters()
		server := httpserver.Default(testConfig())
		server.MovieService = svc
		server.Posters = posters
		svc.On("AttachShowtimes", mock.Anything, mock.Anything).Return(0, movie.ErrMovieNotFound).Once()

		body, ct := uploadForm(t, uploadFields(), true)
		rec := postUpload(server, body, ct)

		assertEnvelope(t, rec, http.StatusNotFound, "Movie not found")
		assert.Empty(t, posters.files)
	})

	t.Run("missing fields", func(t *testing.T) {
		for _, field := range []string{"movieId", "dates", "timesByDate", "trailerUrl"} {
			t.Run(field, func(t *testing.T) {
				svc := new(MockMovieService)
				posters := newMemoryPosters()
				server := httpserver.Default(testConfig())
				server.MovieService = svc
				server.Posters = posters
				fields := uploadFields()
				delete(fields, field)

				body, ct := uploadForm(t, fields, true)
				rec := postUpload(server, body, ct)

				assertEnvelope(t, rec, http.StatusBadRequest, "Missing data")
				assert.Empty(t, posters.files)
				svc.AssertNotCalled(t, "AttachShowtimes", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("missing poster", func(t *testing.T) {
		svc := new(MockMovieService)
		server := httpserver.Default(testConfig())
		server.MovieService = svc
		server.Posters = newMemoryPosters()

		body, ct := uploadForm(t, uploadFields(), false)
		rec := postUpload(server, body, ct)

		assertEnvelope(t, rec, http.StatusBadRequest, "Missing data")
	})

	t.Run("dates that are not json", func(t *testing.T) {
		server := httpserver.Default(testConfig())
		server.MovieService = new(MockMovieService)
		server.Posters = newMemoryPosters()
		fields := uploadFields()
		fields["dates"] = "2025-08-15"

		body, ct := uploadForm(t, fields, true)
		rec := postUpload(server, body, ct)

		assertEnvelope(t, rec, http.StatusBadRequest, "dates must be a JSON array of strings")
	})

	t.Run("rejected poster type", func(t *testing.T) {
		svc := new(MockMovieService)
		posters := newMemoryPosters()
		posters.saveErr = diskstore.ErrUnsupportedPoster
		server := httpserver.Default(testConfig())
		server.MovieService = svc
		server.Posters = posters

		body, ct := uploadForm(t, uploadFields(), true)
		rec := postUpload(server, body, ct)

		assertEnvelope(t, rec, http.StatusBadRequest, "")
		svc.AssertNotCalled(t, "AttachShowtimes", mock.Anything, mock.Anything)
	})

	t.Run("no poster store", func(t *testing.T) {
		server := httpserver.Default(testConfig())
		server.MovieService = new(MockMovieService)

		body, ct := uploadForm(t, uploadFields(), true)
		rec := postUpload(server, body, ct)

		assertEnvelope(t, rec, http.StatusNotImplemented, "poster uploads are not configured")
	})
}

func TestSchedules(t *testing.T) {
	schedules := []movie.Schedule{{
		ID:   1,
		Name: "Inception",
		Shows: []movie.ShowSlot{
			{Date: "2025-08-15", Time: "18:30:00"},
			{Date: "2025-08-15", Time: "21:00:00"},
		},
	}}

	tests := []struct {
		path   string
		status movie.Lifecycle
	}{
		{"/movies-with-shows", movie.Upcoming},
		{"/screening-movies", movie.Screening},
		{"/ended-movies", movie.Ended},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			svc := new(MockMovieService)
			server := httpserver.Default(testConfig())
			server.MovieService = svc
			svc.On("Schedules", mock.Anything, tt.status).Return(schedules, nil).Once()

			rec := serveJSON(server, http.MethodGet, tt.path, nil)

			assertEnvelope(t, rec, http.StatusOK, "OK")
			var got []movie.Schedule
			decodeList(t, rec, &got)
			assert.Equal(t, schedules, got)
			assert.Contains(t, rec.Body.String(), `"show_date":"2025-08-15"`)
			svc.AssertExpectations(t)
		})
	}
}

func TestShowtimeMutations(t *testing.T) {
	key := movie.ShowtimeKey{
		MovieID: 1,
		Slot:    movie.Slot{Date: time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC), Time: "18:30:00"},
	}
	body := httpserver.ShowtimeRequest{MovieID: 1, ShowDate: "2025-08-15", ShowTime: "18:30"}

	t.Run("mark screening", func(t *testing.T) {
		svc := new(MockMovieService)
		server := httpserver.Default(testConfig())
		server.MovieService = svc
		svc.On("MarkScreening", mock.Anything, key).Return(nil).Once()

		rec := serveJSON(server, http.MethodPost, "/mark-screening", body)

		assertEnvelope(t, rec, http.StatusOK, "Show marked as screening")
		svc.AssertExpectations(t)
	})

	t.Run("mark screening of a showtime that is not upcoming", func(t *testing.T) {
		svc := new(MockMovieService)
		server := httpserver.Default(testConfig())
		server.MovieService = svc
		svc.On("MarkScreening", mock.Anything, key).Return(movie.ErrShowtimeNotFound).Once()

		rec := serveJSON(server, http.MethodPost, "/mark-screening", body)

		assertEnvelope(t, rec, http.StatusNotFound, "Showtime not found")
	})

	t.Run("delete", func(t *testing.T) {
		svc := new(MockMovieService)
		server := httpserver.Default(testConfig())
		server.MovieService = svc
		svc.On("DeleteShowtime", mock.Anything, key).Return(nil).Once()

		rec := serveJSON(server, http.MethodDelete, "/delete-showtime", body)

		assertEnvelope(t, rec, http.StatusOK, "Showtime deleted successfully")
		svc.AssertExpectations(t)
	})

	t.Run("delete unknown", func(t *testing.T) {
		svc := new(MockMovieService)
		server := httpserver.Default(testConfig())
		server.MovieService = svc
		svc.On("DeleteShowtime", mock.Anything, key).Return(movie.ErrShowtimeNotFound).Once()

		rec := serveJSON(server, http.MethodDelete, "/delete-showtime", body)

		assertEnvelope(t, rec, http.StatusNotFound, "Showtime not found")
	})

	t.Run("malformed time", func(t *testing.T) {
		svc := new(MockMovieService)
		server := httpserver.Default(testConfig())
		server.MovieService = svc
		bad := body
		bad.ShowTime = "6pm"

		rec := serveJSON(server, http.MethodPost, "/mark-screening", bad)

		assertEnvelope(t, rec, http.StatusBadRequest, "showtime: time must be HH:MM or HH:MM:SS")
		svc.AssertNotCalled(t, "MarkScreening", mock.Anything, mock.Anything)
	})

	t.Run("missing movie id", func(t *testing.T) {
		svc := new(MockMovieService)
		server := httpserver.Default(testConfig())
		server.MovieService = svc

		rec := serveJSON(server, http.MethodDelete, "/delete-showtime", map[string]string{"showDate": "2025-08-15", "showTime": "18:30"})

		assertEnvelope(t, rec, http.StatusBadRequest, "")
	})
}
