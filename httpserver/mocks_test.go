package httpserver_test

import (
	"context"
	"io"
	"sync"
	"time"

	"movieclub/auth"
	"movieclub/dependant"
	"movieclub/movie"
	"movieclub/user"

	"github.com/stretchr/testify/mock"
)

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) CreateMovie(ctx context.Context, mv movie.Movie) (movie.Movie, bool, error) {
	args := m.Called(ctx, mv)
	return args.Get(0).(movie.Movie), args.Bool(1), args.Error(2)
}

func (m *MockMovieService) ListMovies(ctx context.Context) ([]movie.Summary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]movie.Summary), args.Error(1)
}

func (m *MockMovieService) AvailableMovies(ctx context.Context) ([]movie.Availability, error) {
	args := m.Called(ctx)
	return args.Get(0).([]movie.Availability), args.Error(1)
}

func (m *MockMovieService) GetMovie(ctx context.Context, id int64) (movie.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) AttachShowtimes(ctx context.Context, batch movie.ShowtimeBatch) (int, error) {
	args := m.Called(ctx, batch)
	return args.Int(0), args.Error(1)
}

func (m *MockMovieService) Schedules(ctx context.Context, status movie.Lifecycle) ([]movie.Schedule, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]movie.Schedule), args.Error(1)
}

func (m *MockMovieService) MarkScreening(ctx context.Context, key movie.ShowtimeKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockMovieService) DeleteShowtime(ctx context.Context, key movie.ShowtimeKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockMovieService) EndElapsedScreenings(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) AddAdmin(ctx context.Context, u user.User) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserService) AddEmployee(ctx context.Context, u user.User) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserService) UpdateEmployee(ctx context.Context, loginID string, p user.Profile) error {
	args := m.Called(ctx, loginID, p)
	return args.Error(0)
}

type MockDependantService struct {
	mock.Mock
}

func (m *MockDependantService) AddDependant(ctx context.Context, loginID string, d dependant.Dependant) (int64, error) {
	args := m.Called(ctx, loginID, d)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDependantService) ListDependants(ctx context.Context, loginID string) ([]dependant.Dependant, error) {
	args := m.Called(ctx, loginID)
	return args.Get(0).([]dependant.Dependant), args.Error(1)
}

func (m *MockDependantService) UpdateDependant(ctx context.Context, d dependant.Dependant) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDependantService) DeleteDependant(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, loginID, password string) (auth.Identity, error) {
	args := m.Called(ctx, loginID, password)
	return args.Get(0).(auth.Identity), args.Error(1)
}

// memoryPosters is a PosterStore that keeps uploads in memory.
type memoryPosters struct {
	mu      sync.Mutex
	files   map[string][]byte
	removed []string
	saveErr error
}

func newMemoryPosters() *memoryPosters {
	return &memoryPosters{files: map[string][]byte{}}
}

func (p *memoryPosters) Save(r io.Reader, originalName string) (string, error) {
	if p.saveErr != nil {
		return "", p.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	name := "poster-" + originalName
	p.files[name] = data
	return name, nil
}

func (p *memoryPosters) Remove(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.files, name)
	p.removed = append(p.removed, name)
	return nil
}
