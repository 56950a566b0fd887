// Command movieseed fills a fresh database: an optional first admin account
// and a movie catalogue imported from the MovieLens movies.csv.
package main

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"movieclub/movie"
	"movieclub/pkg/config"
	"movieclub/pkg/logger"
	"movieclub/pkg/password"
	"movieclub/postgres"
	"movieclub/user"

	"go.uber.org/zap"
)

const defaultMovieLensURL = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"

type seedFlags struct {
	csvPath    string
	zipURL     string
	limit      int
	skipMovies bool

	shows     int
	seats     int
	venue     string
	languages string
	starring  string

	admin user.User
}

func parseFlags() seedFlags {
	var f seedFlags
	flag.StringVar(&f.csvPath, "csv", "", "Path to movies.csv (skip download)")
	flag.StringVar(&f.zipURL, "url", defaultMovieLensURL, "MovieLens zip URL")
	flag.IntVar(&f.limit, "limit", 0, "Limit number of rows to import (0 = all)")
	flag.BoolVar(&f.skipMovies, "skip-movies", false, "Only seed the admin account")

	flag.IntVar(&f.shows, "shows", 1, "Target show count for each imported movie")
	flag.IntVar(&f.seats, "seats", 100, "Seats for each imported movie")
	flag.StringVar(&f.venue, "venue", "Main Hall", "Venue for each imported movie")
	flag.StringVar(&f.languages, "languages", "English", "Comma separated languages for each imported movie")
	flag.StringVar(&f.starring, "starring", "To be announced", "Starring line for each imported movie")

	flag.StringVar(&f.admin.LoginID, "admin-login", "", "Login ID of an admin to create")
	flag.StringVar(&f.admin.Password, "admin-password", "", "Password of the admin")
	flag.StringVar(&f.admin.Name, "admin-name", "Club Admin", "Name of the admin")
	flag.StringVar(&f.admin.Email, "admin-email", "", "Email of the admin")
	flag.StringVar(&f.admin.Phone, "admin-phone", "", "Phone of the admin")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()

	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		log.Fatalw("cannot open postgres connection", "error", err)
	}

	ctx := context.Background()
	if f.admin.LoginID != "" {
		users := user.NewUsecase(postgres.NewUserRepository(db), password.New(cfg.Auth.HashPasswords, cfg.Auth.BcryptCost))
		id, err := users.AddAdmin(ctx, f.admin)
		if err != nil {
			log.Fatalw("cannot create admin", "error", err, "login_id", f.admin.LoginID)
		}
		log.Infow("admin created", "id", id, "login_id", f.admin.LoginID)
	}
	if f.skipMovies {
		return
	}

	csvPath := f.csvPath
	cleanup := func() {}
	if csvPath == "" {
		path, c, err := downloadAndExtract(f.zipURL)
		if err != nil {
			log.Fatalw("failed to download dataset", "error", err)
		}
		csvPath = path
		cleanup = c
	}
	defer cleanup()

	file, err := os.Open(csvPath)
	if err != nil {
		log.Fatalw("cannot open csv", "error", err)
	}
	defer file.Close()

	template := movie.Movie{
		Starring:  f.starring,
		Shows:     f.shows,
		Languages: movie.ParseLanguages(f.languages),
		Venue:     f.venue,
		Seats:     f.seats,
	}
	svc := movie.NewUsecase(postgres.NewMovieRepository(db))
	count, err := importMovies(ctx, svc, file, template, f.limit, log)
	if err != nil {
		log.Fatalw("import failed", "error", err, "rows", count)
	}

	log.Infow("import completed", "rows", count)
}

func downloadAndExtract(zipURL string) (string, func(), error) {
	if zipURL == "" {
		return "", func() {}, errors.New("dataset url is empty")
	}

	tmpDir, err := os.MkdirTemp("", "movielens-")
	if err != nil {
		return "", func() {}, err
	}

	cleanup := func() {
		_ = os.RemoveAll(tmpDir)
	}

	zipPath := filepath.Join(tmpDir, "dataset.zip")
	if err := downloadFile(zipURL, zipPath); err != nil {
		cleanup()
		return "", func() {}, err
	}

	csvPath, err := extractMoviesCSV(zipPath, tmpDir)
	if err != nil {
		cleanup()
		return "", func() {}, err
	}

	return csvPath, cleanup, nil
}

func downloadFile(url, dest string) error {
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(url) // nolint: noctx
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

func extractMoviesCSV(zipPath, destDir string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	for _, file := range r.File {
		if !strings.HasSuffix(file.Name, "movies.csv") {
			continue
		}

		src, err := file.Open()
		if err != nil {
			return "", err
		}
		defer src.Close()

		destPath := filepath.Join(destDir, filepath.Base(file.Name))
		out, err := os.Create(destPath)
		if err != nil {
			return "", err
		}

		if _, err := io.Copy(out, src); err != nil {
			_ = out.Close()
			return "", err
		}
		if err := out.Close(); err != nil {
			return "", err
		}

		return destPath, nil
	}

	return "", errors.New("movies.csv not found in zip")
}

type movieCreator interface {
	CreateMovie(ctx context.Context, m movie.Movie) (movie.Movie, bool, error)
}

// importMovies creates one movie per csv row from template, named after the row title.
// Titles already present are merged, so re-running adds to their show targets.
func importMovies(ctx context.Context, svc movieCreator, r io.Reader, template movie.Movie, limit int, log *zap.SugaredLogger) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	idxMovieID, idxTitle, err := parseMovieCSVHeader(reader)
	if err != nil {
		return 0, err
	}

	count := 0
	for limit <= 0 || count < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, err
		}
		title, ok := parseMovieRecord(record, idxMovieID, idxTitle)
		if !ok {
			continue
		}

		m := template
		m.Name = title
		if _, created, err := svc.CreateMovie(ctx, m); err != nil {
			return count, err
		} else if !created {
			log.Debugw("merged existing movie", "name", title)
		}

		count++
	}

	return count, nil
}

func parseMovieCSVHeader(reader *csv.Reader) (int, int, error) {
	header, err := reader.Read()
	if err != nil {
		return 0, 0, err
	}

	idxMovieID, idxTitle := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "movieId":
			idxMovieID = i
		case "title":
			idxTitle = i
		}
	}
	if idxMovieID == -1 || idxTitle == -1 {
		return 0, 0, errors.New("missing required columns in csv header")
	}

	return idxMovieID, idxTitle, nil
}

func parseMovieRecord(record []string, idxMovieID, idxTitle int) (string, bool) {
	if idxMovieID >= len(record) || idxTitle >= len(record) {
		return "", false
	}

	if _, err := strconv.Atoi(strings.TrimSpace(record[idxMovieID])); err != nil {
		return "", false
	}
	title := strings.TrimSpace(record[idxTitle])
	return title, title != ""
}
