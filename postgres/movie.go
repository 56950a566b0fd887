package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"movieclub/movie"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovieModel represents the database model for movies.
// languages is stored as a comma separated list.
type MovieModel struct {
	ID         int64     `gorm:"primaryKey"`
	Name       string    `gorm:"not null"`
	Starring   string    `gorm:"not null"`
	Shows      int       `gorm:"not null"`
	Languages  string    `gorm:"not null"`
	Venue      string    `gorm:"not null"`
	Seats      int       `gorm:"not null"`
	Poster     string    `gorm:"not null;default:''"`
	TrailerURL string    `gorm:"column:trailer_url;not null;default:''"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository on top of the movies and movie_shows tables.
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// MergeByName implements [movie.Repository]. The matched row is locked for the
// rest of the transaction. A concurrent insert of the same name trips the
// unique index on LOWER(name); the merge is then retried against that row.
func (r *MovieRepository) MergeByName(ctx context.Context, m movie.Movie) (movie.Movie, bool, error) {
	var (
		merged  movie.Movie
		created bool
		err     error
	)
	for attempt := 0; attempt < 2; attempt++ {
		merged, created, err = r.mergeByName(ctx, m)
		if !isDuplicateKeyError(err) {
			return merged, created, err
		}
	}
	return movie.Movie{}, false, err
}

func (r *MovieRepository) mergeByName(ctx context.Context, m movie.Movie) (movie.Movie, bool, error) {
	var merged MovieModel
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("LOWER(name) = LOWER(?)", m.Name).
			First(&merged).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			merged = toModelMovie(m)
			created = true
			return tx.Create(&merged).Error
		}
		if err != nil {
			return err
		}

		err = tx.Model(&merged).Updates(map[string]interface{}{
			"shows":      gorm.Expr("shows + ?", m.Shows),
			"starring":   m.Starring,
			"languages":  joinLanguages(m.Languages),
			"venue":      m.Venue,
			"seats":      m.Seats,
			"updated_at": time.Now().UTC(),
		}).Error
		if err != nil {
			return err
		}
		return tx.First(&merged, merged.ID).Error
	})
	if err != nil {
		return movie.Movie{}, false, err
	}
	return toDomainMovie(merged), created, nil
}

// Summaries implements [movie.Repository].
func (r *MovieRepository) Summaries(ctx context.Context) ([]movie.Summary, error) {
	var models []MovieModel
	if err := r.db.WithContext(ctx).Select("id", "name").Order("name, id").Find(&models).Error; err != nil {
		return nil, err
	}

	summaries := make([]movie.Summary, len(models))
	for i, model := range models {
		summaries[i] = movie.Summary{ID: model.ID, Name: model.Name}
	}
	return summaries, nil
}

type availabilityRow struct {
	ID            int64
	Name          string
	Shows         int
	UploadedShows int
}

// Availability implements [movie.Repository].
func (r *MovieRepository) Availability(ctx context.Context) ([]movie.Availability, error) {
	const sql = `
SELECT m.id, m.name, m.shows, COUNT(ms.id) AS uploaded_shows
FROM movies m
LEFT JOIN movie_shows ms ON ms.movie_id = m.id
GROUP BY m.id, m.name, m.shows
HAVING COUNT(ms.id) < m.shows
ORDER BY m.name, m.id`

	var rows []availabilityRow
	if err := r.db.WithContext(ctx).Raw(sql).Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]movie.Availability, len(rows))
	for i, row := range rows {
		result[i] = movie.Availability{
			ID:            row.ID,
			Name:          row.Name,
			Shows:         row.Shows,
			UploadedShows: row.UploadedShows,
		}
	}
	return result, nil
}

// GetByID implements [movie.Repository].
func (r *MovieRepository) GetByID(ctx context.Context, id int64) (movie.Movie, error) {
	var model MovieModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

func toDomainMovie(model MovieModel) movie.Movie {
	return movie.Movie{
		ID:         model.ID,
		Name:       model.Name,
		Starring:   model.Starring,
		Shows:      model.Shows,
		Languages:  movie.ParseLanguages(model.Languages),
		Venue:      model.Venue,
		Seats:      model.Seats,
		Poster:     model.Poster,
		TrailerURL: model.TrailerURL,
	}
}

func toModelMovie(m movie.Movie) MovieModel {
	return MovieModel{
		ID:         m.ID,
		Name:       m.Name,
		Starring:   m.Starring,
		Shows:      m.Shows,
		Languages:  joinLanguages(m.Languages),
		Venue:      m.Venue,
		Seats:      m.Seats,
		Poster:     m.Poster,
		TrailerURL: m.TrailerURL,
	}
}

func joinLanguages(langs []string) string {
	return strings.Join(langs, ", ")
}
