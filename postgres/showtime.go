package postgres

import (
	"context"
	"time"

	"movieclub/movie"

	"gorm.io/gorm"
)

// ShowtimeModel represents one row of movie_shows.
// show_time is kept as zero padded HH:MM:SS text so it compares lexically.
type ShowtimeModel struct {
	ID        int64     `gorm:"primaryKey"`
	MovieID   int64     `gorm:"not null"`
	ShowDate  time.Time `gorm:"type:date;not null"`
	ShowTime  string    `gorm:"type:varchar(8);not null"`
	Status    string    `gorm:"not null;default:upcoming"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (ShowtimeModel) TableName() string {
	return "movie_shows"
}

// AttachShowtimes implements [movie.Repository]. The poster and trailer are
// stamped on the movie and every slot is inserted as upcoming, all or nothing.
func (r *MovieRepository) AttachShowtimes(ctx context.Context, movieID int64, poster, trailerURL string, slots []movie.Slot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&MovieModel{}).Where("id = ?", movieID).Updates(map[string]interface{}{
			"poster":      poster,
			"trailer_url": trailerURL,
			"updated_at":  time.Now().UTC(),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return movie.ErrMovieNotFound
		}

		models := make([]ShowtimeModel, len(slots))
		for i, slot := range slots {
			models[i] = ShowtimeModel{
				MovieID:  movieID,
				ShowDate: slot.Date,
				ShowTime: slot.Time,
				Status:   string(movie.Upcoming),
			}
		}
		if err := tx.CreateInBatches(&models, 100).Error; err != nil {
			if isDuplicateKeyError(err) {
				return movie.ErrDuplicateShowtime
			}
			return err
		}
		return nil
	})
}

type scheduledRow struct {
	MovieID   int64
	MovieName string
	ShowDate  time.Time
	ShowTime  string
}

// ShowsByStatus implements [movie.Repository].
func (r *MovieRepository) ShowsByStatus(ctx context.Context, status movie.Lifecycle) ([]movie.ScheduledShow, error) {
	const sql = `
SELECT m.id AS movie_id, m.name AS movie_name, ms.show_date, ms.show_time
FROM movie_shows ms
JOIN movies m ON m.id = ms.movie_id
WHERE ms.status = ?
ORDER BY m.name, m.id, ms.show_date, ms.show_time`

	var rows []scheduledRow
	if err := r.db.WithContext(ctx).Raw(sql, string(status)).Scan(&rows).Error; err != nil {
		return nil, err
	}

	shows := make([]movie.ScheduledShow, len(rows))
	for i, row := range rows {
		shows[i] = movie.ScheduledShow{
			MovieID:   row.MovieID,
			MovieName: row.MovieName,
			Date:      row.ShowDate,
			Time:      row.ShowTime,
		}
	}
	return shows, nil
}

// Transition implements [movie.Repository]. Only a showtime currently in from is moved.
func (r *MovieRepository) Transition(ctx context.Context, key movie.ShowtimeKey, from, to movie.Lifecycle) error {
	result := r.byKey(ctx, key).
		Where("status = ?", string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return movie.ErrShowtimeNotFound
	}
	return nil
}

// DeleteShowtime implements [movie.Repository].
func (r *MovieRepository) DeleteShowtime(ctx context.Context, key movie.ShowtimeKey) error {
	result := r.byKey(ctx, key).Delete(&ShowtimeModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return movie.ErrShowtimeNotFound
	}
	return nil
}

// EndElapsed implements [movie.Repository] as one conditional bulk update.
func (r *MovieRepository) EndElapsed(ctx context.Context, cutoff movie.Cutoff) (int64, error) {
	today := cutoff.Date.Format(movie.DateLayout)
	result := r.db.WithContext(ctx).Model(&ShowtimeModel{}).
		Where("status = ? AND (show_date < ? OR (show_date = ? AND show_time < ?))",
			string(movie.Screening), today, today, cutoff.Time).
		Updates(map[string]interface{}{
			"status":     string(movie.Ended),
			"updated_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

func (r *MovieRepository) byKey(ctx context.Context, key movie.ShowtimeKey) *gorm.DB {
	return r.db.WithContext(ctx).Model(&ShowtimeModel{}).
		Where("movie_id = ? AND show_date = ? AND show_time = ?",
			key.MovieID, key.Slot.Date.Format(movie.DateLayout), key.Slot.Time)
}
