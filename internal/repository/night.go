package repository

import (
	"context"
	"database/sql"

	"github.com/emilianohg/sleeptracker/internal/models"
)

const nightColumns = "nightId, start_time_milli, end_time_milli, quality_rating"

type NightRepo struct {
	db *sql.DB
}

func NewNightRepo(db *sql.DB) *NightRepo {
	return &NightRepo{db: db}
}

// Insert stores night and sets its ID to the assigned key.
func (r *NightRepo) Insert(ctx context.Context, night *models.SleepNight) error {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_sleep_quality_table (start_time_milli, end_time_milli, quality_rating)
		VALUES (?, ?, ?)
	`, night.StartTimeMilli, night.EndTimeMilli, night.SleepQuality)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	night.ID = id
	return nil
}

func (r *NightRepo) Update(ctx context.Context, night *models.SleepNight) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE daily_sleep_quality_table
		SET start_time_milli = ?, end_time_milli = ?, quality_rating = ?
		WHERE nightId = ?
	`, night.StartTimeMilli, night.EndTimeMilli, night.SleepQuality, night.ID)
	return err
}

func (r *NightRepo) Get(ctx context.Context, id int64) (*models.SleepNight, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+nightColumns+" FROM daily_sleep_quality_table WHERE nightId = ?", id)
	return scanNight(row)
}

// GetTonight returns the most recently inserted night, finished or not.
func (r *NightRepo) GetTonight(ctx context.Context) (*models.SleepNight, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+nightColumns+" FROM daily_sleep_quality_table ORDER BY nightId DESC LIMIT 1")
	return scanNight(row)
}

// GetAllNights returns every night, most recent first.
func (r *NightRepo) GetAllNights(ctx context.Context) ([]models.SleepNight, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+nightColumns+" FROM daily_sleep_quality_table ORDER BY nightId DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nights []models.SleepNight
	for rows.Next() {
		var n models.SleepNight
		if err := rows.Scan(&n.ID, &n.StartTimeMilli, &n.EndTimeMilli, &n.SleepQuality); err != nil {
			return nil, err
		}
		nights = append(nights, n)
	}
	return nights, rows.Err()
}

func (r *NightRepo) DeleteAllRows(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM daily_sleep_quality_table")
	return err
}

func (r *NightRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM daily_sleep_quality_table").Scan(&count)
	return count, err
}

func scanNight(row *sql.Row) (*models.SleepNight, error) {
	var n models.SleepNight
	err := row.Scan(&n.ID, &n.StartTimeMilli, &n.EndTimeMilli, &n.SleepQuality)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}
