package repository

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"wayfinder/internal/models"
)

// ActivityRepository aggregates per-day location and visit counts.
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new activity repository.
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// DailyActivity returns per-day counts for the range, ascending by date.
// Days without any activity are omitted.
func (r *ActivityRepository) DailyActivity(start, end time.Time) ([]models.DailyActivity, error) {
	byDate := make(map[string]*models.DailyActivity)

	locQuery := `SELECT strftime('%Y-%m-%d', time, 'unixepoch') AS day, COUNT(*)
		FROM locations WHERE time >= ? AND time <= ?
		GROUP BY day`

	rows, err := r.db.Query(locQuery, start.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query daily locations: %w", err)
	}
	for rows.Next() {
		var day string
		var count int64
		if err := rows.Scan(&day, &count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan daily locations: %w", err)
		}
		byDate[day] = &models.DailyActivity{Date: day, LocationCount: count}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	visitQuery := `SELECT strftime('%Y-%m-%d', arrival, 'unixepoch') AS day, COUNT(*)
		FROM visits WHERE arrival >= ? AND arrival <= ?
		GROUP BY day`

	rows, err = r.db.Query(visitQuery, start.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query daily visits: %w", err)
	}
	for rows.Next() {
		var day string
		var count int64
		if err := rows.Scan(&day, &count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan daily visits: %w", err)
		}
		if d, ok := byDate[day]; ok {
			d.VisitCount = count
		} else {
			byDate[day] = &models.DailyActivity{Date: day, VisitCount: count}
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	days := make([]models.DailyActivity, 0, len(byDate))
	for _, d := range byDate {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	return days, nil
}
