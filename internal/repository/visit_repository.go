package repository

import (
	"database/sql"
	"fmt"
	"time"

	"wayfinder/internal/database"
	"wayfinder/internal/models"
)

// VisitRepository handles database operations for visits.
type VisitRepository struct {
	db *sql.DB
}

// NewVisitRepository creates a new visit repository.
func NewVisitRepository(db *sql.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

// FetchVisits retrieves visits overlapping the range (arrival or departure
// inside it), ordered by arrival. The schema guarantees a departure; rows
// with departure <= arrival are still returned and excluded later with a
// diagnostic, so a bad upstream row cannot fail the whole request.
func (r *VisitRepository) FetchVisits(filter models.VisitFilter) ([]models.Visit, error) {
	query := `SELECT id, arrival, departure, longitude, latitude, horizontal_accuracy, device_id
		FROM visits
		WHERE (arrival BETWEEN ? AND ?) OR (departure BETWEEN ? AND ?)
		ORDER BY arrival ASC, id ASC`

	s, e := filter.Start.Unix(), filter.End.Unix()
	rows, err := r.db.Query(query, s, e, s, e)
	if err != nil {
		return nil, fmt.Errorf("failed to query visits: %w", err)
	}
	defer rows.Close()

	var visits []models.Visit
	for rows.Next() {
		var v models.Visit
		var arrival, departure int64
		err := rows.Scan(&v.ID, &arrival, &departure, &v.Longitude, &v.Latitude, &v.HorizontalAccuracy, &v.DeviceID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan visit: %w", err)
		}
		v.Arrival = time.Unix(arrival, 0).UTC()
		v.Departure = time.Unix(departure, 0).UTC()
		visits = append(visits, v)
	}

	return visits, rows.Err()
}

// CountVisits counts visits overlapping the range.
func (r *VisitRepository) CountVisits(start, end time.Time) (int64, error) {
	var total int64
	s, e := start.Unix(), end.Unix()
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM visits WHERE (arrival BETWEEN ? AND ?) OR (departure BETWEEN ? AND ?)",
		s, e, s, e,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count visits: %w", err)
	}
	return total, nil
}

// InsertVisits bulk-inserts visits, silently skipping rows already present
// for the same device and arrival time.
func (r *VisitRepository) InsertVisits(visits []models.Visit) (int64, error) {
	if len(visits) == 0 {
		return 0, nil
	}

	var inserted int64
	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO visits
			(arrival, departure, longitude, latitude, horizontal_accuracy, device_id)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, v := range visits {
			res, err := stmt.Exec(
				v.Arrival.Unix(), v.Departure.Unix(), v.Longitude, v.Latitude,
				v.HorizontalAccuracy, v.DeviceID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert visit: %w", err)
			}
			n, _ := res.RowsAffected()
			inserted += n
		}
		return nil
	})
	return inserted, err
}
