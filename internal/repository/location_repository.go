package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"wayfinder/internal/database"
	"wayfinder/internal/models"
)

// LocationRepository handles database operations for location samples.
type LocationRepository struct {
	db *sql.DB
}

// NewLocationRepository creates a new location repository.
func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// motionConditions excludes stationary rows and rows without motion data.
// Overland reports motion as a comma-joined tag list with the primary tag
// first, so "stationary" is matched on the leading tag only.
func motionConditions(conditions []string) []string {
	return append(conditions,
		"motion != ''",
		"motion != 'stationary'",
		"motion NOT LIKE 'stationary,%'",
	)
}

// FetchSamples retrieves location samples for a trip query, ordered by
// time (ties broken by insertion order). With BucketSeconds set, rows are
// coarse time-bucketed averages anchored at the range start so every
// bucket time stays inside the queried range.
func (r *LocationRepository) FetchSamples(filter models.LocationFilter) ([]models.LocationSample, error) {
	if filter.BucketSeconds > 0 {
		return r.fetchBucketed(filter)
	}
	return r.fetchRaw(filter)
}

func (r *LocationRepository) fetchRaw(filter models.LocationFilter) ([]models.LocationSample, error) {
	query := `SELECT id, time, longitude, latitude, altitude, horizontal_accuracy,
		vertical_accuracy, speed, motion, battery_level, battery_state, wifi, device_id
		FROM locations`

	var conditions []string
	var args []interface{}

	if filter.After != nil {
		conditions = append(conditions, "time > ?")
		args = append(args, filter.After.Unix())
	} else {
		conditions = append(conditions, "time >= ?")
		args = append(args, filter.Start.Unix())
	}
	conditions = append(conditions, "time <= ?")
	args = append(args, filter.End.Unix())

	if filter.ExcludeIdle {
		conditions = motionConditions(conditions)
	}
	if filter.DesiredAccuracy > 0 {
		conditions = append(conditions, "horizontal_accuracy <= ?")
		args = append(args, filter.DesiredAccuracy)
	}

	query += " WHERE " + strings.Join(conditions, " AND ")
	query += " ORDER BY time ASC, id ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var samples []models.LocationSample
	for rows.Next() {
		var s models.LocationSample
		var unix int64
		var motion string
		err := rows.Scan(
			&s.ID, &unix, &s.Longitude, &s.Latitude, &s.Altitude, &s.HorizontalAccuracy,
			&s.VerticalAccuracy, &s.Speed, &motion, &s.BatteryLevel, &s.BatteryState,
			&s.Wifi, &s.DeviceID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		s.Time = time.Unix(unix, 0).UTC()
		s.Motion = models.ParseMotion(motion)
		samples = append(samples, s)
	}

	return samples, rows.Err()
}

func (r *LocationRepository) fetchBucketed(filter models.LocationFilter) ([]models.LocationSample, error) {
	startUnix := filter.Start.Unix()
	w := filter.BucketSeconds

	query := `SELECT (? + ((time - ?) / ?) * ?) AS bucket_time,
		AVG(longitude), AVG(latitude), AVG(altitude), AVG(speed), MIN(horizontal_accuracy)
		FROM locations`

	args := []interface{}{startUnix, startUnix, w, w}

	conditions := []string{"time >= ?", "time <= ?"}
	args = append(args, startUnix, filter.End.Unix())

	if filter.ExcludeIdle {
		conditions = motionConditions(conditions)
	}
	if filter.DesiredAccuracy > 0 {
		conditions = append(conditions, "horizontal_accuracy <= ?")
		args = append(args, filter.DesiredAccuracy)
	}

	query += " WHERE " + strings.Join(conditions, " AND ")
	query += " GROUP BY bucket_time"
	// The cursor compares against the bucket time, not the raw sample
	// time: a plain WHERE would re-emit a partially consumed bucket.
	if filter.After != nil {
		query += " HAVING bucket_time > ?"
		args = append(args, filter.After.Unix())
	}
	query += " ORDER BY bucket_time ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bucketed locations: %w", err)
	}
	defer rows.Close()

	var samples []models.LocationSample
	for rows.Next() {
		var s models.LocationSample
		var unix int64
		err := rows.Scan(&unix, &s.Longitude, &s.Latitude, &s.Altitude, &s.Speed, &s.HorizontalAccuracy)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bucketed location: %w", err)
		}
		s.Time = time.Unix(unix, 0).UTC()
		samples = append(samples, s)
	}

	return samples, rows.Err()
}

// CountLocations counts all location samples in the range, stationary
// included.
func (r *LocationRepository) CountLocations(start, end time.Time) (int64, error) {
	var total int64
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM locations WHERE time >= ? AND time <= ?",
		start.Unix(), end.Unix(),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count locations: %w", err)
	}
	return total, nil
}

// CountTripLocations counts the trip-eligible (moving, accurate enough)
// samples in the range, before any pagination.
func (r *LocationRepository) CountTripLocations(start, end time.Time, desiredAccuracy int) (int64, error) {
	conditions := motionConditions([]string{"time >= ?", "time <= ?"})
	args := []interface{}{start.Unix(), end.Unix()}
	if desiredAccuracy > 0 {
		conditions = append(conditions, "horizontal_accuracy <= ?")
		args = append(args, desiredAccuracy)
	}

	var total int64
	query := "SELECT COUNT(*) FROM locations WHERE " + strings.Join(conditions, " AND ")
	if err := r.db.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count trip locations: %w", err)
	}
	return total, nil
}

// FetchStationary retrieves the stationary samples in the range, ordered
// by time.
func (r *LocationRepository) FetchStationary(start, end time.Time) ([]models.LocationSample, error) {
	query := `SELECT id, time, longitude, latitude, altitude, horizontal_accuracy,
		vertical_accuracy, speed, motion, battery_level, battery_state, wifi, device_id
		FROM locations
		WHERE time >= ? AND time <= ?
		AND (motion = 'stationary' OR motion LIKE 'stationary,%')
		ORDER BY time ASC, id ASC`

	rows, err := r.db.Query(query, start.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query stationary locations: %w", err)
	}
	defer rows.Close()

	var samples []models.LocationSample
	for rows.Next() {
		var s models.LocationSample
		var unix int64
		var motion string
		err := rows.Scan(
			&s.ID, &unix, &s.Longitude, &s.Latitude, &s.Altitude, &s.HorizontalAccuracy,
			&s.VerticalAccuracy, &s.Speed, &motion, &s.BatteryLevel, &s.BatteryState,
			&s.Wifi, &s.DeviceID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stationary location: %w", err)
		}
		s.Time = time.Unix(unix, 0).UTC()
		s.Motion = models.ParseMotion(motion)
		samples = append(samples, s)
	}

	return samples, rows.Err()
}

// InsertSamples bulk-inserts location samples, silently skipping rows
// already present for the same device and timestamp.
func (r *LocationRepository) InsertSamples(samples []models.LocationSample) (int64, error) {
	if len(samples) == 0 {
		return 0, nil
	}

	var inserted int64
	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO locations
			(time, longitude, latitude, altitude, horizontal_accuracy, vertical_accuracy,
			speed, motion, battery_level, battery_state, wifi, device_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, s := range samples {
			res, err := stmt.Exec(
				s.Time.Unix(), s.Longitude, s.Latitude, s.Altitude, s.HorizontalAccuracy,
				s.VerticalAccuracy, s.Speed, s.MotionString(), s.BatteryLevel,
				s.BatteryState, s.Wifi, s.DeviceID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert location: %w", err)
			}
			n, _ := res.RowsAffected()
			inserted += n
		}
		return nil
	})
	return inserted, err
}
