package service

import (
	"fmt"
	"time"

	"wayfinder/internal/models"
)

// ActivityDays is the fixed trailing window served by the activity history.
const ActivityDays = 365

// ActivityStore is the aggregation surface the activity service needs.
// Satisfied by repository.ActivityRepository.
type ActivityStore interface {
	DailyActivity(start, end time.Time) ([]models.DailyActivity, error)
}

// ActivityService serves the trailing daily activity history.
type ActivityService struct {
	activity ActivityStore
	now      func() time.Time
}

// NewActivityService creates a new activity service.
func NewActivityService(activity ActivityStore) *ActivityService {
	return &ActivityService{activity: activity, now: time.Now}
}

// GetHistory returns per-day location and visit counts for the trailing
// 365 days. Days without activity are omitted from data.
func (s *ActivityService) GetHistory() (*models.ActivityHistoryResponse, error) {
	end := s.now().UTC()
	start := end.AddDate(0, 0, -(ActivityDays - 1)).Truncate(24 * time.Hour)

	days, err := s.activity.DailyActivity(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily activity: %w", err)
	}

	var totalLocations, totalVisits int64
	for _, d := range days {
		totalLocations += d.LocationCount
		totalVisits += d.VisitCount
	}
	if totalLocations == 0 && totalVisits == 0 {
		return nil, ErrNotFound
	}

	return &models.ActivityHistoryResponse{
		Data: days,
		Meta: models.ActivityHistoryMeta{
			StartDate:      start.Format("2006-01-02"),
			EndDate:        end.Format("2006-01-02"),
			Days:           ActivityDays,
			TotalLocations: totalLocations,
			TotalVisits:    totalVisits,
		},
	}, nil
}
