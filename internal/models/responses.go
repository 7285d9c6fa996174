package models

// Pagination describes how to fetch the next page of a trip plot. The
// cursor is the RFC3339 time of the last emitted row; clients pass it
// back verbatim.
type Pagination struct {
	PageSize    int     `json:"page_size"`
	HasMore     bool    `json:"has_more"`
	NextCursor  *string `json:"next_cursor"`
	IsFirstPage bool    `json:"is_first_page"`
}

// TripPlotMeta describes a trip plot query and its result counts.
type TripPlotMeta struct {
	StartDatetime    string  `json:"start_datetime"`
	EndDatetime      string  `json:"end_datetime"`
	TotalLocations   int64   `json:"total_locations"`
	TripLocations    int     `json:"trip_locations"`
	TripLocationsRaw int64   `json:"trip_locations_raw"`
	VisitsCount      int     `json:"visits_count"`
	TripsCount       int     `json:"trips_count"`
	SeparateTrips    bool    `json:"separate_trips"`
	ShowVisits       bool    `json:"show_visits"`
	BucketSize       *string `json:"bucket_size"`
	Downsampled      bool    `json:"downsampled"`
}

// VisitPlotMeta describes a visits query.
type VisitPlotMeta struct {
	StartDatetime string `json:"start_datetime"`
	EndDatetime   string `json:"end_datetime"`
	VisitsCount   int    `json:"visits_count"`
}

// DailyActivity is one day of the activity history.
type DailyActivity struct {
	Date          string `json:"date"` // YYYY-MM-DD
	LocationCount int64  `json:"location_count"`
	VisitCount    int64  `json:"visit_count"`
}

// ActivityHistoryMeta describes the trailing activity window.
type ActivityHistoryMeta struct {
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Days           int    `json:"days"`
	TotalLocations int64  `json:"total_locations"`
	TotalVisits    int64  `json:"total_visits"`
}

// ActivityHistoryResponse is the body of GET /activity/history.
type ActivityHistoryResponse struct {
	Data []DailyActivity     `json:"data"`
	Meta ActivityHistoryMeta `json:"meta"`
}
