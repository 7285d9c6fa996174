package models

import "time"

// MaxPageSize is the default and maximum number of points per page.
const MaxPageSize = 10000

// TripPlotQuery holds the raw query parameters for GET /trips/plot.
// Datetime fields stay strings here; the handler parses them through
// timeutil so malformed values can name the offending parameter.
type TripPlotQuery struct {
	StartDatetime   string `form:"start_datetime"`
	EndDatetime     string `form:"end_datetime"`
	ShowVisits      bool   `form:"show_visits"`
	SeparateTrips   bool   `form:"separate_trips"`
	ColorTrips      bool   `form:"color_trips"`
	ShowStationary  bool   `form:"show_stationary"`
	DesiredAccuracy int    `form:"desired_accuracy"`
	Cursor          string `form:"cursor"`
	PageSize        int    `form:"page_size"`
	NoBucket        bool   `form:"no_bucket"`
}

// VisitPlotQuery holds the raw query parameters for GET /visits/plot.
type VisitPlotQuery struct {
	StartDatetime string `form:"start_datetime"`
	EndDatetime   string `form:"end_datetime"`
	IgnoreHome    bool   `form:"ignore_home"`
}

// TripPlotOptions is the validated, immutable per-request option set passed
// to every component. Built once by the handler; no shared state.
type TripPlotOptions struct {
	Start           time.Time
	End             time.Time
	ShowVisits      bool
	SeparateTrips   bool
	ColorTrips      bool
	ShowStationary  bool
	DesiredAccuracy int
	Cursor          *time.Time
	PageSize        int
	NoBucket        bool
}

// LocationFilter narrows location queries in the repository.
type LocationFilter struct {
	Start           time.Time
	End             time.Time
	After           *time.Time // exclusive lower bound from the cursor
	DesiredAccuracy int        // 0 means no accuracy filtering
	ExcludeIdle     bool       // drop stationary / motionless rows
	BucketSeconds   int64      // >0 enables time-bucket aggregation
	Limit           int        // 0 means no limit
}

// VisitFilter narrows visit queries in the repository.
type VisitFilter struct {
	Start time.Time
	End   time.Time
}
