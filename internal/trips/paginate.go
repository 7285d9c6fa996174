package trips

import (
	"time"

	"wayfinder/internal/models"
)

// PageRequest describes one page of a range query. Cursor, when set, is
// the time of the last row emitted by the previous page; only rows
// strictly after it are eligible.
type PageRequest struct {
	Start    time.Time
	End      time.Time
	Cursor   *time.Time
	PageSize int
}

// Page is one page of location samples plus resume metadata.
type Page struct {
	Samples []models.LocationSample
	HasMore bool
	// NextCursor is the time of the last emitted sample, set only when
	// more rows remain.
	NextCursor *time.Time
	// TruncatedAt is the visit midtime the page was cut at, when the
	// boundary guard trimmed it.
	TruncatedAt *time.Time
}

// FetchFunc queries the store for rows within the request range, strictly
// after the given instant (nil means from the range start, inclusive),
// ordered by time, up to limit rows.
type FetchFunc func(after *time.Time, limit int) ([]models.LocationSample, error)

// FetchPage runs one stateless pagination step: it fetches page_size+1
// rows to learn whether more remain without a count query, trims the page
// at a trip boundary when midtimes are supplied, and derives the next
// cursor from the last emitted row. Rows the guard trims were never
// emitted, so the next page re-fetches them: no gaps and no duplicates.
//
// A cursor outside the requested range (stale, e.g. from a shrunk range)
// yields an empty exhausted page rather than an error.
func FetchPage(req PageRequest, midtimes []time.Time, fetch FetchFunc) (Page, error) {
	if req.PageSize < 1 {
		req.PageSize = 1
	}
	if req.PageSize > models.MaxPageSize {
		req.PageSize = models.MaxPageSize
	}

	if req.Cursor != nil && (req.Cursor.Before(req.Start) || req.Cursor.After(req.End)) {
		return Page{Samples: nil, HasMore: false}, nil
	}

	rows, err := fetch(req.Cursor, req.PageSize+1)
	if err != nil {
		return Page{}, err
	}

	page := Page{Samples: rows}
	if len(rows) > req.PageSize {
		page.HasMore = true
		page.Samples = rows[:req.PageSize]
	}

	if page.HasMore && len(midtimes) > 0 {
		page.Samples, page.TruncatedAt = TruncateAtTripBoundary(page.Samples, midtimes)
	}

	if page.HasMore && len(page.Samples) > 0 {
		last := page.Samples[len(page.Samples)-1].Time
		page.NextCursor = &last
	}

	return page, nil
}
