package domain

import "time"

// PricePoint is one observation of the daily price series. A nil Value means
// the backend returned no observation for that day.
type PricePoint struct {
	Date    time.Time // date only, UTC midnight
	Product string
	Value   *float64
}

// SeriesRequest describes one extraction run. End is inclusive; the query
// layer is responsible for widening it to an exclusive upper bound.
type SeriesRequest struct {
	Department string
	Product    string
	Start      time.Time
	End        time.Time
}

// Coverage summarizes the date axis of a parsed series.
type Coverage struct {
	Days  int
	First time.Time
	Last  time.Time
}
