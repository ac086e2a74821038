package contracts

import "time"

// Candle is one bar of price history.
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// CalendarEvent is one normalized economic-calendar entry. Upstream sources
// disagree on field names ("importance" vs "impact", "title" vs "event");
// the calendar provider maps every accepted shape into this one.
type CalendarEvent struct {
	Date       string `json:"date"` // YYYY-MM-DD
	Time       string `json:"time"` // HH:MM, may be empty
	Country    string `json:"country"`
	Event      string `json:"event"`
	Importance string `json:"importance"` // low, medium, high
	Actual     string `json:"actual"`
	Forecast   string `json:"forecast"`
	Previous   string `json:"previous"`
}
