package model

import "time"

type Movie struct {
	Id          string   `json:"_id"`
	Title       string   `json:"title"`
	Genre       string   `json:"genre"`
	Duration    int      `json:"duration"`
	Description string   `json:"description"`
	Poster      string   `json:"poster"`
	ReleaseDate string   `json:"releaseDate"`
	Rating      float64  `json:"rating,omitempty"`
	Showtimes   []string `json:"showtimes,omitempty"`
}

// ReleasedOn parses the release date, accepting both plain dates and full
// RFC 3339 timestamps as the backend sends either form.
func (m Movie) ReleasedOn() (time.Time, bool) {
	if m.ReleaseDate == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.DateOnly, m.ReleaseDate); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, m.ReleaseDate); err == nil {
		return t, true
	}
	return time.Time{}, false
}
