package model

import "time"

// BookingRequest is the payload for POST /bookings. Identifiers only; the
// backend resolves and embeds the full movie/theater records in its reply.
type BookingRequest struct {
	Movie      string  `json:"movie"`
	Theater    string  `json:"theater"`
	Showtime   string  `json:"showtime"`
	Seats      []int   `json:"seats"`
	User       string  `json:"user"`
	TotalPrice float64 `json:"totalPrice"`
}

type Booking struct {
	Id         string    `json:"_id"`
	BookingId  string    `json:"bookingId,omitempty"`
	Movie      *Movie    `json:"movie,omitempty"`
	Theater    *Theater  `json:"theater,omitempty"`
	Showtime   string    `json:"showtime"`
	Seats      []int     `json:"seats"`
	TotalPrice float64   `json:"totalPrice"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

func (b Booking) MovieTitle() string {
	if b.Movie == nil {
		return "Unknown Movie"
	}
	return b.Movie.Title
}

func (b Booking) TheaterName() string {
	if b.Theater == nil {
		return "Unknown Theater"
	}
	return b.Theater.Name
}
