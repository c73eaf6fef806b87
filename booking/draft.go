package booking

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"cinebook-cli/model"
)

// ErrIncompleteSelection is returned when the user tries to reach payment
// without a theater, showtime, and at least one seat.
var ErrIncompleteSelection = errors.New("select a theater, showtime, and at least one seat")

// Draft is an assembled-but-unconfirmed reservation handed to the payment
// step. It is a value: reselecting seats or showtime produces a new draft
// rather than mutating one a half-submitted payment might still reference.
type Draft struct {
	Movie      model.Movie
	Theater    model.Theater
	Showtime   string
	Seats      []int
	TotalPrice decimal.Decimal
}

func AssembleDraft(movie model.Movie, theater model.Theater, showtime string, seats []int) (Draft, error) {
	if theater.Id == "" || showtime == "" || len(seats) == 0 {
		return Draft{}, ErrIncompleteSelection
	}

	sorted := make([]int, len(seats))
	copy(sorted, seats)
	sort.Ints(sorted)

	total := decimal.NewFromFloat(theater.SeatPrice).
		Mul(decimal.NewFromInt(int64(len(sorted)))).
		Round(2)

	return Draft{
		Movie:      movie,
		Theater:    theater,
		Showtime:   showtime,
		Seats:      sorted,
		TotalPrice: total,
	}, nil
}

// Request converts the draft into the backend's booking payload.
func (d Draft) Request(userID string) model.BookingRequest {
	return model.BookingRequest{
		Movie:      d.Movie.Id,
		Theater:    d.Theater.Id,
		Showtime:   d.Showtime,
		Seats:      d.Seats,
		User:       userID,
		TotalPrice: d.TotalPrice.InexactFloat64(),
	}
}
