package booking

import (
	"sort"

	"github.com/shopspring/decimal"
)

type SeatStatus int

const (
	SeatAvailable SeatStatus = iota
	SeatSelected
	SeatBooked
)

// Selection tracks the user's seat choices for one showing. Seats are plain
// integers 1..totalSeats; the booked set comes from existing reservations
// and is never touched. The selected set can never intersect it.
type Selection struct {
	totalSeats int
	seatPrice  decimal.Decimal
	booked     map[int]bool
	selected   map[int]bool
}

func NewSelection(totalSeats int, seatPrice decimal.Decimal, booked []int) *Selection {
	s := &Selection{
		totalSeats: totalSeats,
		seatPrice:  seatPrice,
		booked:     make(map[int]bool, len(booked)),
		selected:   map[int]bool{},
	}
	for _, seat := range booked {
		if seat >= 1 && seat <= totalSeats {
			s.booked[seat] = true
		}
	}
	return s
}

// Toggle flips the seat's membership in the selected set. Booked and
// out-of-range seats are ignored; the return reports whether anything
// changed.
func (s *Selection) Toggle(seat int) bool {
	if seat < 1 || seat > s.totalSeats || s.booked[seat] {
		return false
	}
	if s.selected[seat] {
		delete(s.selected, seat)
	} else {
		s.selected[seat] = true
	}
	return true
}

// Status derives a seat's display state. Booked wins over selected.
func (s *Selection) Status(seat int) SeatStatus {
	switch {
	case s.booked[seat]:
		return SeatBooked
	case s.selected[seat]:
		return SeatSelected
	default:
		return SeatAvailable
	}
}

// Seats returns the selected seats as a sorted ascending copy.
func (s *Selection) Seats() []int {
	seats := make([]int, 0, len(s.selected))
	for seat := range s.selected {
		seats = append(seats, seat)
	}
	sort.Ints(seats)
	return seats
}

func (s *Selection) Count() int {
	return len(s.selected)
}

func (s *Selection) TotalSeats() int {
	return s.totalSeats
}

func (s *Selection) SeatPrice() decimal.Decimal {
	return s.seatPrice
}

// TotalPrice is count × seat price, rounded to cents.
func (s *Selection) TotalPrice() decimal.Decimal {
	return s.seatPrice.Mul(decimal.NewFromInt(int64(len(s.selected)))).Round(2)
}

// Reset empties the selected set. Callers reset when the theater or
// showtime changes, since the price basis changed with it.
func (s *Selection) Reset() {
	s.selected = map[int]bool{}
}
