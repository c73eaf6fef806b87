package booking

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Confirmation is the read-only record shown after the booking call
// succeeded. It trusts the draft's total and never recomputes it.
type Confirmation struct {
	Reference   string
	MovieTitle  string
	TheaterName string
	Showtime    string
	Seats       []int
	TotalPrice  decimal.Decimal
	ConfirmedAt time.Time
}

// Confirm builds the confirmation for a persisted draft. The server-side
// booking id wins as the reference; a locally synthesized one fills in when
// the backend omits it.
func Confirm(d Draft, serverRef string, at time.Time) Confirmation {
	ref := strings.TrimSpace(serverRef)
	if ref == "" {
		ref = NewReference()
	}
	return Confirmation{
		Reference:   ref,
		MovieTitle:  d.Movie.Title,
		TheaterName: d.Theater.Name,
		Showtime:    d.Showtime,
		Seats:       d.Seats,
		TotalPrice:  d.TotalPrice,
		ConfirmedAt: at,
	}
}

// Ticket renders the shareable plain-text ticket used for display, copy,
// and printing.
func (c Confirmation) Ticket() string {
	lines := []string{
		"CineBook Ticket",
		"Reference: #" + c.Reference,
		"Movie:     " + c.MovieTitle,
		"Theater:   " + c.TheaterName,
		"Showtime:  " + FormatShowtime(c.Showtime),
		"Seats:     " + FormatSeats(c.Seats),
		"Total:     " + FormatPrice(c.TotalPrice),
	}
	if !c.ConfirmedAt.IsZero() {
		lines = append(lines, "Booked:    "+c.ConfirmedAt.Format("2006-01-02 15:04"))
	}
	return strings.Join(lines, "\n")
}

// FormatSeats joins seat numbers ascending. Seats are integers, so the sort
// is numeric, never lexicographic. The caller's slice is left untouched;
// backend records arrive in wire order.
func FormatSeats(seats []int) string {
	if len(seats) == 0 {
		return "-"
	}
	ordered := append([]int(nil), seats...)
	sort.Ints(ordered)
	parts := make([]string, len(ordered))
	for i, seat := range ordered {
		parts[i] = strconv.Itoa(seat)
	}
	return strings.Join(parts, ", ")
}

func FormatPrice(price decimal.Decimal) string {
	return "$" + price.StringFixed(2)
}

// FormatShowtime renders a 24-hour "HH:MM" showtime as a 12-hour label.
// Values that are not HH:MM pass through untouched.
func FormatShowtime(showtime string) string {
	parts := strings.SplitN(showtime, ":", 2)
	if len(parts) != 2 {
		return showtime
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return showtime
	}
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%s %s", display, parts[1], suffix)
}
