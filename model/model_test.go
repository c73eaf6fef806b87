package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMovie_ReleasedOn(t *testing.T) {
	cases := []struct {
		raw  string
		ok   bool
		want time.Time
	}{
		{"2024-03-01", true, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-01T00:00:00Z", true, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{"", false, time.Time{}},
		{"soon", false, time.Time{}},
		{"03/01/2024", false, time.Time{}},
	}

	for _, tc := range cases {
		got, ok := Movie{ReleaseDate: tc.raw}.ReleasedOn()
		if ok != tc.ok {
			t.Errorf("%q: expected ok=%v, got %v", tc.raw, tc.ok, ok)
			continue
		}
		if ok && !got.Equal(tc.want) {
			t.Errorf("%q: expected %v, got %v", tc.raw, tc.want, got)
		}
	}
}

func TestBooking_FallbackLabels(t *testing.T) {
	var b Booking
	if b.MovieTitle() != "Unknown Movie" {
		t.Fatalf("unexpected movie label %q", b.MovieTitle())
	}
	if b.TheaterName() != "Unknown Theater" {
		t.Fatalf("unexpected theater label %q", b.TheaterName())
	}

	b.Movie = &Movie{Title: "Dune: Part Two"}
	b.Theater = &Theater{Name: "Grand Cinema"}
	if b.MovieTitle() != "Dune: Part Two" || b.TheaterName() != "Grand Cinema" {
		t.Fatalf("populated labels wrong: %q %q", b.MovieTitle(), b.TheaterName())
	}
}

func TestBooking_DecodesBackendShape(t *testing.T) {
	payload := `{
		"_id": "b1",
		"bookingId": "AB12CD34",
		"movie": {"_id": "m1", "title": "Dune: Part Two"},
		"theater": {"_id": "t1", "name": "Grand Cinema", "seatPrice": 10},
		"showtime": "14:30",
		"seats": [4, 5],
		"totalPrice": 20
	}`

	var b Booking
	if err := json.Unmarshal([]byte(payload), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.Id != "b1" || b.BookingId != "AB12CD34" {
		t.Fatalf("unexpected ids: %+v", b)
	}
	if b.Theater == nil || b.Theater.SeatPrice != 10 {
		t.Fatalf("theater not embedded: %+v", b.Theater)
	}
	if b.TotalPrice != 20 || len(b.Seats) != 2 {
		t.Fatalf("unexpected totals: %+v", b)
	}
}

func TestUser_IsAdmin(t *testing.T) {
	if (User{Role: "user"}).IsAdmin() {
		t.Fatal("plain user flagged as admin")
	}
	if !(User{Role: "admin"}).IsAdmin() {
		t.Fatal("admin not recognized")
	}
	if (User{}).IsAdmin() {
		t.Fatal("empty role flagged as admin")
	}
}
