package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinebook-cli/model"
)

func TestCreateBooking_SendsIdempotencyKeyAndBody(t *testing.T) {
	var gotKey string
	var gotBody model.BookingRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/bookings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotKey = r.Header.Get("Idempotency-Key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_id": "b1", "bookingId": "AB12CD34", "showtime": "14:30"}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	req := model.BookingRequest{
		Movie:      "m1",
		Theater:    "t1",
		Showtime:   "14:30",
		Seats:      []int{4, 5},
		User:       "u1",
		TotalPrice: 20,
	}

	booking, err := client.CreateBooking(context.Background(), req, "key-123")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if gotKey != "key-123" {
		t.Fatalf("idempotency key not sent, got %q", gotKey)
	}
	if gotBody.Movie != "m1" || gotBody.TotalPrice != 20 || len(gotBody.Seats) != 2 {
		t.Fatalf("unexpected body: %+v", gotBody)
	}
	if booking.BookingId != "AB12CD34" {
		t.Fatalf("unexpected booking: %+v", booking)
	}
}

func TestCreateBooking_RejectsIncompleteRequests(t *testing.T) {
	client := NewClient(nil, "http://unused.invalid")

	_, err := client.CreateBooking(context.Background(), model.BookingRequest{Movie: "m1"}, "")
	if err == nil {
		t.Fatal("expected error for missing theater and showtime")
	}

	_, err = client.CreateBooking(context.Background(), model.BookingRequest{
		Movie: "m1", Theater: "t1", Showtime: "14:30",
	}, "")
	if err == nil {
		t.Fatal("expected error for empty seats")
	}
}

func TestBookingsByUser_HitsUserPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bookings/user/u42" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"_id": "b1", "seats": [1, 2]}]`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	bookings, err := client.BookingsByUser(context.Background(), "u42")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(bookings) != 1 || bookings[0].Id != "b1" {
		t.Fatalf("unexpected bookings: %+v", bookings)
	}

	if _, err := client.BookingsByUser(context.Background(), " "); err == nil {
		t.Fatal("expected error for blank user id")
	}
}

func TestCancelBooking_SendsDelete(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	if err := client.CancelBooking(context.Background(), "b7"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/bookings/b7" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
}
