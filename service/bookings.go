package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"cinebook-cli/model"
)

// CreateBooking persists a booking. The backend is the single source of
// truth for "booking exists": callers treat any local confirmation as
// provisional until this returns. idempotencyKey must be reused verbatim on
// a retry of the same draft so the backend can de-duplicate.
func (c *Client) CreateBooking(ctx context.Context, req model.BookingRequest, idempotencyKey string) (model.Booking, error) {
	if req.Movie == "" || req.Theater == "" || req.Showtime == "" {
		return model.Booking{}, errors.New("movie, theater and showtime are required")
	}
	if len(req.Seats) == 0 {
		return model.Booking{}, errors.New("at least one seat is required")
	}
	endpoint := fmt.Sprintf("%s/bookings", c.baseURL)

	headers := map[string]string{}
	if strings.TrimSpace(idempotencyKey) != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}

	var booking model.Booking
	if err := c.sendJSON(ctx, http.MethodPost, endpoint, headers, req, &booking); err != nil {
		return model.Booking{}, err
	}
	return booking, nil
}

// BookingsByUser lists a user's bookings, newest first per the backend.
func (c *Client) BookingsByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("user id is required")
	}
	endpoint := fmt.Sprintf("%s/bookings/user/%s", c.baseURL, url.PathEscape(userID))

	var bookings []model.Booking
	if err := c.getJSON(ctx, endpoint, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CancelBooking cancels one booking by id.
func (c *Client) CancelBooking(ctx context.Context, bookingID string) error {
	if strings.TrimSpace(bookingID) == "" {
		return errors.New("booking id is required")
	}
	endpoint := fmt.Sprintf("%s/bookings/%s", c.baseURL, url.PathEscape(bookingID))
	return c.sendJSON(ctx, http.MethodDelete, endpoint, nil, nil, nil)
}
