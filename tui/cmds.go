package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"cinebook-cli/model"
	"cinebook-cli/service"
	"cinebook-cli/store"
)

type errMsg struct {
	err            error
	returnState    appState
	returnStateSet bool
}

type moviesMsg struct {
	reqID  string
	movies []model.Movie
	err    error
}

type movieMsg struct {
	reqID string
	movie model.Movie
	err   error
}

type theatersMsg struct {
	reqID    string
	theaters []model.Theater
	forAdmin bool
	err      error
}

type bookedSeatsMsg struct {
	reqID string
	seats []int
	err   error
}

type bookingCreatedMsg struct {
	booking model.Booking
	err     error
}

type bookingsMsg struct {
	reqID    string
	bookings []model.Booking
	err      error
}

type bookingCanceledMsg struct {
	bookingID string
	err       error
}

type loginMsg struct {
	user model.User
	err  error
}

type registerMsg struct {
	user model.User
	err  error
}

type profileMsg struct {
	reqID string
	user  model.User
	err   error
}

type profileSavedMsg struct {
	user model.User
	err  error
}

type theaterSavedMsg struct {
	theater   model.Theater
	deletedID string
	err       error
}

type reportsMsg struct {
	reqID    string
	trends   []model.BookingTrend
	sales    []model.SalesPerformance
	activity []model.UserActivity
	err      error
}

type noticeMsg struct {
	text string
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}

func errWithOptionsCmd(err error, returnState appState) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err, returnState: returnState, returnStateSet: true}
	}
}

// newReqID stamps an outgoing fetch so its reply can be matched against the
// request the model is still waiting for.
func (m *appModel) newReqID() string {
	m.reqID = uuid.NewString()
	return m.reqID
}

// moviesCmd builds the catalog fetch for an already-stamped request id.
// Init calls it with the id New stored: Init runs on a copy of the model,
// so stamping a fresh id there would orphan the reply.
func (m appModel) moviesCmd(reqID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if cached, fresh, err := store.LoadMovieCache(); err == nil && fresh && len(cached) > 0 {
			return moviesMsg{reqID: reqID, movies: cached}
		}
		movies, err := client.Movies(context.Background())
		if err == nil && len(movies) > 0 {
			_ = store.SaveMovieCache(movies)
		}
		return moviesMsg{reqID: reqID, movies: movies, err: err}
	}
}

// fetchMovieCmd refreshes the selected movie's record so the details pane
// shows current rating and description even when the catalog cache is old.
func (m *appModel) fetchMovieCmd(movieID string) tea.Cmd {
	reqID := m.newReqID()
	client := m.client
	return func() tea.Msg {
		movie, err := client.MovieByID(context.Background(), movieID)
		return movieMsg{reqID: reqID, movie: movie, err: err}
	}
}

// fetchTheatersCmd loads the theater list. forAdmin tags the reply for the
// management screen so a booking-flow fetch can never land there.
func (m *appModel) fetchTheatersCmd(forAdmin bool) tea.Cmd {
	reqID := m.newReqID()
	client := m.client
	return func() tea.Msg {
		if cached, fresh, err := store.LoadTheaterCache(); err == nil && fresh && len(cached) > 0 {
			return theatersMsg{reqID: reqID, theaters: cached, forAdmin: forAdmin}
		}
		theaters, err := client.Theaters(context.Background())
		if err == nil && len(theaters) > 0 {
			_ = store.SaveTheaterCache(theaters)
		}
		return theatersMsg{reqID: reqID, theaters: theaters, forAdmin: forAdmin, err: err}
	}
}

// fetchBookedSeatsCmd derives the pre-booked seat set for the chosen
// showing from the user's existing bookings. Signed-out users start from an
// empty set; the backend rejects conflicts authoritatively either way.
func (m *appModel) fetchBookedSeatsCmd(theaterID string, showtime string) tea.Cmd {
	reqID := m.newReqID()
	client := m.client
	var userID string
	if m.user != nil {
		userID = m.user.Id
	}
	return func() tea.Msg {
		if userID == "" {
			return bookedSeatsMsg{reqID: reqID}
		}
		bookings, err := client.BookingsByUser(context.Background(), userID)
		if err != nil {
			if service.IsNotFound(err) {
				return bookedSeatsMsg{reqID: reqID}
			}
			return bookedSeatsMsg{reqID: reqID, err: err}
		}

		var seats []int
		for _, b := range bookings {
			if b.Theater == nil || b.Theater.Id != theaterID || b.Showtime != showtime {
				continue
			}
			seats = append(seats, b.Seats...)
		}
		return bookedSeatsMsg{reqID: reqID, seats: seats}
	}
}

func (m *appModel) createBookingCmd(req model.BookingRequest, idempotencyKey string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		created, err := client.CreateBooking(context.Background(), req, idempotencyKey)
		return bookingCreatedMsg{booking: created, err: err}
	}
}

func (m *appModel) fetchBookingsCmd() tea.Cmd {
	reqID := m.newReqID()
	client := m.client
	if m.user == nil {
		return errCmd(errors.New("sign in to view bookings"))
	}
	userID := m.user.Id
	return func() tea.Msg {
		bookings, err := client.BookingsByUser(context.Background(), userID)
		if err != nil && service.IsNotFound(err) {
			return bookingsMsg{reqID: reqID}
		}
		return bookingsMsg{reqID: reqID, bookings: bookings, err: err}
	}
}

func (m *appModel) cancelBookingCmd(bookingID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.CancelBooking(context.Background(), bookingID)
		return bookingCanceledMsg{bookingID: bookingID, err: err}
	}
}

func (m *appModel) loginCmd(creds model.Credentials) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		user, err := client.Login(context.Background(), creds)
		if err == nil {
			_ = store.SaveSession(user)
		}
		return loginMsg{user: user, err: err}
	}
}

func (m *appModel) registerCmd(reg model.Registration) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		user, err := client.Register(context.Background(), reg)
		if err == nil && user.Id != "" {
			_ = store.SaveSession(user)
		}
		return registerMsg{user: user, err: err}
	}
}

func (m *appModel) fetchProfileCmd(userID string) tea.Cmd {
	reqID := m.newReqID()
	client := m.client
	return func() tea.Msg {
		user, err := client.Profile(context.Background(), userID)
		return profileMsg{reqID: reqID, user: user, err: err}
	}
}

func (m *appModel) saveProfileCmd(userID string, update model.ProfileUpdate) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		user, err := client.UpdateProfile(context.Background(), userID, update)
		if err == nil && user.Id != "" {
			_ = store.SaveSession(user)
		}
		return profileSavedMsg{user: user, err: err}
	}
}

func (m *appModel) createTheaterCmd(theater model.Theater) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		created, err := client.CreateTheater(context.Background(), theater)
		if err == nil {
			_ = store.InvalidateTheaterCache()
		}
		return theaterSavedMsg{theater: created, err: err}
	}
}

func (m *appModel) updateTheaterCmd(theaterID string, theater model.Theater) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		updated, err := client.UpdateTheater(context.Background(), theaterID, theater)
		if err == nil {
			_ = store.InvalidateTheaterCache()
		}
		return theaterSavedMsg{theater: updated, err: err}
	}
}

func (m *appModel) deleteTheaterCmd(theaterID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.DeleteTheater(context.Background(), theaterID)
		if err == nil {
			_ = store.InvalidateTheaterCache()
		}
		return theaterSavedMsg{deletedID: theaterID, err: err}
	}
}

func (m *appModel) fetchReportsCmd() tea.Cmd {
	reqID := m.newReqID()
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		trends, err := client.BookingTrends(ctx)
		if err != nil {
			return reportsMsg{reqID: reqID, err: err}
		}
		sales, err := client.SalesPerformance(ctx)
		if err != nil {
			return reportsMsg{reqID: reqID, err: err}
		}
		activity, err := client.UserActivity(ctx)
		if err != nil {
			return reportsMsg{reqID: reqID, err: err}
		}
		return reportsMsg{reqID: reqID, trends: trends, sales: sales, activity: activity}
	}
}

func rememberMovie(movie model.Movie) error {
	return store.RememberMovie(movie)
}

func clearSession() error {
	return store.ClearSession()
}

func readableError(err error) string {
	var apiErr *service.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
