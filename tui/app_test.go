package tui

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"cinebook-cli/model"
	"cinebook-cli/service"
)

func newTestModel() *appModel {
	m := New(Options{TotalSeats: 30}).(appModel)
	m.state = stateBrowseMovies
	return &m
}

func signIn(m *appModel, role string) {
	m.user = &model.User{Id: "u1", Name: "Ada", Email: "ada@example.com", Role: role}
}

func setMovies(m *appModel, movies ...model.Movie) {
	m.movies = movies
	m.refreshMovieList()
}

func TestHandleFilterInput_AppendsRunes(t *testing.T) {
	m := newTestModel()
	setMovies(m,
		model.Movie{Id: "m1", Title: "Dune: Part Two"},
		model.Movie{Id: "m2", Title: "The Batman"},
	)

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")}) {
		t.Fatal("expected filter input to be handled")
	}
	if got := m.movieList.FilterValue(); got != "b" {
		t.Fatalf("expected filter value %q, got %q", "b", got)
	}

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}) {
		t.Fatal("expected filter input to be handled")
	}
	if got := m.movieList.FilterValue(); got != "ba" {
		t.Fatalf("expected filter value %q, got %q", "ba", got)
	}
}

func TestHandleFilterInput_Backspace(t *testing.T) {
	m := newTestModel()
	setMovies(m, model.Movie{Id: "m1", Title: "Dune: Part Two"})

	_ = m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	_ = m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyBackspace}) {
		t.Fatal("expected backspace to be handled")
	}
	if got := m.movieList.FilterValue(); got != "d" {
		t.Fatalf("expected filter value %q, got %q", "d", got)
	}
}

// Drives the real startup handshake: the movies reply issued from Init must
// carry the request id the program's stored model is waiting for.
func TestInit_InitialMoviesReachBrowse(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CACHE_HOME", dir)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]model.Movie{{Id: "m1", Title: "Dune: Part Two"}})
	}))
	defer server.Close()

	app := New(Options{Client: service.NewClient(server.Client(), server.URL), TotalSeats: 30})

	batch, ok := app.Init()().(tea.BatchMsg)
	if !ok {
		t.Fatal("expected Init to batch its commands")
	}
	got := app
	for _, cmd := range batch {
		msg := cmd()
		if _, isMovies := msg.(moviesMsg); !isMovies {
			continue
		}
		got, _ = got.Update(msg)
	}

	m, ok := got.(appModel)
	if !ok {
		t.Fatalf("unexpected model type %T", got)
	}
	if m.state != stateBrowseMovies {
		t.Fatalf("movies response was dropped: still in state %d, reqID %q", m.state, m.reqID)
	}
	if len(m.movies) != 1 || m.movies[0].Id != "m1" {
		t.Fatalf("unexpected movies %+v", m.movies)
	}
}

func TestHandleDataMsg_DropsStaleResponses(t *testing.T) {
	m := newTestModel()
	m.reqID = "current"
	setMovies(m, model.Movie{Id: "m1", Title: "Dune: Part Two"})

	next, _, handled := m.handleDataMsg(moviesMsg{
		reqID:  "stale",
		movies: []model.Movie{{Id: "m9", Title: "Old Response"}},
	})
	if !handled {
		t.Fatal("expected stale message to be swallowed")
	}
	if len(next.movies) != 1 || next.movies[0].Id != "m1" {
		t.Fatalf("stale response overwrote state: %+v", next.movies)
	}
}

func TestHandleDataMsg_AppliesMatchingResponse(t *testing.T) {
	m := newTestModel()
	m.state = stateLoadingMovies
	m.reqID = "current"

	next, _, handled := m.handleDataMsg(moviesMsg{
		reqID:  "current",
		movies: []model.Movie{{Id: "m1", Title: "Dune: Part Two"}},
	})
	if !handled {
		t.Fatal("expected message to be handled")
	}
	if next.state != stateBrowseMovies {
		t.Fatalf("unexpected state %d", next.state)
	}
	if len(next.movies) != 1 {
		t.Fatalf("unexpected movies: %+v", next.movies)
	}
}

func TestSeatSelection_CursorAndToggle(t *testing.T) {
	m := newTestModel()
	m.theater = model.Theater{Id: "t1", Name: "Grand Cinema", SeatPrice: 10}
	m.showtime = "14:30"
	m.startSeatSelection([]int{2})

	if m.state != stateSelectSeats || m.seatCursor != 1 {
		t.Fatalf("unexpected start state %d cursor %d", m.state, m.seatCursor)
	}

	next, _, handled := m.handleSeatKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if !handled || next.seatCursor != 2 {
		t.Fatalf("expected cursor 2, got %d", next.seatCursor)
	}

	// Seat 2 is booked; toggling must warn and select nothing.
	next, _, _ = next.handleSeatKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if next.seatNotice == "" {
		t.Fatal("expected a booked-seat notice")
	}
	if len(next.selection.Seats()) != 0 {
		t.Fatalf("booked seat was selected: %+v", next.selection.Seats())
	}

	next, _, _ = next.handleSeatKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if next.seatCursor != 10 {
		t.Fatalf("expected cursor 10 after row down, got %d", next.seatCursor)
	}
	next, _, _ = next.handleSeatKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if got := next.selection.Seats(); len(got) != 1 || got[0] != 10 {
		t.Fatalf("expected seat 10 selected, got %+v", got)
	}
}

func TestSeatSelection_CursorClampsAtBounds(t *testing.T) {
	m := newTestModel()
	m.theater = model.Theater{Id: "t1", SeatPrice: 10}
	m.showtime = "14:30"
	m.startSeatSelection(nil)

	next, _, _ := m.handleSeatKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	if next.seatCursor != 1 {
		t.Fatalf("cursor moved below 1: %d", next.seatCursor)
	}

	next.seatCursor = 30
	next, _, _ = next.handleSeatKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if next.seatCursor != 30 {
		t.Fatalf("cursor moved past the last seat: %d", next.seatCursor)
	}
}

func TestProceedToPayment_RequiresASeat(t *testing.T) {
	m := newTestModel()
	m.movie = model.Movie{Id: "m1", Title: "Dune: Part Two"}
	m.theater = model.Theater{Id: "t1", SeatPrice: 10}
	m.showtime = "14:30"
	m.startSeatSelection(nil)

	next, _, _ := m.handleSeatKey(tea.KeyMsg{Type: tea.KeyEnter})
	if next.state != stateSelectSeats {
		t.Fatalf("expected to stay on seats, got state %d", next.state)
	}
	if next.seatNotice == "" {
		t.Fatal("expected an incomplete-selection notice")
	}

	next.selection.Toggle(4)
	next, _, _ = next.handleSeatKey(tea.KeyMsg{Type: tea.KeyEnter})
	if next.state != statePayment {
		t.Fatalf("expected payment, got state %d", next.state)
	}
	if next.draft.TotalPrice.StringFixed(2) != "10.00" {
		t.Fatalf("unexpected draft total %s", next.draft.TotalPrice.StringFixed(2))
	}
}

func setPaymentFields(m *appModel, card, expiry, cvv, holder string) {
	m.payment.inputs[0].SetValue(card)
	m.payment.inputs[1].SetValue(expiry)
	m.payment.inputs[2].SetValue(cvv)
	m.payment.inputs[3].SetValue(holder)
	m.payment.setFocus(len(m.payment.inputs) - 1)
}

func paymentModel() *appModel {
	m := newTestModel()
	m.movie = model.Movie{Id: "m1", Title: "Dune: Part Two"}
	m.theater = model.Theater{Id: "t1", SeatPrice: 10}
	m.showtime = "14:30"
	m.startSeatSelection(nil)
	m.selection.Toggle(4)
	m.selection.Toggle(5)
	next, _, _ := m.proceedToPayment()
	return &next
}

func TestSubmitPayment_InvalidCardShowsMessage(t *testing.T) {
	m := paymentModel()
	signIn(m, "")
	setPaymentFields(m, "4111", "12/30", "123", "Ada Lovelace")

	next, cmd := m.submitPayment()
	if cmd != nil {
		t.Fatal("expected no command for invalid input")
	}
	if next.payment.errText != "Please enter a valid 16-digit card number" {
		t.Fatalf("unexpected error text %q", next.payment.errText)
	}
	if next.paying {
		t.Fatal("paying latched on validation failure")
	}
}

func TestSubmitPayment_SignedOutDetoursToLogin(t *testing.T) {
	m := paymentModel()
	setPaymentFields(m, "4111 1111 1111 1111", "12/30", "123", "Ada Lovelace")

	next, _ := m.submitPayment()
	if next.state != stateLogin {
		t.Fatalf("expected login, got state %d", next.state)
	}
	if !next.authReturnSet || next.authReturn != statePayment {
		t.Fatal("expected payment as the auth return state")
	}
	if next.draft.Theater.Id != "t1" {
		t.Fatal("draft was discarded on the login detour")
	}
	if next.payment.value(3) != "Ada Lovelace" {
		t.Fatal("payment fields were discarded on the login detour")
	}
}

func TestSubmitPayment_LatchesWhileInFlight(t *testing.T) {
	m := paymentModel()
	signIn(m, "")
	setPaymentFields(m, "4111 1111 1111 1111", "12/30", "123", "Ada Lovelace")

	next, cmd := m.submitPayment()
	if cmd == nil {
		t.Fatal("expected a booking command")
	}
	if !next.paying || next.idemKey == "" {
		t.Fatalf("expected paying latch and idempotency key, got paying=%v key=%q", next.paying, next.idemKey)
	}

	again, cmd := next.submitPayment()
	if cmd != nil {
		t.Fatal("second submit while paying must be a no-op")
	}
	if again.idemKey != next.idemKey {
		t.Fatal("idempotency key changed while in flight")
	}
}

func TestApplyBookingCreated_FailureKeepsDraftAndFields(t *testing.T) {
	m := paymentModel()
	signIn(m, "")
	setPaymentFields(m, "4111 1111 1111 1111", "12/30", "123", "Ada Lovelace")
	next, _ := m.submitPayment()
	key := next.idemKey

	next, _, _ = next.applyBookingCreated(bookingCreatedMsg{err: errors.New("boom")})
	if next.state != statePayment || !next.bookingStuck || next.paying {
		t.Fatalf("unexpected failure handling: state=%d stuck=%v paying=%v", next.state, next.bookingStuck, next.paying)
	}
	if next.payment.value(0) == "" {
		t.Fatal("card field was cleared on persistence failure")
	}
	if next.idemKey != key {
		t.Fatal("idempotency key changed on persistence failure")
	}

	retried, cmd := next.retryBooking()
	if cmd == nil || !retried.paying {
		t.Fatal("expected retry to re-post the draft")
	}
	if retried.idemKey != key {
		t.Fatal("retry must reuse the original idempotency key")
	}
}

func TestApplyBookingCreated_SuccessClearsTransientState(t *testing.T) {
	m := paymentModel()
	signIn(m, "")
	setPaymentFields(m, "4111 1111 1111 1111", "12/30", "123", "Ada Lovelace")
	next, _ := m.submitPayment()

	next, _, _ = next.applyBookingCreated(bookingCreatedMsg{
		booking: model.Booking{Id: "b1", BookingId: "AB12CD34"},
	})
	if next.state != stateConfirmation {
		t.Fatalf("expected confirmation, got state %d", next.state)
	}
	if next.confirmation.Reference != "AB12CD34" {
		t.Fatalf("unexpected reference %q", next.confirmation.Reference)
	}
	if next.payment.value(0) != "" || next.idemKey != "" || next.bookingStuck {
		t.Fatal("transient payment state survived confirmation")
	}
	if next.confirmation.TotalPrice.StringFixed(2) != "20.00" {
		t.Fatalf("unexpected total %s", next.confirmation.TotalPrice.StringFixed(2))
	}
}

func TestGoBack_FromPaymentDiscardsDraft(t *testing.T) {
	m := paymentModel()
	setPaymentFields(m, "4111 1111 1111 1111", "12/30", "123", "Ada Lovelace")
	m.idemKey = "key"

	next, _ := m.goBack()
	if next.state != stateSelectSeats {
		t.Fatalf("expected seats, got state %d", next.state)
	}
	if next.draft.Theater.Id != "" || next.idemKey != "" {
		t.Fatal("draft survived leaving payment")
	}
	if next.payment.value(0) != "" {
		t.Fatal("payment fields survived leaving payment")
	}
}

func TestGoBack_FromPaymentIsLatchedWhileInFlight(t *testing.T) {
	m := paymentModel()
	m.paying = true

	next, _ := m.goBack()
	if next.state != statePayment {
		t.Fatalf("escape during an in-flight payment must not leave, got state %d", next.state)
	}
}

func TestOpenBookings_SignedOutGoesToLogin(t *testing.T) {
	m := newTestModel()

	next, _, _ := m.openBookings()
	if next.state != stateLogin {
		t.Fatalf("expected login, got state %d", next.state)
	}
	if next.authReturn != stateLoadingBookings {
		t.Fatal("expected bookings as the auth return")
	}
}

func TestOpenAdminTheaters_RequiresAdminRole(t *testing.T) {
	m := newTestModel()
	signIn(m, "")

	next, cmd, _ := m.openAdminTheaters()
	if cmd != nil || next.state != stateBrowseMovies {
		t.Fatal("non-admin must stay on browse")
	}
	if next.notice == "" {
		t.Fatal("expected an access notice")
	}

	signIn(m, "admin")
	next, cmd, _ = m.openAdminTheaters()
	if cmd == nil || next.state != stateLoadingTheaters {
		t.Fatalf("expected theater fetch for admin, got state %d", next.state)
	}
}

// An admin browsing theater management and then booking a movie must land
// on the booking flow's theater picker, not back on the management screen.
func TestTheatersMsg_BookingFlowAfterAdminVisit(t *testing.T) {
	m := newTestModel()
	signIn(m, "admin")
	theaters := []model.Theater{{Id: "t1", Name: "Grand Cinema", Showtimes: []string{"14:30"}, SeatPrice: 10}}

	next, _, _ := m.openAdminTheaters()
	next, _, _ = next.handleDataMsg(theatersMsg{reqID: next.reqID, theaters: theaters, forAdmin: true})
	if next.state != stateAdminTheaters {
		t.Fatalf("expected the management screen, got state %d", next.state)
	}

	next, _ = next.goBack()
	if next.state != stateBrowseMovies {
		t.Fatalf("expected browse, got state %d", next.state)
	}

	next.movie = model.Movie{Id: "m1", Title: "Dune: Part Two"}
	next.state = stateMovieDetails
	next, _, _ = next.handleEnter()
	if next.state != stateLoadingTheaters {
		t.Fatalf("expected the theater fetch, got state %d", next.state)
	}

	next, _, _ = next.handleDataMsg(theatersMsg{reqID: next.reqID, theaters: theaters})
	if next.state != stateSelectTheater {
		t.Fatalf("booking flow rerouted to state %d", next.state)
	}
}

func TestHandleBookingsKey_CancelRequiresConfirmation(t *testing.T) {
	m := newTestModel()
	signIn(m, "")
	m.state = stateMyBookings
	m.bookings = []model.Booking{{Id: "b1", Showtime: "14:30", Seats: []int{4}}}
	m.bookingList.SetItems(buildBookingItems(m.bookings))

	next, _, handled := m.handleBookingsKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if !handled || next.state != stateConfirmCancel {
		t.Fatalf("expected cancel confirmation, got state %d", next.state)
	}
	if next.cancelTarget.Id != "b1" {
		t.Fatalf("unexpected cancel target %+v", next.cancelTarget)
	}

	kept, _, _ := next.handleBookingsKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if kept.state != stateMyBookings {
		t.Fatalf("expected to keep the booking, got state %d", kept.state)
	}

	confirmed, cmd, _ := next.handleBookingsKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if cmd == nil || !confirmed.cancelInFlight {
		t.Fatal("expected a cancel command with the in-flight latch set")
	}
}

func TestResumeAfterAuth_NonAdminCannotReachReports(t *testing.T) {
	m := newTestModel()
	m.openLogin(stateAdminReports)

	next, _, _ := m.applyLogin(loginMsg{user: model.User{Id: "u1", Name: "Ada"}})
	if next.state != stateBrowseMovies {
		t.Fatalf("expected browse for non-admin, got state %d", next.state)
	}
	if next.notice != "Admin access required" {
		t.Fatalf("unexpected notice %q", next.notice)
	}
}

func TestApplyLogin_ResumesPayment(t *testing.T) {
	m := paymentModel()
	setPaymentFields(m, "4111 1111 1111 1111", "12/30", "123", "Ada Lovelace")
	m.openLogin(statePayment)

	next, cmd, _ := m.applyLogin(loginMsg{user: model.User{Id: "u1", Name: "Ada"}})
	if cmd != nil {
		t.Fatal("resuming payment needs no fetch")
	}
	if next.state != statePayment {
		t.Fatalf("expected payment, got state %d", next.state)
	}
	if next.payment.value(0) == "" {
		t.Fatal("payment fields lost across login")
	}
	if next.user == nil || next.user.Id != "u1" {
		t.Fatal("user not applied")
	}
}
