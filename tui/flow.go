package tui

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cinebook-cli/booking"
	"cinebook-cli/model"
)

// seatsPerRow mirrors the storefront's 8-column seat grid.
const seatsPerRow = 8

func (m appModel) loadSeats() (appModel, tea.Cmd, bool) {
	m.state = stateLoadingSeats
	return m, tea.Batch(m.fetchBookedSeatsCmd(m.theater.Id, m.showtime), m.spinner.Tick), true
}

func (m *appModel) startSeatSelection(booked []int) {
	price := decimal.NewFromFloat(m.theater.SeatPrice)
	m.selection = booking.NewSelection(m.totalSeats, price, booked)
	m.seatCursor = 1
	m.seatNotice = ""
	m.state = stateSelectSeats
}

func (m appModel) handleSeatKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	if m.state != stateSelectSeats || m.selection == nil {
		return m, nil, false
	}

	total := m.selection.TotalSeats()
	moveCursor := func(delta int) {
		if total == 0 {
			return
		}
		next := m.seatCursor + delta
		if next < 1 {
			next = 1
		}
		if next > total {
			next = total
		}
		m.seatCursor = next
	}

	switch msg.String() {
	case "left", "h":
		moveCursor(-1)
		return m, nil, true
	case "right", "l":
		moveCursor(1)
		return m, nil, true
	case "up", "k":
		moveCursor(-seatsPerRow)
		return m, nil, true
	case "down", "j":
		moveCursor(seatsPerRow)
		return m, nil, true
	case " ", "x":
		if total > 0 {
			if !m.selection.Toggle(m.seatCursor) {
				m.seatNotice = "That seat is already booked"
			} else {
				m.seatNotice = ""
			}
		}
		return m, nil, true
	}

	if msg.Type == tea.KeyEnter {
		return m.proceedToPayment()
	}
	return m, nil, false
}

func (m appModel) proceedToPayment() (appModel, tea.Cmd, bool) {
	draft, err := booking.AssembleDraft(m.movie, m.theater, m.showtime, m.selection.Seats())
	if err != nil {
		if errors.Is(err, booking.ErrIncompleteSelection) {
			m.seatNotice = "Please select a theater, showtime, and at least one seat"
			return m, nil, true
		}
		return m, errCmd(err), true
	}

	m.draft = draft
	m.payment = newPaymentForm()
	m.idemKey = ""
	m.bookingStuck = false
	m.state = statePayment
	return m, nil, true
}

// submitPayment runs the validators and, on success, posts the booking.
// The Pay action is latched while a call is in flight.
func (m appModel) submitPayment() (appModel, tea.Cmd) {
	if m.paying {
		return m, nil
	}

	input := m.payment.input()
	if err := booking.ValidatePayment(input); err != nil {
		m.payment.errText = err.Error()
		return m, nil
	}
	m.payment.errText = ""

	if m.user == nil {
		// The draft and the entered fields survive the detour.
		m.openLogin(statePayment)
		return m, nil
	}

	if m.idemKey == "" {
		m.idemKey = uuid.NewString()
	}
	m.paying = true
	return m, tea.Batch(m.createBookingCmd(m.draft.Request(m.user.Id), m.idemKey), m.spinner.Tick)
}

// retryBooking re-posts the same draft under the same idempotency key after
// a persistence failure, without touching the payment fields.
func (m appModel) retryBooking() (appModel, tea.Cmd) {
	if m.paying || !m.bookingStuck || m.user == nil {
		return m, nil
	}
	m.paying = true
	return m, tea.Batch(m.createBookingCmd(m.draft.Request(m.user.Id), m.idemKey), m.spinner.Tick)
}

func (m appModel) applyBookingCreated(msg bookingCreatedMsg) (appModel, tea.Cmd, bool) {
	m.paying = false

	if msg.err != nil {
		// Payment was accepted locally; only persistence failed. Keep the
		// draft and every entered field so retry needs nothing re-typed.
		m.bookingStuck = true
		m.state = statePayment
		return m, nil, true
	}

	ref := msg.booking.BookingId
	if ref == "" {
		ref = msg.booking.Id
	}
	m.confirmation = booking.Confirm(m.draft, ref, time.Now())

	// Card data is transient: cleared the moment it is no longer needed.
	m.payment = newPaymentForm()
	m.idemKey = ""
	m.bookingStuck = false
	m.draft = booking.Draft{}
	m.selection = nil
	m.state = stateConfirmation
	return m, nil, true
}

func (m appModel) handleConfirmationKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	if m.state != stateConfirmation {
		return m, nil, false
	}

	switch msg.String() {
	case "c":
		return m, copyTicketCmd(m.confirmation), true
	case "s":
		return m, saveTicketCmd(m.confirmation), true
	case "n":
		m.state = stateBrowseMovies
		return m, nil, true
	case "b":
		next, cmd, _ := m.openBookings()
		return next, cmd, true
	}
	return m, nil, false
}

func copyTicketCmd(c booking.Confirmation) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(c.Ticket()); err != nil {
			return noticeMsg{text: "Clipboard unavailable"}
		}
		return noticeMsg{text: "Ticket copied to clipboard"}
	}
}

// saveTicketCmd writes the plain-text ticket next to the caches, the
// closest a terminal gets to the storefront's print/download action.
func saveTicketCmd(c booking.Confirmation) tea.Cmd {
	return func() tea.Msg {
		dir, err := os.UserCacheDir()
		if err != nil {
			return noticeMsg{text: "Could not resolve a tickets directory"}
		}
		ticketDir := filepath.Join(dir, "cinebook-cli", "tickets")
		if err := os.MkdirAll(ticketDir, 0o755); err != nil {
			return noticeMsg{text: "Could not create the tickets directory"}
		}
		path := filepath.Join(ticketDir, "ticket_"+c.Reference+".txt")
		if err := os.WriteFile(path, []byte(c.Ticket()+"\n"), 0o600); err != nil {
			return noticeMsg{text: "Could not save the ticket"}
		}
		return noticeMsg{text: "Ticket saved to " + path}
	}
}

func (m appModel) handleBookingsKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch m.state {
	case stateMyBookings:
		switch msg.String() {
		case "x", "d":
			item, ok := m.bookingList.SelectedItem().(bookingItem)
			if !ok {
				return m, nil, true
			}
			m.cancelTarget = item.booking
			m.state = stateConfirmCancel
			return m, nil, true
		}
	case stateConfirmCancel:
		switch msg.String() {
		case "y", "enter":
			if m.cancelInFlight {
				return m, nil, true
			}
			m.cancelInFlight = true
			m.state = stateMyBookings
			return m, tea.Batch(m.cancelBookingCmd(m.cancelTarget.Id), m.spinner.Tick), true
		case "n":
			m.state = stateMyBookings
			return m, nil, true
		}
	}
	return m, nil, false
}

func (m appModel) handleAdminKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	if m.state != stateAdminTheaters {
		return m, nil, false
	}

	switch msg.String() {
	case "a":
		m.theaterForm = newTheaterForm(model.Theater{})
		m.state = stateTheaterForm
		return m, nil, true
	case "e", "enter":
		item, ok := m.adminTheaterList.SelectedItem().(adminTheaterItem)
		if !ok {
			return m, nil, true
		}
		m.theaterForm = newTheaterForm(item.theater)
		m.state = stateTheaterForm
		return m, nil, true
	case "d":
		if m.saving {
			return m, nil, true
		}
		item, ok := m.adminTheaterList.SelectedItem().(adminTheaterItem)
		if !ok {
			return m, nil, true
		}
		m.saving = true
		return m, tea.Batch(m.deleteTheaterCmd(item.theater.Id), m.spinner.Tick), true
	}
	return m, nil, false
}

func (m appModel) openAdminTheaters() (appModel, tea.Cmd, bool) {
	if m.user == nil {
		m.openLogin(stateAdminTheaters)
		return m, nil, true
	}
	if !m.user.IsAdmin() {
		m.notice = "Admin access required"
		m.state = stateBrowseMovies
		return m, nil, true
	}
	m.state = stateLoadingTheaters
	return m, tea.Batch(m.fetchTheatersCmd(true), m.spinner.Tick), true
}

func (m appModel) openAdminReports() (appModel, tea.Cmd, bool) {
	if m.user == nil {
		m.openLogin(stateAdminReports)
		return m, nil, true
	}
	if !m.user.IsAdmin() {
		m.notice = "Admin access required"
		m.state = stateBrowseMovies
		return m, nil, true
	}
	m.state = stateLoadingReports
	return m, tea.Batch(m.fetchReportsCmd(), m.spinner.Tick), true
}

func (m appModel) applyTheaterSaved(msg theaterSavedMsg) (appModel, tea.Cmd, bool) {
	m.saving = false
	if msg.err != nil {
		if m.state == stateTheaterForm {
			m.theaterForm.errText = readableError(msg.err)
			return m, nil, true
		}
		return m, errWithOptionsCmd(msg.err, stateAdminTheaters), true
	}

	if msg.deletedID != "" {
		m.notice = "Theater deleted"
	} else {
		m.notice = "Theater saved"
	}
	m.state = stateLoadingTheaters
	return m, tea.Batch(m.fetchTheatersCmd(true), m.spinner.Tick), true
}
