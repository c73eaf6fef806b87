package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cinebook-cli/booking"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("5")).
			Padding(0, 1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("5")).
			Padding(1, 2)

	seatAvailableStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("7"))

	seatSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("2")).
				Bold(true)

	seatBookedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Strikethrough(true)

	seatCursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("5")).
			Bold(true)
)

func (m appModel) View() string {
	var body string

	switch m.state {
	case stateLoadingMovies:
		body = m.loadingView("Loading movies")
	case stateLoadingTheaters:
		body = m.loadingView("Loading theaters")
	case stateLoadingSeats:
		body = m.loadingView("Loading seats")
	case stateLoadingBookings:
		body = m.loadingView("Loading your bookings")
	case stateLoadingProfile:
		body = m.loadingView("Loading your profile")
	case stateLoadingReports:
		body = m.loadingView("Loading reports")

	case stateBrowseMovies:
		body = m.movieList.View() + "\n" + m.browseHints()
	case stateGenreFilter:
		body = m.genreList.View() + "\n" + hint("enter: apply • esc: back")
	case stateDateFilter:
		body = m.dateList.View() + "\n" + hint("enter: apply • esc: back")
	case stateMovieDetails:
		body = m.movieDetailsView()
	case stateSelectTheater:
		body = m.theaterList.View() + "\n" + hint("enter: select theater • esc: back")
	case stateSelectShowtime:
		body = m.showtimeList.View() + "\n" + hint("enter: select showtime • esc: back")
	case stateSelectSeats:
		body = m.seatGridView()
	case statePayment:
		body = m.paymentView()
	case stateConfirmation:
		body = m.confirmationView()

	case stateLogin:
		body = m.authView("Sign In", m.login, "enter: sign in • ctrl+n: create an account • esc: back")
	case stateRegister:
		body = m.authView("Create Account", m.register, "enter: register • ctrl+n: sign in instead • esc: back")
	case stateMyBookings:
		body = m.bookingsView()
	case stateConfirmCancel:
		body = m.confirmCancelView()
	case stateProfile:
		body = m.profileView()
	case stateAdminTheaters:
		body = m.adminTheatersView()
	case stateTheaterForm:
		body = m.theaterFormView()
	case stateAdminReports:
		body = m.reportsView()

	case stateError:
		body = m.errorView()
	default:
		body = ""
	}

	return m.headerView() + "\n" + body
}

func (m appModel) headerView() string {
	header := titleStyle.Render("CineBook")
	if m.user != nil {
		who := m.user.Name
		if m.user.IsAdmin() {
			who += " (admin)"
		}
		header += hint("  signed in as " + who)
	} else {
		header += hint("  ctrl+l: sign in")
	}
	if m.notice != "" {
		header += "\n" + noticeStyle.Render(m.notice)
	}
	return header
}

func (m appModel) loadingView(label string) string {
	return fmt.Sprintf("\n %s %s...\n", m.spinner.View(), label)
}

func (m appModel) browseHints() string {
	parts := []string{
		"enter: details",
		"type to search",
		"ctrl+g: genre",
		"ctrl+r: release date",
	}
	if m.filter.Active() {
		parts = append(parts, "ctrl+x: clear filters")
	}
	parts = append(parts, "ctrl+b: bookings", "ctrl+p: profile")
	if m.user != nil && m.user.IsAdmin() {
		parts = append(parts, "ctrl+t: theaters", "ctrl+o: reports")
	}
	parts = append(parts, "q: quit")
	return hint(strings.Join(parts, " • "))
}

func (m appModel) movieDetailsView() string {
	mv := m.movie
	var b strings.Builder
	b.WriteString(labelStyle.Render(mv.Title) + "\n\n")
	if mv.Genre != "" {
		b.WriteString("Genre:    " + mv.Genre + "\n")
	}
	if mv.Duration > 0 {
		b.WriteString(fmt.Sprintf("Duration: %d min\n", mv.Duration))
	}
	if mv.Rating > 0 {
		b.WriteString(fmt.Sprintf("Rating:   %.1f/10\n", mv.Rating))
	}
	if released, ok := mv.ReleasedOn(); ok {
		b.WriteString("Released: " + released.Format("Jan 2, 2006") + "\n")
	}
	if mv.Description != "" {
		b.WriteString("\n" + mv.Description + "\n")
	}
	return boxStyle.Render(b.String()) + "\n" + hint("enter: book tickets • esc: back")
}

// seatGridView draws the 8-wide seat map. The cursor ring wins over the
// seat's own status so it stays visible on booked seats too.
func (m appModel) seatGridView() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Select Seats") + "\n")
	b.WriteString(fmt.Sprintf("%s • %s • %s\n\n",
		m.movie.Title, m.theater.Name, booking.FormatShowtime(m.showtime)))

	if m.selection == nil || m.selection.TotalSeats() == 0 {
		b.WriteString(warnStyle.Render("No seats are configured for this showing.") + "\n")
		return b.String() + "\n" + hint("esc: back")
	}

	total := m.selection.TotalSeats()
	for seat := 1; seat <= total; seat++ {
		cell := fmt.Sprintf(" %2d ", seat)
		style := seatAvailableStyle
		switch m.selection.Status(seat) {
		case booking.SeatSelected:
			style = seatSelectedStyle
		case booking.SeatBooked:
			style = seatBookedStyle
		}
		if seat == m.seatCursor {
			style = seatCursorStyle
		}
		b.WriteString(style.Render(cell))
		if seat%seatsPerRow == 0 || seat == total {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Selected: %s\n", booking.FormatSeats(m.selection.Seats())))
	b.WriteString(fmt.Sprintf("Total:    %s\n", booking.FormatPrice(m.selection.TotalPrice())))
	if m.seatNotice != "" {
		b.WriteString("\n" + warnStyle.Render(m.seatNotice) + "\n")
	}
	return b.String() + "\n" + hint("arrows: move • space: toggle seat • enter: continue • esc: back")
}

func (m appModel) paymentView() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Payment") + "\n\n")
	b.WriteString(fmt.Sprintf("%s • %s • %s\n", m.draft.Movie.Title, m.draft.Theater.Name,
		booking.FormatShowtime(m.draft.Showtime)))
	b.WriteString("Seats: " + booking.FormatSeats(m.draft.Seats) + "\n")
	b.WriteString("Total: " + booking.FormatPrice(m.draft.TotalPrice) + "\n\n")

	b.WriteString(renderFields(m.payment.form))

	if m.paying {
		b.WriteString("\n" + m.spinner.View() + " Processing payment...\n")
	}
	if m.bookingStuck {
		b.WriteString("\n" + errStyle.Render("Payment accepted, but saving the booking failed.") + "\n")
		b.WriteString(warnStyle.Render("Your details are kept. Press enter or r to retry.") + "\n")
	} else if m.payment.errText != "" {
		b.WriteString("\n" + errStyle.Render(m.payment.errText) + "\n")
	}
	return boxStyle.Render(b.String()) + "\n" + hint("tab: next field • enter: pay • esc: cancel payment")
}

func (m appModel) confirmationView() string {
	body := noticeStyle.Render("Booking confirmed!") + "\n\n" + m.confirmation.Ticket()
	return boxStyle.Render(body) + "\n" +
		hint("c: copy ticket • s: save ticket • b: my bookings • n: book another • q: quit")
}

func (m appModel) authView(title string, f authForm, footer string) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(title) + "\n\n")
	b.WriteString(renderFields(f.form))
	if m.saving {
		b.WriteString("\n" + m.spinner.View() + " Please wait...\n")
	} else if f.errText != "" {
		b.WriteString("\n" + errStyle.Render(f.errText) + "\n")
	}
	return boxStyle.Render(b.String()) + "\n" + hint(footer)
}

func (m appModel) bookingsView() string {
	if len(m.bookings) == 0 {
		empty := labelStyle.Render("My Bookings") + "\n\n" +
			"You have no bookings yet.\n"
		return boxStyle.Render(empty) + "\n" + hint("esc: back")
	}
	return m.bookingList.View() + "\n" + hint("x: cancel booking • esc: back")
}

func (m appModel) confirmCancelView() string {
	body := labelStyle.Render("Cancel Booking") + "\n\n" +
		fmt.Sprintf("Cancel your booking for %s at %s?\n", m.cancelTarget.MovieTitle(),
			m.cancelTarget.TheaterName()) +
		"Seats " + booking.FormatSeats(m.cancelTarget.Seats) + " will be released.\n"
	return boxStyle.Render(body) + "\n" + hint("y: cancel it • n: keep it")
}

func (m appModel) profileView() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("My Profile") + "\n\n")
	b.WriteString(renderFields(m.profile.form))
	if m.saving {
		b.WriteString("\n" + m.spinner.View() + " Saving...\n")
	} else if m.profile.errText != "" {
		b.WriteString("\n" + errStyle.Render(m.profile.errText) + "\n")
	}
	return boxStyle.Render(b.String()) + "\n" + hint("tab: next field • enter: save • esc: back")
}

func (m appModel) adminTheatersView() string {
	view := m.adminTheaterList.View()
	if m.saving {
		view += "\n" + m.spinner.View() + " Working..."
	}
	return view + "\n" + hint("a: add • e: edit • d: delete • esc: back")
}

func (m appModel) theaterFormView() string {
	title := "Add Theater"
	if m.theaterForm.theaterID != "" {
		title = "Edit Theater"
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render(title) + "\n\n")
	b.WriteString(renderFields(m.theaterForm.form))
	if m.saving {
		b.WriteString("\n" + m.spinner.View() + " Saving...\n")
	} else if m.theaterForm.errText != "" {
		b.WriteString("\n" + errStyle.Render(m.theaterForm.errText) + "\n")
	}
	return boxStyle.Render(b.String()) + "\n" + hint("tab: next field • enter: save • esc: back")
}

func (m appModel) reportsView() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Reports") + "\n\n")
	b.WriteString(renderReportTables(m.trends, m.sales, m.activity))
	return b.String() + "\n" + hint("esc: back")
}

func (m appModel) errorView() string {
	message := "Something went wrong"
	if m.err != nil {
		message = readableError(m.err)
	}
	body := errStyle.Render("Error") + "\n\n" + message + "\n"
	return boxStyle.Render(body) + "\n" + hint("enter/esc: go back")
}

func renderFields(f form) string {
	var b strings.Builder
	for i := range f.inputs {
		label := f.labels[i]
		if i == f.focus {
			b.WriteString(labelStyle.Render(label) + "\n")
		} else {
			b.WriteString(label + "\n")
		}
		b.WriteString(f.inputs[i].View() + "\n")
		if i < len(f.inputs)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func formatCount(n int) string {
	return strconv.Itoa(n)
}
