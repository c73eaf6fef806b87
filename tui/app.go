// Package tui implements the terminal storefront: a single bubbletea model
// driving the browse → theater → showtime → seats → payment → confirmation
// flow, plus account and admin screens.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"cinebook-cli/booking"
	"cinebook-cli/model"
	"cinebook-cli/service"
)

type appState int

const (
	stateLoadingMovies appState = iota
	stateBrowseMovies
	stateGenreFilter
	stateDateFilter
	stateMovieDetails
	stateLoadingTheaters
	stateSelectTheater
	stateSelectShowtime
	stateLoadingSeats
	stateSelectSeats
	statePayment
	stateConfirmation
	stateLogin
	stateRegister
	stateLoadingBookings
	stateMyBookings
	stateConfirmCancel
	stateLoadingProfile
	stateProfile
	stateAdminTheaters
	stateTheaterForm
	stateLoadingReports
	stateAdminReports
	stateError
)

// Options carries everything main wires in: the API client, the seat pool
// size, and the session loaded from disk (nil when signed out).
type Options struct {
	Client     *service.Client
	TotalSeats int
	User       *model.User
}

type appModel struct {
	client     *service.Client
	totalSeats int

	state     appState
	lastState appState
	err       error

	width  int
	height int

	user *model.User

	movies   []model.Movie
	theaters []model.Theater
	bookings []model.Booking

	filter booking.Filter

	movieList        list.Model
	theaterList      list.Model
	showtimeList     list.Model
	genreList        list.Model
	dateList         list.Model
	bookingList      list.Model
	adminTheaterList list.Model

	movie    model.Movie
	theater  model.Theater
	showtime string

	selection  *booking.Selection
	seatCursor int
	seatNotice string

	draft        booking.Draft
	payment      paymentForm
	idemKey      string
	paying       bool
	bookingStuck bool

	confirmation booking.Confirmation
	notice       string

	login       authForm
	register    authForm
	profile     profileForm
	theaterForm theaterForm
	saving      bool

	authReturn    appState
	authReturnSet bool

	trends   []model.BookingTrend
	sales    []model.SalesPerformance
	activity []model.UserActivity

	cancelTarget   model.Booking
	cancelInFlight bool

	reqID string

	spinner spinner.Model
}

func New(opts Options) tea.Model {
	client := opts.Client
	if client == nil {
		client = service.NewClient(nil, "")
	}
	totalSeats := opts.TotalSeats
	if totalSeats < 0 {
		totalSeats = 0
	}

	m := appModel{
		client:     client,
		totalSeats: totalSeats,
		state:      stateLoadingMovies,
		user:       opts.User,
		reqID:      uuid.NewString(),
	}

	m.movieList = newList("Now Showing")
	m.theaterList = newList("Select Theater")
	m.showtimeList = newList("Select Showtime")
	m.genreList = newList("Filter by Genre")
	m.dateList = newList("Filter by Release Date")
	m.bookingList = newList("My Bookings")
	m.adminTheaterList = newList("Theater Schedules")

	m.login = newLoginForm()
	m.register = newRegisterForm()
	m.payment = newPaymentForm()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.moviesCmd(m.reqID), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		m.notice = ""
		if m.formActive() {
			return m.updateForm(msg)
		}
		if m.handleFilterInput(msg) {
			return m, nil
		}
		var handled bool
		m, cmd, handled := m.handleKey(msg)
		if handled {
			return m, cmd
		}
		// fallthrough to component update
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() || m.paying || m.saving || m.cancelInFlight {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		if msg.returnStateSet {
			m.lastState = msg.returnState
		} else {
			m.lastState = recoverStateFrom(m.state)
		}
		m.state = stateError
		m.paying = false
		m.saving = false
		m.cancelInFlight = false
		return m, nil

	default:
		if next, cmd, handled := m.handleDataMsg(msg); handled {
			return next, cmd
		}
	}

	var cmd tea.Cmd
	if listPtr := m.activeList(); listPtr != nil {
		*listPtr, cmd = listPtr.Update(msg)
	}
	return m, cmd
}

// handleDataMsg applies fetch/mutation results. Fetch messages carry the
// request id they were issued under; anything stale is dropped so a slow
// response can never overwrite newer state.
func (m appModel) handleDataMsg(msg tea.Msg) (appModel, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case moviesMsg:
		if msg.reqID != m.reqID {
			return m, nil, true
		}
		if msg.err != nil {
			return m, errCmd(msg.err), true
		}
		m.movies = msg.movies
		m.refreshMovieList()
		m.state = stateBrowseMovies
		return m, nil, true

	case movieMsg:
		if msg.reqID != m.reqID {
			return m, nil, true
		}
		// Refresh is best-effort; the cached record stays on any failure.
		if msg.err == nil && msg.movie.Id != "" && m.state == stateMovieDetails {
			m.movie = msg.movie
		}
		return m, nil, true

	case theatersMsg:
		if msg.reqID != m.reqID {
			return m, nil, true
		}
		if msg.err != nil {
			return m, errWithOptionsCmd(msg.err, stateBrowseMovies), true
		}
		m.theaters = msg.theaters
		if msg.forAdmin {
			m.refreshAdminTheaterList()
			m.state = stateAdminTheaters
			return m, nil, true
		}
		m.theaterList.SetItems(buildTheaterItems(msg.theaters))
		m.theaterList.Select(0)
		m.state = stateSelectTheater
		return m, nil, true

	case bookedSeatsMsg:
		if msg.reqID != m.reqID {
			return m, nil, true
		}
		if msg.err != nil {
			return m, errWithOptionsCmd(msg.err, stateSelectShowtime), true
		}
		m.startSeatSelection(msg.seats)
		return m, nil, true

	case bookingCreatedMsg:
		return m.applyBookingCreated(msg)

	case bookingsMsg:
		if msg.reqID != m.reqID {
			return m, nil, true
		}
		if msg.err != nil {
			return m, errWithOptionsCmd(msg.err, stateBrowseMovies), true
		}
		m.bookings = msg.bookings
		m.bookingList.SetItems(buildBookingItems(msg.bookings))
		m.state = stateMyBookings
		return m, nil, true

	case bookingCanceledMsg:
		m.cancelInFlight = false
		if msg.err != nil {
			return m, errWithOptionsCmd(msg.err, stateMyBookings), true
		}
		m.notice = "Booking canceled"
		m.state = stateLoadingBookings
		return m, tea.Batch(m.fetchBookingsCmd(), m.spinner.Tick), true

	case loginMsg:
		return m.applyLogin(msg)

	case registerMsg:
		return m.applyRegister(msg)

	case profileMsg:
		if msg.reqID != m.reqID {
			return m, nil, true
		}
		if msg.err != nil {
			return m, errWithOptionsCmd(msg.err, stateBrowseMovies), true
		}
		m.profile = newProfileForm(msg.user)
		m.state = stateProfile
		return m, nil, true

	case profileSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.profile.errText = readableError(msg.err)
			return m, nil, true
		}
		m.user = &msg.user
		m.profile = newProfileForm(msg.user)
		m.notice = "Profile updated"
		return m, nil, true

	case theaterSavedMsg:
		return m.applyTheaterSaved(msg)

	case reportsMsg:
		if msg.reqID != m.reqID {
			return m, nil, true
		}
		if msg.err != nil {
			return m, errWithOptionsCmd(msg.err, stateBrowseMovies), true
		}
		m.trends = msg.trends
		m.sales = msg.sales
		m.activity = msg.activity
		m.state = stateAdminReports
		return m, nil, true

	case noticeMsg:
		m.notice = msg.text
		return m, nil, true
	}
	return m, nil, false
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "q":
		if m.state == stateBrowseMovies || m.state == stateConfirmation {
			return m, tea.Quit, true
		}
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		next, cmd := m.goBack()
		return next, cmd, true
	case "ctrl+g":
		if m.state == stateBrowseMovies {
			m.genreList.SetItems(buildGenreItems(booking.Genres(m.movies), m.filter.Genre))
			m.state = stateGenreFilter
			return m, nil, true
		}
	case "ctrl+r":
		if m.state == stateBrowseMovies {
			m.dateList.SetItems(buildReleaseDateItems(m.movies, m.filter.ReleaseDate))
			m.state = stateDateFilter
			return m, nil, true
		}
	case "ctrl+x":
		if m.state == stateBrowseMovies && m.filter.Active() {
			m.filter = booking.Filter{}
			m.movieList.ResetFilter()
			m.refreshMovieList()
			return m, nil, true
		}
	case "ctrl+b":
		if m.canBrowseAccount() {
			return m.openBookings()
		}
	case "ctrl+p":
		if m.canBrowseAccount() {
			return m.openProfile()
		}
	case "ctrl+t":
		if m.state == stateBrowseMovies {
			return m.openAdminTheaters()
		}
	case "ctrl+o":
		if m.state == stateBrowseMovies {
			return m.openAdminReports()
		}
	case "ctrl+l":
		if m.user != nil {
			return m.logout()
		}
		m.openLogin(m.state)
		return m, nil, true
	}

	if next, cmd, handled := m.handleSeatKey(msg); handled {
		return next, cmd, true
	}
	if next, cmd, handled := m.handleBookingsKey(msg); handled {
		return next, cmd, true
	}
	if next, cmd, handled := m.handleAdminKey(msg); handled {
		return next, cmd, true
	}
	if next, cmd, handled := m.handleConfirmationKey(msg); handled {
		return next, cmd, true
	}

	if msg.Type == tea.KeyEnter {
		return m.handleEnter()
	}
	return m, nil, false
}

func (m appModel) handleEnter() (appModel, tea.Cmd, bool) {
	switch m.state {
	case stateBrowseMovies:
		item, ok := m.movieList.SelectedItem().(movieItem)
		if !ok {
			return m, nil, true
		}
		m.movie = item.movie
		_ = rememberMovie(m.movie)
		m.state = stateMovieDetails
		return m, m.fetchMovieCmd(m.movie.Id), true

	case stateMovieDetails:
		m.theater = model.Theater{}
		m.showtime = ""
		m.state = stateLoadingTheaters
		return m, tea.Batch(m.fetchTheatersCmd(false), m.spinner.Tick), true

	case stateGenreFilter:
		item, ok := m.genreList.SelectedItem().(genreItem)
		if !ok {
			return m, nil, true
		}
		m.filter.Genre = item.genre
		m.refreshMovieList()
		m.state = stateBrowseMovies
		return m, nil, true

	case stateDateFilter:
		item, ok := m.dateList.SelectedItem().(releaseDateItem)
		if !ok {
			return m, nil, true
		}
		m.filter.ReleaseDate = item.date
		m.refreshMovieList()
		m.state = stateBrowseMovies
		return m, nil, true

	case stateSelectTheater:
		item, ok := m.theaterList.SelectedItem().(theaterItem)
		if !ok {
			return m, nil, true
		}
		// New price basis: any earlier seat picks are void.
		m.theater = item.theater
		m.showtime = ""
		m.selection = nil
		m.showtimeList.Title = fmt.Sprintf("Showtimes • %s", m.theater.Name)
		m.showtimeList.SetItems(buildShowtimeItems(m.theater.Showtimes))
		m.state = stateSelectShowtime
		return m, nil, true

	case stateSelectShowtime:
		item, ok := m.showtimeList.SelectedItem().(showtimeItem)
		if !ok {
			return m, nil, true
		}
		m.showtime = item.showtime
		m.selection = nil
		return m.loadSeats()

	case stateError:
		m.state = m.lastState
		m.err = nil
		return m, nil, true
	}
	return m, nil, false
}

func (m appModel) goBack() (appModel, tea.Cmd) {
	switch m.state {
	case stateBrowseMovies:
		return m, nil
	case stateGenreFilter, stateDateFilter, stateMovieDetails:
		m.state = stateBrowseMovies
	case stateSelectTheater:
		m.state = stateMovieDetails
	case stateSelectShowtime:
		m.state = stateSelectTheater
	case stateSelectSeats:
		m.seatNotice = ""
		m.state = stateSelectShowtime
	case statePayment:
		if m.paying {
			return m, nil
		}
		// Leaving payment discards the draft and every entered field.
		m.payment = newPaymentForm()
		m.bookingStuck = false
		m.draft = booking.Draft{}
		m.idemKey = ""
		m.state = stateSelectSeats
	case stateConfirmation:
		m.state = stateBrowseMovies
	case stateLogin, stateRegister:
		m.state = m.authReturnOr(stateBrowseMovies)
		m.authReturnSet = false
	case stateMyBookings, stateProfile, stateAdminTheaters, stateAdminReports:
		m.state = stateBrowseMovies
	case stateConfirmCancel:
		m.state = stateMyBookings
	case stateTheaterForm:
		m.state = stateAdminTheaters
	case stateError:
		m.state = m.lastState
		m.err = nil
	default:
		return m, nil
	}
	return m, nil
}

func (m appModel) canBrowseAccount() bool {
	return m.state == stateBrowseMovies || m.state == stateConfirmation
}

func (m appModel) openBookings() (appModel, tea.Cmd, bool) {
	if m.user == nil {
		m.openLogin(stateLoadingBookings)
		return m, nil, true
	}
	m.state = stateLoadingBookings
	return m, tea.Batch(m.fetchBookingsCmd(), m.spinner.Tick), true
}

func (m appModel) openProfile() (appModel, tea.Cmd, bool) {
	if m.user == nil {
		m.openLogin(stateLoadingProfile)
		return m, nil, true
	}
	m.state = stateLoadingProfile
	return m, tea.Batch(m.fetchProfileCmd(m.user.Id), m.spinner.Tick), true
}

func (m *appModel) openLogin(returnState appState) {
	m.authReturn = returnState
	m.authReturnSet = true
	m.login = newLoginForm()
	m.state = stateLogin
}

func (m appModel) authReturnOr(fallback appState) appState {
	if m.authReturnSet {
		return m.authReturn
	}
	return fallback
}

func (m appModel) logout() (appModel, tea.Cmd, bool) {
	if err := clearSession(); err != nil {
		return m, errCmd(err), true
	}
	m.user = nil
	m.bookings = nil
	m.notice = "Signed out"
	if m.state != stateBrowseMovies {
		m.state = stateBrowseMovies
	}
	return m, nil, true
}

func (m appModel) isLoadingState() bool {
	switch m.state {
	case stateLoadingMovies, stateLoadingTheaters, stateLoadingSeats,
		stateLoadingBookings, stateLoadingProfile, stateLoadingReports:
		return true
	}
	return false
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateBrowseMovies:
		return &m.movieList
	case stateGenreFilter:
		return &m.genreList
	case stateDateFilter:
		return &m.dateList
	case stateSelectTheater:
		return &m.theaterList
	case stateSelectShowtime:
		return &m.showtimeList
	case stateMyBookings:
		return &m.bookingList
	case stateAdminTheaters:
		return &m.adminTheaterList
	default:
		return nil
	}
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	current := listPtr.FilterValue()
	listPtr.SetFilterText(current + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	value = trimLastRune(value)
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.movieList.SetSize(m.width, h)
	m.theaterList.SetSize(m.width, h)
	m.showtimeList.SetSize(m.width, h)
	m.genreList.SetSize(m.width, h)
	m.dateList.SetSize(m.width, h)
	m.bookingList.SetSize(m.width, h)
	m.adminTheaterList.SetSize(m.width, h)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateLoadingMovies:
		return stateBrowseMovies
	case stateLoadingTheaters:
		return stateMovieDetails
	case stateLoadingSeats:
		return stateSelectShowtime
	case stateLoadingBookings, stateLoadingProfile, stateLoadingReports:
		return stateBrowseMovies
	case stateError:
		return stateBrowseMovies
	default:
		return state
	}
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
