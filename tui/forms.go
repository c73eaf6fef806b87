package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"cinebook-cli/booking"
	"cinebook-cli/model"
)

// form is the shared chrome for the input screens: a column of labelled
// text inputs with a single focused field and an inline error line.
type form struct {
	labels  []string
	inputs  []textinput.Model
	focus   int
	errText string
}

func newForm(labels []string) form {
	inputs := make([]textinput.Model, len(labels))
	for i := range labels {
		in := textinput.New()
		in.Prompt = "> "
		in.CharLimit = 64
		inputs[i] = in
	}
	f := form{labels: labels, inputs: inputs}
	f.setFocus(0)
	return f
}

func (f *form) setFocus(i int) {
	if len(f.inputs) == 0 {
		return
	}
	if i < 0 {
		i = len(f.inputs) - 1
	}
	if i >= len(f.inputs) {
		i = 0
	}
	f.focus = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *form) next() { f.setFocus(f.focus + 1) }
func (f *form) prev() { f.setFocus(f.focus - 1) }

func (f *form) atLastField() bool {
	return f.focus == len(f.inputs)-1
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

type authMode int

const (
	authLogin authMode = iota
	authRegister
)

type authForm struct {
	form
	mode authMode
}

func newLoginForm() authForm {
	f := authForm{form: newForm([]string{"Email", "Password"}), mode: authLogin}
	f.inputs[1].EchoMode = textinput.EchoPassword
	f.inputs[1].EchoCharacter = '•'
	return f
}

func newRegisterForm() authForm {
	f := authForm{form: newForm([]string{"Name", "Email", "Password"}), mode: authRegister}
	f.inputs[2].EchoMode = textinput.EchoPassword
	f.inputs[2].EchoCharacter = '•'
	return f
}

func (f authForm) credentials() model.Credentials {
	return model.Credentials{Email: f.value(0), Password: f.value(1)}
}

func (f authForm) registration() model.Registration {
	return model.Registration{Name: f.value(0), Email: f.value(1), Password: f.value(2)}
}

type credentialsInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registrationInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

var formValidator = validator.New(validator.WithRequiredStructEnabled())

func firstAuthError(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "Please fill in all fields"
	}
	fe := errs[0]
	switch fe.Field() {
	case "Name":
		return "Please enter your name"
	case "Email":
		return "Please enter a valid email address"
	case "Password":
		if fe.Tag() == "min" {
			return "Password must be at least 6 characters"
		}
		return "Please enter your password"
	}
	return "Please fill in all fields"
}

type paymentForm struct {
	form
}

func newPaymentForm() paymentForm {
	f := paymentForm{form: newForm([]string{"Card Number", "Expiry (MM/YY)", "CVV", "Cardholder Name"})}
	f.inputs[0].Placeholder = "1234 5678 9012 3456"
	f.inputs[0].CharLimit = 19
	f.inputs[1].Placeholder = "MM/YY"
	f.inputs[1].CharLimit = 5
	f.inputs[2].Placeholder = "123"
	f.inputs[2].CharLimit = 4
	f.inputs[2].EchoMode = textinput.EchoPassword
	f.inputs[2].EchoCharacter = '•'
	f.inputs[3].Placeholder = "Name on card"
	return f
}

// normalize reformats the card and expiry fields after each keystroke the
// way the storefront inputs do.
func (f *paymentForm) normalize() {
	card := booking.FormatCardNumber(f.inputs[0].Value())
	if card != f.inputs[0].Value() {
		f.inputs[0].SetValue(card)
		f.inputs[0].CursorEnd()
	}
	expiry := booking.FormatExpiry(f.inputs[1].Value())
	if expiry != f.inputs[1].Value() {
		f.inputs[1].SetValue(expiry)
		f.inputs[1].CursorEnd()
	}
}

func (f paymentForm) input() booking.PaymentInput {
	return booking.PaymentInput{
		CardNumber: f.value(0),
		ExpiryDate: f.value(1),
		CVV:        f.value(2),
		CardHolder: f.value(3),
	}
}

type profileForm struct {
	form
}

func newProfileForm(user model.User) profileForm {
	f := profileForm{form: newForm([]string{"Name", "Email"})}
	f.inputs[0].SetValue(user.Name)
	f.inputs[1].SetValue(user.Email)
	return f
}

func (f profileForm) profileUpdate() model.ProfileUpdate {
	return model.ProfileUpdate{Name: f.value(0), Email: f.value(1)}
}

type theaterForm struct {
	form
	theaterID string
}

func newTheaterForm(theater model.Theater) theaterForm {
	f := theaterForm{
		form:      newForm([]string{"Name", "Showtimes (comma separated, HH:MM)", "Seat Price"}),
		theaterID: theater.Id,
	}
	f.inputs[1].CharLimit = 128
	f.inputs[0].SetValue(theater.Name)
	if len(theater.Showtimes) > 0 {
		f.inputs[1].SetValue(strings.Join(theater.Showtimes, ", "))
	}
	if theater.SeatPrice > 0 {
		f.inputs[2].SetValue(strconv.FormatFloat(theater.SeatPrice, 'f', -1, 64))
	}
	return f
}

func (f theaterForm) theater() (model.Theater, string) {
	name := f.value(0)
	if name == "" {
		return model.Theater{}, "Please enter a theater name"
	}

	var showtimes []string
	for _, raw := range strings.Split(f.value(1), ",") {
		st := strings.TrimSpace(raw)
		if st == "" {
			continue
		}
		if !validShowtime(st) {
			return model.Theater{}, "Showtimes must use 24-hour HH:MM format"
		}
		showtimes = append(showtimes, st)
	}
	if len(showtimes) == 0 {
		return model.Theater{}, "Please enter at least one showtime"
	}

	price, err := decimal.NewFromString(f.value(2))
	if err != nil || price.LessThanOrEqual(decimal.Zero) {
		return model.Theater{}, "Seat price must be a positive amount"
	}

	return model.Theater{
		Id:        f.theaterID,
		Name:      name,
		Showtimes: showtimes,
		SeatPrice: price.Round(2).InexactFloat64(),
	}, ""
}

func validShowtime(value string) bool {
	parts := strings.Split(value, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return false
	}
	return true
}

func (m appModel) formActive() bool {
	switch m.state {
	case stateLogin, stateRegister, statePayment, stateProfile, stateTheaterForm:
		return true
	}
	return false
}

// updateForm routes keys to whichever form is on screen. Tab and shift+tab
// move between fields, enter advances or submits, esc leaves the screen.
func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		next, cmd := m.goBack()
		return next, cmd
	}

	switch m.state {
	case stateLogin:
		return m.updateLoginForm(msg)
	case stateRegister:
		return m.updateRegisterForm(msg)
	case statePayment:
		return m.updatePaymentForm(msg)
	case stateProfile:
		return m.updateProfileForm(msg)
	case stateTheaterForm:
		return m.updateTheaterForm(msg)
	}
	return m, nil
}

func (m appModel) updateLoginForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.login.next()
		return m, nil
	case "shift+tab", "up":
		m.login.prev()
		return m, nil
	case "ctrl+n":
		m.register = newRegisterForm()
		m.state = stateRegister
		return m, nil
	case "enter":
		if !m.login.atLastField() {
			m.login.next()
			return m, nil
		}
		if m.saving {
			return m, nil
		}
		creds := m.login.credentials()
		if err := formValidator.Struct(credentialsInput(creds)); err != nil {
			m.login.errText = firstAuthError(err)
			return m, nil
		}
		m.login.errText = ""
		m.saving = true
		return m, tea.Batch(m.loginCmd(creds), m.spinner.Tick)
	}
	cmd := m.login.update(msg)
	return m, cmd
}

func (m appModel) updateRegisterForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.register.next()
		return m, nil
	case "shift+tab", "up":
		m.register.prev()
		return m, nil
	case "ctrl+n":
		m.login = newLoginForm()
		m.state = stateLogin
		return m, nil
	case "enter":
		if !m.register.atLastField() {
			m.register.next()
			return m, nil
		}
		if m.saving {
			return m, nil
		}
		reg := m.register.registration()
		if err := formValidator.Struct(registrationInput(reg)); err != nil {
			m.register.errText = firstAuthError(err)
			return m, nil
		}
		m.register.errText = ""
		m.saving = true
		return m, tea.Batch(m.registerCmd(reg), m.spinner.Tick)
	}
	cmd := m.register.update(msg)
	return m, cmd
}

func (m appModel) updatePaymentForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.bookingStuck {
		switch msg.String() {
		case "r", "enter":
			next, cmd := m.retryBooking()
			return next, cmd
		}
	}

	switch msg.String() {
	case "tab", "down":
		m.payment.next()
		return m, nil
	case "shift+tab", "up":
		m.payment.prev()
		return m, nil
	case "enter":
		if !m.payment.atLastField() {
			m.payment.next()
			return m, nil
		}
		next, cmd := m.submitPayment()
		return next, cmd
	}
	cmd := m.payment.update(msg)
	m.payment.normalize()
	return m, cmd
}

func (m appModel) updateProfileForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.profile.next()
		return m, nil
	case "shift+tab", "up":
		m.profile.prev()
		return m, nil
	case "enter":
		if !m.profile.atLastField() {
			m.profile.next()
			return m, nil
		}
		if m.saving || m.user == nil {
			return m, nil
		}
		update := m.profile.profileUpdate()
		if update.Name == "" {
			m.profile.errText = "Please enter your name"
			return m, nil
		}
		if err := formValidator.Var(update.Email, "required,email"); err != nil {
			m.profile.errText = "Please enter a valid email address"
			return m, nil
		}
		m.profile.errText = ""
		m.saving = true
		return m, tea.Batch(m.saveProfileCmd(m.user.Id, update), m.spinner.Tick)
	}
	cmd := m.profile.update(msg)
	return m, cmd
}

func (m appModel) updateTheaterForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.theaterForm.next()
		return m, nil
	case "shift+tab", "up":
		m.theaterForm.prev()
		return m, nil
	case "enter":
		if !m.theaterForm.atLastField() {
			m.theaterForm.next()
			return m, nil
		}
		if m.saving {
			return m, nil
		}
		theater, errText := m.theaterForm.theater()
		if errText != "" {
			m.theaterForm.errText = errText
			return m, nil
		}
		m.theaterForm.errText = ""
		m.saving = true
		if theater.Id != "" {
			return m, tea.Batch(m.updateTheaterCmd(theater.Id, theater), m.spinner.Tick)
		}
		return m, tea.Batch(m.createTheaterCmd(theater), m.spinner.Tick)
	}
	cmd := m.theaterForm.update(msg)
	return m, cmd
}

func (m appModel) applyLogin(msg loginMsg) (appModel, tea.Cmd, bool) {
	m.saving = false
	if msg.err != nil {
		m.login.errText = readableError(msg.err)
		return m, nil, true
	}

	user := msg.user
	m.user = &user
	m.notice = "Signed in as " + user.Name
	return m.resumeAfterAuth()
}

func (m appModel) applyRegister(msg registerMsg) (appModel, tea.Cmd, bool) {
	m.saving = false
	if msg.err != nil {
		m.register.errText = readableError(msg.err)
		return m, nil, true
	}

	user := msg.user
	m.user = &user
	m.notice = "Welcome, " + user.Name
	return m.resumeAfterAuth()
}

// resumeAfterAuth returns to the screen that triggered the sign-in and
// restarts whatever fetch that screen needs.
func (m appModel) resumeAfterAuth() (appModel, tea.Cmd, bool) {
	target := m.authReturnOr(stateBrowseMovies)
	m.authReturnSet = false

	switch target {
	case stateLoadingBookings:
		m.state = stateLoadingBookings
		return m, tea.Batch(m.fetchBookingsCmd(), m.spinner.Tick), true
	case stateLoadingProfile:
		m.state = stateLoadingProfile
		return m, tea.Batch(m.fetchProfileCmd(m.user.Id), m.spinner.Tick), true
	case stateAdminTheaters:
		return m.openAdminTheaters()
	case stateAdminReports:
		return m.openAdminReports()
	case statePayment:
		m.state = statePayment
		return m, nil, true
	default:
		m.state = stateBrowseMovies
		return m, nil, true
	}
}
