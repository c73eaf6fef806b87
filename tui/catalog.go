package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/shopspring/decimal"

	"cinebook-cli/booking"
	"cinebook-cli/model"
	"cinebook-cli/store"
)

type movieItem struct {
	movie  model.Movie
	recent bool
}

func (i movieItem) Title() string {
	if i.movie.Rating > 0 {
		return fmt.Sprintf("%s • %.1f★", i.movie.Title, i.movie.Rating)
	}
	return i.movie.Title
}

func (i movieItem) Description() string {
	parts := []string{}
	if i.recent {
		parts = append(parts, "Recent")
	}
	if i.movie.Genre != "" {
		parts = append(parts, i.movie.Genre)
	}
	if i.movie.Duration > 0 {
		parts = append(parts, fmt.Sprintf("%d mins", i.movie.Duration))
	}
	return strings.Join(parts, " • ")
}

func (i movieItem) FilterValue() string {
	return strings.ToLower(strings.Join([]string{i.movie.Title, i.movie.Genre}, " "))
}

// refreshMovieList re-derives the visible catalog from the full movie set
// and the active filter, surfacing recently viewed movies first.
func (m *appModel) refreshMovieList() {
	filtered := booking.FilterMovies(m.movies, m.filter)
	m.movieList.SetItems(buildMovieItems(filtered))
	m.movieList.Title = movieListTitle(m.filter)
	m.movieList.Select(0)
}

func movieListTitle(f booking.Filter) string {
	parts := []string{"Now Showing"}
	if f.Genre != "" {
		parts = append(parts, f.Genre)
	}
	if !f.ReleaseDate.IsZero() {
		parts = append(parts, f.ReleaseDate.Format(time.DateOnly))
	}
	return strings.Join(parts, " • ")
}

func buildMovieItems(movies []model.Movie) []list.Item {
	recents, _ := store.LoadRecentMovies()
	byID := map[string]model.Movie{}
	for _, movie := range movies {
		byID[movie.Id] = movie
	}

	var items []list.Item
	used := map[string]bool{}
	for _, recent := range recents {
		if movie, ok := byID[recent.ID]; ok && recent.ID != "" {
			items = append(items, movieItem{movie: movie, recent: true})
			used[movie.Id] = true
		}
	}

	for _, movie := range movies {
		if !used[movie.Id] {
			items = append(items, movieItem{movie: movie})
		}
	}
	return items
}

type genreItem struct {
	genre  string
	active bool
}

func (i genreItem) Title() string {
	if i.genre == "" {
		return "All Genres"
	}
	return i.genre
}

func (i genreItem) Description() string {
	if i.active {
		return "current filter"
	}
	return ""
}

func (i genreItem) FilterValue() string {
	return strings.ToLower(i.Title())
}

func buildGenreItems(genres []string, active string) []list.Item {
	items := make([]list.Item, 0, len(genres)+1)
	items = append(items, genreItem{genre: "", active: active == ""})
	for _, genre := range genres {
		items = append(items, genreItem{genre: genre, active: genre == active})
	}
	return items
}

type releaseDateItem struct {
	date   time.Time
	active bool
}

func (i releaseDateItem) Title() string {
	if i.date.IsZero() {
		return "Any Release Date"
	}
	return i.date.Format("Mon • 02 Jan 2006")
}

func (i releaseDateItem) Description() string {
	if i.active {
		return "current filter"
	}
	if i.date.IsZero() {
		return ""
	}
	return i.date.Format(time.DateOnly)
}

func (i releaseDateItem) FilterValue() string {
	return strings.ToLower(i.Title())
}

// buildReleaseDateItems offers the distinct release dates present in the
// catalog rather than a free calendar, so every pick matches something.
func buildReleaseDateItems(movies []model.Movie, active time.Time) []list.Item {
	seen := map[string]time.Time{}
	for _, movie := range movies {
		if released, ok := movie.ReleasedOn(); ok {
			day := truncateDate(released)
			seen[day.Format(time.DateOnly)] = day
		}
	}

	dates := make([]time.Time, 0, len(seen))
	for _, day := range seen {
		dates = append(dates, day)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	items := make([]list.Item, 0, len(dates)+1)
	items = append(items, releaseDateItem{active: active.IsZero()})
	for _, day := range dates {
		items = append(items, releaseDateItem{date: day, active: !active.IsZero() && day.Equal(truncateDate(active))})
	}
	return items
}

type theaterItem struct {
	theater model.Theater
}

func (i theaterItem) Title() string {
	price := booking.FormatPrice(decimal.NewFromFloat(i.theater.SeatPrice))
	return fmt.Sprintf("%s (%s/seat)", i.theater.Name, price)
}

func (i theaterItem) Description() string {
	if len(i.theater.Showtimes) == 1 {
		return "1 showtime"
	}
	return fmt.Sprintf("%d showtimes", len(i.theater.Showtimes))
}

func (i theaterItem) FilterValue() string {
	return strings.ToLower(i.theater.Name)
}

func buildTheaterItems(theaters []model.Theater) []list.Item {
	sorted := append([]model.Theater{}, theaters...)
	sort.Slice(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	items := make([]list.Item, 0, len(sorted))
	for _, theater := range sorted {
		items = append(items, theaterItem{theater: theater})
	}
	return items
}

type showtimeItem struct {
	showtime string
}

func (i showtimeItem) Title() string {
	return booking.FormatShowtime(i.showtime)
}

func (i showtimeItem) Description() string {
	return "Available"
}

func (i showtimeItem) FilterValue() string {
	return strings.ToLower(i.showtime + " " + booking.FormatShowtime(i.showtime))
}

func buildShowtimeItems(showtimes []string) []list.Item {
	items := make([]list.Item, 0, len(showtimes))
	for _, showtime := range showtimes {
		items = append(items, showtimeItem{showtime: showtime})
	}
	return items
}

type bookingItem struct {
	booking model.Booking
}

func (i bookingItem) Title() string {
	return fmt.Sprintf("%s • %s", i.booking.MovieTitle(), booking.FormatShowtime(i.booking.Showtime))
}

func (i bookingItem) Description() string {
	return fmt.Sprintf("%s • seats %s • %s",
		i.booking.TheaterName(),
		booking.FormatSeats(i.booking.Seats),
		booking.FormatPrice(decimal.NewFromFloat(i.booking.TotalPrice)),
	)
}

func (i bookingItem) FilterValue() string {
	return strings.ToLower(strings.Join([]string{i.booking.MovieTitle(), i.booking.TheaterName(), i.booking.Showtime}, " "))
}

func buildBookingItems(bookings []model.Booking) []list.Item {
	items := make([]list.Item, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, bookingItem{booking: b})
	}
	return items
}

type adminTheaterItem struct {
	theater model.Theater
}

func (i adminTheaterItem) Title() string {
	return i.theater.Name
}

func (i adminTheaterItem) Description() string {
	price := booking.FormatPrice(decimal.NewFromFloat(i.theater.SeatPrice))
	return fmt.Sprintf("%s/seat • %s", price, strings.Join(i.theater.Showtimes, ", "))
}

func (i adminTheaterItem) FilterValue() string {
	return strings.ToLower(i.theater.Name)
}

func (m *appModel) refreshAdminTheaterList() {
	sorted := append([]model.Theater{}, m.theaters...)
	sort.Slice(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})
	items := make([]list.Item, 0, len(sorted))
	for _, theater := range sorted {
		items = append(items, adminTheaterItem{theater: theater})
	}
	m.adminTheaterList.SetItems(items)
}
