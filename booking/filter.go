// Package booking holds the storefront's core flow logic: catalog
// filtering, seat selection, draft assembly, payment validation, and
// confirmation formatting. Everything here is pure and UI-free.
package booking

import (
	"sort"
	"strings"
	"time"

	"cinebook-cli/model"
)

// Filter narrows a movie catalog. Zero values mean "no constraint"; active
// constraints are ANDed.
type Filter struct {
	Text        string
	Genre       string
	ReleaseDate time.Time
}

func (f Filter) Active() bool {
	return f.Text != "" || f.Genre != "" || !f.ReleaseDate.IsZero()
}

// FilterMovies applies the filter without mutating or reordering the input.
// With no active constraint the input is returned as-is.
func FilterMovies(movies []model.Movie, f Filter) []model.Movie {
	if !f.Active() {
		return movies
	}

	text := strings.ToLower(strings.TrimSpace(f.Text))
	filtered := make([]model.Movie, 0, len(movies))
	for _, movie := range movies {
		if text != "" && !strings.Contains(strings.ToLower(movie.Title), text) {
			continue
		}
		if f.Genre != "" && !hasGenre(movie, f.Genre) {
			continue
		}
		if !f.ReleaseDate.IsZero() {
			released, ok := movie.ReleasedOn()
			if !ok || !sameDay(released, f.ReleaseDate) {
				continue
			}
		}
		filtered = append(filtered, movie)
	}
	return filtered
}

// Genres returns the unique genre tokens across the catalog, sorted, for
// the filter picker.
func Genres(movies []model.Movie) []string {
	seen := map[string]bool{}
	var genres []string
	for _, movie := range movies {
		for _, token := range genreTokens(movie.Genre) {
			if !seen[token] {
				seen[token] = true
				genres = append(genres, token)
			}
		}
	}
	sort.Strings(genres)
	return genres
}

func hasGenre(movie model.Movie, genre string) bool {
	for _, token := range genreTokens(movie.Genre) {
		if token == genre {
			return true
		}
	}
	return false
}

func genreTokens(genre string) []string {
	parts := strings.Split(genre, ",")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if token := strings.TrimSpace(part); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func sameDay(a time.Time, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
