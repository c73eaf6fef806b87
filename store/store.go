// Package store keeps the client's local state as JSON files: the current
// user session, short-lived catalog caches, and recent-movie history.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cinebook-cli/model"
)

const (
	movieCacheTTL   = 10 * time.Minute
	theaterCacheTTL = 30 * time.Minute
	maxRecentMovies = 8

	appDirName = "cinebook-cli"
)

type cacheEnvelope[T any] struct {
	UpdatedAt time.Time `json:"updated_at"`
	Data      T         `json:"data"`
}

// sessionRecord is the on-disk current-user record. Set on login, cleared
// on logout, read by every protected screen at startup.
type sessionRecord struct {
	User     model.User `json:"user"`
	SignedIn time.Time  `json:"signed_in"`
}

type RecentMovie struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type movieHistory struct {
	Movies []RecentMovie `json:"movies"`
}

// LoadSession returns the persisted current user, if any.
func LoadSession() (model.User, bool, error) {
	path, err := configPath("session.json")
	if err != nil {
		return model.User{}, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.User{}, false, nil
		}
		return model.User{}, false, err
	}

	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.User{}, false, errors.New("invalid session format")
	}
	if record.User.Id == "" {
		return model.User{}, false, nil
	}
	return record.User, true, nil
}

// SaveSession persists the current user after a successful login.
func SaveSession(user model.User) error {
	if user.Id == "" {
		return errors.New("user id is required")
	}
	path, err := configPath("session.json")
	if err != nil {
		return err
	}
	return writeJSON(path, sessionRecord{User: user, SignedIn: time.Now()})
}

// ClearSession removes the persisted session on logout. A missing file is
// not an error.
func ClearSession() error {
	path, err := configPath("session.json")
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func LoadMovieCache() ([]model.Movie, bool, error) {
	path, err := cachePath("movies.json")
	if err != nil {
		return nil, false, err
	}
	cache, err := loadCache[[]model.Movie](path)
	if err != nil {
		return nil, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= movieCacheTTL, nil
}

func SaveMovieCache(movies []model.Movie) error {
	path, err := cachePath("movies.json")
	if err != nil {
		return err
	}
	return saveCache(path, movies)
}

func LoadTheaterCache() ([]model.Theater, bool, error) {
	path, err := cachePath("theaters.json")
	if err != nil {
		return nil, false, err
	}
	cache, err := loadCache[[]model.Theater](path)
	if err != nil {
		return nil, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= theaterCacheTTL, nil
}

func SaveTheaterCache(theaters []model.Theater) error {
	path, err := cachePath("theaters.json")
	if err != nil {
		return err
	}
	return saveCache(path, theaters)
}

// InvalidateTheaterCache drops the cached schedules after an admin edit.
func InvalidateTheaterCache() error {
	path, err := cachePath("theaters.json")
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func LoadRecentMovies() ([]RecentMovie, error) {
	path, err := configPath("history.json")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var history movieHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.New("invalid movie history format")
	}
	return history.Movies, nil
}

// RememberMovie puts the movie at the head of the history, dropping
// duplicates and anything beyond the bound.
func RememberMovie(movie model.Movie) error {
	history, _ := LoadRecentMovies()
	next := []RecentMovie{{ID: movie.Id, Title: movie.Title}}

	for _, existing := range history {
		if existing.ID == movie.Id && existing.ID != "" {
			continue
		}
		if existing.Title != "" && strings.EqualFold(existing.Title, movie.Title) {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecentMovies {
			break
		}
	}

	path, err := configPath("history.json")
	if err != nil {
		return err
	}
	return writeJSON(path, movieHistory{Movies: next})
}

func loadCache[T any](path string) (cacheEnvelope[T], error) {
	var cache cacheEnvelope[T]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cache, nil
		}
		return cache, err
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		return cache, err
	}
	return cache, nil
}

func saveCache[T any](path string, data T) error {
	return writeJSON(path, cacheEnvelope[T]{
		UpdatedAt: time.Now(),
		Data:      data,
	})
}

func writeJSON(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, name), nil
}

func cachePath(name string) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, name), nil
}
