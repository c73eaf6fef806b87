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

// Movies returns the full catalog of movies currently listed.
func (c *Client) Movies(ctx context.Context) ([]model.Movie, error) {
	endpoint := fmt.Sprintf("%s/movies", c.baseURL)

	var movies []model.Movie
	if err := c.getJSON(ctx, endpoint, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// MovieByID fetches a single movie record.
func (c *Client) MovieByID(ctx context.Context, movieID string) (model.Movie, error) {
	if strings.TrimSpace(movieID) == "" {
		return model.Movie{}, errors.New("movie id is required")
	}
	endpoint := fmt.Sprintf("%s/movies/%s", c.baseURL, url.PathEscape(movieID))

	var movie model.Movie
	if err := c.getJSON(ctx, endpoint, &movie); err != nil {
		return model.Movie{}, err
	}
	if movie.Id == "" {
		return model.Movie{}, errors.New("movie not found")
	}
	return movie, nil
}

// Theaters returns every theater schedule.
func (c *Client) Theaters(ctx context.Context) ([]model.Theater, error) {
	endpoint := fmt.Sprintf("%s/theaters", c.baseURL)

	var theaters []model.Theater
	if err := c.getJSON(ctx, endpoint, &theaters); err != nil {
		return nil, err
	}
	return theaters, nil
}

// CreateTheater adds a theater schedule (admin).
func (c *Client) CreateTheater(ctx context.Context, theater model.Theater) (model.Theater, error) {
	endpoint := fmt.Sprintf("%s/theaters", c.baseURL)

	var created model.Theater
	if err := c.sendJSON(ctx, http.MethodPost, endpoint, nil, theater, &created); err != nil {
		return model.Theater{}, err
	}
	return created, nil
}

// UpdateTheater replaces a theater schedule (admin).
func (c *Client) UpdateTheater(ctx context.Context, theaterID string, theater model.Theater) (model.Theater, error) {
	if strings.TrimSpace(theaterID) == "" {
		return model.Theater{}, errors.New("theater id is required")
	}
	endpoint := fmt.Sprintf("%s/theaters/%s", c.baseURL, url.PathEscape(theaterID))

	var updated model.Theater
	if err := c.sendJSON(ctx, http.MethodPut, endpoint, nil, theater, &updated); err != nil {
		return model.Theater{}, err
	}
	return updated, nil
}

// DeleteTheater removes a theater schedule (admin).
func (c *Client) DeleteTheater(ctx context.Context, theaterID string) error {
	if strings.TrimSpace(theaterID) == "" {
		return errors.New("theater id is required")
	}
	endpoint := fmt.Sprintf("%s/theaters/%s", c.baseURL, url.PathEscape(theaterID))
	return c.sendJSON(ctx, http.MethodDelete, endpoint, nil, nil, nil)
}
