package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinebook-cli/model"
)

func TestMovies_DecodesCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movies" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"_id": "m1", "title": "Dune: Part Two", "genre": "Sci-Fi, Adventure", "duration": 166}]`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	movies, err := client.Movies(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(movies) != 1 || movies[0].Id != "m1" || movies[0].Duration != 166 {
		t.Fatalf("unexpected movies: %+v", movies)
	}
}

func TestMovieByID_PathAndMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movies/m1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_id": "m1", "title": "Dune: Part Two"}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	movie, err := client.MovieByID(context.Background(), "m1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if movie.Title != "Dune: Part Two" {
		t.Fatalf("unexpected movie: %+v", movie)
	}

	if _, err := client.MovieByID(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank movie id")
	}
}

func TestUpdateTheater_SendsPutWithBody(t *testing.T) {
	var gotMethod string
	var gotBody model.Theater
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		if r.URL.Path != "/theaters/t1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_id": "t1", "name": "Grand Cinema"}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	updated, err := client.UpdateTheater(context.Background(), "t1", model.Theater{
		Name: "Grand Cinema", Showtimes: []string{"10:00"}, SeatPrice: 12.5,
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Fatalf("expected PUT, got %s", gotMethod)
	}
	if gotBody.SeatPrice != 12.5 {
		t.Fatalf("unexpected body: %+v", gotBody)
	}
	if updated.Id != "t1" {
		t.Fatalf("unexpected response: %+v", updated)
	}
}

func TestDeleteTheater_RequiresID(t *testing.T) {
	client := NewClient(nil, "http://unused.invalid")
	if err := client.DeleteTheater(context.Background(), ""); err == nil {
		t.Fatal("expected error for blank theater id")
	}
}
