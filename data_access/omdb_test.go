package data_access

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DRainger/MyMDb/apperrors"
	"github.com/DRainger/MyMDb/models"
)

func TestOMDBSearchPassesParams(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"apikey": q.Get("apikey"),
			"s":      q.Get("s"),
			"type":   q.Get("type"),
			"y":      q.Get("y"),
			"page":   q.Get("page"),
		}
		w.Write([]byte(`{"Search":[{"Title":"Batman Begins","Year":"2005","imdbID":"tt0372784","Type":"movie"}],"totalResults":"1","Response":"True"}`))
	}))
	defer srv.Close()

	client := NewOMDBClient("test-key", srv.URL)
	result, err := client.Search(context.Background(), models.AdvancedSearchParams{
		Query: "batman",
		Type:  "movie",
		Year:  "2005",
		Page:  2,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(result.Search) != 1 || result.Search[0].ImdbID != "tt0372784" {
		t.Fatalf("result = %+v, want single tt0372784", result)
	}

	want := map[string]string{"apikey": "test-key", "s": "batman", "type": "movie", "y": "2005", "page": "2"}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Fatalf("query[%s] = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestOMDBSearchNormalizesNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	}))
	defer srv.Close()

	client := NewOMDBClient("test-key", srv.URL)
	result, err := client.Search(context.Background(), models.AdvancedSearchParams{Query: "zzzzzz"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Response != "True" {
		t.Fatalf("response = %q, want normalized True", result.Response)
	}
	if result.Search == nil || len(result.Search) != 0 {
		t.Fatalf("search = %#v, want empty non-nil slice", result.Search)
	}
	if result.TotalResults != "0" {
		t.Fatalf("totalResults = %q, want 0", result.TotalResults)
	}
}

func TestOMDBSearchMapsAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"Response":"False","Error":"Invalid API key!"}`))
	}))
	defer srv.Close()

	client := NewOMDBClient("bad-key", srv.URL)
	_, err := client.Search(context.Background(), models.AdvancedSearchParams{Query: "batman"})
	if !errors.Is(err, apperrors.ErrUpstreamAuth) {
		t.Fatalf("error = %v, want upstream auth", err)
	}
}

func TestOMDBMissingKeyFailsWithoutRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("provider called with no API key configured")
	}))
	defer srv.Close()

	client := NewOMDBClient("", srv.URL)
	_, err := client.Search(context.Background(), models.AdvancedSearchParams{Query: "batman"})
	if !errors.Is(err, apperrors.ErrUpstreamAuth) {
		t.Fatalf("error = %v, want upstream auth", err)
	}
}

func TestOMDBByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("i"); got != "tt0468569" {
			t.Errorf("i = %q, want tt0468569", got)
		}
		if got := r.URL.Query().Get("plot"); got != "full" {
			t.Errorf("plot = %q, want full", got)
		}
		w.Write([]byte(`{"Title":"The Dark Knight","Year":"2008","imdbID":"tt0468569","Genre":"Action, Crime, Drama","Response":"True"}`))
	}))
	defer srv.Close()

	client := NewOMDBClient("test-key", srv.URL)
	detail, err := client.ByID(context.Background(), "tt0468569", true)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if detail.Title != "The Dark Knight" || detail.Genre != "Action, Crime, Drama" {
		t.Fatalf("detail = %+v", detail)
	}
}

func TestOMDBByIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"Response":"False","Error":"Incorrect IMDb ID."}`))
	}))
	defer srv.Close()

	client := NewOMDBClient("test-key", srv.URL)
	_, err := client.ByID(context.Background(), "tt9999999", false)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestOMDBServerErrors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, apperrors.ErrUpstreamAuth},
		{http.StatusForbidden, apperrors.ErrUpstreamAuth},
		{http.StatusInternalServerError, apperrors.ErrUpstreamUnavailable},
		{http.StatusBadGateway, apperrors.ErrUpstreamUnavailable},
	}
	for _, tc := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
		}))
		client := NewOMDBClient("test-key", srv.URL)
		_, err := client.Search(context.Background(), models.AdvancedSearchParams{Query: "batman"})
		srv.Close()
		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d: error = %v, want %v", tc.status, err, tc.want)
		}
	}
}

func TestOMDBGarbageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	client := NewOMDBClient("test-key", srv.URL)
	_, err := client.Search(context.Background(), models.AdvancedSearchParams{Query: "batman"})
	if !errors.Is(err, apperrors.ErrUpstreamUnavailable) {
		t.Fatalf("error = %v, want upstream unavailable", err)
	}
}
