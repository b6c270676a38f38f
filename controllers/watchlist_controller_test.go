package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/DRainger/MyMDb/apperrors"
	"github.com/DRainger/MyMDb/models"
	"github.com/DRainger/MyMDb/services"
)

type fakeWatchlistStore struct {
	items []models.WatchlistItem
}

func (f *fakeWatchlistStore) Add(_ context.Context, userID primitive.ObjectID, movieID string) error {
	for _, item := range f.items {
		if item.UserID == userID && item.MovieID == movieID {
			return apperrors.Conflict("movie already in watchlist")
		}
	}
	f.items = append(f.items, models.WatchlistItem{
		ID:      primitive.NewObjectID(),
		UserID:  userID,
		MovieID: movieID,
		AddedAt: time.Now(),
	})
	return nil
}

func (f *fakeWatchlistStore) Items(_ context.Context, userID primitive.ObjectID) ([]models.WatchlistItem, error) {
	out := []models.WatchlistItem{}
	for _, item := range f.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeWatchlistStore) Remove(_ context.Context, userID primitive.ObjectID, movieID string) error {
	for i, item := range f.items {
		if item.UserID == userID && item.MovieID == movieID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeWatchlistStore) Exists(_ context.Context, userID primitive.ObjectID, movieID string) (bool, error) {
	for _, item := range f.items {
		if item.UserID == userID && item.MovieID == movieID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeWatchlistStore) Count(_ context.Context, userID primitive.ObjectID) (int, error) {
	count := 0
	for _, item := range f.items {
		if item.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeWatchlistStore) Clear(_ context.Context, userID primitive.ObjectID) error {
	kept := f.items[:0]
	for _, item := range f.items {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeWatchlistStore) Replace(ctx context.Context, userID primitive.ObjectID, items []models.WatchlistItem) error {
	if err := f.Clear(ctx, userID); err != nil {
		return err
	}
	for _, item := range items {
		item.UserID = userID
		f.items = append(f.items, item)
	}
	return nil
}

// identityStub plays the role of the auth middleware.
func identityStub(userID primitive.ObjectID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID.Hex())
		c.Next()
	}
}

func watchlistRouter(store *fakeWatchlistStore, userID primitive.ObjectID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewWatchlistController(services.NewWatchlistService(store, zap.NewNop()))

	r := gin.New()
	wl := r.Group("/api/watchlist", identityStub(userID))
	wl.GET("", ctrl.Get)
	wl.POST("", ctrl.Add)
	wl.DELETE("", ctrl.Clear)
	wl.GET("/check/:movieId", ctrl.Check)
	wl.GET("/count", ctrl.Count)
	wl.GET("/paginated", ctrl.Paginated)
	wl.DELETE("/:movieId", ctrl.Remove)
	return r
}

func TestWatchlistAddEndpoint(t *testing.T) {
	userID := primitive.NewObjectID()
	r := watchlistRouter(&fakeWatchlistStore{}, userID)

	w := postJSON(t, r, "/api/watchlist", `{"movieId":"tt0468569"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Message   string                 `json:"message"`
		Watchlist []models.WatchlistItem `json:"watchlist"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Watchlist) != 1 || resp.Watchlist[0].MovieID != "tt0468569" {
		t.Fatalf("watchlist = %+v", resp.Watchlist)
	}
}

func TestWatchlistAddDuplicateEndpoint(t *testing.T) {
	userID := primitive.NewObjectID()
	r := watchlistRouter(&fakeWatchlistStore{}, userID)

	postJSON(t, r, "/api/watchlist", `{"movieId":"tt0468569"}`)
	w := postJSON(t, r, "/api/watchlist", `{"movieId":"tt0468569"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate add status = %d, want 400, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "already in watchlist") {
		t.Fatalf("body = %s, want duplicate message", w.Body.String())
	}
}

func TestWatchlistCheckAndCountEndpoints(t *testing.T) {
	userID := primitive.NewObjectID()
	r := watchlistRouter(&fakeWatchlistStore{}, userID)
	postJSON(t, r, "/api/watchlist", `{"movieId":"tt0468569"}`)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/watchlist/check/tt0468569", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"isInWatchlist":true`) {
		t.Fatalf("check = %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/watchlist/check/tt9999999", nil))
	if !strings.Contains(w.Body.String(), `"isInWatchlist":false`) {
		t.Fatalf("check absent = %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/watchlist/count", nil))
	if !strings.Contains(w.Body.String(), `"count":1`) {
		t.Fatalf("count = %s", w.Body.String())
	}
}

func TestWatchlistRemoveEndpointIdempotent(t *testing.T) {
	userID := primitive.NewObjectID()
	r := watchlistRouter(&fakeWatchlistStore{}, userID)
	postJSON(t, r, "/api/watchlist", `{"movieId":"tt0468569"}`)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/watchlist/tt9999999", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("absent remove status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/watchlist/tt0468569", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"watchlist":[]`) {
		t.Fatalf("remove = %d %s", w.Code, w.Body.String())
	}
}

func TestWatchlistPaginatedEndpoint(t *testing.T) {
	userID := primitive.NewObjectID()
	store := &fakeWatchlistStore{}
	r := watchlistRouter(store, userID)
	for i := 0; i < 25; i++ {
		store.items = append(store.items, models.WatchlistItem{
			ID:      primitive.NewObjectID(),
			UserID:  userID,
			MovieID: primitive.NewObjectID().Hex(),
			AddedAt: time.Now(),
		})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/watchlist/paginated?page=2&limit=10", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp models.PaginatedWatchlist
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Watchlist) != 10 {
		t.Fatalf("got %d items, want 10", len(resp.Watchlist))
	}
	if !resp.Pagination.HasNext || !resp.Pagination.HasPrev || resp.Pagination.TotalPages != 3 {
		t.Fatalf("pagination = %+v", resp.Pagination)
	}
}

func TestWatchlistUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := NewWatchlistController(services.NewWatchlistService(&fakeWatchlistStore{}, zap.NewNop()))
	r := gin.New()
	r.GET("/api/watchlist", ctrl.Get) // no identity in context

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/watchlist", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
