package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/DRainger/MyMDb/apperrors"
	"github.com/DRainger/MyMDb/models"
	"github.com/DRainger/MyMDb/services"
)

type fakeUserStore struct {
	users []*models.User
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return apperrors.Conflict("email already registered")
		}
	}
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func authRouter(store *fakeUserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewAuthService(store, "test-secret", zap.NewNop())
	ctrl := NewAuthController(svc)

	r := gin.New()
	r.POST("/api/auth/register", ctrl.Register)
	r.POST("/api/auth/login", ctrl.Login)
	r.POST("/api/auth/logout", ctrl.Logout)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterEndpoint(t *testing.T) {
	r := authRouter(&fakeUserStore{})

	w := postJSON(t, r, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"hunter22"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}

	var resp models.AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("no token in response")
	}
	if resp.User == nil || resp.User.Email != "alice@example.com" {
		t.Fatalf("user = %+v", resp.User)
	}
	if strings.Contains(w.Body.String(), "hunter22") {
		t.Fatal("response leaks the password")
	}
}

func TestRegisterEndpointValidation(t *testing.T) {
	r := authRouter(&fakeUserStore{})

	tests := []struct {
		body string
		want string
	}{
		{`{"name":"Alice","email":"not-an-email","password":"hunter22"}`, "valid email"},
		{`{"name":"Alice","email":"alice@example.com","password":"abc"}`, "at least 6 characters"},
		{`{"email":"alice@example.com","password":"hunter22"}`, "Name is required"},
	}
	for _, tc := range tests {
		w := postJSON(t, r, "/api/auth/register", tc.body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", tc.body, w.Code)
		}
		if !strings.Contains(w.Body.String(), tc.want) {
			t.Fatalf("body %s: message %s, want it to mention %q", tc.body, w.Body.String(), tc.want)
		}
	}
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	r := authRouter(&fakeUserStore{})
	body := `{"name":"Alice","email":"alice@example.com","password":"hunter22"}`

	if w := postJSON(t, r, "/api/auth/register", body); w.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", w.Code)
	}
	w := postJSON(t, r, "/api/auth/register", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("second register status = %d, want 409, body %s", w.Code, w.Body.String())
	}
}

func TestLoginEndpoint(t *testing.T) {
	r := authRouter(&fakeUserStore{})
	postJSON(t, r, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"hunter22"}`)

	w := postJSON(t, r, "/api/auth/login",
		`{"email":"alice@example.com","password":"hunter22"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	w = postJSON(t, r, "/api/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d, want 401", w.Code)
	}

	w = postJSON(t, r, "/api/auth/login",
		`{"email":"nobody@example.com","password":"hunter22"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown email status = %d, want 401", w.Code)
	}
}

func TestLogoutEndpoint(t *testing.T) {
	r := authRouter(&fakeUserStore{})

	w := postJSON(t, r, "/api/auth/logout", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
