package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/tarumenyan/studio-backend/internal/domain"
	"github.com/tarumenyan/studio-backend/internal/services"
)

func authEngine(s stubAuth) http.Handler {
	h := New(Services{Auth: s})
	r := testEngine()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	return r
}

func TestRegister(t *testing.T) {
	var got [3]string
	r := authEngine(stubAuth{register: func(_ context.Context, name, email, password string) (*domain.User, error) {
		got = [3]string{name, email, password}
		switch email {
		case "taken@example.com":
			return nil, services.ErrEmailTaken
		case "short@example.com":
			return nil, &services.ValidationError{Msg: "Password minimal 6 karakter"}
		case "boom@example.com":
			return nil, errors.New("disk full")
		}
		return &domain.User{ID: 1, Name: name, Email: email, Role: domain.RoleUser}, nil
	}})

	w := doJSON(r, http.MethodPost, "/register", RegisterRequest{Name: "Dewi", Email: "dewi@example.com", Password: "rahasia"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d %s", w.Code, w.Body.String())
	}
	if b := decode[AuthResponse](t, w); !b.Success || b.Message != "Pendaftaran berhasil" || b.Token != "" {
		t.Fatalf("body: %+v", b)
	}
	if got != [3]string{"Dewi", "dewi@example.com", "rahasia"} {
		t.Fatalf("forwarded %v", got)
	}

	w = doJSON(r, http.MethodPost, "/register", RegisterRequest{Name: "X", Email: "taken@example.com", Password: "rahasia"})
	if b := decode[AuthResponse](t, w); w.Code != http.StatusConflict || b.Success || b.Message != "Email sudah terdaftar" {
		t.Fatalf("conflict: %d %+v", w.Code, b)
	}

	w = doJSON(r, http.MethodPost, "/register", RegisterRequest{Name: "X", Email: "short@example.com", Password: "123"})
	if b := decode[AuthResponse](t, w); w.Code != http.StatusBadRequest || b.Message != "Password minimal 6 karakter" {
		t.Fatalf("validation: %d %+v", w.Code, b)
	}

	w = doJSON(r, http.MethodPost, "/register", RegisterRequest{Name: "X", Email: "boom@example.com", Password: "rahasia"})
	if b := decode[ErrorResponse](t, w); w.Code != http.StatusInternalServerError || b.Error != "disk full" {
		t.Fatalf("internal: %d %+v", w.Code, b)
	}
}

func TestRegister_BadJSON(t *testing.T) {
	r := authEngine(stubAuth{})
	w := doJSON(r, http.MethodPost, "/register", "not-an-object")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestLogin(t *testing.T) {
	r := authEngine(stubAuth{login: func(_ context.Context, email, password string) (*services.LoginResult, error) {
		if password != "rahasia" {
			return nil, services.ErrInvalidCredentials
		}
		return &services.LoginResult{
			User:  domain.User{ID: 7, Name: "Admin", Email: email, Role: domain.RoleAdmin, Password: "$2a$hash"},
			Token: "tok",
		}, nil
	}})

	w := doJSON(r, http.MethodPost, "/login", LoginRequest{Email: "admin@example.com", Password: "rahasia"})
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d %s", w.Code, w.Body.String())
	}
	b := decode[AuthResponse](t, w)
	if !b.Success || b.Token != "tok" || b.User == nil || b.User.ID != 7 || b.User.Role != domain.RoleAdmin {
		t.Fatalf("body: %+v", b)
	}
	if s := w.Body.String(); strings.Contains(s, "$2a$hash") || strings.Contains(s, "password") {
		t.Fatalf("password leaked: %s", s)
	}

	w = doJSON(r, http.MethodPost, "/login", LoginRequest{Email: "admin@example.com", Password: "salah"})
	if b := decode[AuthResponse](t, w); w.Code != http.StatusUnauthorized || b.Message != "Email atau password salah" {
		t.Fatalf("wrong password: %d %+v", w.Code, b)
	}
}
