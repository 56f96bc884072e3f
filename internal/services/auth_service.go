// Package services – AuthService
//
// AuthService owns account registration and login. Emails are trimmed and
// case-folded before storage and lookup, passwords are stored as bcrypt
// hashes, and a successful login yields a signed HS256 token.
package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/tarumenyan/studio-backend/internal/auth"
	"github.com/tarumenyan/studio-backend/internal/domain"
	"github.com/tarumenyan/studio-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MinPasswordRunes is the shortest password Register accepts.
const MinPasswordRunes = 6

// AuthService registers accounts and issues tokens.
type AuthService struct {
	DB     *gorm.DB
	Tokens *auth.Issuer
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *gorm.DB, tokens *auth.Issuer) *AuthService {
	return &AuthService{DB: db, Tokens: tokens}
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	User  domain.User
	Token string
}

var emailFolder = cases.Lower(language.Und)

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return emailFolder.String(strings.TrimSpace(email))
}

// Register creates a user with role "user".
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	tr := otel.Tracer("services/AuthService")
	ctx, span := tr.Start(ctx, "Register")
	defer span.End()

	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, invalid("Nama, email, dan password wajib diisi")
	}
	if utf8.RuneCountInString(password) < MinPasswordRunes {
		return nil, invalid("Password minimal 6 karakter")
	}

	if _, err := repo.GetUserByEmail(ctx, s.DB, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{Name: name, Email: email, Password: hash, Role: domain.RoleUser}
	if err := repo.CreateUser(ctx, s.DB, u); err != nil {
		// a concurrent registration can still lose the race on the unique index
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	span.SetAttributes(attribute.Int("user.id", int(u.ID)))
	return u, nil
}

// Login verifies credentials and signs a token. Unknown emails and wrong
// passwords both yield ErrInvalidCredentials after a bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	tr := otel.Tracer("services/AuthService")
	ctx, span := tr.Start(ctx, "Login")
	defer span.End()

	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalid("Email dan password wajib diisi")
	}

	u, err := repo.GetUserByEmail(ctx, s.DB, email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	hash := ""
	if u != nil {
		hash = u.Password
	}
	if !auth.CheckPassword(hash, password) || u == nil {
		return nil, ErrInvalidCredentials
	}

	role := u.Role
	if role == "" {
		role = domain.RoleUser
	}
	token, err := s.Tokens.Sign(u.ID, u.Name, u.Email, role)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("user.id", int(u.ID)))
	return &LoginResult{User: *u, Token: token}, nil
}

// EnsureAdmin makes sure an admin account exists for email. A new account is
// created with the given password; an existing one is promoted to admin and
// keeps its password. It reports whether a row was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	tr := otel.Tracer("services/AuthService")
	ctx, span := tr.Start(ctx, "EnsureAdmin",
		trace.WithAttributes(attribute.String("admin.name", name)),
	)
	defer span.End()

	email = NormalizeEmail(email)
	if email == "" {
		return false, invalid("admin email is required")
	}

	existing, err := repo.GetUserByEmail(ctx, s.DB, email)
	switch {
	case err == nil:
		if existing.IsAdmin() {
			return false, nil
		}
		return false, repo.UpdateUserRole(ctx, s.DB, existing.ID, domain.RoleAdmin)
	case !errors.Is(err, repo.ErrNotFound):
		return false, err
	}

	if utf8.RuneCountInString(password) < MinPasswordRunes {
		return false, invalid("admin password must be at least 6 characters")
	}
	if strings.TrimSpace(name) == "" {
		name = "Admin"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}
	u := &domain.User{Name: strings.TrimSpace(name), Email: email, Password: hash, Role: domain.RoleAdmin}
	if err := repo.CreateUser(ctx, s.DB, u); err != nil {
		return false, err
	}
	return true, nil
}
