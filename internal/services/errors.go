// Package services implements the business logic behind the studio API:
// accounts, FAQ, gallery, packages, reviews, chat history and the chatbot
// proxy. This file centralizes the service-level error values so handlers can
// map them to HTTP status codes consistently.
//
// Translation into user-facing messages or status codes belongs to the
// handler layer.
package services

import "errors"

var (
	// ErrNotFound indicates that the addressed row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is the sentinel wrapped by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrEmailTaken is returned by Register when the normalized email exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned by Login for an unknown email and for
	// a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrChatbotUnavailable is returned when the chatbot upstream cannot be
	// reached and no FAQ fallback applies.
	ErrChatbotUnavailable = errors.New("chatbot unavailable")

	// ErrPricelistCopy is returned when the pricelist was stored but its
	// public copy could not be written.
	ErrPricelistCopy = errors.New("pricelist copy failed")
)

// ValidationError describes rejected input. Msg is safe to show to clients.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(msg string) error { return &ValidationError{Msg: msg} }
