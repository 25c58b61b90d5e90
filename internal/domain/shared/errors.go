// Package shared contains common domain types, errors, and events
// that are used across all domain packages. This package has zero external
// dependencies beyond event identifiers.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
// These five kinds are the complete error taxonomy of the forum engine:
// every failure a mutating operation can return maps to exactly one of them.
var (
	// ErrValidation indicates empty or malformed input.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a referenced id is absent.
	ErrNotFound = errors.New("entity not found")

	// ErrUnauthorized indicates the actor lacks the required role or ownership.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnauthenticated indicates no acting user where one is required.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidState indicates an illegal state transition.
	ErrInvalidState = errors.New("invalid state")
)

// Storage errors.
var (
	// ErrStoreUnavailable indicates the backing store cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrCorruptRecord indicates a stored record failed to decode.
	ErrCorruptRecord = errors.New("corrupt record")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "content", "voting", "moderation"
	Op      string // Operation that failed, e.g., "CreateQuestion", "CastVote"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Content domain errors
var (
	ErrQuestionNotFound = NewDomainError("content", "FindQuestion", ErrNotFound, "question not found")
	ErrAnswerNotFound   = NewDomainError("content", "FindAnswer", ErrNotFound, "answer not found")
	ErrUserNotFound     = NewDomainError("content", "FindUser", ErrNotFound, "user not found")
	ErrEmptyTitle       = NewDomainError("content", "Validate", ErrValidation, "title cannot be empty")
	ErrEmptyDescription = NewDomainError("content", "Validate", ErrValidation, "description cannot be empty")
	ErrEmptyText        = NewDomainError("content", "Validate", ErrValidation, "text cannot be empty")
	ErrNotOwner         = NewDomainError("content", "Authorize", ErrUnauthorized, "only the author may perform this operation")
	ErrAdminOnly        = NewDomainError("content", "Authorize", ErrUnauthorized, "admin role required")
	ErrAlreadySolved    = NewDomainError("content", "MarkSolved", ErrInvalidState, "question is already marked as solved")
)

// Voting domain errors
var (
	ErrAnonymousVote    = NewDomainError("voting", "CastVote", ErrUnauthenticated, "voting requires an acting user")
	ErrUnknownDirection = NewDomainError("voting", "CastVote", ErrValidation, "vote direction must be up or down")
)

// Moderation domain errors
var (
	ErrUnknownContentType = NewDomainError("moderation", "ReportContent", ErrValidation, "content type must be question or answer")
	ErrEmptyReason        = NewDomainError("moderation", "ReportContent", ErrValidation, "report reason cannot be empty")
)

// Identity domain errors
var (
	ErrInvalidCredentials = NewDomainError("identity", "Login", ErrUnauthenticated, "invalid email or password")
	ErrUsernameTaken      = NewDomainError("identity", "Register", ErrValidation, "username is already taken")
	ErrEmailTaken         = NewDomainError("identity", "Register", ErrValidation, "email is already registered")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnauthorized checks if the error is an authorization error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsUnauthenticated checks if the error is an authentication error.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

// IsInvalidState checks if the error is an illegal state transition.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}
