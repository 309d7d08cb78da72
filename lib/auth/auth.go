// Package auth supplies the diary client with a student identifier
// and bearer token. Variants only differ in how the pair gets
// populated: constant injection, a persisted snapshot, or an
// interactive login against the portal's oauth frontend.
package auth

import (
	"context"
	"errors"
)

var (
	ErrIncorrectLoginPassword = errors.New("incorrect login or password")
	ErrLoginTimeout           = errors.New("login timed out")
	ErrTotpRequired           = errors.New("one-time passcode requested but no totp secret configured")
)

type Authenticator interface {
	// Init performs setup; calling it twice is a no-op.
	Init(ctx context.Context) error
	// Authenticate reports whether a usable id+token pair is now
	// available.
	Authenticate(ctx context.Context) (bool, error)
	// StudentID returns the student profile id, or "" when unknown.
	StudentID(ctx context.Context) (string, error)
	// Token returns the bearer token, or "" when unknown.
	Token(ctx context.Context) (string, error)
	// Close releases resources; calling it twice is a no-op.
	Close() error
	// Save persists the current id+token pair as a snapshot file.
	Save(path string) error
}
