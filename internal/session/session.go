package session

import (
	"context"
	"errors"
	"time"
)

// ErrUnauthenticated is the single condition every missing, empty or expired
// credential collapses into.
var ErrUnauthenticated = errors.New("unauthenticated")

// Session is the explicit bearer credential handed to the core. How it was
// obtained and where it is stored is the sign-in flow's problem, not ours.
type Session struct {
	Token     string
	ExpiresAt time.Time // zero means no known expiry
}

func (s Session) Valid(now time.Time) bool {
	if s.Token == "" {
		return false
	}
	if !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt) {
		return false
	}
	return true
}

// Accessor supplies the current session. Implementations must re-check
// validity on every call rather than cache a yes from earlier.
type Accessor interface {
	Current(ctx context.Context) (Session, error)
}

// Static is a fixed-credential accessor, used by tests and by per-request
// scoping in the HTTP facade.
type Static struct {
	Session Session
}

func (s Static) Current(context.Context) (Session, error) {
	if !s.Session.Valid(time.Now()) {
		return Session{}, ErrUnauthenticated
	}
	return s.Session, nil
}
