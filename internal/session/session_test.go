package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionValid(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		sess Session
		want bool
	}{
		{"empty token", Session{}, false},
		{"token without expiry", Session{Token: "tok"}, true},
		{"token not yet expired", Session{Token: "tok", ExpiresAt: now.Add(time.Hour)}, true},
		{"token expired", Session{Token: "tok", ExpiresAt: now.Add(-time.Minute)}, false},
		{"token expiring exactly now", Session{Token: "tok", ExpiresAt: now}, false},
		{"expiry set but no token", Session{ExpiresAt: now.Add(time.Hour)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sess.Valid(now))
		})
	}
}

func TestStaticCurrent(t *testing.T) {
	acc := Static{Session: Session{Token: "tok"}}

	got, err := acc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
}

func TestStaticCurrent_Invalid(t *testing.T) {
	acc := Static{Session: Session{Token: "tok", ExpiresAt: time.Now().Add(-time.Hour)}}

	_, err := acc.Current(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
