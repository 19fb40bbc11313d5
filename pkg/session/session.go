package session

import (
	"context"
	"errors"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

type contextKey string

const SessionKey contextKey = "session"

var ErrNoSession = errors.New("no session credential")

// Session is the bearer credential handed to the events API on behalf of a caller.
// A zero ExpiresAt means the credential carries no known expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

func (s Session) IsEmpty() bool {
	return strings.TrimSpace(s.Token) == ""
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

func (s Session) OAuth2Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken: s.Token,
		TokenType:   "Bearer",
		Expiry:      s.ExpiresAt,
	}
}

// FromAuthorizationHeader reads "Bearer <token>" and returns ErrNoSession for anything else.
func FromAuthorizationHeader(header string) (Session, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return Session{}, ErrNoSession
	}
	return Session{Token: strings.TrimSpace(token)}, nil
}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

func Current(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(SessionKey).(Session)
	if !ok {
		log.Trace("session not found in context")
		return Session{}, ErrNoSession
	}
	return s, nil
}
