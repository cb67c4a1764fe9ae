package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"librarium/internal/gateway"
)

// AuthAPI is the slice of the gateway the manager needs for login.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*gateway.Identity, error)
}

// TokenSink receives the bearer token so every later gateway call carries it.
type TokenSink interface {
	SetToken(token string)
	ClearToken()
}

// Manager owns the session lifecycle: restore at startup, login, logout.
type Manager struct {
	store   Store
	auth    AuthAPI
	tokens  TokenSink
	current *Identity
	now     func() time.Time
}

func NewManager(store Store, auth AuthAPI, tokens TokenSink) *Manager {
	return &Manager{
		store:  store,
		auth:   auth,
		tokens: tokens,
		now:    time.Now,
	}
}

// Restore loads a persisted session, drops it if the token has expired, and
// otherwise arms the token sink. Returns the restored identity or nil.
func (m *Manager) Restore() *Identity {
	sess, err := m.store.Load()
	if err != nil {
		if err != ErrNoSession {
			log.Debug().Err(err).Msg("loading stored session failed")
		}
		return nil
	}

	if expired(sess.Token, m.now()) {
		log.Debug().Str("username", sess.Identity.Username).Msg("stored session expired, clearing")
		if err := m.store.Clear(); err != nil {
			log.Debug().Err(err).Msg("clearing expired session failed")
		}
		return nil
	}

	m.current = &sess.Identity
	m.tokens.SetToken(sess.Token)
	return m.current
}

// Login authenticates, persists the session and arms the token sink.
func (m *Manager) Login(ctx context.Context, username, password string) (*Identity, error) {
	gwIdentity, err := m.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	identity := identityOf(gwIdentity)
	if err := m.store.Save(Session{Identity: identity, Token: gwIdentity.Token}); err != nil {
		return nil, err
	}

	m.current = &identity
	m.tokens.SetToken(gwIdentity.Token)
	return m.current, nil
}

// Logout clears both the persisted session and the in-flight token.
func (m *Manager) Logout() error {
	m.current = nil
	m.tokens.ClearToken()
	return m.store.Clear()
}

// Current returns the active identity, or nil when logged out.
func (m *Manager) Current() *Identity {
	return m.current
}

// expired reads the token's exp claim without verifying the signature (the
// console has no signing secret). Tokens without an exp claim, or that do not
// parse as JWTs at all, are taken at face value and left to the gateway to
// reject.
func expired(token string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
