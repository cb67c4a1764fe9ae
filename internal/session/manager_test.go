package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarium/internal/gateway"
)

type fakeAuth struct {
	identity *gateway.Identity
	err      error
	calls    int
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (*gateway.Identity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

type fakeTokens struct {
	token string
}

func (f *fakeTokens) SetToken(token string) { f.token = token }
func (f *fakeTokens) ClearToken()           { f.token = "" }

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{}
	if !expiresAt.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestLoginPersistsSession(t *testing.T) {
	store := NewMemStore()
	auth := &fakeAuth{identity: &gateway.Identity{
		Token:    "jwt-token",
		Username: "admin",
		Email:    "admin@library.local",
		Role:     "ADMIN",
	}}
	tokens := &fakeTokens{}
	manager := NewManager(store, auth, tokens)

	identity, err := manager.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", identity.Username)
	assert.Equal(t, "jwt-token", tokens.token)

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", stored.Token)
	assert.Equal(t, "admin@library.local", stored.Identity.Email)
}

func TestLoginFailureLeavesNoSession(t *testing.T) {
	store := NewMemStore()
	auth := &fakeAuth{err: gateway.ErrInvalidCredentials}
	manager := NewManager(store, auth, &fakeTokens{})

	_, err := manager.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, gateway.ErrInvalidCredentials)
	assert.Nil(t, manager.Current())

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRestoreValidSession(t *testing.T) {
	store := NewMemStore()
	token := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, store.Save(Session{
		Identity: Identity{Username: "admin", Role: "ADMIN"},
		Token:    token,
	}))

	tokens := &fakeTokens{}
	manager := NewManager(store, &fakeAuth{}, tokens)

	identity := manager.Restore()
	require.NotNil(t, identity)
	assert.Equal(t, "admin", identity.Username)
	assert.Equal(t, token, tokens.token)
	assert.Equal(t, identity, manager.Current())
}

func TestRestoreDropsExpiredToken(t *testing.T) {
	store := NewMemStore()
	require.NoError(t, store.Save(Session{
		Identity: Identity{Username: "admin"},
		Token:    signedToken(t, time.Now().Add(-time.Hour)),
	}))

	tokens := &fakeTokens{}
	manager := NewManager(store, &fakeAuth{}, tokens)

	assert.Nil(t, manager.Restore())
	assert.Empty(t, tokens.token)

	// the expired session is gone from the store too
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRestoreKeepsTokenWithoutExpiry(t *testing.T) {
	store := NewMemStore()
	require.NoError(t, store.Save(Session{
		Identity: Identity{Username: "admin"},
		Token:    signedToken(t, time.Time{}),
	}))

	manager := NewManager(store, &fakeAuth{}, &fakeTokens{})
	assert.NotNil(t, manager.Restore())
}

func TestRestoreToleratesOpaqueToken(t *testing.T) {
	store := NewMemStore()
	require.NoError(t, store.Save(Session{
		Identity: Identity{Username: "admin"},
		Token:    "not-a-jwt",
	}))

	manager := NewManager(store, &fakeAuth{}, &fakeTokens{})
	assert.NotNil(t, manager.Restore())
}

func TestLogoutClearsEverything(t *testing.T) {
	store := NewMemStore()
	tokens := &fakeTokens{}
	auth := &fakeAuth{identity: &gateway.Identity{Token: "jwt-token", Username: "admin"}}
	manager := NewManager(store, auth, tokens)

	_, err := manager.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)

	require.NoError(t, manager.Logout())
	assert.Nil(t, manager.Current())
	assert.Empty(t, tokens.token)

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRestoreWithEmptyStore(t *testing.T) {
	manager := NewManager(NewMemStore(), &fakeAuth{}, &fakeTokens{})
	assert.Nil(t, manager.Restore())
}
