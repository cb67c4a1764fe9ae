package session

import (
	"encoding/json"
	"errors"

	"github.com/zalando/go-keyring"

	"librarium/internal/gateway"
)

const (
	serviceName = "librarium"
	sessionKey  = "session"
)

// ErrNoSession means no persisted session exists.
var ErrNoSession = errors.New("no stored session")

// Identity is who the console is acting as.
type Identity struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Session is the persisted login state: identity plus the bearer token the
// gateway issued for it.
type Session struct {
	Identity Identity `json:"identity"`
	Token    string   `json:"token"`
}

func identityOf(id *gateway.Identity) Identity {
	return Identity{Username: id.Username, Email: id.Email, Role: id.Role}
}

// Store persists a session across process restarts. It is injected rather
// than read from ambient global state so the layers above stay testable
// without a real keyring.
type Store interface {
	Save(Session) error
	Load() (Session, error)
	Clear() error
}

// KeyringStore keeps the session as a JSON blob in the OS keyring.
type KeyringStore struct{}

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (s *KeyringStore) Save(sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return keyring.Set(serviceName, sessionKey, string(data))
}

func (s *KeyringStore) Load() (Session, error) {
	value, err := keyring.Get(serviceName, sessionKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Session{}, ErrNoSession
		}
		return Session{}, err
	}

	var sess Session
	if err := json.Unmarshal([]byte(value), &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *KeyringStore) Clear() error {
	err := keyring.Delete(serviceName, sessionKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// MemStore holds a session in memory only. Used in tests.
type MemStore struct {
	sess   Session
	exists bool
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Save(sess Session) error {
	s.sess = sess
	s.exists = true
	return nil
}

func (s *MemStore) Load() (Session, error) {
	if !s.exists {
		return Session{}, ErrNoSession
	}
	return s.sess, nil
}

func (s *MemStore) Clear() error {
	s.sess = Session{}
	s.exists = false
	return nil
}
