package cart

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/go-faster/errors"
)

const sessionCartKey = "cart"

// SessionStore keeps the snapshot inside the visitor's own session cookie. It
// is bound to one request, so the visitor id is ignored. The cookie caps a
// snapshot at about 4KB, roughly a dozen products.
type SessionStore struct {
	session sessions.Session
}

func NewSessionStore(session sessions.Session) *SessionStore {
	return &SessionStore{session: session}
}

func (s *SessionStore) Load(_ context.Context, _ string) ([]byte, error) {
	v, ok := s.session.Get(sessionCartKey).(string)
	if !ok || v == "" {
		return nil, ErrSnapshotNotFound
	}
	return []byte(v), nil
}

func (s *SessionStore) Save(_ context.Context, _ string, snapshot []byte) error {
	s.session.Set(sessionCartKey, string(snapshot))
	if err := s.session.Save(); err != nil {
		return errors.Wrap(err, "save session")
	}
	return nil
}

func (s *SessionStore) Delete(_ context.Context, _ string) error {
	s.session.Delete(sessionCartKey)
	if err := s.session.Save(); err != nil {
		return errors.Wrap(err, "save session")
	}
	return nil
}
