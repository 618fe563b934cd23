package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/coursia/authkit/account"
)

const (
	tokenKey = "auth_token"
	userKey  = "auth_user"
)

// ErrNoSession is returned by Load when no complete session is persisted.
// A half-present or undecodable pair reads the same as an absent one.
var ErrNoSession = errors.New("no persisted session")

// Store mirrors the in-memory session into Redis. It is passive: it never
// validates tokens or mutates users.
type Store struct {
	client redis.UniversalClient
	prefix string
}

// NewStore creates a store with the default key layout.
func NewStore(client redis.UniversalClient) *Store {
	return &Store{client: client}
}

// NewStoreWithPrefix creates a store whose keys share a custom prefix.
func NewStoreWithPrefix(client redis.UniversalClient, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

// Persist writes the token/user pair. The user is serialized before any
// write is issued, so a marshal failure leaves both keys untouched; the two
// SETs then go through one transaction, so readers never see a token
// without its user.
func (s *Store) Persist(ctx context.Context, token string, u *account.User) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if u == nil {
		return errors.New("user cannot be nil")
	}

	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(tokenKey), token, 0)
		pipe.Set(ctx, s.key(userKey), data, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Load reads the pair back. Missing either key, or a user that no longer
// decodes, yields ErrNoSession, never a half-filled pair.
func (s *Store) Load(ctx context.Context) (string, *account.User, error) {
	values, err := s.client.MGet(ctx, s.key(tokenKey), s.key(userKey)).Result()
	if err != nil {
		return "", nil, fmt.Errorf("load session: %w", err)
	}

	token, ok := values[0].(string)
	if !ok || token == "" {
		return "", nil, ErrNoSession
	}
	raw, ok := values[1].(string)
	if !ok || raw == "" {
		return "", nil, ErrNoSession
	}

	var u account.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		// Corrupt persisted state reads as absence.
		return "", nil, ErrNoSession
	}

	return token, &u, nil
}

// Clear removes both keys in a single command. Clearing an already empty
// store is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(tokenKey), s.key(userKey)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
