package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/coursia/authkit/account"
)

const registeredKey = "registered_users"

const appendRetries = 3

// ErrDirectoryConflict is returned when a directory append keeps losing the
// optimistic transaction race.
var ErrDirectoryConflict = errors.New("registered users directory busy")

// Registered returns every user created through Register, oldest first.
// A missing or corrupt directory reads as empty.
func (s *Store) Registered(ctx context.Context) ([]account.User, error) {
	raw, err := s.client.Get(ctx, s.key(registeredKey)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load registered users: %w", err)
	}

	var users []account.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, nil
	}
	return users, nil
}

// FindRegistered looks a registered user up by email, case-insensitively.
func (s *Store) FindRegistered(ctx context.Context, email string) (*account.User, bool, error) {
	users, err := s.Registered(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], true, nil
		}
	}
	return nil, false, nil
}

// AppendRegistered adds u to the directory. The read-modify-write is
// guarded by WATCH, so two concurrent appends cannot drop each other's
// entry; the losing writer retries against the fresh list.
func (s *Store) AppendRegistered(ctx context.Context, u *account.User) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}
	key := s.key(registeredKey)

	txn := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		var users []account.User
		if raw != "" {
			// Corrupt directory state is recovered by starting over.
			_ = json.Unmarshal([]byte(raw), &users)
		}
		users = append(users, *u)

		data, err := json.Marshal(users)
		if err != nil {
			return fmt.Errorf("marshal registered users: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}

	for i := 0; i < appendRetries; i++ {
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return fmt.Errorf("append registered user: %w", err)
	}
	return ErrDirectoryConflict
}

// RemoveRegistered deletes the directory entry with the given user ID,
// under the same WATCH guard as AppendRegistered. Removing an absent ID is
// a no-op.
func (s *Store) RemoveRegistered(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("user ID required")
	}
	key := s.key(registeredKey)

	txn := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}

		var users []account.User
		_ = json.Unmarshal([]byte(raw), &users)

		kept := users[:0]
		for i := range users {
			if users[i].ID != id {
				kept = append(kept, users[i])
			}
		}
		if len(kept) == len(users) {
			return nil
		}

		data, err := json.Marshal(kept)
		if err != nil {
			return fmt.Errorf("marshal registered users: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}

	for i := 0; i < appendRetries; i++ {
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return fmt.Errorf("remove registered user: %w", err)
	}
	return ErrDirectoryConflict
}
