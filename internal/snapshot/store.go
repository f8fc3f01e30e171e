// Package snapshot persists board snapshots in Redis. It is the
// asynchronous boundary in front of the grid core: it fetches and parses
// a snapshot record, and only a fully parsed *grid.Data ever reaches
// Grid.FromData. Transport and parse failures surface to the caller;
// a missing snapshot is ErrNotFound, never a silent empty board.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/gravitas-games/gridboard/grid"
)

// ErrNotFound is returned by Load when no snapshot exists under the
// requested name.
var ErrNotFound = errors.New("snapshot: not found")

// Store reads and writes board snapshots under a key prefix.
type Store struct {
	rdb    *redis.Client
	prefix string
}

// New returns a snapshot store over an existing Redis client.
func New(rdb *redis.Client, prefix string) *Store {
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

// Save marshals the snapshot and writes it under name.
func (s *Store) Save(ctx context.Context, name string, d *grid.Data) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %q: %w", name, err)
	}
	if err := s.rdb.Set(ctx, s.key(name), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot %q: %w", name, err)
	}
	return nil
}

// Load fetches and parses the snapshot stored under name.
func (s *Store) Load(ctx context.Context, name string) (*grid.Data, error) {
	raw, err := s.rdb.Get(ctx, s.key(name)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot %q: %w", name, err)
	}
	var d grid.Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %q: %w", name, err)
	}
	return &d, nil
}

// Delete removes the snapshot stored under name. Deleting a missing
// snapshot is a no-op.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := s.rdb.Del(ctx, s.key(name)).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot %q: %w", name, err)
	}
	return nil
}
