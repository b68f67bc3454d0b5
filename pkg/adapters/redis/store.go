package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/synd-dev/synd/pkg/domain"
)

// Store implements ports.SnapshotStore using Redis. The payload and the
// metadata live in separate string keys; a ZSET index keeps the set of known
// IDs with their expiry time as score, so listings can prune lazily.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for snapshots.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for snapshots.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "synd:snapshot:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) payloadKey(id string) string {
	return s.prefix + id
}

func (s *Store) infoKey(id string) string {
	return s.prefix + "info:" + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the snapshot to Redis.
func (s *Store) Save(ctx context.Context, snap domain.Snapshot) error {
	info, err := json.Marshal(snap.SnapshotInfo)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot info: %w", err)
	}

	pipe := s.client.Pipeline()

	// Payload and metadata share the TTL. 0 means no expiration.
	pipe.Set(ctx, s.payloadKey(snap.ID), snap.Payload, s.ttl)
	pipe.Set(ctx, s.infoKey(snap.ID), info, s.ttl)

	// Index score = expiry time. With no TTL, park the entry far in the
	// future so pruning never touches it.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: snap.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the snapshot from Redis.
func (s *Store) Load(ctx context.Context, id string) (domain.Snapshot, error) {
	payload, err := s.client.Get(ctx, s.payloadKey(id)).Bytes()
	if err != nil {
		if err == backend.Nil {
			return domain.Snapshot{}, domain.ErrSnapshotNotFound
		}
		return domain.Snapshot{}, fmt.Errorf("failed to get payload from redis: %w", err)
	}

	raw, err := s.client.Get(ctx, s.infoKey(id)).Result()
	if err != nil {
		if err == backend.Nil {
			return domain.Snapshot{}, domain.ErrSnapshotNotFound
		}
		return domain.Snapshot{}, fmt.Errorf("failed to get snapshot info from redis: %w", err)
	}

	var info domain.SnapshotInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot info: %w", err)
	}

	return domain.Snapshot{SnapshotInfo: info, Payload: payload}, nil
}

// Delete removes the snapshot and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.payloadKey(id), s.infoKey(id))
	pipe.ZRem(ctx, s.indexKey(), id)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns the stored snapshot metadata.
// Expired entries are pruned from the index lazily on each call.
func (s *Store) List(ctx context.Context) ([]domain.SnapshotInfo, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired snapshots: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	infos := make([]domain.SnapshotInfo, 0, len(ids))
	for _, id := range ids {
		raw, err := s.client.Get(ctx, s.infoKey(id)).Result()
		if err == backend.Nil {
			// The key expired between the index read and now; skip it.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get snapshot info from redis: %w", err)
		}

		var info domain.SnapshotInfo
		if err := json.Unmarshal([]byte(raw), &info); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot info: %w", err)
		}
		infos = append(infos, info)
	}

	return infos, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
