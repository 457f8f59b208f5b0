// Package redis implements the KVStore port on top of a Redis server.
//
// Values are stored as opaque byte documents under plain string keys, which
// matches the key-namespace design of the core (parcel:{id}, parcel:ref:{code},
// driver:{id}:parcels, user:{id}). Prefix scans use SCAN + MGET so the adapter
// never blocks the server with KEYS.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// scanBatchSize is the COUNT hint handed to SCAN.
const scanBatchSize = 100

// Store adapts a go-redis client to the ports.KVStore contract.
// Every call runs under a caller-visible timeout; on expiry the operation
// fails with a StorageError instead of hanging.
type Store struct {
	client  *redis.Client
	timeout time.Duration
}

// NewStore creates a Store around an existing client. A non-positive timeout
// disables the per-call deadline and leaves only the caller's context.
func NewStore(client *redis.Client, timeout time.Duration) *Store {
	return &Store{
		client:  client,
		timeout: timeout,
	}
}

// NewClient builds a go-redis client from connection parameters.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Get returns the value stored at key and whether the key was present.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.NewStorageError(fmt.Sprintf("get %s", key), err)
	}
	return value, true, nil
}

// Set stores value at key, overwriting any previous value.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return errs.NewStorageError(fmt.Sprintf("set %s", key), err)
	}
	return nil
}

// SetIfAbsent stores value at key only when the key does not yet exist,
// using SETNX as the store's conditional write.
func (s *Store) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	written, err := s.client.SetNX(ctx, key, value, 0).Result()
	if err != nil {
		return false, errs.NewStorageError(fmt.Sprintf("setnx %s", key), err)
	}
	return written, nil
}

// MGet returns the values for keys, aligned with the input order, with nil
// entries for absent keys.
func (s *Store) MGet(ctx context.Context, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	raw, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errs.NewStorageError(fmt.Sprintf("mget %d keys", len(keys)), err)
	}

	values := make([][]byte, len(raw))
	for i, v := range raw {
		if v == nil {
			continue
		}
		str, ok := v.(string)
		if !ok {
			return nil, errs.NewStorageError(
				fmt.Sprintf("mget %s", keys[i]),
				fmt.Errorf("unexpected value type %T", v),
			)
		}
		values[i] = []byte(str)
	}
	return values, nil
}

// GetByPrefix returns every key-value pair whose key starts with prefix,
// sorted by key for deterministic iteration.
func (s *Store) GetByPrefix(ctx context.Context, prefix string) ([]ports.KeyValue, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var keys []string
	iter := s.client.Scan(ctx, 0, prefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, errs.NewStorageError(fmt.Sprintf("scan %s*", prefix), err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)

	values, err := s.MGet(ctx, keys)
	if err != nil {
		return nil, err
	}

	pairs := make([]ports.KeyValue, 0, len(keys))
	for i, key := range keys {
		// a key deleted between SCAN and MGET yields nil; skip it
		if values[i] == nil {
			continue
		}
		pairs = append(pairs, ports.KeyValue{Key: key, Value: values[i]})
	}
	return pairs, nil
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}
