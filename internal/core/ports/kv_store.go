package ports

import "context"

// KeyValue pairs a store key with its raw document. Returned by prefix scans
// so callers can both decode values and reason about the key namespace.
type KeyValue struct {
	Key   string
	Value []byte
}

// KVStore is the only persistence primitive the core uses: a durable mapping
// from string key to an opaque document. The adapter guarantees no
// transactional multi-key atomicity; callers must sequence their writes so a
// partial failure leaves the system recoverable.
//
// Every method takes a context and must respect its deadline: no call blocks
// indefinitely. On timeout or adapter failure implementations return a
// StorageError rather than hanging.
type KVStore interface {
	// Get returns the value stored at key. The second result reports whether
	// the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value at key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// SetIfAbsent stores value at key only when the key does not yet exist.
	// Returns true when the write happened. This is the store's conditional
	// write, used as the uniqueness guard for secondary index keys.
	SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error)

	// MGet returns the values for keys, aligned with the input order.
	// Absent keys yield a nil entry at their position.
	MGet(ctx context.Context, keys []string) ([][]byte, error)

	// GetByPrefix returns every key-value pair whose key starts with prefix.
	GetByPrefix(ctx context.Context, prefix string) ([]KeyValue, error)
}
