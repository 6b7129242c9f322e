package ports

// LookupCache is the in-process store the lookup pipeline reads through.
// Implementations must be safe for concurrent use.
type LookupCache[V any] interface {
	// Get returns the value for key. ok=false when the key is absent or stale.
	Get(key string) (value V, ok bool)
	// Set inserts or overwrites key with a fresh insertion time.
	Set(key string, value V)
	// Len reports stored keys, stale ones included.
	Len() int
}
