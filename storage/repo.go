package storage

// KeyValue is the durable, origin-scoped key-value store that survives page
// reloads - distinct from the session attributes, which the server can
// rewrite. The persisted identity and the refresh counter live here.
type KeyValue interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)

	// Set stores value under key, overwriting any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}
