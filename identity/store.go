package identity

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/zendworks/go-session-keeper/storage"
)

// UserKey is the durable key the serialized identity persists under.
const UserKey = "user"

// Store persists the resolved identity so it survives reloads and serves as
// the fallback when the identity endpoint is unreachable.
type Store struct {
	kv storage.KeyValue
}

// NewStore creates a Store over the given key-value store.
func NewStore(kv storage.KeyValue) (*Store, error) {
	if kv == nil {
		return nil, errors.New("[NewStore] key-value store is required")
	}
	return &Store{kv: kv}, nil
}

// Save overwrites the persisted identity wholesale.
func (s *Store) Save(id Identity) error {
	data, err := json.Marshal(id)
	if err != nil {
		return errors.Wrap(err, "[Store.Save] marshal identity")
	}
	if err := s.kv.Set(UserKey, string(data)); err != nil {
		return errors.Wrap(err, "[Store.Save] persist identity")
	}
	return nil
}

// Load returns the cached identity and whether one was present. Malformed
// stored data behaves as absent, never as an error.
func (s *Store) Load() (Identity, bool) {
	value, ok, err := s.kv.Get(UserKey)
	if err != nil || !ok {
		return Identity{}, false
	}
	var cached Identity
	if err := json.Unmarshal([]byte(value), &cached); err != nil {
		return Identity{}, false
	}
	return cached, true
}

// Clear removes the persisted identity.
func (s *Store) Clear() error {
	return errors.Wrap(s.kv.Delete(UserKey), "[Store.Clear] delete identity")
}
