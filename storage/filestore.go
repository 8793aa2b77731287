package storage

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/pkg/errors"
)

var _ KeyValue = (*FileStore)(nil)

// FileStore persists the key-value map as a single JSON file, standing in for
// the browser's localStorage. Reads and writes go through the file on every
// call so a restarted process observes the previous state.
type FileStore struct {
	path string
	lock sync.Mutex
}

// NewFileStore creates a FileStore at the given path. A missing file behaves
// as an empty store until the first Set.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("[NewFileStore] path is required")
	}
	return &FileStore{path: path}, nil
}

func (fs *FileStore) Get(key string) (string, bool, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	values, err := fs.load()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (fs *FileStore) Set(key, value string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	values, err := fs.load()
	if err != nil {
		return err
	}
	values[key] = value
	return fs.save(values)
}

func (fs *FileStore) Delete(key string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	values, err := fs.load()
	if err != nil {
		return err
	}
	delete(values, key)
	return fs.save(values)
}

func (fs *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[FileStore.load] read store file")
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		// A corrupt store file is recoverable state, not fatal.
		return map[string]string{}, nil
	}
	return values, nil
}

func (fs *FileStore) save(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return errors.Wrap(err, "[FileStore.save] marshal store")
	}
	if err := os.WriteFile(fs.path, data, 0o600); err != nil {
		return errors.Wrap(err, "[FileStore.save] write store file")
	}
	return nil
}
