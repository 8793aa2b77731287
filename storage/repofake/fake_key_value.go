package fakekeyvalue

import (
	"sync"

	"github.com/zendworks/go-session-keeper/storage"
)

var _ storage.KeyValue = (*FakeKeyValue)(nil)

// FakeKeyValue is an in-memory key-value store for tests.
type FakeKeyValue struct {
	values map[string]string
	lock   sync.RWMutex
}

func New() *FakeKeyValue {
	return &FakeKeyValue{values: make(map[string]string)}
}

func (kv *FakeKeyValue) Get(key string) (string, bool, error) {
	kv.lock.RLock()
	defer kv.lock.RUnlock()

	value, ok := kv.values[key]
	return value, ok, nil
}

func (kv *FakeKeyValue) Set(key, value string) error {
	kv.lock.Lock()
	defer kv.lock.Unlock()

	kv.values[key] = value
	return nil
}

func (kv *FakeKeyValue) Delete(key string) error {
	kv.lock.Lock()
	defer kv.lock.Unlock()

	delete(kv.values, key)
	return nil
}

// Len reports the number of stored keys.
func (kv *FakeKeyValue) Len() int {
	kv.lock.RLock()
	defer kv.lock.RUnlock()

	return len(kv.values)
}
