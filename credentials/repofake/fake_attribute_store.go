package fakeattributestore

import (
	"strings"
	"sync"

	"github.com/zendworks/go-session-keeper/credentials"
)

var _ credentials.AttributeStore = (*FakeAttributeStore)(nil)

// FakeAttributeStore is an in-memory attribute store for tests and demos.
type FakeAttributeStore struct {
	raw  string
	lock sync.RWMutex
}

func New(raw string) *FakeAttributeStore {
	return &FakeAttributeStore{raw: raw}
}

func (as *FakeAttributeStore) Read() (string, error) {
	as.lock.RLock()
	defer as.lock.RUnlock()

	return as.raw, nil
}

// SetRaw replaces the whole attribute string, simulating an out-of-band write
// by a server response.
func (as *FakeAttributeStore) SetRaw(raw string) {
	as.lock.Lock()
	defer as.lock.Unlock()

	as.raw = raw
}

func (as *FakeAttributeStore) Expire(name string) error {
	as.lock.Lock()
	defer as.lock.Unlock()

	kept := make([]string, 0)
	for _, entry := range strings.Split(as.raw, ";") {
		key, _, found := strings.Cut(entry, "=")
		if !found || strings.EqualFold(strings.TrimSpace(key), name) {
			continue
		}
		kept = append(kept, strings.TrimSpace(entry))
	}
	as.raw = strings.Join(kept, "; ")
	return nil
}
