package credentials

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

var _ AttributeStore = (*FileStore)(nil)

// FileStore keeps the attribute string in a local file, standing in for the
// browser cookie jar. The login flow (or an operator) writes the file; this
// client reads it on every snapshot and rewrites it on logout. A missing file
// is the anonymous state, not an error.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at the given path.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("[NewFileStore] path is required")
	}
	return &FileStore{path: path}, nil
}

func (fs *FileStore) Read() (string, error) {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "[FileStore.Read] read attribute file")
	}
	return strings.TrimSpace(string(data)), nil
}

func (fs *FileStore) Expire(name string) error {
	raw, err := fs.Read()
	if err != nil {
		return errors.Wrap(err, "[FileStore.Expire] read before rewrite")
	}

	kept := make([]string, 0)
	for _, entry := range strings.Split(raw, ";") {
		key, _, found := strings.Cut(entry, "=")
		if !found {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), name) {
			continue
		}
		kept = append(kept, strings.TrimSpace(entry))
	}

	rewritten := strings.Join(kept, "; ")
	if err := os.WriteFile(fs.path, []byte(rewritten), 0o600); err != nil {
		return errors.Wrap(err, "[FileStore.Expire] rewrite attribute file")
	}
	return nil
}
