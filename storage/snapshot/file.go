package snapshot

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/fundalabs/funda/core"
)

// fileStore persists each collection as <dir>/<key>.json.
type fileStore struct {
	dir string
}

var _ core.SnapshotStore = (*fileStore)(nil)

func NewFileStore(dir string) (core.SnapshotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating snapshot dir")
	}
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *fileStore) Load(key string) ([]byte, error) {
	blob, err := ioutil.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "loading snapshot %q", key)
	}
	return blob, nil
}

func (s *fileStore) Save(key string, blob []byte) error {
	// write-then-rename so readers never see a partial document
	tmp, err := ioutil.TempFile(s.dir, key+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "saving snapshot %q", key)
	}
	if _, err = tmp.Write(blob); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "saving snapshot %q", key)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "saving snapshot %q", key)
	}
	return errors.Wrapf(os.Rename(tmp.Name(), s.path(key)), "saving snapshot %q", key)
}
