package snapshot

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/fundalabs/funda/core"
)

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
    collection TEXT PRIMARY KEY,
    blob       JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// postgresStore keeps each collection as one JSONB row. Same contract as the
// file store; it exists for deployments where local disk is not durable.
type postgresStore struct {
	db *sqlx.DB
}

var _ core.SnapshotStore = (*postgresStore)(nil)

func NewPostgresStore(url string) (core.SnapshotStore, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to snapshot database")
	}
	if err = ping(db); err != nil {
		return nil, err
	}
	if _, err = db.Exec(snapshotSchema); err != nil {
		return nil, errors.Wrap(err, "creating snapshots table")
	}
	return &postgresStore{db: db}, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}
	return errors.Wrap(err, "DB ping timeout")
}

func (s *postgresStore) Load(key string) ([]byte, error) {
	var blob []byte
	err := s.db.Get(&blob, "SELECT blob FROM snapshots WHERE collection = $1", key)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "loading snapshot %q", key)
	}
	return blob, nil
}

func (s *postgresStore) Save(key string, blob []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO snapshots (collection, blob, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (collection) DO UPDATE SET blob = EXCLUDED.blob, updated_at = now()`,
		key, blob,
	)
	return errors.Wrapf(err, "saving snapshot %q", key)
}
