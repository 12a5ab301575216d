package sink

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/arloliu/rodb/errs"
)

// boltOpenTimeout bounds the wait for the database file lock.
const boltOpenTimeout = time.Second

// Bolt stores the container as a single value in a bbolt database.
type Bolt struct {
	db     *bbolt.DB
	bucket []byte
	key    []byte
}

var _ Sink = (*Bolt)(nil)

// OpenBolt opens (creating if needed) the bbolt database at path. Each Write
// stores the container under key in bucket, replacing the previous value.
func OpenBolt(path, bucket, key string) (*Bolt, error) {
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("%w: bolt bucket and key must be non-empty", errs.ErrInvalidSinkTarget)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("sink: open bolt %s: %w", path, err)
	}

	return &Bolt{db: db, bucket: []byte(bucket), key: []byte(key)}, nil
}

// Write stores data in one read-write transaction.
func (b *Bolt) Write(data []byte) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists(b.bucket)
		if err != nil {
			return err
		}

		return bkt.Put(b.key, data)
	})
	if err != nil {
		return fmt.Errorf("sink: bolt put %s/%s: %w", b.bucket, b.key, err)
	}

	return nil
}

// Read returns a copy of the stored container, or nil if nothing was written yet.
func (b *Bolt) Read() ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(b.bucket)
		if bkt == nil {
			return nil
		}
		if v := bkt.Get(b.key); v != nil {
			out = append([]byte(nil), v...)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sink: bolt get %s/%s: %w", b.bucket, b.key, err)
	}

	return out, nil
}

// Close releases the database.
func (b *Bolt) Close() error {
	return b.db.Close()
}
