package cachestore

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("cache")

// BoltStore is an embedded bbolt-backed Store. Entries carry an expiry
// envelope and are removed lazily on read.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the bolt file at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open cache store")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "init cache bucket")
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Set(key string, value []byte, ttl time.Duration) error {
	e := entry{Value: value}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}
	data, err := jsoniter.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "encode cache entry")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), data)
	})
}

func (s *BoltStore) Get(key string) ([]byte, error) {
	var value []byte
	var expiredKey bool
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketName).Get([]byte(key))
		if raw == nil {
			return nil
		}
		var e entry
		if err := jsoniter.Unmarshal(raw, &e); err != nil {
			return errors.Wrap(err, "decode cache entry")
		}
		if e.expired(time.Now()) {
			expiredKey = true
			return nil
		}
		// non-nil even for zero-length values; nil means absent
		value = make([]byte, len(e.Value))
		copy(value, e.Value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if expiredKey {
		_ = s.Delete(key)
	}
	return value, nil
}

func (s *BoltStore) Exists(key string) (bool, error) {
	v, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return v != nil, nil
}

func (s *BoltStore) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
