// Package session keeps the admin credential between visits. A session id
// in a cookie points at the key stored in a bbolt bucket, so the key is
// read back at startup and survives restarts until the admin logs out.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("admin_sessions")

type Record struct {
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"created_at"`
}

type BBoltStore struct {
	db *bolt.DB
}

func NewBBoltStore(path string) (*BBoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening session db at %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating sessions bucket: %w", err)
	}

	s := &BBoltStore{db: db}
	if n, err := s.count(); err == nil {
		log.WithField("count", n).Info("admin sessions loaded")
	}
	return s, nil
}

// Create stores key under a fresh session id and returns the id.
func (s *BBoltStore) Create(_ context.Context, key string) (string, error) {
	id := uuid.NewString()
	data, err := json.Marshal(Record{Key: key, CreatedAt: time.Now().UTC()})
	if err != nil {
		return "", fmt.Errorf("marshaling session: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(id), data)
	})
	if err != nil {
		return "", fmt.Errorf("writing session: %w", err)
	}
	return id, nil
}

// Get returns the stored key, or ok=false when the session is unknown.
func (s *BBoltStore) Get(_ context.Context, id string) (string, bool, error) {
	if id == "" {
		return "", false, nil
	}

	var rec *Record
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketName).Get([]byte(id))
		if data == nil {
			return nil
		}
		var r Record
		if err := json.Unmarshal(data, &r); err != nil {
			return fmt.Errorf("unmarshaling session: %w", err)
		}
		rec = &r
		return nil
	})
	if err != nil {
		return "", false, err
	}
	if rec == nil {
		return "", false, nil
	}
	return rec.Key, true, nil
}

// Delete forgets the session. Deleting an unknown id is not an error.
func (s *BBoltStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(id))
	})
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (s *BBoltStore) count() (int, error) {
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketName).Stats().KeyN
		return nil
	})
	return n, err
}

func (s *BBoltStore) Close() error {
	return s.db.Close()
}
