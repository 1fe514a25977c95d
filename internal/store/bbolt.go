package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	log "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"

	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/rsvp"
)

var bucketName = []byte("responses")

type BBoltStore struct {
	db  *bolt.DB
	now func() time.Time
}

var _ ResponseStore = (*BBoltStore)(nil)

func NewBBoltStore(path string) (*BBoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db at %s: %w", path, err)
	}

	// Reason: bucket must exist before any read/write operations
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating responses bucket: %w", err)
	}

	return &BBoltStore{db: db, now: time.Now}, nil
}

// itob encodes an id as a big-endian key so cursor order is id order.
func itob(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

func (s *BBoltStore) CreateResponse(_ context.Context, r rsvp.Response) (rsvp.Response, error) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("allocating response id: %w", err)
		}
		// Seeded ids may be ahead of the sequence.
		for b.Get(itob(int64(seq))) != nil {
			if seq, err = b.NextSequence(); err != nil {
				return fmt.Errorf("allocating response id: %w", err)
			}
		}

		r.ID = int64(seq)
		r.CreatedAt = rsvp.Timestamp{Time: s.now().UTC()}
		if r.DietaryRestrictions == nil {
			r.DietaryRestrictions = []string{}
		}

		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshaling response %d: %w", r.ID, err)
		}
		if err := b.Put(itob(r.ID), data); err != nil {
			return fmt.Errorf("writing response %d: %w", r.ID, err)
		}
		return nil
	})
	if err != nil {
		return rsvp.Response{}, err
	}
	return r, nil
}

func (s *BBoltStore) ListResponses(_ context.Context) ([]rsvp.Response, error) {
	responses := []rsvp.Response{}

	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketName).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var r rsvp.Response
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("unmarshaling response %d: %w", binary.BigEndian.Uint64(k), err)
			}
			responses = append(responses, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(responses, func(a, b rsvp.Response) int {
		return b.CreatedAt.Compare(a.CreatedAt.Time)
	})
	return responses, nil
}

// Seed loads responses with fixed ids, skipping ids that already exist.
// Records without an id get the next sequence value.
func (s *BBoltStore) Seed(responses []rsvp.Response) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		for _, r := range responses {
			if r.ID <= 0 {
				seq, err := b.NextSequence()
				if err != nil {
					return fmt.Errorf("allocating seed id: %w", err)
				}
				r.ID = int64(seq)
			}
			if b.Get(itob(r.ID)) != nil {
				log.WithField("id", r.ID).Debug("seed: response already exists, skipping")
				continue
			}
			if r.CreatedAt.IsZero() {
				r.CreatedAt = rsvp.Timestamp{Time: s.now().UTC()}
			}
			if r.DietaryRestrictions == nil {
				r.DietaryRestrictions = []string{}
			}
			data, err := json.Marshal(r)
			if err != nil {
				return fmt.Errorf("marshaling seed response %d: %w", r.ID, err)
			}
			if err := b.Put(itob(r.ID), data); err != nil {
				return fmt.Errorf("seeding response %d: %w", r.ID, err)
			}
			log.WithField("id", r.ID).Info("seeded response")
		}
		return nil
	})
}

func (s *BBoltStore) Close() error {
	return s.db.Close()
}
