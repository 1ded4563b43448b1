// Package boltcache implements ports.ResultCache using bbolt (embedded
// B+ tree), so high-confidence interpretations survive process restarts —
// the one-shot CLI would otherwise start cold on every invocation.
// Writes are transactional; a crash mid-write cannot corrupt previously
// committed entries.
//
// The catalog fingerprint is stored alongside the entries. Opening the
// cache with a different fingerprint wipes it wholesale: a cached command
// is only valid against the catalog that produced it.
package boltcache

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/corey/hark/internal/ports"
)

// Bucket and key names
var (
	bucketResults  = []byte("results")
	bucketMeta     = []byte("meta")
	keyFingerprint = []byte("fingerprint")
)

// entry is the JSON-serialized form of one cached interpretation.
// Seq is a monotonic insertion counter used for oldest-first eviction.
type entry struct {
	Command    ports.Command `json:"command"`
	InsertedAt time.Time     `json:"inserted_at"`
	Seq        uint64        `json:"seq"`
}

// Cache implements ports.ResultCache backed by bbolt.
type Cache struct {
	db       *bolt.DB
	capacity int
	log      *zap.Logger
}

// New opens (or creates) the cache database at path. If the stored
// catalog fingerprint differs from fingerprint, every entry is dropped
// before the cache is returned.
func New(path string, capacity int, fingerprint string, log *zap.Logger) (*Cache, error) {
	if capacity < 1 {
		capacity = 1
	}
	if log == nil {
		log = zap.NewNop()
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("boltcache open: %w", err)
	}

	c := &Cache{db: db, capacity: capacity, log: log}
	if err := c.reconcile(fingerprint); err != nil {
		db.Close()
		return nil, fmt.Errorf("boltcache reconcile: %w", err)
	}
	return c, nil
}

// reconcile ensures buckets exist and wipes stale entries when the
// catalog fingerprint has changed since the cache was written.
func (c *Cache) reconcile(fingerprint string) error {
	fp := []byte(fingerprint)

	return c.db.Update(func(tx *bolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketResults); err != nil {
			return err
		}

		stored := meta.Get(keyFingerprint)
		if stored != nil && string(stored) != fingerprint {
			c.log.Info("catalog fingerprint changed, wiping result cache")
			if err := tx.DeleteBucket(bucketResults); err != nil {
				return err
			}
			if _, err := tx.CreateBucketIfNotExists(bucketResults); err != nil {
				return err
			}
		}
		return meta.Put(keyFingerprint, fp)
	})
}

// Lookup returns the cached command for a normalized input string.
// Storage errors degrade to a miss; the interpreter recomputes.
func (c *Cache) Lookup(normalized string) (ports.Command, bool) {
	var data []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		// Copy bytes out of the transaction (bbolt slices are only
		// valid within tx).
		if v := tx.Bucket(bucketResults).Get([]byte(normalized)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		c.log.Warn("cache lookup failed", zap.Error(err))
		return ports.Command{}, false
	}
	if data == nil {
		return ports.Command{}, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		c.log.Warn("cache entry corrupt, treating as miss", zap.Error(err))
		return ports.Command{}, false
	}
	return e.Command, true
}

// Insert stores a command, evicting the oldest entry when the cap is
// exceeded. Storage errors are logged and swallowed: the cache is an
// accelerator, never a correctness dependency.
func (c *Cache) Insert(normalized string, cmd ports.Command) {
	err := c.db.Update(func(tx *bolt.Tx) error {
		rb := tx.Bucket(bucketResults)
		seq, err := rb.NextSequence()
		if err != nil {
			return err
		}

		data, err := json.Marshal(entry{Command: cmd, InsertedAt: time.Now(), Seq: seq})
		if err != nil {
			return err
		}

		key := []byte(normalized)
		if rb.Get(key) == nil && keyCount(rb) >= c.capacity {
			if err := evictOldest(rb); err != nil {
				return err
			}
		}
		return rb.Put(key, data)
	})
	if err != nil {
		c.log.Warn("cache insert failed", zap.Error(err))
	}
}

// keyCount walks the bucket with a cursor so tx-local writes are counted.
func keyCount(rb *bolt.Bucket) int {
	n := 0
	c := rb.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		n++
	}
	return n
}

// evictOldest removes the entry with the smallest insertion sequence.
func evictOldest(rb *bolt.Bucket) error {
	var (
		oldestKey []byte
		oldestSeq uint64
		found     bool
	)
	err := rb.ForEach(func(k, v []byte) error {
		var e entry
		if err := json.Unmarshal(v, &e); err != nil {
			// Corrupt entry: evict it first.
			oldestKey = append([]byte(nil), k...)
			oldestSeq = 0
			found = true
			return nil
		}
		if !found || e.Seq < oldestSeq {
			oldestKey = append([]byte(nil), k...)
			oldestSeq = e.Seq
			found = true
		}
		return nil
	})
	if err != nil || !found {
		return err
	}
	return rb.Delete(oldestKey)
}

// Purge drops every entry but keeps the fingerprint.
func (c *Cache) Purge() {
	err := c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketResults); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketResults)
		return err
	})
	if err != nil {
		c.log.Warn("cache purge failed", zap.Error(err))
	}
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	n := 0
	err := c.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketResults).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0
	}
	return n
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
