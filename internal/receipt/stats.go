package receipt

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	statsBucketName = "stats"
	countersKey     = "counters"
)

// Stats are the running usage counters of the service
type Stats struct {
	TotalFiles int `json:"total_files"`
	Success    int `json:"success"`
	Failed     int `json:"failed"`
}

// StatsStore persists usage counters across restarts
type StatsStore interface {
	// Bump increments the counters for one processed file
	Bump(success bool) error

	// Snapshot returns the current counter values
	Snapshot() (Stats, error)

	// Close closes the store
	Close() error
}

// BoltStats implements StatsStore on BoltDB. Each Bump is a single update
// transaction, so concurrent requests cannot lose increments.
type BoltStats struct {
	db *bbolt.DB
}

// NewBoltStats creates a new BoltStats instance
func NewBoltStats(path string) (*BoltStats, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(statsBucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltStats{db: db}, nil
}

// Bump increments the counters for one processed file
func (b *BoltStats) Bump(success bool) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(statsBucketName))

		stats := decodeStats(bucket.Get([]byte(countersKey)))

		stats.TotalFiles++
		if success {
			stats.Success++
		} else {
			stats.Failed++
		}

		data, err := json.Marshal(stats)
		if err != nil {
			return fmt.Errorf("marshaling stats: %w", err)
		}
		return bucket.Put([]byte(countersKey), data)
	})
}

// Snapshot returns the current counter values
func (b *BoltStats) Snapshot() (Stats, error) {
	var stats Stats
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(statsBucketName))
		stats = decodeStats(bucket.Get([]byte(countersKey)))
		return nil
	})
	if err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// Close closes the store
func (b *BoltStats) Close() error {
	return b.db.Close()
}

// decodeStats unmarshals stored counters, treating a missing or corrupt
// record as zero counters rather than failing the request.
func decodeStats(data []byte) Stats {
	if data == nil {
		return Stats{}
	}
	var stats Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return Stats{}
	}
	return stats
}
