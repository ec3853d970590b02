package game

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketPlayers = []byte("players")
	bucketParties = []byte("parties")
)

// Store persists player and party records in a single bbolt file. Every
// mutating command runs inside one Update transaction, which both
// serializes game-state writes and guarantees that a failed command leaves
// no partial save behind.
type Store struct {
	db *bolt.DB
}

// OpenStore opens or creates the database file.
func OpenStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketPlayers, bucketParties} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Update runs fn in a writable transaction. Any error rolls the whole
// transaction back.
func (s *Store) Update(fn func(tx *Tx) error) error {
	return s.db.Update(func(btx *bolt.Tx) error {
		return fn(&Tx{tx: btx})
	})
}

// View runs fn in a read-only transaction.
func (s *Store) View(fn func(tx *Tx) error) error {
	return s.db.View(func(btx *bolt.Tx) error {
		return fn(&Tx{tx: btx})
	})
}

// Tx exposes typed record access on top of a bbolt transaction.
type Tx struct {
	tx *bolt.Tx
}

// Player loads and normalizes a record. A missing player yields a NotFound
// error with a player-facing message.
func (t *Tx) Player(name string) (*PlayerRecord, error) {
	data := t.tx.Bucket(bucketPlayers).Get([]byte(name))
	if data == nil {
		return nil, E(KindNotFound, "Player '%s' does not exist.", name)
	}
	var record PlayerRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode player %s: %w", name, err)
	}
	record.normalize()
	return &record, nil
}

// PlayerExists reports whether a record is present without decoding it.
func (t *Tx) PlayerExists(name string) bool {
	return t.tx.Bucket(bucketPlayers).Get([]byte(name)) != nil
}

// SavePlayer writes the record back under its name.
func (t *Tx) SavePlayer(record *PlayerRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode player %s: %w", record.Name, err)
	}
	if err := t.tx.Bucket(bucketPlayers).Put([]byte(record.Name), data); err != nil {
		return fmt.Errorf("save player %s: %w", record.Name, err)
	}
	return nil
}

// EachPlayer visits every player record in key order.
func (t *Tx) EachPlayer(fn func(record *PlayerRecord) error) error {
	return t.tx.Bucket(bucketPlayers).ForEach(func(_, data []byte) error {
		var record PlayerRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return fmt.Errorf("decode player record: %w", err)
		}
		record.normalize()
		return fn(&record)
	})
}

// Party loads a party record.
func (t *Tx) Party(id string) (*PartyRecord, error) {
	data := t.tx.Bucket(bucketParties).Get([]byte(id))
	if data == nil {
		return nil, E(KindNotFound, "The party no longer exists.")
	}
	var record PartyRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode party %s: %w", id, err)
	}
	return &record, nil
}

// SaveParty writes the party record back under its id.
func (t *Tx) SaveParty(record *PartyRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode party %s: %w", record.ID, err)
	}
	if err := t.tx.Bucket(bucketParties).Put([]byte(record.ID), data); err != nil {
		return fmt.Errorf("save party %s: %w", record.ID, err)
	}
	return nil
}

// DeleteParty removes a party record.
func (t *Tx) DeleteParty(id string) error {
	if err := t.tx.Bucket(bucketParties).Delete([]byte(id)); err != nil {
		return fmt.Errorf("delete party %s: %w", id, err)
	}
	return nil
}
