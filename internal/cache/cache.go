// Package cache keeps segmentation results in a bbolt database, keyed by
// engine, dictionary and text.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
)

var bucketTokens = []byte("tokens")

type Store struct {
	db *bbolt.DB
}

// Open opens or creates a cache database at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open token cache: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketTokens); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketTokens, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Key derives the cache key for a segmentation request. variant
// distinguishes settings that change results, such as the dictionary.
func Key(engine, variant, text string) []byte {
	h := sha256.New()
	h.Write([]byte(engine))
	h.Write([]byte{0})
	h.Write([]byte(variant))
	h.Write([]byte{0})
	h.Write([]byte(text))
	sum := h.Sum(nil)
	key := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(key, sum)
	return key
}

// Get returns the cached tokens for key, if any.
func (s *Store) Get(key []byte) ([]string, bool, error) {
	var tokens []string
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketTokens).Get(key)
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &tokens)
	})
	if err != nil {
		return nil, false, fmt.Errorf("token cache: %w", err)
	}
	return tokens, found, nil
}

// Put stores tokens for key.
func (s *Store) Put(key []byte, tokens []string) error {
	data, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketTokens).Put(key, data)
	})
}

// Len returns the number of cached entries.
func (s *Store) Len() (int, error) {
	n := 0
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketTokens).Stats().KeyN
		return nil
	})
	return n, err
}
