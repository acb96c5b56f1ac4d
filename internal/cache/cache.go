// Package cache remembers rendered pages between builds in a bbolt database.
//
// Each entry maps an output path to the digest of everything that went into
// the page, followed by the page itself. A build whose inputs did not change
// replays the stored page instead of converting the markdown again.
package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/alnah/go-mdsite/internal/fileutil"
)

// ErrLocked indicates another process holds the cache database.
var ErrLocked = errors.New("build cache is locked")

const (
	bucketMeta  = "meta"
	bucketPages = "pages"

	keyVersion = "version"

	// schemaVersion changes whenever the value layout does.
	schemaVersion = "1"

	openTimeout = time.Second
	dbFileMode  = 0o600
)

// DigestSize is the length of digests produced by Digest.
const DigestSize = sha256.Size

// initDB holds the steps run in one transaction when the database opens.
var initDB = map[string]func(*bolt.Tx) error{
	"initialize page table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketPages))
		return err
	},
	"check schema version": func(tx *bolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists([]byte(bucketMeta))
		if err != nil {
			return err
		}
		if string(meta.Get([]byte(keyVersion))) == schemaVersion {
			return nil
		}
		if err := tx.DeleteBucket([]byte(bucketPages)); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		if _, err := tx.CreateBucket([]byte(bucketPages)); err != nil {
			return err
		}
		return meta.Put([]byte(keyVersion), []byte(schemaVersion))
	},
}

// initOrder runs table creation before the version check that may reset it.
var initOrder = []string{"initialize page table", "check schema version"}

// Store is a page cache backed by a single bbolt file.
// It is safe for concurrent use.
type Store struct {
	db   *bolt.DB
	path string
}

// Open opens or creates the cache database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), fileutil.DirPermissions); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := bolt.Open(path, dbFileMode, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, path)
		}
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range initOrder {
			if err := initDB[name](tx); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Lookup returns the stored page for key when its digest matches.
func (s *Store) Lookup(key string, digest []byte) ([]byte, bool, error) {
	var (
		page  []byte
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketPages)).Get([]byte(key))
		if len(v) < DigestSize || !bytes.Equal(v[:DigestSize], digest) {
			return nil
		}
		// Values are only valid inside the transaction.
		page = append([]byte(nil), v[DigestSize:]...)
		found = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return page, found, nil
}

// Record stores page under key together with its digest.
// Concurrent calls are coalesced into shared transactions.
func (s *Store) Record(key string, digest, page []byte) error {
	if len(digest) != DigestSize {
		return fmt.Errorf("digest must be %d bytes, got %d", DigestSize, len(digest))
	}
	value := make([]byte, 0, DigestSize+len(page))
	value = append(value, digest...)
	value = append(value, page...)

	return s.db.Batch(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketPages)).Put([]byte(key), value)
	})
}

// Prune deletes every entry whose key is not in keep and returns how many
// were removed.
func (s *Store) Prune(keep map[string]bool) (int, error) {
	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPages))
		var stale [][]byte
		err := b.ForEach(func(k, _ []byte) error {
			if !keep[string(k)] {
				stale = append(stale, bytes.Clone(k))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	return removed, err
}

// Len returns the number of cached pages.
func (s *Store) Len() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(bucketPages)).Stats().KeyN
		return nil
	})
	return n, err
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// Digest hashes parts with a length prefix on each, so ("ab", "c") and
// ("a", "bc") differ.
func Digest(parts ...string) []byte {
	h := sha256.New()
	var size [binary.MaxVarintLen64]byte
	for _, p := range parts {
		n := binary.PutUvarint(size[:], uint64(len(p)))
		h.Write(size[:n])
		h.Write([]byte(p))
	}
	return h.Sum(nil)
}
