// Package store persists market state in a bbolt database. Shares and
// holder positions get their own buckets with big-endian keys so id
// scans iterate in order; the remaining engine state travels as one gob
// blob in a meta bucket.
package store

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/sharesorg/libshares-go/market"
)

var (
	bucketShares    = []byte("shares")
	bucketPositions = []byte("positions")
	bucketNames     = []byte("names")
	bucketMeta      = []byte("meta")
)

var keyMeta = []byte("state")

// meta is the engine state outside the share and position buckets.
type meta struct {
	Owner                market.Address
	PendingOwner         *market.Address
	Signer               []byte
	Params               market.Params
	UnrestrictedCreation bool
	CreatorsAllowed      []market.Address
	CurveAllowed         map[string]bool
	NextID               market.ShareID
	PlatformPool         uint64
}

// Store wraps a bbolt database holding one market's state.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the bbolt database at dbPath. The parent
// directory is created if it does not exist.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketShares, bucketPositions, bucketNames, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// SaveState writes a full market snapshot, replacing whatever was saved
// before.
func (s *Store) SaveState(st *market.State) error {
	if st == nil {
		return fmt.Errorf("%w: state", ErrNilParam)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketShares, bucketPositions, bucketNames} {
			if err := tx.DeleteBucket(name); err != nil {
				return fmt.Errorf("reset bucket %q: %w", name, err)
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return fmt.Errorf("recreate bucket %q: %w", name, err)
			}
		}

		sb := tx.Bucket(bucketShares)
		nb := tx.Bucket(bucketNames)
		for _, ss := range st.Shares {
			data, err := encodeGob(&ss)
			if err != nil {
				return fmt.Errorf("encode share %d: %w", ss.ID, err)
			}
			if err := sb.Put(idKey(ss.ID), data); err != nil {
				return fmt.Errorf("put share %d: %w", ss.ID, err)
			}
			if err := nb.Put([]byte(ss.Name), idKey(ss.ID)); err != nil {
				return fmt.Errorf("put name %q: %w", ss.Name, err)
			}
		}

		pb := tx.Bucket(bucketPositions)
		for _, ps := range st.Positions {
			data, err := encodeGob(&ps)
			if err != nil {
				return fmt.Errorf("encode position: %w", err)
			}
			if err := pb.Put(positionKey(ps.ShareID, ps.Holder), data); err != nil {
				return fmt.Errorf("put position: %w", err)
			}
		}

		data, err := encodeGob(&meta{
			Owner:                st.Owner,
			PendingOwner:         st.PendingOwner,
			Signer:               st.Signer,
			Params:               st.Params,
			UnrestrictedCreation: st.UnrestrictedCreation,
			CreatorsAllowed:      st.CreatorsAllowed,
			CurveAllowed:         st.CurveAllowed,
			NextID:               st.NextID,
			PlatformPool:         st.PlatformPool,
		})
		if err != nil {
			return fmt.Errorf("encode meta: %w", err)
		}
		return tx.Bucket(bucketMeta).Put(keyMeta, data)
	})
}

// LoadState reads the saved market snapshot. ErrNoState means nothing
// was ever saved.
func (s *Store) LoadState() (*market.State, error) {
	st := &market.State{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketMeta).Get(keyMeta)
		if raw == nil {
			return ErrNoState
		}
		var md meta
		if err := decodeGob(raw, &md); err != nil {
			return fmt.Errorf("%w: meta: %v", ErrCorruptRecord, err)
		}
		st.Owner = md.Owner
		st.PendingOwner = md.PendingOwner
		st.Signer = md.Signer
		st.Params = md.Params
		st.UnrestrictedCreation = md.UnrestrictedCreation
		st.CreatorsAllowed = md.CreatorsAllowed
		st.CurveAllowed = md.CurveAllowed
		st.NextID = md.NextID
		st.PlatformPool = md.PlatformPool

		err := tx.Bucket(bucketShares).ForEach(func(_, v []byte) error {
			var ss market.ShareState
			if err := decodeGob(v, &ss); err != nil {
				return fmt.Errorf("%w: share: %v", ErrCorruptRecord, err)
			}
			st.Shares = append(st.Shares, ss)
			return nil
		})
		if err != nil {
			return err
		}

		return tx.Bucket(bucketPositions).ForEach(func(_, v []byte) error {
			var ps market.PositionState
			if err := decodeGob(v, &ps); err != nil {
				return fmt.Errorf("%w: position: %v", ErrCorruptRecord, err)
			}
			st.Positions = append(st.Positions, ps)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// ShareIDByName resolves a share name against the name index without
// decoding the full state. Returns 0 when the name is unknown.
func (s *Store) ShareIDByName(name string) (market.ShareID, error) {
	var id market.ShareID
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketNames).Get([]byte(name))
		if raw == nil {
			return nil
		}
		if len(raw) != 8 {
			return fmt.Errorf("%w: name index", ErrCorruptRecord)
		}
		id = market.ShareID(binary.BigEndian.Uint64(raw))
		return nil
	})
	return id, err
}

// idKey encodes a share id as an 8-byte big-endian key for sorted
// storage.
func idKey(id market.ShareID) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(id))
	return k
}

// positionKey is the share id followed by the holder address.
func positionKey(id market.ShareID, holder market.Address) []byte {
	k := make([]byte, 8+len(holder))
	binary.BigEndian.PutUint64(k[:8], uint64(id))
	copy(k[8:], holder[:])
	return k
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
