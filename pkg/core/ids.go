package core

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/google/uuid"
)

// maxSafeID keeps ids within the 53-bit range that survives a round trip through JSON numbers.
const maxSafeID = 1<<53 - 1

// maxIDAttempts bounds how many candidates are drawn before giving up.
const maxIDAttempts = 16

// IDGenerator produces candidate note ids. Candidates are checked against the
// current collection before acceptance, so a generator may repeat itself.
type IDGenerator func() int64

// RandomID draws a positive 53-bit id from a random (v4) UUID.
func RandomID() int64 {
	u := uuid.New()
	return int64(binary.BigEndian.Uint64(u[:8]) & maxSafeID)
}

// SequentialID returns a generator counting up from start.
func SequentialID(start int64) IDGenerator {
	next := start - 1
	return func() int64 {
		return atomic.AddInt64(&next, 1)
	}
}

// nextID draws candidates until one is positive and unused.
func nextID(gen IDGenerator, notes []Note) (int64, error) {
	taken := make(map[int64]struct{}, len(notes))
	for _, n := range notes {
		taken[n.ID] = struct{}{}
	}
	for range maxIDAttempts {
		id := gen()
		if id <= 0 || id > maxSafeID {
			continue
		}
		if _, ok := taken[id]; !ok {
			return id, nil
		}
	}
	return 0, ErrIDSpaceExhausted
}
