package gost2

import (
	"encoding/binary"

	"github.com/idelchi/gost2/pkg/keyhash"
)

// ScheduleWords is the number of 64-bit subkeys in a schedule.
const ScheduleWords = 64

// Schedule is the 4096-bit subkey schedule consumed by the round function.
type Schedule [ScheduleWords]uint64

// NewSchedule reads the digest as 64 consecutive big-endian words.
func NewSchedule(digest *keyhash.Digest) Schedule {
	var s Schedule

	for i := range s {
		s[i] = binary.BigEndian.Uint64(digest[8*i:])
	}

	return s
}

// DeriveSchedule hashes password and expands the digest into a schedule.
// The digest is wiped before returning. An empty password is valid.
func DeriveSchedule(password []byte) Schedule {
	digest := keyhash.Sum(password)
	schedule := NewSchedule(&digest)

	clear(digest[:])

	return schedule
}

// Wipe zeroes every subkey.
func (s *Schedule) Wipe() {
	clear(s[:])
}
