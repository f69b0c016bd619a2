// Package chain defines the immutable block type shared by every miner
// variant and the content-addressed hash used as block identity.
package chain

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// MaxBlockSize is the largest size, in bytes, a mined block may claim.
const MaxBlockSize = 1 << 20 // 1 MiB

// Hash is a 128-bit content-derived block identifier. It is not a
// cryptographic digest; it exists only so that two blocks with identical
// fields collide to the same identity.
type Hash [16]byte

// Genesis is the sentinel previous-hash of the first block on any chain.
var Genesis = Hash{}

func (h Hash) String() string {
	return fmt.Sprintf("%x", [16]byte(h))
}

// IsGenesis reports whether h is the sentinel genesis identifier.
func (h Hash) IsGenesis() bool { return h == Genesis }

// Block is an immutable value: once constructed, none of its fields change.
// Identity is its Hash, computed at construction time from the other fields.
type Block struct {
	Hash       Hash
	PrevHash   Hash
	Height     int64
	Timestamp  float64
	MinerID    int
	Size       float64
	Difficulty float64
}

// New constructs a Block and computes its content hash. Height must already
// be prev.Height+1 for non-genesis blocks; New does not re-derive it.
func New(prev Hash, height int64, timestamp float64, minerID int, size, difficulty float64) Block {
	b := Block{
		PrevHash:   prev,
		Height:     height,
		Timestamp:  timestamp,
		MinerID:    minerID,
		Size:       size,
		Difficulty: difficulty,
	}
	b.Hash = hashBlock(b)
	return b
}

// NewGenesis constructs the height-zero sentinel block mined by no one.
func NewGenesis() Block {
	return New(Genesis, 0, 0, -1, 0, 1)
}

// hashBlock derives a 128-bit identity from a block's fields by running
// xxhash twice over the same serialization with domain-separated seeds: a
// content-derived identifier so that equal-content blocks collide, never
// an address-based identity.
func hashBlock(b Block) Hash {
	buf := make([]byte, 0, 16+8+8+8+8+8)
	buf = append(buf, b.PrevHash[:]...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(b.Height))
	buf = binary.BigEndian.AppendUint64(buf, uint64(int64(b.Timestamp*1e9)))
	buf = binary.BigEndian.AppendUint64(buf, uint64(int64(b.MinerID)))
	buf = binary.BigEndian.AppendUint64(buf, uint64(int64(b.Size*1e6)))
	buf = binary.BigEndian.AppendUint64(buf, uint64(int64(b.Difficulty*1e6)))

	var h Hash
	lo := xxhash.Sum64(append([]byte{'l', 'o'}, buf...))
	hi := xxhash.Sum64(append([]byte{'h', 'i'}, buf...))
	binary.BigEndian.PutUint64(h[0:8], lo)
	binary.BigEndian.PutUint64(h[8:16], hi)
	return h
}
