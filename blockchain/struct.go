package blockchain

import (
	"context"
)

// HashSize is the size in bytes of a block digest. Hashes are carried as
// lowercase hex, so their string form is twice as long.
const HashSize = 32

// DefaultDifficulty is the number of leading '0' hex characters a mined
// block hash needs.
const DefaultDifficulty = 2

// State tracks where a block is in the mining state machine.
type State int

const (
	Unmined State = iota
	Searching
	// Mined means the hash met the difficulty.
	Mined
	// Abandoned means the attempt bound was hit and the last computed hash
	// was accepted without meeting the difficulty.
	Abandoned
	// Genesis is the seed block; it is hashed but never searched.
	Genesis
)

func (s State) String() string {
	switch s {
	case Unmined:
		return "unmined"
	case Searching:
		return "searching"
	case Mined:
		return "mined"
	case Abandoned:
		return "abandoned"
	case Genesis:
		return "genesis"
	}
	return "unknown"
}

// Solver turns a candidate header into a block. mining.Miner is the
// implementation used by the chain.
type Solver interface {
	SolveContext(ctx context.Context, header *Header) (*Block, error)
}
