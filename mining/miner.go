package mining

import (
	"context"
	"time"

	bc "powchain/blockchain"

	"go.dedis.ch/onet/v3/log"
)

// ProgressFunc is called after every hash evaluation.
type ProgressFunc func(attempt uint64, hash string)

// Miner searches for a nonce that gives a header's hash enough leading
// zeros.
type Miner struct {
	// Difficulty is the number of leading '0' hex characters required.
	Difficulty int
	// MaxAttempts bounds the search. Once the attempt counter exceeds it
	// the last hash is accepted and the block is Abandoned. 0 searches
	// until the difficulty is met.
	MaxAttempts uint64
	// PacingDelay is slept before an Abandoned block is returned.
	PacingDelay time.Duration
	// Progress, when set, observes every attempt.
	Progress ProgressFunc
}

// New returns an unbounded miner for difficulty.
func New(difficulty int) *Miner {
	return &Miner{Difficulty: difficulty}
}

// Solve mines header to completion.
func (m *Miner) Solve(header *bc.Header) *bc.Block {
	block, err := m.SolveContext(context.Background(), header)
	if err != nil {
		log.Fatal("unexpected mining failure:", err)
	}
	return block
}

// SolveContext mines header until the hash meets the difficulty, the
// attempt bound is exceeded, or ctx is done. header is not modified.
func (m *Miner) SolveContext(ctx context.Context, header *bc.Header) (*bc.Block, error) {
	var attempts uint64
	for nonce := uint64(0); ; nonce++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			// Non-blocking select to fall through
		}
		hash := header.CalculateHash(nonce)
		attempts++
		if m.Progress != nil {
			m.Progress(attempts, hash)
		}
		if bc.MeetsDifficulty(hash, m.Difficulty) {
			log.Lvlf2("Block %d mined after %d attempts: %s", header.Index, attempts, hash)
			return bc.NewBlock(header, nonce, hash, m.Difficulty, bc.Mined), nil
		}
		if m.MaxAttempts > 0 && attempts > m.MaxAttempts {
			log.Lvlf2("Block %d abandoned after %d attempts: %s", header.Index, attempts, hash)
			if err := m.pace(ctx); err != nil {
				return nil, err
			}
			return bc.NewBlock(header, nonce, hash, m.Difficulty, bc.Abandoned), nil
		}
	}
}

func (m *Miner) pace(ctx context.Context) error {
	if m.PacingDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(m.PacingDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
