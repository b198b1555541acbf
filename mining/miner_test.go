package mining

import (
	"context"
	"testing"
	"time"

	bc "powchain/blockchain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.dedis.ch/onet/v3/log"
)

func TestSolveBlock(t *testing.T) {
	log.SetDebugVisible(1)
	header := bc.NewHeader(1, "Alice sent to Bob", "prev")
	for difficulty := 0; difficulty <= 3; difficulty++ {
		block := New(difficulty).Solve(header)
		require.Equal(t, bc.Mined, block.State)
		require.True(t, bc.MeetsDifficulty(block.Hash, difficulty))
		require.Equal(t, header.CalculateHash(block.Nonce), block.Hash)
		require.Equal(t, difficulty, block.Difficulty)
	}
}

func TestSolveFirstQualifyingNonce(t *testing.T) {
	header := bc.NewHeader(1, "data", "prev")
	block := New(2).Solve(header)
	for nonce := uint64(0); nonce < block.Nonce; nonce++ {
		require.False(t, bc.MeetsDifficulty(header.CalculateHash(nonce), 2))
	}
}

func TestSolveDoesNotModifyHeader(t *testing.T) {
	header := bc.NewHeader(1, "data", "prev")
	before := *header
	block := New(1).Solve(header)
	require.Equal(t, before, *header)
	block.Data = "changed"
	require.Equal(t, "data", header.Data)
}

func TestSolveAbandoned(t *testing.T) {
	var attempts []uint64
	var hashes []string
	m := &Miner{
		Difficulty:  64,
		MaxAttempts: 100,
		Progress: func(attempt uint64, hash string) {
			attempts = append(attempts, attempt)
			hashes = append(hashes, hash)
		},
	}
	header := bc.NewHeader(1, "data", "prev")
	block := m.Solve(header)
	require.Equal(t, bc.Abandoned, block.State)
	// The bound is exceeded on the 101st evaluation.
	require.Len(t, attempts, 101)
	require.Equal(t, uint64(1), attempts[0])
	require.Equal(t, uint64(101), attempts[100])
	require.Equal(t, uint64(100), block.Nonce)
	require.Equal(t, hashes[100], block.Hash)
	require.Equal(t, header.CalculateHash(block.Nonce), block.Hash)
}

func TestSolvePacingDelay(t *testing.T) {
	m := &Miner{Difficulty: 64, MaxAttempts: 1, PacingDelay: 50 * time.Millisecond}
	start := time.Now()
	block := m.Solve(bc.NewHeader(1, "data", "prev"))
	require.Equal(t, bc.Abandoned, block.State)
	require.True(t, time.Since(start) >= 50*time.Millisecond)
}

func TestSolveContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(64).SolveContext(ctx, bc.NewHeader(1, "data", "prev"))
	require.Equal(t, context.Canceled, err)

	// Cancelling during the pacing sleep also stops the search.
	ctx, cancel = context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	m := &Miner{Difficulty: 64, MaxAttempts: 1, PacingDelay: time.Minute}
	_, err = m.SolveContext(ctx, bc.NewHeader(1, "data", "prev"))
	require.Equal(t, context.DeadlineExceeded, err)
}

func TestSolveUnbounded(t *testing.T) {
	var calls uint64
	m := &Miner{Difficulty: 3, Progress: func(attempt uint64, _ string) { calls = attempt }}
	block := m.Solve(bc.NewHeader(7, "unbounded", "prev"))
	assert.Equal(t, bc.Mined, block.State)
	assert.Equal(t, block.Nonce+1, calls)
}
