package blockchain

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pinClock(t *testing.T, ts int64) {
	old := now
	now = func() time.Time { return time.Unix(ts, 0) }
	t.Cleanup(func() { now = old })
}

func TestCalculateHashDeterministic(t *testing.T) {
	h1 := CalculateHash(3, "abc", 1597680000, "Alice sent to Bob", 42)
	h2 := CalculateHash(3, "abc", 1597680000, "Alice sent to Bob", 42)
	require.Equal(t, h1, h2)
	require.Len(t, h1, HashSize*2)

	sum := sha256.Sum256([]byte("3abc1597680000Alice sent to Bob42"))
	require.Equal(t, hex.EncodeToString(sum[:]), h1)

	require.NotEqual(t, h1, CalculateHash(3, "abc", 1597680000, "Alice sent to Bob", 43))
	require.NotEqual(t, h1, CalculateHash(4, "abc", 1597680000, "Alice sent to Bob", 42))
}

func TestNewHeader(t *testing.T) {
	pinClock(t, 1597680000)
	h := NewHeader(1, "Alice sent to Bob", "placeholder")
	assert.Equal(t, uint64(1), h.Index)
	assert.Equal(t, uint64(1597680000), h.Timestamp)
	assert.Equal(t, "Alice sent to Bob", h.Data)
	assert.Equal(t, "placeholder", h.PrevHash)
	assert.Equal(t, CalculateHash(1, "placeholder", 1597680000, "Alice sent to Bob", 7), h.CalculateHash(7))
}

func TestBlockCopy(t *testing.T) {
	pinClock(t, 1597680000)
	h := NewHeader(1, "data", "prev")
	b := NewBlock(h, 5, h.CalculateHash(5), 2, Abandoned)

	// NewBlock keeps its own header.
	h.Data = "changed"
	require.Equal(t, "data", b.Data)

	c := b.Copy()
	c.Data = "other"
	c.Hash = "ff"
	require.Equal(t, "data", b.Data)
	require.Equal(t, b.CalculateHash(), b.Hash)
	require.Nil(t, (*Block)(nil).Copy())
}

func TestBlockString(t *testing.T) {
	pinClock(t, 1597680000)
	b := NewGenesisBlock()
	s := b.String()
	assert.Contains(t, s, "Block 0")
	assert.Contains(t, s, "2020-08-17 16:00:00")
	assert.Contains(t, s, "PrevHash: "+GenesisLabel)
	assert.Contains(t, s, "State: genesis")
}

func TestGenesisBlock(t *testing.T) {
	b := NewGenesisBlock()
	require.Equal(t, uint64(0), b.Index)
	require.Equal(t, GenesisLabel, b.PrevHash)
	require.Equal(t, "", b.Data)
	require.Equal(t, uint64(0), b.Nonce)
	require.Equal(t, Genesis, b.State)
	require.Equal(t, b.CalculateHash(), b.Hash)
}

func TestMeetsDifficulty(t *testing.T) {
	assert.True(t, MeetsDifficulty("00ab", 2))
	assert.True(t, MeetsDifficulty("000b", 2))
	assert.False(t, MeetsDifficulty("0a0b", 2))
	assert.False(t, MeetsDifficulty("0", 2))
	assert.True(t, MeetsDifficulty("ab", 0))
	assert.True(t, MeetsDifficulty("", -1))
}

func TestExpectedAttempts(t *testing.T) {
	assert.Equal(t, int64(1), ExpectedAttempts(0).Int64())
	assert.Equal(t, int64(256), ExpectedAttempts(2).Int64())
	assert.Equal(t, int64(1<<24), ExpectedAttempts(6).Int64())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "mined", Mined.String())
	assert.Equal(t, "abandoned", Abandoned.String())
	assert.Equal(t, "unknown", State(99).String())
}

func TestTransferString(t *testing.T) {
	assert.Equal(t, "Alice sent to Bob", Transfer{From: "Alice", To: "Bob"}.String())
}
