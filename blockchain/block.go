package blockchain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.dedis.ch/onet/v3/log"
)

// now is a function pointer so that tests can pin the block timestamp.
var now = time.Now

// Header is the candidate part of a block. It does not change while the
// miner searches for a nonce.
type Header struct {
	// Index of the block in the chain. Index = 0 -> genesis-block.
	Index uint64
	// Time the header was built, in seconds since the Unix epoch.
	Timestamp uint64
	// Data is the payload, usually a transfer description.
	Data string
	// Hash of the previous block in the chain.
	PrevHash string
}

// NewHeader returns a header stamped with the current time. prevHash is
// only a placeholder when the header is handed to Chain.Append, which links
// it to the tip.
func NewHeader(index uint64, data, prevHash string) *Header {
	t := now()
	if t.Before(time.Unix(0, 0)) {
		log.Fatal("wall clock is before the Unix epoch:", t)
	}
	return &Header{
		Index:     index,
		Timestamp: uint64(t.Unix()),
		Data:      data,
		PrevHash:  prevHash,
	}
}

// CalculateHash hashes the header fields together with nonce.
func (h *Header) CalculateHash(nonce uint64) string {
	return CalculateHash(h.Index, h.PrevHash, h.Timestamp, h.Data, nonce)
}

func (h *Header) Copy() *Header {
	if h == nil {
		return nil
	}
	c := *h
	return &c
}

// CalculateHash returns the hex sha256 of index, prevHash, timestamp, data
// and nonce concatenated in that order, numbers in decimal.
func CalculateHash(index uint64, prevHash string, timestamp uint64, data string, nonce uint64) string {
	hash := sha256.New()
	hash.Write([]byte(strconv.FormatUint(index, 10)))
	hash.Write([]byte(prevHash))
	hash.Write([]byte(strconv.FormatUint(timestamp, 10)))
	hash.Write([]byte(data))
	hash.Write([]byte(strconv.FormatUint(nonce, 10)))
	return hex.EncodeToString(hash.Sum(nil))
}

// Block is a header together with the outcome of mining it.
type Block struct {
	*Header
	Nonce uint64
	Hash  string
	// Difficulty the block was mined at.
	Difficulty int
	State      State
}

// NewBlock wraps a copy of header with the search result.
func NewBlock(header *Header, nonce uint64, hash string, difficulty int, state State) *Block {
	return &Block{
		Header:     header.Copy(),
		Nonce:      nonce,
		Hash:       hash,
		Difficulty: difficulty,
		State:      state,
	}
}

// CalculateHash recomputes the hash from the stored fields.
func (b *Block) CalculateHash() string {
	return b.Header.CalculateHash(b.Nonce)
}

// Copy makes a deep copy of the Block
func (b *Block) Copy() *Block {
	if b == nil {
		return nil
	}
	return &Block{
		Header:     b.Header.Copy(),
		Nonce:      b.Nonce,
		Hash:       b.Hash,
		Difficulty: b.Difficulty,
		State:      b.State,
	}
}

func (b *Block) String() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Block %d", b.Index))
	builder.WriteString(fmt.Sprintf("\n\tTimestamp: %s", time.Unix(int64(b.Timestamp), 0).UTC().Format("2006-01-02 15:04:05")))
	builder.WriteString(fmt.Sprintf("\n\tData: %s", b.Data))
	builder.WriteString(fmt.Sprintf("\n\tPrevHash: %s", b.PrevHash))
	builder.WriteString(fmt.Sprintf("\n\tNonce: %d", b.Nonce))
	builder.WriteString(fmt.Sprintf("\n\tDifficulty: %d", b.Difficulty))
	builder.WriteString(fmt.Sprintf("\n\tState: %s", b.State))
	builder.WriteString(fmt.Sprintf("\n\tHash: %s", b.Hash))
	return builder.String()
}
