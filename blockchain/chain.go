package blockchain

import (
	"context"
	"sync"

	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
)

// Chain is an append-only, in-memory sequence of blocks starting at the
// genesis block.
type Chain struct {
	solver Solver

	// appendMutex is held for a whole append so that only one block is
	// ever mined against the tip.
	appendMutex sync.Mutex

	blocksMutex sync.RWMutex
	blocks      []*Block
}

// NewChain returns a chain holding only the genesis block. New blocks are
// mined with solver.
func NewChain(solver Solver) *Chain {
	return &Chain{
		solver: solver,
		blocks: []*Block{NewGenesisBlock()},
	}
}

// Append links header to the tip, mines it and pushes the result. The
// search runs until the block is mined or the solver gives up, so there is
// no failure to report.
func (c *Chain) Append(header *Header) *Block {
	block, err := c.AppendContext(context.Background(), header)
	if err != nil {
		// Only cancellation can fail a search, and the background
		// context is never cancelled.
		log.Fatal("couldn't append block:", err)
	}
	return block
}

// AppendContext is Append with cancellation. On error the chain is left
// unchanged.
func (c *Chain) AppendContext(ctx context.Context, header *Header) (*Block, error) {
	c.appendMutex.Lock()
	defer c.appendMutex.Unlock()

	tip := c.Tip()
	candidate := header.Copy()
	candidate.PrevHash = tip.Hash
	if candidate.Index != tip.Index+1 {
		log.Warnf("appending block with index %d at height %d", candidate.Index, tip.Index+1)
	}

	block, err := c.solver.SolveContext(ctx, candidate)
	if err != nil {
		return nil, xerrors.Errorf("mining block %d: %w", candidate.Index, err)
	}

	c.blocksMutex.Lock()
	c.blocks = append(c.blocks, block.Copy())
	c.blocksMutex.Unlock()
	log.Lvlf3("Appended block %d / %s", block.Index, block.Hash)
	return block, nil
}

// AppendData appends a block carrying data at the next index.
func (c *Chain) AppendData(data string) *Block {
	return c.Append(NewHeader(uint64(c.Len()), data, ""))
}

// Len returns the number of blocks, genesis included.
func (c *Chain) Len() int {
	c.blocksMutex.RLock()
	defer c.blocksMutex.RUnlock()
	return len(c.blocks)
}

// Tip returns a copy of the latest block.
func (c *Chain) Tip() *Block {
	c.blocksMutex.RLock()
	defer c.blocksMutex.RUnlock()
	return c.blocks[len(c.blocks)-1].Copy()
}

// Block returns a copy of the block at index i.
func (c *Chain) Block(i int) (*Block, bool) {
	c.blocksMutex.RLock()
	defer c.blocksMutex.RUnlock()
	if i < 0 || i >= len(c.blocks) {
		return nil, false
	}
	return c.blocks[i].Copy(), true
}

// Blocks returns copies of all blocks in index order.
func (c *Chain) Blocks() []*Block {
	c.blocksMutex.RLock()
	defer c.blocksMutex.RUnlock()
	blocks := make([]*Block, 0, len(c.blocks))
	for _, block := range c.blocks {
		blocks = append(blocks, block.Copy())
	}
	return blocks
}

// Verify checks the links between blocks and, for genesis and mined
// blocks, that the stored hash matches the stored fields. Abandoned blocks
// keep a hash that never met the difficulty, so only their link is checked.
func (c *Chain) Verify() error {
	return VerifyBlocks(c.Blocks())
}

// VerifyBlocks runs the Chain.Verify checks over a slice of blocks.
func VerifyBlocks(blocks []*Block) error {
	if len(blocks) == 0 {
		return xerrors.New("chain has no genesis block")
	}
	if blocks[0].PrevHash != GenesisLabel {
		return xerrors.Errorf("block 0: previous hash is %q, not the genesis label", blocks[0].PrevHash)
	}
	for i, block := range blocks {
		if i > 0 && block.PrevHash != blocks[i-1].Hash {
			return xerrors.Errorf("block %d: previous hash %s does not match %s",
				i, block.PrevHash, blocks[i-1].Hash)
		}
		switch block.State {
		case Mined, Genesis:
			if hash := block.CalculateHash(); hash != block.Hash {
				return xerrors.Errorf("block %d: stored hash %s, computed %s", i, block.Hash, hash)
			}
			if block.State == Mined && !MeetsDifficulty(block.Hash, block.Difficulty) {
				return xerrors.Errorf("block %d: hash %s does not meet difficulty %d",
					i, block.Hash, block.Difficulty)
			}
		case Abandoned:
		default:
			return xerrors.Errorf("block %d: unexpected state %s", i, block.State)
		}
	}
	return nil
}
