package blockchain

// GenesisLabel stands in for the previous hash of the genesis block. It is
// not a digest.
const GenesisLabel = "Genesis Block"

// NewGenesisBlock returns block 0. Its hash is computed once over the
// genesis fields without a difficulty search, so block 1 links to a real
// digest.
func NewGenesisBlock() *Block {
	header := NewHeader(0, "", GenesisLabel)
	return NewBlock(header, 0, header.CalculateHash(0), 0, Genesis)
}
