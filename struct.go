package powchain

/*
This holds the configuration and result types of the mining simulator.
*/

import (
	"time"

	bc "powchain/blockchain"
	"powchain/mining"
)

// DefaultTraders are the counterparties of the simulated transfers.
var DefaultTraders = []string{
	"Bob", "Linda", "John", "Larry", "David", "Renee", "Catherine",
	"Danny", "Kenny", "Daryl", "Anthony", "Chris", "George", "Kevin",
}

const (
	// DefaultMiner is used when no miner name is given.
	DefaultMiner = "miner"
	// DefaultTokensPerBlock is the nominal amount credited per block.
	DefaultTokensPerBlock = 137
	// DefaultClockWindow is how many block times the solve clock keeps.
	DefaultClockWindow = 10
	// MaxDifficulty is the length of a hex sha256 digest.
	MaxDifficulty = bc.HashSize * 2
)

// Duration is a time.Duration that reads from TOML strings such as "3s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config drives both the miner and the simulation.
type Config struct {
	Difficulty     int      `toml:"difficulty"`
	MaxAttempts    uint64   `toml:"max_attempts"`
	PacingDelay    Duration `toml:"pacing_delay"`
	Miner          string   `toml:"miner"`
	Traders        []string `toml:"traders"`
	TokensPerBlock uint64   `toml:"tokens_per_block"`
	ClockWindow    int      `toml:"clock_window"`

	// Progress is handed to the miner built by NewMiner.
	Progress mining.ProgressFunc `toml:"-"`
}

// TransferListener is called after each simulated transfer is mined.
type TransferListener func(transfer bc.Transfer, block *bc.Block)

// Report summarizes a simulation run.
type Report struct {
	Chain *bc.Chain
	// TotalBlocks includes the genesis block.
	TotalBlocks  int
	TokensTraded uint64
	Abandoned    int
	EndedAt      time.Time
}
