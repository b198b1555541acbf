package powchain

import (
	"os"
	"strings"
	"time"

	"powchain/mining"

	"github.com/BurntSushi/toml"
	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
)

// DefaultConfig mines until the difficulty is met, with no pacing.
func DefaultConfig() *Config {
	traders := make([]string, len(DefaultTraders))
	copy(traders, DefaultTraders)
	return &Config{
		Difficulty:     2,
		Miner:          DefaultMiner,
		Traders:        traders,
		TokensPerBlock: DefaultTokensPerBlock,
		ClockWindow:    DefaultClockWindow,
	}
}

// DemoConfig gives up after 100 attempts and pauses 3s on every block
// that hit the bound, so a human can follow along.
func DemoConfig() *Config {
	cfg := DefaultConfig()
	cfg.MaxAttempts = 100
	cfg.PacingDelay.Duration = 3 * time.Second
	return cfg
}

// LoadConfig reads a TOML file on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("opening config: %w", err)
	}
	defer f.Close()
	cfg := DefaultConfig()
	md, err := toml.DecodeReader(f, cfg)
	if err != nil {
		return nil, xerrors.Errorf("decoding %s: %v", path, err)
	}
	for _, key := range md.Undecoded() {
		log.Warnf("Unknown key %q in %s", key.String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, xerrors.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Difficulty < 0 || c.Difficulty > MaxDifficulty {
		return xerrors.Errorf("difficulty must be between 0 and %d, got %d", MaxDifficulty, c.Difficulty)
	}
	if c.PacingDelay.Duration < 0 {
		return xerrors.New("pacing delay must not be negative")
	}
	if strings.TrimSpace(c.Miner) == "" {
		return xerrors.New("miner name is empty")
	}
	for i, name := range c.Traders {
		if strings.TrimSpace(name) == "" {
			return xerrors.Errorf("trader %d has an empty name", i)
		}
	}
	if c.ClockWindow <= 0 {
		return xerrors.Errorf("clock window must be positive, got %d", c.ClockWindow)
	}
	return nil
}

// NewMiner returns a miner using the configured difficulty and pacing.
func (c *Config) NewMiner() *mining.Miner {
	return &mining.Miner{
		Difficulty:  c.Difficulty,
		MaxAttempts: c.MaxAttempts,
		PacingDelay: c.PacingDelay.Duration,
		Progress:    c.Progress,
	}
}
