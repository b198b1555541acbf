package main

import (
	"context"
	"os"
	"strconv"
	"syscall"

	"powchain"
	bc "powchain/blockchain"
	"powchain/mining"

	"github.com/vrecan/death/v3"
	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
	"gopkg.in/urfave/cli.v1"
)

const (
	// DefaultName is the name of the binary we produce.
	DefaultName = "powchain"
)

func newApp() *cli.App {
	cliApp := cli.NewApp()
	cliApp.Name = DefaultName
	cliApp.Usage = "Mine a toy proof-of-work chain."
	cliApp.Version = "0.1"
	cliApp.Commands = cmds
	cliApp.Flags = flags
	cliApp.Before = func(c *cli.Context) error {
		log.SetDebugVisible(c.Int("debug"))
		return nil
	}
	return cliApp
}

func main() {
	log.ErrFatal(newApp().Run(os.Args))
}

// readConfig loads the global config file, if any, and applies the
// command flags on top of it.
func readConfig(c *cli.Context) (*powchain.Config, error) {
	cfg := powchain.DefaultConfig()
	if path := c.GlobalString("config"); path != "" {
		var err error
		cfg, err = powchain.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}
	if c.Bool("demo") {
		demo := powchain.DemoConfig()
		cfg.MaxAttempts = demo.MaxAttempts
		cfg.PacingDelay = demo.PacingDelay
	}
	if c.IsSet("miner") {
		cfg.Miner = c.String("miner")
	}
	if c.IsSet("difficulty") {
		cfg.Difficulty = c.Int("difficulty")
	}
	cfg.Progress = func(attempt uint64, hash string) {
		if attempt%1000 == 0 {
			log.Lvlf3("Attempt %d: %s", attempt, hash)
		}
	}
	return cfg, cfg.Validate()
}

// cancelOnSignal cancels the returned context on SIGINT or SIGTERM.
func cancelOnSignal() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	d := death.NewDeath(syscall.SIGINT, syscall.SIGTERM)
	go d.WaitForDeathWithFunc(func() {
		log.Warn("Interrupted")
		cancel()
	})
	return ctx, cancel
}

func simulate(c *cli.Context) error {
	cfg, err := readConfig(c)
	if err != nil {
		return xerrors.Errorf("couldn't read config: %v", err)
	}
	ctx, cancel := cancelOnSignal()
	defer cancel()

	log.Infof("Welcome to the mining simulator, %s!", cfg.Miner)
	log.Infof("Difficulty %d, about %s attempts per block",
		cfg.Difficulty, bc.ExpectedAttempts(cfg.Difficulty))
	report, err := powchain.Simulate(ctx, cfg, func(transfer bc.Transfer, block *bc.Block) {
		if block.State == bc.Abandoned {
			log.Infof("Block %d: mining in progress... calculated hash: %s", block.Index, block.Hash)
		} else {
			log.Infof("Block %d mined: %s", block.Index, block.Hash)
		}
		log.Infof("Transaction: %s", transfer)
		log.Lvl2(block.String())
	})
	if report != nil {
		log.Infof("Total blocks added to the blockchain: %d", report.TotalBlocks)
		log.Infof("Blocks accepted below difficulty: %d", report.Abandoned)
		log.Infof("Total tokens traded: %d", report.TokensTraded)
		log.Infof("Simulation ended at: %s", report.EndedAt.Format("2006-01-02 15:04:05"))
	}
	if err != nil {
		return err
	}
	if err := report.Chain.Verify(); err != nil {
		return xerrors.Errorf("chain failed verification: %v", err)
	}
	log.Info("Mining operation completed successfully")
	return nil
}

func mine(c *cli.Context) error {
	cfg, err := readConfig(c)
	if err != nil {
		return xerrors.Errorf("couldn't read config: %v", err)
	}
	transfers := powchain.Transfers(cfg.Miner, cfg.Traders)
	chain := bc.NewChain(cfg.NewMiner())
	worker := mining.NewWorker(chain, func(index uint64) string {
		return transfers[(index-1)%uint64(len(transfers))].String()
	}, func(block *bc.Block) {
		log.Infof("Block %d %s: %s", block.Index, block.State, block.Hash)
	})
	worker.SetClock(mining.NewSolveClock(cfg.ClockWindow))
	worker.Start()

	d := death.NewDeath(syscall.SIGINT, syscall.SIGTERM)
	if err := d.WaitForDeath(worker); err != nil {
		return xerrors.Errorf("stopping miner: %v", err)
	}
	log.Infof("Mined %d blocks, average block time over the last %d: %s",
		chain.Len()-1, worker.Clock().Len(), worker.Clock().Average())
	return chain.Verify()
}

func hashBlock(c *cli.Context) error {
	if c.NArg() != 5 {
		return xerrors.New("please give the following arguments: " +
			"INDEX PREVHASH TIMESTAMP DATA NONCE")
	}
	args := c.Args()
	index, err := strconv.ParseUint(args.Get(0), 10, 64)
	if err != nil {
		return xerrors.Errorf("couldn't parse index: %v", err)
	}
	timestamp, err := strconv.ParseUint(args.Get(2), 10, 64)
	if err != nil {
		return xerrors.Errorf("couldn't parse timestamp: %v", err)
	}
	nonce, err := strconv.ParseUint(args.Get(4), 10, 64)
	if err != nil {
		return xerrors.Errorf("couldn't parse nonce: %v", err)
	}
	hash := bc.CalculateHash(index, args.Get(1), timestamp, args.Get(3), nonce)
	difficulty := c.Int("difficulty")
	log.Infof("Hash: %s", hash)
	log.Infof("Meets difficulty %d: %t", difficulty, bc.MeetsDifficulty(hash, difficulty))
	return nil
}
