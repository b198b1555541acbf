package powchain

import (
	"context"
	"time"

	bc "powchain/blockchain"

	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
)

// Transfers returns the round of transfers of a simulation: the miner pays
// the first trader, every trader pays the next one, and the last trader
// pays the miner back.
func Transfers(miner string, traders []string) []bc.Transfer {
	transfers := make([]bc.Transfer, 0, len(traders)+1)
	sender := miner
	for _, trader := range traders {
		transfers = append(transfers, bc.Transfer{From: sender, To: trader})
		sender = trader
	}
	return append(transfers, bc.Transfer{From: sender, To: miner})
}

// Simulate mines one block per transfer onto a fresh chain. listener may
// be nil. If ctx is cancelled the blocks mined so far are kept in the
// returned report along with the error.
func Simulate(ctx context.Context, cfg *Config, listener TransferListener) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	chain := bc.NewChain(cfg.NewMiner())
	report := &Report{Chain: chain}
	var err error
	for i, transfer := range Transfers(cfg.Miner, cfg.Traders) {
		log.Lvlf2("Mining block %d", i+1)
		header := bc.NewHeader(uint64(chain.Len()), transfer.String(), "")
		var block *bc.Block
		block, err = chain.AppendContext(ctx, header)
		if err != nil {
			err = xerrors.Errorf("simulation stopped after %d transfers: %w", i, err)
			break
		}
		if block.State == bc.Abandoned {
			report.Abandoned++
		}
		if listener != nil {
			listener(transfer, block)
		}
	}
	report.TotalBlocks = chain.Len()
	report.TokensTraded = uint64(report.TotalBlocks) * cfg.TokensPerBlock
	report.EndedAt = time.Now()
	return report, err
}
