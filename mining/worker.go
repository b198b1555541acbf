package mining

import (
	"context"
	"sync"
	"time"

	bc "powchain/blockchain"

	"go.dedis.ch/onet/v3/log"
)

// Listener is called with every block the worker appends.
type Listener func(block *bc.Block)

// PayloadSource returns the data for the block at index.
type PayloadSource func(index uint64) string

// Worker keeps appending blocks to a chain in the background until it is
// stopped. One block is in flight at a time.
type Worker struct {
	sync.Mutex
	started  bool
	chain    *bc.Chain
	source   PayloadSource
	callback Listener
	clock    *SolveClock
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewWorker(chain *bc.Chain, source PayloadSource, callback Listener) *Worker {
	return &Worker{
		chain:    chain,
		source:   source,
		callback: callback,
		clock:    NewSolveClock(10),
	}
}

// Clock returns the rolling window of block times.
func (w *Worker) Clock() *SolveClock {
	return w.clock
}

// SetClock replaces the block time window. Call it before Start.
func (w *Worker) SetClock(clock *SolveClock) {
	w.Lock()
	defer w.Unlock()
	w.clock = clock
}

func (w *Worker) Start() {
	w.Lock()
	defer w.Unlock()

	// Nothing to do if the worker is already running
	if w.started {
		return
	}

	var ctx context.Context
	ctx, w.cancel = context.WithCancel(context.Background())
	w.done = make(chan struct{})
	go w.generateBlocks(ctx, w.done)
	w.started = true
	log.Info("Miner started")
}

func (w *Worker) generateBlocks(ctx context.Context, done chan struct{}) {
	defer close(done)
	log.Lvl2("Starting generate blocks worker")
	for {
		select {
		case <-ctx.Done():
			log.Lvl2("Generate blocks worker done")
			return
		default:
			// Non-blocking select to fall through
		}
		index := uint64(w.chain.Len())
		start := time.Now()
		block, err := w.chain.AppendContext(ctx, bc.NewHeader(index, w.source(index), ""))
		if err != nil {
			log.Lvl2("Generate blocks worker stopped:", err)
			return
		}
		w.clock.Push(time.Since(start))
		if w.callback != nil {
			w.callback(block)
		}
	}
}

// Stop cancels the block being mined and waits for the worker to exit.
// This function is safe for concurrent access.
func (w *Worker) Stop() {
	w.Lock()
	defer w.Unlock()

	// Nothing to do if the worker is not currently running
	if !w.started {
		return
	}

	w.cancel()
	<-w.done
	w.started = false
	log.Info("Miner stopped")
}

// Close stops the worker so it can be handed to shutdown helpers that
// expect an io.Closer.
func (w *Worker) Close() error {
	w.Stop()
	return nil
}
