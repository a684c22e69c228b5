package seqpool

import (
	"context"
	"time"

	"github.com/pg-sharding/walseq/pkg/seqlog"
)

// Reclaimer periodically closes sequencers that outlived the idle TTL.
type Reclaimer struct {
	pool     *TableSequencerPool
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewReclaimer(ctx context.Context, pool *TableSequencerPool, interval time.Duration) *Reclaimer {
	ctx, cancel := context.WithCancel(ctx)
	return &Reclaimer{
		pool:     pool,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start runs the sweep in a background goroutine until Stop is called or the
// parent context is done.
func (r *Reclaimer) Start() {
	go func() {
		defer close(r.done)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-r.ctx.Done():
				seqlog.Zero.Info().Msg("seqpool: reclaimer stopped")
				return
			case <-ticker.C:
				if r.pool.IsClosed() {
					continue
				}
				if r.pool.ReleaseInactive() {
					seqlog.Zero.Debug().
						Dur("interval", r.interval).
						Msg("seqpool: released inactive table sequencers")
				}
			}
		}
	}()
}

func (r *Reclaimer) Interval() time.Duration {
	return r.interval
}

// Stop cancels the sweep and waits for it to exit. Start must have been called.
func (r *Reclaimer) Stop() {
	r.cancel()
	<-r.done
}
