package seqpool

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/pg-sharding/walseq/pkg/clock"
	"github.com/pg-sharding/walseq/pkg/config"
	"github.com/pg-sharding/walseq/pkg/models/walerror"
	"github.com/pg-sharding/walseq/pkg/seqlog"
	"github.com/pg-sharding/walseq/sequencer"
	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"
)

// NameRegistry maps user-facing table names to system names.
type NameRegistry interface {
	SystemName(tableName string) (string, bool)
	WalTableSystemName(tableName string) string
	DefaultSystemTableName(tableName string) string
	WalSystemNameFor(tableName string, tableID int) string
	TableNameBySystemName(systemName string) string

	RegisterName(ctx context.Context, tableName, systemName string) (string, bool, error)
	RemoveName(ctx context.Context, tableName, systemName string) (bool, error)
	Rename(ctx context.Context, tableName, newTableName, systemName string) (string, error)
	RemoveTableSystemName(ctx context.Context, systemName string) error

	WalTableSystemNames() []string
	IsWalSystemName(systemName string) bool
	IsWalTableDropped(systemName string) bool

	Reload(ctx context.Context) error
	Close()
}

type strategyKind int

const (
	openExisting = strategyKind(iota)
	createNew
)

// creationStrategy tells getOrCreate how to build a missing entry.
type creationStrategy struct {
	kind      strategyKind
	tableID   int
	structure *sequencer.TableStructure
}

func openExistingStrategy() creationStrategy {
	return creationStrategy{kind: openExisting}
}

func createNewStrategy(tableID int, structure *sequencer.TableStructure) creationStrategy {
	return creationStrategy{kind: createNew, tableID: tableID, structure: structure}
}

// TableSequencerPool hands out locked sequencers per WAL table and keeps
// them open between checkouts until they have been idle long enough.
type TableSequencerPool struct {
	// system name -> *entry
	entries sync.Map
	flight  singleflight.Group

	registry NameRegistry
	factory  sequencer.Factory
	clock    clock.MicrosecondClock

	inactiveTTLMicros atomic.Int64
	recreateAttempts  int

	closed atomic.Bool
}

func NewTableSequencerPool(cfg *config.Sequencer, registry NameRegistry, factory sequencer.Factory, clk clock.MicrosecondClock) *TableSequencerPool {
	if clk == nil {
		clk = clock.Real
	}
	attempts := cfg.RecreateDistressedSequencerAttempts
	if attempts <= 0 {
		attempts = 1
	}
	p := &TableSequencerPool{
		registry:         registry,
		factory:          factory,
		clock:            clk,
		recreateAttempts: attempts,
	}
	p.inactiveTTLMicros.Store(cfg.InactiveTTLMicros())
	return p
}

// SetInactiveWalWriterTTL changes the idle window used by ReleaseInactive.
func (p *TableSequencerPool) SetInactiveWalWriterTTL(ttl time.Duration) {
	p.inactiveTTLMicros.Store(ttl.Microseconds())
}

// flightResult carries the strategy of the caller that ran a creation flight.
type flightResult struct {
	kind  strategyKind
	entry *entry
}

// getOrCreate returns the entry for systemName, building it at most once
// no matter how many callers race for it. A caller that joined a failed
// flight run with another strategy tries again with its own.
func (p *TableSequencerPool) getOrCreate(systemName string, strategy creationStrategy) (*entry, error) {
	for {
		if v, ok := p.entries.Load(systemName); ok {
			return v.(*entry), nil
		}

		v, err, _ := p.flight.Do(systemName, func() (any, error) {
			if v, ok := p.entries.Load(systemName); ok {
				return &flightResult{kind: strategy.kind, entry: v.(*entry)}, nil
			}
			seq, err := p.build(systemName, strategy)
			if err != nil {
				return &flightResult{kind: strategy.kind}, err
			}
			e := newEntry(p, systemName, seq)
			p.entries.Store(systemName, e)

			seqlog.Zero.Debug().
				Str("table", systemName).
				Str("entry", e.id.String()).
				Msg("seqpool: opened table sequencer")
			return &flightResult{kind: strategy.kind, entry: e}, nil
		})
		res := v.(*flightResult)
		if err != nil {
			if res.kind != strategy.kind {
				seqlog.Zero.Debug().
					Err(err).
					Str("table", systemName).
					Msg("seqpool: shared creation failed with another strategy, retrying")
				continue
			}
			return nil, err
		}
		return res.entry, nil
	}
}

func (p *TableSequencerPool) build(systemName string, strategy creationStrategy) (sequencer.Sequencer, error) {
	switch strategy.kind {
	case createNew:
		seq := p.factory(systemName, strategy.structure.TableName)
		if err := seq.Create(strategy.tableID, strategy.structure); err != nil {
			_ = seq.Close()
			return nil, err
		}
		if err := seq.Open(); err != nil {
			_ = seq.Close()
			return nil, err
		}
		return seq, nil
	default:
		tableName := p.registry.TableNameBySystemName(systemName)
		if tableName == "" {
			return nil, walerror.Newf(walerror.WAL_NO_SUCH_TABLE, "table does not exist [table=%s]", systemName)
		}
		seq := p.factory(systemName, tableName)
		if err := seq.Open(); err != nil {
			_ = seq.Close()
			return nil, err
		}
		return seq, nil
	}
}

// checkout returns a healthy entry holding the requested lock. Distressed
// entries are dropped and rebuilt up to recreateAttempts times. Retries on
// an entry that is closed but not distressed are not counted.
func (p *TableSequencerPool) checkout(systemName string, intent lockIntent, strategy creationStrategy) (*lockedEntry, error) {
	attempt := 0
	for attempt < p.recreateAttempts {
		if p.closed.Load() {
			return nil, walerror.New(walerror.WAL_POOL_CLOSED, "table sequencer pool is closed")
		}

		e, err := p.getOrCreate(systemName, strategy)
		if err != nil {
			return nil, err
		}

		if !e.acquire() {
			if e.seq.IsDistressed() {
				attempt++
			}
			continue
		}

		e.lock(intent)
		if !e.seq.IsDistressed() && !e.seq.IsClosed() {
			return &lockedEntry{entry: e, intent: intent}, nil
		}
		e.unlock(intent)

		distressed := e.seq.IsDistressed()
		e.release()
		if distressed {
			attempt++
			seqlog.Zero.Info().
				Str("table", systemName).
				Int("attempt", attempt).
				Int("max attempts", p.recreateAttempts).
				Msg("seqpool: sequencer is distressed, recreating")
		}
	}

	return nil, walerror.Newf(walerror.WAL_DISTRESSED, "sequencer is distressed [table=%s]", systemName)
}

// releaseEntries closes and removes every idle entry released at or before deadline.
func (p *TableSequencerPool) releaseEntries(deadline int64) bool {
	removed := false
	p.entries.Range(func(key, value any) bool {
		e := value.(*entry)
		if e.reclaimIfIdle(deadline) {
			p.entries.CompareAndDelete(key, e)
			removed = true

			seqlog.Zero.Info().
				Str("table", e.systemName).
				Str("entry", e.id.String()).
				Msg("seqpool: releasing idle table sequencer")
		}
		return true
	})
	return removed
}

// ReleaseAll closes every sequencer that is not checked out.
func (p *TableSequencerPool) ReleaseAll() bool {
	return p.releaseEntries(math.MaxInt64)
}

// ReleaseInactive closes sequencers idle for longer than the configured TTL.
func (p *TableSequencerPool) ReleaseInactive() bool {
	return p.releaseEntries(p.clock.Ticks() - p.inactiveTTLMicros.Load())
}

// Close rejects further checkouts and closes idle sequencers. Sequencers in
// use are closed when their last checkout is released.
func (p *TableSequencerPool) Close() {
	p.closed.Store(true)
	p.ReleaseAll()
	p.registry.Close()

	seqlog.Zero.Info().Msg("seqpool: table sequencer pool closed")
}

// Reopen reloads table names and accepts checkouts again.
func (p *TableSequencerPool) Reopen(ctx context.Context) error {
	if err := p.registry.Reload(ctx); err != nil {
		return err
	}
	p.closed.Store(false)
	return nil
}

func (p *TableSequencerPool) IsClosed() bool {
	return p.closed.Load()
}
