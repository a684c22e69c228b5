package seqpool

import (
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/pg-sharding/walseq/pkg/seqlog"
	"github.com/pg-sharding/walseq/sequencer"
)

type lockIntent int

const (
	lockNone = lockIntent(iota)
	lockRead
	lockWrite
)

func (l lockIntent) String() string {
	switch l {
	case lockRead:
		return "read"
	case lockWrite:
		return "write"
	default:
		return "none"
	}
}

// entry is a pooled sequencer. A sweep or shutdown closes it only when
// no checkout holds it.
type entry struct {
	seq        sequencer.Sequencer
	pool       *TableSequencerPool
	systemName string
	id         uuid.UUID

	mu sync.Mutex
	// number of live checkouts
	users int
	// microseconds; math.MaxInt64 while in use or never released
	releaseTime int64
}

func newEntry(pool *TableSequencerPool, systemName string, seq sequencer.Sequencer) *entry {
	return &entry{
		seq:         seq,
		pool:        pool,
		systemName:  systemName,
		id:          uuid.New(),
		releaseTime: math.MaxInt64,
	}
}

// acquire registers a checkout. It fails if the sequencer is already closed.
func (e *entry) acquire() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.seq.IsClosed() {
		return false
	}
	e.users++
	e.releaseTime = math.MaxInt64
	return true
}

func (e *entry) lock(intent lockIntent) {
	switch intent {
	case lockRead:
		e.seq.ReadLock()
	case lockWrite:
		e.seq.WriteLock()
	}
}

func (e *entry) unlock(intent lockIntent) {
	switch intent {
	case lockRead:
		e.seq.UnlockRead()
	case lockWrite:
		e.seq.UnlockWrite()
	}
}

// release ends a checkout. Healthy entries stay open and only get the idle
// timestamp. Distressed entries leave the registry and are closed right away,
// and so is every entry once the pool is closed.
func (e *entry) release() {
	distressed := e.seq.IsDistressed()

	e.mu.Lock()
	e.users--
	if e.users == 0 && !distressed {
		e.releaseTime = e.pool.clock.Ticks()
	}
	e.mu.Unlock()

	if e.pool.closed.Load() {
		if e.closeIfIdle() {
			e.pool.entries.CompareAndDelete(e.systemName, e)
			seqlog.Zero.Info().
				Str("table", e.systemName).
				Str("entry", e.id.String()).
				Msg("seqpool: closed table sequencer on pool shutdown")
		}
		return
	}

	if distressed {
		e.pool.entries.CompareAndDelete(e.systemName, e)
		if e.closeIfIdle() {
			seqlog.Zero.Info().
				Str("table", e.systemName).
				Str("entry", e.id.String()).
				Msg("seqpool: closed distressed table sequencer")
		}
	}
}

// closeIfIdle performs the terminal close unless a checkout still holds the entry.
// Only the caller that actually closed the sequencer gets true.
func (e *entry) closeIfIdle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.users > 0 {
		return false
	}
	return e.seq.CheckClose()
}

// reclaimIfIdle closes the entry if it was released at or before deadline.
func (e *entry) reclaimIfIdle(deadline int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.users > 0 || e.releaseTime > deadline || e.seq.IsClosed() {
		return false
	}
	return e.seq.CheckClose()
}

// lockedEntry is a checkout result. release must be called exactly once.
type lockedEntry struct {
	*entry
	intent lockIntent
}

func (l *lockedEntry) release() {
	l.unlock(l.intent)
	l.entry.release()
}
