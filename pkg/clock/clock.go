package clock

import (
	"time"

	"go.uber.org/atomic"
)

// MicrosecondClock is a tick source in microseconds.
type MicrosecondClock interface {
	Ticks() int64
}

type realClock struct{}

// Real reads the wall clock.
var Real MicrosecondClock = realClock{}

func (realClock) Ticks() int64 {
	return time.Now().UnixMicro()
}

// Manual is a clock that only moves when told to. Safe for concurrent use.
type Manual struct {
	ticks atomic.Int64
}

var _ MicrosecondClock = &Manual{}

func NewManual(start int64) *Manual {
	m := &Manual{}
	m.ticks.Store(start)
	return m
}

func (m *Manual) Ticks() int64 {
	return m.ticks.Load()
}

func (m *Manual) Set(ticks int64) {
	m.ticks.Store(ticks)
}

func (m *Manual) Advance(d int64) int64 {
	return m.ticks.Add(d)
}
