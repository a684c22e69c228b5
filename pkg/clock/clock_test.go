package clock_test

import (
	"testing"
	"time"

	"github.com/pg-sharding/walseq/pkg/clock"
	"github.com/stretchr/testify/assert"
)

func TestManual(t *testing.T) {
	assert := assert.New(t)

	c := clock.NewManual(0)
	assert.Equal(int64(0), c.Ticks())
	assert.Equal(int64(1500), c.Advance(1500))
	c.Set(42)
	assert.Equal(int64(42), c.Ticks())
}

func TestRealIsMicroseconds(t *testing.T) {
	before := time.Now().UnixMicro()
	ticks := clock.Real.Ticks()
	after := time.Now().UnixMicro()

	assert.GreaterOrEqual(t, ticks, before)
	assert.LessOrEqual(t, ticks, after)
}
