package main

import (
	"context"
	"testing"
	"time"

	"github.com/pg-sharding/walseq/pkg/clock"
	"github.com/pg-sharding/walseq/pkg/config"
	"github.com/pg-sharding/walseq/pkg/nameregistry"
	"github.com/pg-sharding/walseq/qdb"
	"github.com/pg-sharding/walseq/sequencer"
	"github.com/pg-sharding/walseq/sequencer/seqpool"
	"github.com/pg-sharding/walseq/sequencer/xqdbseq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyReloadedConfig(t *testing.T) {
	assert := assert.New(t)
	ctx := context.TODO()

	cfg := (&config.Sequencer{
		InactiveWalWriterTTL:    time.Hour,
		ReleaseInactiveInterval: time.Hour,
		MangleTableSystemNames:  true,
		LogLevel:                "info",
	}).WithDefaults()

	db, err := qdb.NewMemQDB("")
	require.NoError(t, err)
	clk := clock.NewManual(0)
	pool := seqpool.NewTableSequencerPool(cfg, nameregistry.NewRegistry(db, true), xqdbseq.NewFactory(db, clk, time.Second), clk)

	sys, created, err := pool.RegisterTableName(ctx, "t1", 1)
	require.NoError(t, err)
	require.True(t, created)
	require.NoError(t, pool.RegisterTable(1, &sequencer.TableStructure{TableName: "t1"}, sys))
	clk.Set(1500)

	reclaimer := seqpool.NewReclaimer(ctx, pool, cfg.ReleaseInactiveInterval)
	reclaimer.Start()

	// only the ttl changed
	cfg.InactiveWalWriterTTL = time.Millisecond
	same := applyReloadedConfig(ctx, pool, cfg, reclaimer)
	assert.Same(reclaimer, same)
	assert.True(pool.ReleaseInactive())

	cfg.ReleaseInactiveInterval = time.Minute
	next := applyReloadedConfig(ctx, pool, cfg, same)
	assert.NotSame(same, next)
	assert.Equal(time.Minute, next.Interval())
	next.Stop()
}
