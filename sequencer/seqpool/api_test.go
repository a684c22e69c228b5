package seqpool

import (
	"context"
	"testing"
	"time"

	"github.com/pg-sharding/walseq/pkg/models/walerror"
	"github.com/pg-sharding/walseq/sequencer"
	"github.com/stretchr/testify/assert"
)

func TestDropTable(t *testing.T) {
	assert := assert.New(t)
	ctx := context.TODO()

	f := newFixture(t, testConfig(3, time.Minute))
	sys := f.registerTable(t, "t1", 1)

	assert.NoError(f.pool.DropTable(ctx, "t1", sys, false))
	assert.True(f.pool.IsWalTableDropped(sys))
	assert.True(f.pool.IsWalSystemName(sys))
	assert.Equal("", f.pool.WalSystemTableName("t1"))
	assert.Equal("t1", f.pool.TableNameBySystemName(sys))

	// second drop is a no-op
	assert.NoError(f.pool.DropTable(ctx, "t1", sys, false))

	_, err := f.pool.NextTxn(sys, 1, 0, 0, 0)
	assert.True(walerror.HasCode(err, walerror.WAL_TABLE_DROPPED))

	lastTxn, err := f.pool.LastTxn(sys)
	assert.NoError(err)
	assert.Equal(int64(1), lastTxn)

	assert.NoError(f.pool.RemoveTableSystemName(ctx, sys))
	assert.False(f.pool.IsWalSystemName(sys))
}

func TestDropTableFailedCreate(t *testing.T) {
	assert := assert.New(t)
	ctx := context.TODO()

	f := newFixture(t, testConfig(3, time.Minute))

	// names registered but sequencers never created
	rollback, _, err := f.pool.RegisterTableName(ctx, "t1", 1)
	assert.NoError(err)
	plain, _, err := f.pool.RegisterTableName(ctx, "t2", 2)
	assert.NoError(err)

	assert.NoError(f.pool.DropTable(ctx, "t1", rollback, true))
	assert.True(f.pool.IsWalTableDropped(rollback))

	err = f.pool.DropTable(ctx, "t2", plain, false)
	assert.True(walerror.HasCode(err, walerror.WAL_NO_SUCH_TABLE), "got %v", err)
	assert.True(f.pool.IsWalTableDropped(plain))
}

func TestRename(t *testing.T) {
	assert := assert.New(t)
	ctx := context.TODO()

	f := newFixture(t, testConfig(3, time.Minute))
	sys := f.registerTable(t, "a", 1)
	_ = f.registerTable(t, "b", 2)

	_, err := f.pool.Rename(ctx, "a", "b", sys)
	assert.True(walerror.HasCode(err, walerror.WAL_TABLE_EXISTS))

	renamed, err := f.pool.Rename(ctx, "a", "c", sys)
	assert.NoError(err)
	assert.Equal("c", renamed)
	assert.Equal("c", f.pool.TableNameBySystemName(sys))
	assert.Equal(sys, f.pool.WalSystemTableName("c"))
	assert.Equal(sys, f.pool.SystemTableNameOrDefault("c"))
	assert.Equal("a", f.pool.SystemTableNameOrDefault("a"))

	meta := &sequencer.TableMetadata{}
	_, err = f.pool.CopyMetadataTo(sys, meta)
	assert.NoError(err)
	assert.Equal("c", meta.TableName)

	// the new name survives the sequencer being reopened
	assert.True(f.pool.ReleaseAll())
	meta = &sequencer.TableMetadata{}
	_, err = f.pool.CopyMetadataTo(sys, meta)
	assert.NoError(err)
	assert.Equal("c", meta.TableName)
}

func TestRegisterTableName(t *testing.T) {
	assert := assert.New(t)
	ctx := context.TODO()

	f := newFixture(t, testConfig(3, time.Minute))

	sys, created, err := f.pool.RegisterTableName(ctx, "t", 1)
	assert.NoError(err)
	assert.True(created)
	assert.Equal("t~1", sys)

	sys, created, err = f.pool.RegisterTableName(ctx, "t", 2)
	assert.NoError(err)
	assert.False(created)
	assert.Equal("t~1", sys)

	// same table id again is not a new registration either
	sys, created, err = f.pool.RegisterTableName(ctx, "t", 1)
	assert.NoError(err)
	assert.False(created)
	assert.Equal("t~1", sys)

	assert.Equal("x", f.pool.DefaultTableName("x"))
}

func TestRegisterTableNameAgainKeepsLiveTable(t *testing.T) {
	assert := assert.New(t)
	ctx := context.TODO()

	f := newFixture(t, testConfig(3, time.Minute))
	sys := f.registerTable(t, "t1", 1)
	_, err := f.pool.NextTxn(sys, 1, 0, 0, 0)
	assert.NoError(err)

	pool := f.newPool(testConfig(3, time.Minute))
	again, created, err := pool.RegisterTableName(ctx, "t1", 1)
	assert.NoError(err)
	assert.False(created)
	assert.Equal(sys, again)

	assert.False(pool.IsWalTableDropped(sys))
	assert.Equal(sys, pool.WalSystemTableName("t1"))
	lastTxn, err := pool.LastTxn(sys)
	assert.NoError(err)
	assert.Equal(int64(1), lastTxn)
}

func TestRegisterTableTwiceKeepsState(t *testing.T) {
	assert := assert.New(t)

	f := newFixture(t, testConfig(3, time.Minute))
	sys := f.registerTable(t, "t1", 1)
	_, err := f.pool.NextTxn(sys, 1, 0, 0, 0)
	assert.NoError(err)

	// already pooled, so nothing is created
	assert.NoError(f.pool.RegisterTable(1, &sequencer.TableStructure{TableName: "t1"}, sys))
	lastTxn, err := f.pool.LastTxn(sys)
	assert.NoError(err)
	assert.Equal(int64(1), lastTxn)

	// not pooled: creating over existing state fails and leaves no entry
	assert.True(f.pool.ReleaseAll())
	err = f.pool.RegisterTable(1, &sequencer.TableStructure{TableName: "t1"}, sys)
	assert.True(walerror.HasCode(err, walerror.WAL_TABLE_EXISTS))
	assert.False(f.pool.contains(sys))
}

func TestSuspendAndMetadata(t *testing.T) {
	assert := assert.New(t)

	f := newFixture(t, testConfig(3, time.Minute))
	sys := f.registerTable(t, "t1", 1)

	suspended, err := f.pool.IsSuspended(sys)
	assert.NoError(err)
	assert.False(suspended)

	assert.NoError(f.pool.SuspendTable(sys))
	suspended, err = f.pool.IsSuspended(sys)
	assert.NoError(err)
	assert.True(suspended)

	first, err := f.pool.NextWalID(sys)
	assert.NoError(err)
	second, err := f.pool.NextWalID(sys)
	assert.NoError(err)
	assert.Equal(first+1, second)

	meta := &sequencer.TableMetadata{}
	reloaded, err := f.pool.ReloadMetadataConditionally(sys, 0, meta)
	assert.NoError(err)
	assert.False(reloaded)

	_, err = f.pool.NextStructureTxn(sys, 0, sequencer.AddColumn("qty", "LONG"))
	assert.NoError(err)

	reloaded, err = f.pool.ReloadMetadataConditionally(sys, 0, meta)
	assert.NoError(err)
	assert.True(reloaded)
	assert.Equal(int64(1), meta.StructureVersion)
	assert.Equal(1, meta.TableID)
	assert.Equal(2, meta.ColumnIndex("qty"))

	version, err := f.pool.CopyMetadataTo(sys, meta)
	assert.NoError(err)
	assert.Equal(int64(1), version)
}
