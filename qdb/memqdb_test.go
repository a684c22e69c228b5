package qdb_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/pg-sharding/walseq/pkg/models/walerror"
	"github.com/pg-sharding/walseq/qdb"
	"github.com/stretchr/testify/assert"
)

var mockTableName = &qdb.TableName{
	TableName:  "trades",
	SystemName: "trades~1",
}

var mockSequencer = &qdb.SequencerState{
	SystemName: "trades~1",
	TableName:  "trades",
	TableID:    1,
	Columns: []qdb.Column{
		{Name: "price", Type: "DOUBLE"},
		{Name: "ts", Type: "TIMESTAMP"},
	},
	TimestampIndex: 1,
}

// must run with -race
func TestMemqdbRacing(t *testing.T) {
	assert := assert.New(t)

	memqdb, err := qdb.RestoreQDB(filepath.Join(t.TempDir(), "memqdb.json"))
	assert.NoError(err)

	var wg sync.WaitGroup
	ctx := context.TODO()

	methods := []func(){
		func() { _ = memqdb.PutTableName(ctx, mockTableName) },
		func() { _ = memqdb.DeleteTableName(ctx, mockTableName.SystemName) },
		func() { _, _ = memqdb.ListTableNames(ctx) },
		func() { _ = memqdb.CreateSequencer(ctx, mockSequencer) },
		func() { _, _ = memqdb.GetSequencer(ctx, mockSequencer.SystemName) },
		func() { _ = memqdb.PutSequencer(ctx, mockSequencer) },
		func() { _ = memqdb.DropSequencer(ctx, mockSequencer.SystemName) },
		func() { _ = memqdb.AppendTxn(ctx, mockSequencer.SystemName, &qdb.TxnRecord{Txn: 1}) },
		func() { _, _ = memqdb.ListTxns(ctx, mockSequencer.SystemName) },
	}
	for i := 0; i < 10; i++ {
		for _, m := range methods {
			wg.Add(1)
			go func(m func()) {
				defer wg.Done()
				m()
			}(m)
		}
	}
	wg.Wait()
}

func TestMemqdbTableNames(t *testing.T) {
	assert := assert.New(t)
	ctx := context.TODO()

	memqdb, err := qdb.NewMemQDB("")
	assert.NoError(err)

	assert.NoError(memqdb.PutTableName(ctx, &qdb.TableName{TableName: "b", SystemName: "b~2"}))
	assert.NoError(memqdb.PutTableName(ctx, &qdb.TableName{TableName: "a", SystemName: "a~1"}))

	names, err := memqdb.ListTableNames(ctx)
	assert.NoError(err)
	assert.Len(names, 2)
	assert.Equal("a~1", names[0].SystemName)
	assert.Equal("b~2", names[1].SystemName)

	// returned records are copies
	names[0].Dropped = true
	names, err = memqdb.ListTableNames(ctx)
	assert.NoError(err)
	assert.False(names[0].Dropped)

	assert.NoError(memqdb.DeleteTableName(ctx, "a~1"))
	names, err = memqdb.ListTableNames(ctx)
	assert.NoError(err)
	assert.Len(names, 1)
}

func TestMemqdbSequencerLifecycle(t *testing.T) {
	assert := assert.New(t)
	ctx := context.TODO()

	memqdb, err := qdb.NewMemQDB("")
	assert.NoError(err)

	_, err = memqdb.GetSequencer(ctx, "trades~1")
	assert.True(walerror.HasCode(err, walerror.WAL_NO_SUCH_TABLE))
	assert.True(walerror.HasCode(memqdb.PutSequencer(ctx, mockSequencer), walerror.WAL_NO_SUCH_TABLE))

	assert.NoError(memqdb.CreateSequencer(ctx, mockSequencer))
	assert.True(walerror.HasCode(memqdb.CreateSequencer(ctx, mockSequencer), walerror.WAL_TABLE_EXISTS))

	assert.NoError(memqdb.AppendTxn(ctx, "trades~1", &qdb.TxnRecord{Txn: 1, WalID: 1}))
	assert.True(walerror.HasCode(memqdb.AppendTxn(ctx, "trades~1", &qdb.TxnRecord{Txn: 1}), walerror.WAL_CORRUPTED))
	assert.True(walerror.HasCode(memqdb.AppendTxn(ctx, "trades~1", &qdb.TxnRecord{Txn: 3}), walerror.WAL_CORRUPTED))
	assert.NoError(memqdb.AppendTxn(ctx, "trades~1", &qdb.TxnRecord{Txn: 2, Alter: &qdb.AlterRecord{Kind: "add_column", Column: "qty"}}))

	txns, err := memqdb.ListTxns(ctx, "trades~1")
	assert.NoError(err)
	assert.Len(txns, 2)
	assert.Equal(int64(2), txns[1].Txn)
	assert.Equal("qty", txns[1].Alter.Column)

	state, err := memqdb.GetSequencer(ctx, "trades~1")
	assert.NoError(err)
	state.LastTxn = 2
	state.Columns[0].Name = "changed"
	assert.NoError(memqdb.PutSequencer(ctx, state))

	stored, err := memqdb.GetSequencer(ctx, "trades~1")
	assert.NoError(err)
	assert.Equal(int64(2), stored.LastTxn)
	assert.Equal("price", mockSequencer.Columns[0].Name)

	assert.NoError(memqdb.DropSequencer(ctx, "trades~1"))
	_, err = memqdb.GetSequencer(ctx, "trades~1")
	assert.Error(err)
	txns, err = memqdb.ListTxns(ctx, "trades~1")
	assert.NoError(err)
	assert.Empty(txns)
}

func TestMemqdbBackupRestore(t *testing.T) {
	assert := assert.New(t)
	ctx := context.TODO()
	path := filepath.Join(t.TempDir(), "memqdb.json")

	memqdb, err := qdb.RestoreQDB(path)
	assert.NoError(err)
	assert.NoError(memqdb.PutTableName(ctx, mockTableName))
	assert.NoError(memqdb.CreateSequencer(ctx, mockSequencer))
	assert.NoError(memqdb.AppendTxn(ctx, mockSequencer.SystemName, &qdb.TxnRecord{Txn: 1}))
	assert.NoError(memqdb.Close())

	restored, err := qdb.RestoreQDB(path)
	assert.NoError(err)

	names, err := restored.ListTableNames(ctx)
	assert.NoError(err)
	assert.Equal([]*qdb.TableName{mockTableName}, names)

	state, err := restored.GetSequencer(ctx, mockSequencer.SystemName)
	assert.NoError(err)
	assert.Equal(mockSequencer, state)

	txns, err := restored.ListTxns(ctx, mockSequencer.SystemName)
	assert.NoError(err)
	assert.Len(txns, 1)
}
