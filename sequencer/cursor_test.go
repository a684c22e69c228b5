package sequencer_test

import (
	"testing"

	"github.com/pg-sharding/walseq/sequencer"
	"github.com/stretchr/testify/assert"
)

func TestTransactionLogCursor(t *testing.T) {
	assert := assert.New(t)

	cur := sequencer.NewTransactionLogCursor([]sequencer.TxnEntry{
		{Txn: 1, WalID: 3, SegmentID: 0, SegmentTxn: 10, StructureVersion: 0},
		{Txn: 2, WalID: sequencer.MetadataWalID, StructureVersion: 1},
	})

	assert.True(cur.HasNext())
	assert.Equal(int64(1), cur.Txn())
	assert.Equal(3, cur.WalID())
	assert.Equal(int64(10), cur.SegmentTxn())

	assert.True(cur.HasNext())
	assert.Equal(int64(2), cur.Txn())
	assert.Equal(sequencer.MetadataWalID, cur.WalID())
	assert.Equal(int64(1), cur.StructureVersion())

	assert.False(cur.HasNext())
	cur.Close()
	assert.False(cur.HasNext())
}

func TestTransactionLogCursorEmpty(t *testing.T) {
	cur := sequencer.NewTransactionLogCursor(nil)
	assert.False(t, cur.HasNext())
}

func TestMetadataChangeLog(t *testing.T) {
	assert := assert.New(t)

	log := sequencer.NewMetadataChangeLog([]*sequencer.AlterOperation{
		sequencer.AddColumn("a", "INT"),
		sequencer.RenameColumn("a", "b"),
	})

	var got []sequencer.AlterKind
	for log.HasNext() {
		got = append(got, log.Next().Kind)
	}
	log.Close()

	assert.Equal([]sequencer.AlterKind{sequencer.AlterAddColumn, sequencer.AlterRenameColumn}, got)
	assert.False(log.HasNext())
}
