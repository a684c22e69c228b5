package qdb

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEtcdNodePaths(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("/wal_table_names/t1~1", tableNameNodePath("t1~1"))
	assert.Equal("/wal_sequencers/t1~1", sequencerNodePath("t1~1"))
	assert.Equal("/wal_txnlog/t1~1/", txnLogPrefix("t1~1"))
	assert.Equal("/wal_txnlog/t1~1/00000000000000000042", txnNodePath("t1~1", 42))
}

func TestEtcdTxnKeysSortInTxnOrder(t *testing.T) {
	keys := []string{
		txnNodePath("t", 100),
		txnNodePath("t", 9),
		txnNodePath("t", 10),
		txnNodePath("t", 1),
	}
	sort.Strings(keys)
	assert.Equal(t, []string{
		txnNodePath("t", 1),
		txnNodePath("t", 9),
		txnNodePath("t", 10),
		txnNodePath("t", 100),
	}, keys)
}

func TestEtcdTxnPrefixDoesNotOverlap(t *testing.T) {
	assert.NotContains(t, txnNodePath("t1~12", 1), txnLogPrefix("t1~1"))
}
