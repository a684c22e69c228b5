package qdb

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"time"

	"github.com/pg-sharding/walseq/pkg/models/walerror"
	"github.com/pg-sharding/walseq/pkg/seqlog"

	clientv3 "go.etcd.io/etcd/client/v3"
	"go.etcd.io/etcd/client/v3/clientv3util"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	retry "github.com/sethvargo/go-retry"
)

type EtcdQDB struct {
	cli     *clientv3.Client
	timeout time.Duration
}

var _ WalQDB = &EtcdQDB{}

func NewEtcdQDB(addr string, timeout time.Duration) (*EtcdQDB, error) {
	cli, err := clientv3.New(clientv3.Config{
		Endpoints: []string{addr},
		DialOptions: []grpc.DialOption{
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		},
	})
	if err != nil {
		return nil, err
	}

	seqlog.Zero.Debug().
		Str("address", addr).
		Uint("client", seqlog.GetPointer(cli)).
		Msg("etcdqdb: NewEtcdQDB")

	return &EtcdQDB{
		cli:     cli,
		timeout: timeout,
	}, nil
}

const (
	tableNamesNamespace = "/wal_table_names/"
	sequencersNamespace = "/wal_sequencers/"
	txnLogNamespace     = "/wal_txnlog/"

	readRetries = 3
)

func tableNameNodePath(systemName string) string {
	return path.Join(tableNamesNamespace, systemName)
}

func sequencerNodePath(systemName string) string {
	return path.Join(sequencersNamespace, systemName)
}

// txnLogPrefix ends with a slash so that "t1" does not match "t1~2".
func txnLogPrefix(systemName string) string {
	return path.Join(txnLogNamespace, systemName) + "/"
}

// txnNodePath zero-pads txn so that keys sort in txn order.
func txnNodePath(systemName string, txn int64) string {
	return txnLogPrefix(systemName) + fmt.Sprintf("%020d", txn)
}

func (q *EtcdQDB) get(ctx context.Context, key string, opts ...clientv3.OpOption) (*clientv3.GetResponse, error) {
	var resp *clientv3.GetResponse
	err := retry.Do(ctx, retry.WithMaxRetries(readRetries, retry.NewFibonacci(100*time.Millisecond)), func(ctx context.Context) error {
		var err error
		resp, err = q.cli.Get(ctx, key, opts...)
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	return resp, err
}

// ==============================================================================
//                                 TABLE NAMES
// ==============================================================================

func (q *EtcdQDB) PutTableName(ctx context.Context, name *TableName) error {
	seqlog.Zero.Debug().
		Str("table", name.TableName).
		Str("system name", name.SystemName).
		Bool("dropped", name.Dropped).
		Msg("etcdqdb: put table name")

	ctx, cancel := withTimeout(ctx, q.timeout)
	defer cancel()

	raw, err := json.Marshal(name)
	if err != nil {
		return err
	}
	_, err = q.cli.Put(ctx, tableNameNodePath(name.SystemName), string(raw))
	return err
}

func (q *EtcdQDB) DeleteTableName(ctx context.Context, systemName string) error {
	seqlog.Zero.Debug().
		Str("system name", systemName).
		Msg("etcdqdb: delete table name")

	ctx, cancel := withTimeout(ctx, q.timeout)
	defer cancel()

	_, err := q.cli.Delete(ctx, tableNameNodePath(systemName))
	return err
}

func (q *EtcdQDB) ListTableNames(ctx context.Context) ([]*TableName, error) {
	seqlog.Zero.Debug().Msg("etcdqdb: list table names")

	ctx, cancel := withTimeout(ctx, q.timeout)
	defer cancel()

	resp, err := q.get(ctx, tableNamesNamespace, clientv3.WithPrefix())
	if err != nil {
		return nil, err
	}

	ret := make([]*TableName, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var name TableName
		if err := json.Unmarshal(kv.Value, &name); err != nil {
			return nil, err
		}
		ret = append(ret, &name)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].SystemName < ret[j].SystemName
	})
	return ret, nil
}

// ==============================================================================
//                                 SEQUENCERS
// ==============================================================================

func (q *EtcdQDB) CreateSequencer(ctx context.Context, state *SequencerState) error {
	seqlog.Zero.Debug().
		Str("system name", state.SystemName).
		Int("table id", state.TableID).
		Msg("etcdqdb: create sequencer")

	ctx, cancel := withTimeout(ctx, q.timeout)
	defer cancel()

	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}

	key := sequencerNodePath(state.SystemName)
	stat, err := q.cli.Txn(ctx).
		If(clientv3util.KeyMissing(key)).
		Then(
			clientv3.OpPut(key, string(raw)),
			clientv3.OpDelete(txnLogPrefix(state.SystemName), clientv3.WithPrefix()),
		).
		Commit()
	if err != nil {
		return err
	}
	if !stat.Succeeded {
		return walerror.Newf(walerror.WAL_TABLE_EXISTS, "sequencer for table %q already exists", state.SystemName)
	}
	return nil
}

func (q *EtcdQDB) GetSequencer(ctx context.Context, systemName string) (*SequencerState, error) {
	seqlog.Zero.Debug().
		Str("system name", systemName).
		Msg("etcdqdb: get sequencer")

	ctx, cancel := withTimeout(ctx, q.timeout)
	defer cancel()

	resp, err := q.get(ctx, sequencerNodePath(systemName))
	if err != nil {
		return nil, err
	}

	switch len(resp.Kvs) {
	case 0:
		return nil, walerror.Newf(walerror.WAL_NO_SUCH_TABLE, "sequencer for table %q not found", systemName)
	case 1:
		var state SequencerState
		if err := json.Unmarshal(resp.Kvs[0].Value, &state); err != nil {
			return nil, walerror.Newf(walerror.WAL_CORRUPTED, "failed to decode sequencer %q: %v", systemName, err)
		}
		return &state, nil
	default:
		return nil, walerror.Newf(walerror.WAL_CORRUPTED, "possible data corruption: multiple key-value pairs found for %v", systemName)
	}
}

func (q *EtcdQDB) PutSequencer(ctx context.Context, state *SequencerState) error {
	seqlog.Zero.Debug().
		Str("system name", state.SystemName).
		Int64("last txn", state.LastTxn).
		Int64("structure version", state.StructureVersion).
		Msg("etcdqdb: put sequencer")

	ctx, cancel := withTimeout(ctx, q.timeout)
	defer cancel()

	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}

	key := sequencerNodePath(state.SystemName)
	stat, err := q.cli.Txn(ctx).
		If(clientv3util.KeyExists(key)).
		Then(clientv3.OpPut(key, string(raw))).
		Commit()
	if err != nil {
		return err
	}
	if !stat.Succeeded {
		return walerror.Newf(walerror.WAL_NO_SUCH_TABLE, "sequencer for table %q not found", state.SystemName)
	}
	return nil
}

func (q *EtcdQDB) DropSequencer(ctx context.Context, systemName string) error {
	seqlog.Zero.Debug().
		Str("system name", systemName).
		Msg("etcdqdb: drop sequencer")

	ctx, cancel := withTimeout(ctx, q.timeout)
	defer cancel()

	_, err := q.cli.Txn(ctx).
		Then(
			clientv3.OpDelete(sequencerNodePath(systemName)),
			clientv3.OpDelete(txnLogPrefix(systemName), clientv3.WithPrefix()),
		).
		Commit()
	return err
}

// ==============================================================================
//                                  TXN LOG
// ==============================================================================

func (q *EtcdQDB) AppendTxn(ctx context.Context, systemName string, txn *TxnRecord) error {
	seqlog.Zero.Debug().
		Str("system name", systemName).
		Int64("txn", txn.Txn).
		Msg("etcdqdb: append txn")

	ctx, cancel := withTimeout(ctx, q.timeout)
	defer cancel()

	raw, err := json.Marshal(txn)
	if err != nil {
		return err
	}

	key := txnNodePath(systemName, txn.Txn)
	seqKey := sequencerNodePath(systemName)
	stat, err := q.cli.Txn(ctx).
		If(
			clientv3util.KeyExists(seqKey),
			clientv3util.KeyMissing(key),
		).
		Then(clientv3.OpPut(key, string(raw))).
		Commit()
	if err != nil {
		return err
	}
	if !stat.Succeeded {
		return walerror.Newf(walerror.WAL_CORRUPTED, "txn %d is already recorded or sequencer is missing [table=%s]", txn.Txn, systemName)
	}
	return nil
}

func (q *EtcdQDB) ListTxns(ctx context.Context, systemName string) ([]*TxnRecord, error) {
	seqlog.Zero.Debug().
		Str("system name", systemName).
		Msg("etcdqdb: list txns")

	ctx, cancel := withTimeout(ctx, q.timeout)
	defer cancel()

	resp, err := q.get(ctx, txnLogPrefix(systemName),
		clientv3.WithPrefix(),
		clientv3.WithSort(clientv3.SortByKey, clientv3.SortAscend),
	)
	if err != nil {
		return nil, err
	}

	ret := make([]*TxnRecord, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var txn TxnRecord
		if err := json.Unmarshal(kv.Value, &txn); err != nil {
			return nil, walerror.Newf(walerror.WAL_CORRUPTED, "failed to decode txn record %s: %v", string(kv.Key), err)
		}
		ret = append(ret, &txn)
	}
	return ret, nil
}

func (q *EtcdQDB) Close() error {
	return q.cli.Close()
}
