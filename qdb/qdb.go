package qdb

import (
	"context"
	"time"

	"github.com/pg-sharding/walseq/pkg/config"
)

//go:generate mockgen -source=qdb.go -destination=../pkg/mock/qdb/qdb_mock.go -package=mock_qdb

// WalQDB stores the table name registry and sequencer state.
type WalQDB interface {
	PutTableName(ctx context.Context, name *TableName) error
	DeleteTableName(ctx context.Context, systemName string) error
	ListTableNames(ctx context.Context) ([]*TableName, error)

	CreateSequencer(ctx context.Context, state *SequencerState) error
	GetSequencer(ctx context.Context, systemName string) (*SequencerState, error)
	PutSequencer(ctx context.Context, state *SequencerState) error
	DropSequencer(ctx context.Context, systemName string) error

	AppendTxn(ctx context.Context, systemName string, txn *TxnRecord) error
	ListTxns(ctx context.Context, systemName string) ([]*TxnRecord, error)

	Close() error
}

// NewWalQDB opens etcd qdb if an address is configured, memqdb otherwise.
func NewWalQDB(cfg *config.Sequencer) (WalQDB, error) {
	if cfg.QdbAddr != "" {
		return NewEtcdQDB(cfg.QdbAddr, cfg.StorageOpTimeout)
	}
	return RestoreQDB(cfg.MemqdbBackupPath)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
