package qdb

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"sync"

	"github.com/pg-sharding/walseq/pkg/models/walerror"
	"github.com/pg-sharding/walseq/pkg/seqlog"
)

type MemQDB struct {
	mu sync.RWMutex

	TableNames map[string]*TableName      `json:"table_names"`
	Sequencers map[string]*SequencerState `json:"sequencers"`
	TxnLogs    map[string][]*TxnRecord    `json:"txn_logs"`

	backupPath string
}

var _ WalQDB = &MemQDB{}

func NewMemQDB(backupPath string) (*MemQDB, error) {
	return &MemQDB{
		TableNames: map[string]*TableName{},
		Sequencers: map[string]*SequencerState{},
		TxnLogs:    map[string][]*TxnRecord{},

		backupPath: backupPath,
	}, nil
}

// RestoreQDB creates memqdb and loads its state from backupPath, if the file exists.
func RestoreQDB(backupPath string) (*MemQDB, error) {
	qdb, err := NewMemQDB(backupPath)
	if err != nil {
		return nil, err
	}
	if backupPath == "" {
		return qdb, nil
	}
	if _, err := os.Stat(backupPath); err != nil {
		seqlog.Zero.Info().Err(err).Msg("memqdb backup file not exists. Creating new one.")
		f, err := os.Create(backupPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return qdb, nil
	}
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return qdb, nil
	}
	if err := json.Unmarshal(data, qdb); err != nil {
		return nil, err
	}
	// a backup written by an older build may miss some of the maps
	if qdb.TableNames == nil {
		qdb.TableNames = map[string]*TableName{}
	}
	if qdb.Sequencers == nil {
		qdb.Sequencers = map[string]*SequencerState{}
	}
	if qdb.TxnLogs == nil {
		qdb.TxnLogs = map[string][]*TxnRecord{}
	}
	return qdb, nil
}

func (q *MemQDB) DumpState() error {
	if q.backupPath == "" {
		return nil
	}
	tmpPath := q.backupPath + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	state, err := json.MarshalIndent(q, "", "	")
	if err != nil {
		return err
	}

	if _, err = f.Write(state); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, q.backupPath)
}

// ==============================================================================
//                                 TABLE NAMES
// ==============================================================================

func (q *MemQDB) PutTableName(_ context.Context, name *TableName) error {
	seqlog.Zero.Debug().
		Str("table", name.TableName).
		Str("system name", name.SystemName).
		Bool("dropped", name.Dropped).
		Msg("memqdb: put table name")
	q.mu.Lock()
	defer q.mu.Unlock()

	copied := *name
	return ExecuteCommands(q.DumpState, NewUpdateCommand(q.TableNames, name.SystemName, &copied))
}

func (q *MemQDB) DeleteTableName(_ context.Context, systemName string) error {
	seqlog.Zero.Debug().Str("system name", systemName).Msg("memqdb: delete table name")
	q.mu.Lock()
	defer q.mu.Unlock()

	return ExecuteCommands(q.DumpState, NewDeleteCommand(q.TableNames, systemName))
}

func (q *MemQDB) ListTableNames(_ context.Context) ([]*TableName, error) {
	seqlog.Zero.Debug().Msg("memqdb: list table names")
	q.mu.RLock()
	defer q.mu.RUnlock()

	ret := make([]*TableName, 0, len(q.TableNames))
	for _, v := range q.TableNames {
		copied := *v
		ret = append(ret, &copied)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].SystemName < ret[j].SystemName
	})
	return ret, nil
}

// ==============================================================================
//                                 SEQUENCERS
// ==============================================================================

func (q *MemQDB) CreateSequencer(_ context.Context, state *SequencerState) error {
	seqlog.Zero.Debug().
		Str("system name", state.SystemName).
		Int("table id", state.TableID).
		Msg("memqdb: create sequencer")
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.Sequencers[state.SystemName]; ok {
		return walerror.Newf(walerror.WAL_TABLE_EXISTS, "sequencer for table %q already exists", state.SystemName)
	}
	return ExecuteCommands(q.DumpState,
		NewUpdateCommand(q.Sequencers, state.SystemName, state.Clone()),
		NewDeleteCommand(q.TxnLogs, state.SystemName),
	)
}

func (q *MemQDB) GetSequencer(_ context.Context, systemName string) (*SequencerState, error) {
	seqlog.Zero.Debug().Str("system name", systemName).Msg("memqdb: get sequencer")
	q.mu.RLock()
	defer q.mu.RUnlock()

	state, ok := q.Sequencers[systemName]
	if !ok {
		return nil, walerror.Newf(walerror.WAL_NO_SUCH_TABLE, "sequencer for table %q not found", systemName)
	}
	return state.Clone(), nil
}

func (q *MemQDB) PutSequencer(_ context.Context, state *SequencerState) error {
	seqlog.Zero.Debug().
		Str("system name", state.SystemName).
		Int64("last txn", state.LastTxn).
		Int64("structure version", state.StructureVersion).
		Msg("memqdb: put sequencer")
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.Sequencers[state.SystemName]; !ok {
		return walerror.Newf(walerror.WAL_NO_SUCH_TABLE, "sequencer for table %q not found", state.SystemName)
	}
	return ExecuteCommands(q.DumpState, NewUpdateCommand(q.Sequencers, state.SystemName, state.Clone()))
}

func (q *MemQDB) DropSequencer(_ context.Context, systemName string) error {
	seqlog.Zero.Debug().Str("system name", systemName).Msg("memqdb: drop sequencer")
	q.mu.Lock()
	defer q.mu.Unlock()

	return ExecuteCommands(q.DumpState,
		NewDeleteCommand(q.Sequencers, systemName),
		NewDeleteCommand(q.TxnLogs, systemName),
	)
}

// ==============================================================================
//                                  TXN LOG
// ==============================================================================

func (q *MemQDB) AppendTxn(_ context.Context, systemName string, txn *TxnRecord) error {
	seqlog.Zero.Debug().
		Str("system name", systemName).
		Int64("txn", txn.Txn).
		Msg("memqdb: append txn")
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.Sequencers[systemName]; !ok {
		return walerror.Newf(walerror.WAL_NO_SUCH_TABLE, "sequencer for table %q not found", systemName)
	}
	log := q.TxnLogs[systemName]
	if int64(len(log))+1 != txn.Txn {
		return walerror.Newf(walerror.WAL_CORRUPTED, "txn %d does not follow txn log of length %d [table=%s]", txn.Txn, len(log), systemName)
	}
	return ExecuteCommands(q.DumpState, NewAppendCommand(q.TxnLogs, systemName, txn.Clone()))
}

func (q *MemQDB) ListTxns(_ context.Context, systemName string) ([]*TxnRecord, error) {
	seqlog.Zero.Debug().Str("system name", systemName).Msg("memqdb: list txns")
	q.mu.RLock()
	defer q.mu.RUnlock()

	log := q.TxnLogs[systemName]
	ret := make([]*TxnRecord, 0, len(log))
	for _, txn := range log {
		ret = append(ret, txn.Clone())
	}
	return ret, nil
}

func (q *MemQDB) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.DumpState()
}
