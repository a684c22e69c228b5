package xqdbseq

import (
	"context"
	"sync"
	"time"

	"github.com/pg-sharding/walseq/pkg/clock"
	"github.com/pg-sharding/walseq/pkg/models/walerror"
	"github.com/pg-sharding/walseq/pkg/seqlog"
	"github.com/pg-sharding/walseq/qdb"
	"github.com/pg-sharding/walseq/sequencer"
	"go.uber.org/atomic"
)

// TableSequencer keeps the txn log of one table in qdb.
type TableSequencer struct {
	lock sync.RWMutex

	// hdrMu serializes header writes and guards meta, txns and changes
	// against writers that do not hold the write lock.
	hdrMu   sync.Mutex
	meta    *sequencer.TableMetadata
	txns    []sequencer.TxnEntry
	changes []*sequencer.AlterOperation

	db      qdb.WalQDB
	clock   clock.MicrosecondClock
	timeout time.Duration

	systemName string
	tableName  atomic.String
	tableID    atomic.Int64

	lastTxn          atomic.Int64
	structureVersion atomic.Int64
	nextWalID        atomic.Int64

	distressed atomic.Bool
	suspended  atomic.Bool
	dropped    atomic.Bool
	closed     atomic.Bool
}

var _ sequencer.Sequencer = &TableSequencer{}

func NewTableSequencer(db qdb.WalQDB, clk clock.MicrosecondClock, timeout time.Duration, systemName, tableName string) *TableSequencer {
	s := &TableSequencer{
		db:         db,
		clock:      clk,
		timeout:    timeout,
		systemName: systemName,
	}
	s.tableName.Store(tableName)
	return s
}

// NewFactory returns a sequencer.Factory producing qdb-backed sequencers.
func NewFactory(db qdb.WalQDB, clk clock.MicrosecondClock, timeout time.Duration) sequencer.Factory {
	return func(systemName string, tableName string) sequencer.Sequencer {
		return NewTableSequencer(db, clk, timeout, systemName, tableName)
	}
}

func (s *TableSequencer) opContext() (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), s.timeout)
}

// Create implements sequencer.Sequencer.
func (s *TableSequencer) Create(tableID int, structure *sequencer.TableStructure) error {
	ctx, cancel := s.opContext()
	defer cancel()

	meta := sequencer.NewTableMetadata(tableID, structure)
	state := &qdb.SequencerState{
		SystemName:     s.systemName,
		TableName:      s.tableName.Load(),
		TableID:        tableID,
		Columns:        toColumnRecords(meta.Columns),
		TimestampIndex: meta.TimestampIndex,
	}
	if state.TableName == "" {
		state.TableName = structure.TableName
	}

	seqlog.Zero.Debug().
		Str("table", state.TableName).
		Str("system name", s.systemName).
		Int("table id", tableID).
		Msg("xqdbseq: create sequencer")

	return s.db.CreateSequencer(ctx, state)
}

// Open implements sequencer.Sequencer.
func (s *TableSequencer) Open() error {
	ctx, cancel := s.opContext()
	defer cancel()

	state, err := s.db.GetSequencer(ctx, s.systemName)
	if err != nil {
		return err
	}
	recs, err := s.db.ListTxns(ctx, s.systemName)
	if err != nil {
		return err
	}

	s.hdrMu.Lock()
	defer s.hdrMu.Unlock()

	if err := s.replay(state, recs); err != nil {
		return err
	}

	if s.lastTxn.Load() != state.LastTxn {
		seqlog.Zero.Info().
			Str("system name", s.systemName).
			Int64("header txn", state.LastTxn).
			Int64("log txn", s.lastTxn.Load()).
			Msg("xqdbseq: txn log is ahead of sequencer header, rewriting header")
		if err := s.writeHeaderLocked(ctx); err != nil {
			return err
		}
	}

	seqlog.Zero.Debug().
		Str("system name", s.systemName).
		Int64("last txn", s.lastTxn.Load()).
		Int64("structure version", s.structureVersion.Load()).
		Msg("xqdbseq: opened sequencer")
	return nil
}

// replay rebuilds in-memory state from the header and the txn log.
// Alter records newer than the header are applied on top of header columns.
func (s *TableSequencer) replay(state *qdb.SequencerState, recs []*qdb.TxnRecord) error {
	if int64(len(recs)) < state.LastTxn {
		return walerror.Newf(walerror.WAL_CORRUPTED, "txn log has %d records, header expects %d [table=%s]", len(recs), state.LastTxn, s.systemName)
	}

	meta := &sequencer.TableMetadata{
		TableID:          state.TableID,
		TableName:        state.TableName,
		StructureVersion: state.StructureVersion,
		Columns:          fromColumnRecords(state.Columns),
		TimestampIndex:   state.TimestampIndex,
	}
	version := state.StructureVersion
	dropped := state.Dropped
	txns := make([]sequencer.TxnEntry, 0, len(recs))
	changes := make([]*sequencer.AlterOperation, 0)

	for i, rec := range recs {
		if rec.Txn != int64(i+1) {
			return walerror.Newf(walerror.WAL_CORRUPTED, "txn log gap: expected txn %d, found %d [table=%s]", i+1, rec.Txn, s.systemName)
		}
		if rec.Alter != nil {
			op := fromAlterRecord(rec.Alter)
			if rec.StructureVersion != int64(len(changes)+1) {
				return walerror.Newf(walerror.WAL_CORRUPTED, "structure version gap at txn %d [table=%s]", rec.Txn, s.systemName)
			}
			if rec.StructureVersion > version {
				if err := op.Apply(meta); err != nil {
					return walerror.Newf(walerror.WAL_CORRUPTED, "cannot replay structure change at txn %d [table=%s]: %v", rec.Txn, s.systemName, err)
				}
				version = rec.StructureVersion
			}
			changes = append(changes, op)
		}
		if rec.WalID == sequencer.DropTableWalID {
			dropped = true
		}
		txns = append(txns, sequencer.TxnEntry{
			Txn:              rec.Txn,
			WalID:            rec.WalID,
			SegmentID:        rec.SegmentID,
			SegmentTxn:       rec.SegmentTxn,
			StructureVersion: rec.StructureVersion,
		})
	}
	if int64(len(changes)) != version {
		return walerror.Newf(walerror.WAL_CORRUPTED, "header structure version %d, txn log has %d changes [table=%s]", version, len(changes), s.systemName)
	}
	meta.StructureVersion = version

	s.meta = meta
	s.txns = txns
	s.changes = changes
	s.tableID.Store(int64(state.TableID))
	if s.tableName.Load() == "" {
		s.tableName.Store(state.TableName)
	}
	s.lastTxn.Store(int64(len(txns)))
	s.structureVersion.Store(version)
	s.nextWalID.Store(int64(state.NextWalID))
	s.suspended.Store(state.Suspended)
	s.dropped.Store(dropped)
	return nil
}

func (s *TableSequencer) header() *qdb.SequencerState {
	return &qdb.SequencerState{
		SystemName:       s.systemName,
		TableName:        s.tableName.Load(),
		TableID:          int(s.tableID.Load()),
		LastTxn:          s.lastTxn.Load(),
		StructureVersion: s.structureVersion.Load(),
		NextWalID:        int(s.nextWalID.Load()),
		Suspended:        s.suspended.Load(),
		Dropped:          s.dropped.Load(),
		Columns:          toColumnRecords(s.meta.Columns),
		TimestampIndex:   s.meta.TimestampIndex,
	}
}

func (s *TableSequencer) writeHeaderLocked(ctx context.Context) error {
	return s.db.PutSequencer(ctx, s.header())
}

func (s *TableSequencer) writeHeader() error {
	ctx, cancel := s.opContext()
	defer cancel()

	s.hdrMu.Lock()
	defer s.hdrMu.Unlock()
	return s.writeHeaderLocked(ctx)
}

func (s *TableSequencer) distress(err error, op string) {
	s.distressed.Store(true)
	seqlog.Zero.Error().
		Err(err).
		Str("system name", s.systemName).
		Str("op", op).
		Msg("xqdbseq: sequencer is distressed")
}

func (s *TableSequencer) checkWritable() error {
	if s.closed.Load() {
		return walerror.Newf(walerror.WAL_UNEXPECTED, "sequencer is closed [table=%s]", s.systemName)
	}
	if s.distressed.Load() {
		return walerror.Newf(walerror.WAL_DISTRESSED, "sequencer is distressed [table=%s]", s.systemName)
	}
	if s.dropped.Load() {
		return walerror.Newf(walerror.WAL_TABLE_DROPPED, "table is dropped [table=%s]", s.systemName)
	}
	return nil
}

// appendTxn persists entry and moves in-memory state forward. Callers hold the write lock.
func (s *TableSequencer) appendTxn(entry sequencer.TxnEntry, op *sequencer.AlterOperation, newMeta *sequencer.TableMetadata, dropped bool) error {
	ctx, cancel := s.opContext()
	defer cancel()

	rec := &qdb.TxnRecord{
		Txn:              entry.Txn,
		WalID:            entry.WalID,
		SegmentID:        entry.SegmentID,
		SegmentTxn:       entry.SegmentTxn,
		StructureVersion: entry.StructureVersion,
		CommitMicros:     s.clock.Ticks(),
		Alter:            toAlterRecord(op),
	}
	if err := s.db.AppendTxn(ctx, s.systemName, rec); err != nil {
		s.distress(err, "append txn")
		return walerror.Newf(walerror.WAL_STORAGE_ERROR, "failed to append txn %d [table=%s]: %v", entry.Txn, s.systemName, err)
	}

	s.hdrMu.Lock()
	defer s.hdrMu.Unlock()

	s.txns = append(s.txns, entry)
	if op != nil {
		s.changes = append(s.changes, op)
		s.meta = newMeta
		s.structureVersion.Store(entry.StructureVersion)
	}
	if dropped {
		s.dropped.Store(true)
	}
	s.lastTxn.Store(entry.Txn)

	if err := s.writeHeaderLocked(ctx); err != nil {
		s.distress(err, "write header")
		return walerror.Newf(walerror.WAL_STORAGE_ERROR, "failed to write sequencer header after txn %d [table=%s]: %v", entry.Txn, s.systemName, err)
	}
	return nil
}

// NextTxn implements sequencer.Sequencer.
func (s *TableSequencer) NextTxn(expectedSchemaVersion int64, walID int, segmentID int, segmentTxn int64) (int64, error) {
	if err := s.checkWritable(); err != nil {
		return sequencer.NoTxn, err
	}
	if expectedSchemaVersion != s.structureVersion.Load() {
		return sequencer.NoTxn, nil
	}

	entry := sequencer.TxnEntry{
		Txn:              s.lastTxn.Load() + 1,
		WalID:            walID,
		SegmentID:        segmentID,
		SegmentTxn:       segmentTxn,
		StructureVersion: expectedSchemaVersion,
	}
	if err := s.appendTxn(entry, nil, nil, false); err != nil {
		return sequencer.NoTxn, err
	}
	return entry.Txn, nil
}

// NextStructureTxn implements sequencer.Sequencer.
func (s *TableSequencer) NextStructureTxn(structureVersionLo int64, op *sequencer.AlterOperation) (int64, error) {
	if err := s.checkWritable(); err != nil {
		return sequencer.NoTxn, err
	}
	if structureVersionLo != s.structureVersion.Load() {
		return sequencer.NoTxn, nil
	}

	newMeta := s.meta.Clone()
	if err := op.Apply(newMeta); err != nil {
		return sequencer.NoTxn, err
	}
	newMeta.StructureVersion = structureVersionLo + 1

	entry := sequencer.TxnEntry{
		Txn:              s.lastTxn.Load() + 1,
		WalID:            sequencer.MetadataWalID,
		StructureVersion: newMeta.StructureVersion,
	}
	if err := s.appendTxn(entry, op, newMeta, false); err != nil {
		return sequencer.NoTxn, err
	}
	return entry.Txn, nil
}

// DropTable implements sequencer.Sequencer.
func (s *TableSequencer) DropTable() error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	entry := sequencer.TxnEntry{
		Txn:              s.lastTxn.Load() + 1,
		WalID:            sequencer.DropTableWalID,
		StructureVersion: s.structureVersion.Load(),
	}
	return s.appendTxn(entry, nil, nil, true)
}

// Rename implements sequencer.Sequencer.
func (s *TableSequencer) Rename(newTableName string) error {
	if s.dropped.Load() {
		return walerror.Newf(walerror.WAL_TABLE_DROPPED, "table is dropped [table=%s]", s.systemName)
	}
	prev := s.tableName.Swap(newTableName)
	if err := s.writeHeader(); err != nil {
		s.tableName.CompareAndSwap(newTableName, prev)
		return err
	}
	return nil
}

// SuspendTable implements sequencer.Sequencer.
func (s *TableSequencer) SuspendTable() error {
	if s.suspended.Swap(true) {
		return nil
	}
	if err := s.writeHeader(); err != nil {
		s.suspended.Store(false)
		return err
	}
	return nil
}

// NextWalID implements sequencer.Sequencer.
func (s *TableSequencer) NextWalID() (int, error) {
	id := s.nextWalID.Inc()
	if err := s.writeHeader(); err != nil {
		return 0, err
	}
	return int(id), nil
}

// TransactionLogCursor returns txns after fromTxn. Callers hold the read lock.
func (s *TableSequencer) TransactionLogCursor(fromTxn int64) (sequencer.TransactionLogCursor, error) {
	if s.closed.Load() {
		return nil, walerror.Newf(walerror.WAL_UNEXPECTED, "sequencer is closed [table=%s]", s.systemName)
	}
	if fromTxn < 0 {
		fromTxn = 0
	}
	var entries []sequencer.TxnEntry
	if fromTxn < int64(len(s.txns)) {
		entries = append(entries, s.txns[fromTxn:]...)
	}
	return sequencer.NewTransactionLogCursor(entries), nil
}

// MetadataChangeLogCursor returns changes above structureVersionLo. Callers hold the read lock.
func (s *TableSequencer) MetadataChangeLogCursor(structureVersionLo int64) (sequencer.MetadataChangeLog, error) {
	if s.closed.Load() {
		return nil, walerror.Newf(walerror.WAL_UNEXPECTED, "sequencer is closed [table=%s]", s.systemName)
	}
	if structureVersionLo < 0 {
		structureVersionLo = 0
	}
	var ops []*sequencer.AlterOperation
	if structureVersionLo < int64(len(s.changes)) {
		ops = append(ops, s.changes[structureVersionLo:]...)
	}
	return sequencer.NewMetadataChangeLog(ops), nil
}

// CopyMetadataTo implements sequencer.Sequencer. Callers hold the read lock.
func (s *TableSequencer) CopyMetadataTo(sink sequencer.MetadataSink) {
	meta := s.meta.Clone()
	meta.TableName = s.tableName.Load()
	meta.StructureVersion = s.structureVersion.Load()
	sink.CopyFrom(meta)
}

// CheckClose implements sequencer.Sequencer.
func (s *TableSequencer) CheckClose() bool {
	if !s.closed.CompareAndSwap(false, true) {
		return false
	}

	s.hdrMu.Lock()
	s.txns = nil
	s.changes = nil
	s.hdrMu.Unlock()

	seqlog.Zero.Debug().
		Str("system name", s.systemName).
		Msg("xqdbseq: closed sequencer")
	return true
}

// Close implements sequencer.Sequencer.
func (s *TableSequencer) Close() error {
	s.CheckClose()
	return nil
}

func (s *TableSequencer) IsClosed() bool          { return s.closed.Load() }
func (s *TableSequencer) IsDistressed() bool      { return s.distressed.Load() }
func (s *TableSequencer) SetDistressed()          { s.distressed.Store(true) }
func (s *TableSequencer) IsSuspended() bool       { return s.suspended.Load() }
func (s *TableSequencer) LastTxn() int64          { return s.lastTxn.Load() }
func (s *TableSequencer) StructureVersion() int64 { return s.structureVersion.Load() }
func (s *TableSequencer) TableID() int            { return int(s.tableID.Load()) }
func (s *TableSequencer) TableName() string       { return s.tableName.Load() }
func (s *TableSequencer) SystemName() string      { return s.systemName }

func (s *TableSequencer) ReadLock()    { s.lock.RLock() }
func (s *TableSequencer) WriteLock()   { s.lock.Lock() }
func (s *TableSequencer) UnlockRead()  { s.lock.RUnlock() }
func (s *TableSequencer) UnlockWrite() { s.lock.Unlock() }

func toColumnRecords(cols []sequencer.Column) []qdb.Column {
	ret := make([]qdb.Column, 0, len(cols))
	for _, c := range cols {
		ret = append(ret, qdb.Column{Name: c.Name, Type: c.Type})
	}
	return ret
}

func fromColumnRecords(cols []qdb.Column) []sequencer.Column {
	ret := make([]sequencer.Column, 0, len(cols))
	for _, c := range cols {
		ret = append(ret, sequencer.Column{Name: c.Name, Type: c.Type})
	}
	return ret
}

func toAlterRecord(op *sequencer.AlterOperation) *qdb.AlterRecord {
	if op == nil {
		return nil
	}
	return &qdb.AlterRecord{
		Kind:       string(op.Kind),
		Column:     op.Column,
		ColumnType: op.ColumnType,
		NewName:    op.NewName,
	}
}

func fromAlterRecord(rec *qdb.AlterRecord) *sequencer.AlterOperation {
	return &sequencer.AlterOperation{
		Kind:       sequencer.AlterKind(rec.Kind),
		Column:     rec.Column,
		ColumnType: rec.ColumnType,
		NewName:    rec.NewName,
	}
}
