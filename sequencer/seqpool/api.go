package seqpool

import (
	"context"

	"github.com/pg-sharding/walseq/pkg/models/walerror"
	"github.com/pg-sharding/walseq/pkg/seqlog"
	"github.com/pg-sharding/walseq/sequencer"
)

// TableCallback is invoked by ForAllWalTables once per table.
type TableCallback func(tableID int, systemName string, lastTxn int64) error

// NextTxn allocates the next txn of a table. It returns sequencer.NoTxn if
// expectedSchemaVersion is stale.
func (p *TableSequencerPool) NextTxn(systemName string, walID int, expectedSchemaVersion int64, segmentID int, segmentTxn int64) (int64, error) {
	le, err := p.checkout(systemName, lockWrite, openExistingStrategy())
	if err != nil {
		return sequencer.NoTxn, err
	}
	defer le.release()

	return le.seq.NextTxn(expectedSchemaVersion, walID, segmentID, segmentTxn)
}

// NextStructureTxn records a structure change on top of structureVersionLo.
func (p *TableSequencerPool) NextStructureTxn(systemName string, structureVersionLo int64, op *sequencer.AlterOperation) (int64, error) {
	le, err := p.checkout(systemName, lockWrite, openExistingStrategy())
	if err != nil {
		return sequencer.NoTxn, err
	}
	defer le.release()

	return le.seq.NextStructureTxn(structureVersionLo, op)
}

// DropTable drops a WAL table once its name has been removed from the
// registry. When failedCreate is set the sequencer error is only logged.
func (p *TableSequencerPool) DropTable(ctx context.Context, tableName, systemName string, failedCreate bool) error {
	seqlog.Zero.Info().
		Str("table", tableName).
		Str("system name", systemName).
		Msg("seqpool: dropping wal table")

	removed, err := p.registry.RemoveName(ctx, tableName, systemName)
	if err != nil {
		return err
	}
	if !removed {
		seqlog.Zero.Info().
			Str("table", tableName).
			Str("system name", systemName).
			Msg("seqpool: table is already dropped")
		return nil
	}

	if err := p.dropSequencer(systemName); err != nil {
		seqlog.Zero.Info().
			Err(err).
			Str("table", tableName).
			Str("system name", systemName).
			Bool("failed create", failedCreate).
			Msg("seqpool: failed to drop wal table")
		if failedCreate {
			return nil
		}
		return err
	}
	return nil
}

func (p *TableSequencerPool) dropSequencer(systemName string) error {
	le, err := p.checkout(systemName, lockWrite, openExistingStrategy())
	if err != nil {
		return err
	}
	defer le.release()

	return le.seq.DropTable()
}

// Rename moves a WAL table to newTableName and returns the new name.
func (p *TableSequencerPool) Rename(ctx context.Context, tableName, newTableName, systemName string) (string, error) {
	renamed, err := p.registry.Rename(ctx, tableName, newTableName, systemName)
	if err != nil {
		return "", err
	}

	le, err := p.checkout(systemName, lockNone, openExistingStrategy())
	if err != nil {
		return "", err
	}
	defer le.release()

	if err := le.seq.Rename(renamed); err != nil {
		return "", err
	}

	seqlog.Zero.Warn().
		Str("from", tableName).
		Str("to", renamed).
		Str("system name", systemName).
		Msg("seqpool: renamed wal table")
	return renamed, nil
}

func (p *TableSequencerPool) SuspendTable(systemName string) error {
	le, err := p.checkout(systemName, lockWrite, openExistingStrategy())
	if err != nil {
		return err
	}
	defer le.release()

	return le.seq.SuspendTable()
}

func (p *TableSequencerPool) IsSuspended(systemName string) (bool, error) {
	le, err := p.checkout(systemName, lockRead, openExistingStrategy())
	if err != nil {
		return false, err
	}
	defer le.release()

	return le.seq.IsSuspended(), nil
}

// TransactionLogCursor returns txns after fromTxn. The cursor stays valid
// after the checkout is released.
func (p *TableSequencerPool) TransactionLogCursor(systemName string, fromTxn int64) (sequencer.TransactionLogCursor, error) {
	le, err := p.checkout(systemName, lockRead, openExistingStrategy())
	if err != nil {
		return nil, err
	}
	defer le.release()

	return le.seq.TransactionLogCursor(fromTxn)
}

func (p *TableSequencerPool) MetadataChangeLogCursor(systemName string, structureVersionLo int64) (sequencer.MetadataChangeLog, error) {
	le, err := p.checkout(systemName, lockRead, openExistingStrategy())
	if err != nil {
		return nil, err
	}
	defer le.release()

	return le.seq.MetadataChangeLogCursor(structureVersionLo)
}

func (p *TableSequencerPool) NextWalID(systemName string) (int, error) {
	le, err := p.checkout(systemName, lockRead, openExistingStrategy())
	if err != nil {
		return 0, err
	}
	defer le.release()

	return le.seq.NextWalID()
}

func (p *TableSequencerPool) LastTxn(systemName string) (int64, error) {
	le, err := p.checkout(systemName, lockRead, openExistingStrategy())
	if err != nil {
		return sequencer.NoTxn, err
	}
	defer le.release()

	return le.seq.LastTxn(), nil
}

// CopyMetadataTo copies the table metadata into sink and returns its structure version.
func (p *TableSequencerPool) CopyMetadataTo(systemName string, sink sequencer.MetadataSink) (int64, error) {
	le, err := p.checkout(systemName, lockRead, openExistingStrategy())
	if err != nil {
		return 0, err
	}
	defer le.release()

	le.seq.CopyMetadataTo(sink)
	return le.seq.StructureVersion(), nil
}

// ReloadMetadataConditionally copies metadata into sink only if the structure
// version differs from expectedStructureVersion.
func (p *TableSequencerPool) ReloadMetadataConditionally(systemName string, expectedStructureVersion int64, sink sequencer.MetadataSink) (bool, error) {
	le, err := p.checkout(systemName, lockRead, openExistingStrategy())
	if err != nil {
		return false, err
	}
	defer le.release()

	if le.seq.StructureVersion() == expectedStructureVersion {
		return false, nil
	}
	le.seq.CopyMetadataTo(sink)
	return true, nil
}

// ForAllWalTables calls cb for every WAL table. A table whose sequencer cannot
// be opened or whose callback fails is logged and skipped.
func (p *TableSequencerPool) ForAllWalTables(includeDropped bool, cb TableCallback) {
	for _, systemName := range p.registry.WalTableSystemNames() {
		if !includeDropped && p.registry.IsWalTableDropped(systemName) {
			continue
		}

		tableID, lastTxn, err := p.tableSummary(systemName)
		if err != nil {
			seqlog.Zero.Error().
				Err(err).
				Str("table", systemName).
				Msg("seqpool: could not open table sequencer")
			continue
		}

		if err := cb(tableID, systemName, lastTxn); err != nil {
			seqlog.Zero.Warn().
				Err(err).
				Str("table", systemName).
				Msg("seqpool: failed to process wal table")
		}
	}
}

func (p *TableSequencerPool) tableSummary(systemName string) (int, int64, error) {
	le, err := p.checkout(systemName, lockNone, openExistingStrategy())
	if err != nil {
		return 0, 0, err
	}
	defer le.release()

	return le.seq.TableID(), le.seq.LastTxn(), nil
}

// RegisterTable creates and opens the sequencer of a new WAL table.
func (p *TableSequencerPool) RegisterTable(tableID int, structure *sequencer.TableStructure, systemName string) error {
	le, err := p.checkout(systemName, lockWrite, createNewStrategy(tableID, structure))
	if err != nil {
		return err
	}
	le.release()
	return nil
}

// RegisterTableName binds tableName to a new WAL system name. If the name is
// already bound, even to the same table id, the existing system name is
// returned with created set to false.
func (p *TableSequencerPool) RegisterTableName(ctx context.Context, tableName string, tableID int) (systemName string, created bool, err error) {
	if existing := p.registry.WalTableSystemName(tableName); existing != "" {
		return existing, false, nil
	}
	systemName = p.registry.WalSystemNameFor(tableName, tableID)
	existing, ok, err := p.registry.RegisterName(ctx, tableName, systemName)
	if err != nil {
		return "", false, err
	}
	if !ok {
		if existing == "" {
			return "", false, walerror.Newf(walerror.WAL_TABLE_EXISTS, "system name %q is already in use", systemName)
		}
		return existing, false, nil
	}
	return systemName, true, nil
}

// SetDistressed marks the sequencer distressed. The entry is closed on release.
func (p *TableSequencerPool) SetDistressed(systemName string) error {
	le, err := p.checkout(systemName, lockWrite, openExistingStrategy())
	if err != nil {
		return err
	}
	defer le.release()

	le.seq.SetDistressed()
	return nil
}

// SystemTableNameOrDefault returns the WAL system name of tableName, or its
// default system name if it is not a WAL table.
func (p *TableSequencerPool) SystemTableNameOrDefault(tableName string) string {
	if systemName := p.registry.WalTableSystemName(tableName); systemName != "" {
		return systemName
	}
	return p.registry.DefaultSystemTableName(tableName)
}

func (p *TableSequencerPool) DefaultTableName(tableName string) string {
	return p.registry.DefaultSystemTableName(tableName)
}

func (p *TableSequencerPool) TableNameBySystemName(systemName string) string {
	return p.registry.TableNameBySystemName(systemName)
}

func (p *TableSequencerPool) WalSystemTableName(tableName string) string {
	return p.registry.WalTableSystemName(tableName)
}

func (p *TableSequencerPool) IsWalSystemName(systemName string) bool {
	return p.registry.IsWalSystemName(systemName)
}

func (p *TableSequencerPool) IsWalTableDropped(systemName string) bool {
	return p.registry.IsWalTableDropped(systemName)
}

func (p *TableSequencerPool) RemoveTableSystemName(ctx context.Context, systemName string) error {
	return p.registry.RemoveTableSystemName(ctx, systemName)
}
