package sequencer

//go:generate mockgen -source=sequencer.go -destination=../pkg/mock/sequencer/sequencer_mock.go -package=mock_sequencer

const (
	// NoTxn is returned when the caller's structure version is stale.
	NoTxn int64 = -1

	MetadataWalID  = -1
	DropTableWalID = -2

	SystemTableNameSuffix = "~"
)

// Sequencer allocates transaction numbers and structure versions for a single WAL table.
//
// The lock methods guard the txn log and metadata. Counters read without
// a lock (LastTxn, TableID) are always safe to call.
type Sequencer interface {
	Create(tableID int, structure *TableStructure) error
	Open() error
	Close() error

	// CheckClose tears the sequencer down. Only the first caller gets true.
	CheckClose() bool
	IsClosed() bool

	IsDistressed() bool
	SetDistressed()
	IsSuspended() bool
	SuspendTable() error
	DropTable() error
	Rename(newTableName string) error

	NextTxn(expectedSchemaVersion int64, walID int, segmentID int, segmentTxn int64) (int64, error)
	NextStructureTxn(structureVersionLo int64, op *AlterOperation) (int64, error)

	LastTxn() int64
	StructureVersion() int64
	NextWalID() (int, error)
	TableID() int
	TableName() string
	SystemName() string

	TransactionLogCursor(fromTxn int64) (TransactionLogCursor, error)
	MetadataChangeLogCursor(structureVersionLo int64) (MetadataChangeLog, error)
	CopyMetadataTo(sink MetadataSink)

	ReadLock()
	WriteLock()
	UnlockRead()
	UnlockWrite()
}

// Factory builds a sequencer that is neither created nor opened yet.
type Factory func(systemName string, tableName string) Sequencer

// TransactionLogCursor iterates a snapshot of the txn log.
type TransactionLogCursor interface {
	HasNext() bool
	Txn() int64
	WalID() int
	SegmentID() int
	SegmentTxn() int64
	StructureVersion() int64
	Close()
}

// MetadataChangeLog iterates structure changes above a version.
type MetadataChangeLog interface {
	HasNext() bool
	Next() *AlterOperation
	Close()
}

// MetadataSink receives a copy of table metadata.
type MetadataSink interface {
	CopyFrom(meta *TableMetadata)
}
