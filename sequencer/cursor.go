package sequencer

// TxnEntry is one record of the transaction log.
type TxnEntry struct {
	Txn              int64
	WalID            int
	SegmentID        int
	SegmentTxn       int64
	StructureVersion int64
}

type sliceTxnCursor struct {
	entries []TxnEntry
	pos     int
}

// NewTransactionLogCursor iterates entries. The slice must not be mutated afterwards.
func NewTransactionLogCursor(entries []TxnEntry) TransactionLogCursor {
	return &sliceTxnCursor{entries: entries, pos: -1}
}

func (c *sliceTxnCursor) HasNext() bool {
	if c.pos+1 >= len(c.entries) {
		return false
	}
	c.pos++
	return true
}

func (c *sliceTxnCursor) Txn() int64              { return c.entries[c.pos].Txn }
func (c *sliceTxnCursor) WalID() int              { return c.entries[c.pos].WalID }
func (c *sliceTxnCursor) SegmentID() int          { return c.entries[c.pos].SegmentID }
func (c *sliceTxnCursor) SegmentTxn() int64       { return c.entries[c.pos].SegmentTxn }
func (c *sliceTxnCursor) StructureVersion() int64 { return c.entries[c.pos].StructureVersion }

func (c *sliceTxnCursor) Close() {
	c.entries = nil
	c.pos = -1
}

type sliceChangeLog struct {
	ops []*AlterOperation
	pos int
}

func NewMetadataChangeLog(ops []*AlterOperation) MetadataChangeLog {
	return &sliceChangeLog{ops: ops}
}

func (c *sliceChangeLog) HasNext() bool {
	return c.pos < len(c.ops)
}

func (c *sliceChangeLog) Next() *AlterOperation {
	op := c.ops[c.pos]
	c.pos++
	return op
}

func (c *sliceChangeLog) Close() {
	c.ops = nil
	c.pos = 0
}
