package qdb

import "slices"

type TableName struct {
	TableName  string `json:"table_name"`
	SystemName string `json:"system_name"`
	Dropped    bool   `json:"dropped"`
}

type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// SequencerState is the persisted header of a table sequencer.
type SequencerState struct {
	SystemName       string   `json:"system_name"`
	TableName        string   `json:"table_name"`
	TableID          int      `json:"table_id"`
	LastTxn          int64    `json:"last_txn"`
	StructureVersion int64    `json:"structure_version"`
	NextWalID        int      `json:"next_wal_id"`
	Suspended        bool     `json:"suspended"`
	Dropped          bool     `json:"dropped"`
	Columns          []Column `json:"columns"`
	TimestampIndex   int      `json:"timestamp_index"`
}

func (s *SequencerState) Clone() *SequencerState {
	ret := *s
	ret.Columns = slices.Clone(s.Columns)
	return &ret
}

type AlterRecord struct {
	Kind       string `json:"kind"`
	Column     string `json:"column"`
	ColumnType string `json:"column_type,omitempty"`
	NewName    string `json:"new_name,omitempty"`
}

type TxnRecord struct {
	Txn              int64        `json:"txn"`
	WalID            int          `json:"wal_id"`
	SegmentID        int          `json:"segment_id"`
	SegmentTxn       int64        `json:"segment_txn"`
	StructureVersion int64        `json:"structure_version"`
	CommitMicros     int64        `json:"commit_micros"`
	Alter            *AlterRecord `json:"alter,omitempty"`
}

func (t *TxnRecord) Clone() *TxnRecord {
	ret := *t
	if t.Alter != nil {
		alter := *t.Alter
		ret.Alter = &alter
	}
	return &ret
}
