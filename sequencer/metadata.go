package sequencer

import (
	"slices"

	"github.com/pg-sharding/walseq/pkg/models/walerror"
)

type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type TableStructure struct {
	TableName      string   `json:"table_name"`
	Columns        []Column `json:"columns"`
	TimestampIndex int      `json:"timestamp_index"`
}

type TableMetadata struct {
	TableID          int      `json:"table_id"`
	TableName        string   `json:"table_name"`
	StructureVersion int64    `json:"structure_version"`
	Columns          []Column `json:"columns"`
	TimestampIndex   int      `json:"timestamp_index"`
}

var _ MetadataSink = &TableMetadata{}

// CopyFrom implements MetadataSink.
func (m *TableMetadata) CopyFrom(src *TableMetadata) {
	m.TableID = src.TableID
	m.TableName = src.TableName
	m.StructureVersion = src.StructureVersion
	m.Columns = slices.Clone(src.Columns)
	m.TimestampIndex = src.TimestampIndex
}

func (m *TableMetadata) Clone() *TableMetadata {
	ret := &TableMetadata{}
	ret.CopyFrom(m)
	return ret
}

func (m *TableMetadata) ColumnIndex(name string) int {
	return slices.IndexFunc(m.Columns, func(c Column) bool {
		return c.Name == name
	})
}

func NewTableMetadata(tableID int, structure *TableStructure) *TableMetadata {
	return &TableMetadata{
		TableID:        tableID,
		TableName:      structure.TableName,
		Columns:        slices.Clone(structure.Columns),
		TimestampIndex: structure.TimestampIndex,
	}
}

type AlterKind string

const (
	AlterAddColumn    = AlterKind("add_column")
	AlterDropColumn   = AlterKind("drop_column")
	AlterRenameColumn = AlterKind("rename_column")
)

type AlterOperation struct {
	Kind       AlterKind `json:"kind"`
	Column     string    `json:"column"`
	ColumnType string    `json:"column_type,omitempty"`
	NewName    string    `json:"new_name,omitempty"`
}

func AddColumn(name, colType string) *AlterOperation {
	return &AlterOperation{Kind: AlterAddColumn, Column: name, ColumnType: colType}
}

func DropColumn(name string) *AlterOperation {
	return &AlterOperation{Kind: AlterDropColumn, Column: name}
}

func RenameColumn(name, newName string) *AlterOperation {
	return &AlterOperation{Kind: AlterRenameColumn, Column: name, NewName: newName}
}

// Apply mutates meta in place. It does not touch the structure version.
func (op *AlterOperation) Apply(meta *TableMetadata) error {
	idx := meta.ColumnIndex(op.Column)
	switch op.Kind {
	case AlterAddColumn:
		if idx >= 0 {
			return walerror.Newf(walerror.WAL_METADATA_INVALID, "column %q already exists", op.Column)
		}
		meta.Columns = append(meta.Columns, Column{Name: op.Column, Type: op.ColumnType})
	case AlterDropColumn:
		if idx < 0 {
			return walerror.Newf(walerror.WAL_METADATA_INVALID, "column %q does not exist", op.Column)
		}
		if idx == meta.TimestampIndex {
			return walerror.Newf(walerror.WAL_METADATA_INVALID, "cannot drop designated timestamp column %q", op.Column)
		}
		meta.Columns = slices.Delete(meta.Columns, idx, idx+1)
		if meta.TimestampIndex > idx {
			meta.TimestampIndex--
		}
	case AlterRenameColumn:
		if idx < 0 {
			return walerror.Newf(walerror.WAL_METADATA_INVALID, "column %q does not exist", op.Column)
		}
		if meta.ColumnIndex(op.NewName) >= 0 {
			return walerror.Newf(walerror.WAL_METADATA_INVALID, "column %q already exists", op.NewName)
		}
		meta.Columns[idx].Name = op.NewName
	default:
		return walerror.Newf(walerror.WAL_METADATA_INVALID, "unknown alter operation %q", op.Kind)
	}
	return nil
}
