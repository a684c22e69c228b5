package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pg-sharding/walseq/pkg/models/walerror"
	"github.com/pg-sharding/walseq/pkg/seqlog"
	"github.com/pg-sharding/walseq/sequencer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// parseColumns reads "name:type" pairs. The first TIMESTAMP column becomes the
// designated timestamp; a ts column is appended if there is none.
func parseColumns(tableName string, args []string) (*sequencer.TableStructure, error) {
	structure := &sequencer.TableStructure{
		TableName:      tableName,
		TimestampIndex: -1,
	}
	for i, arg := range args {
		name, colType, ok := strings.Cut(arg, ":")
		if !ok || name == "" || colType == "" {
			return nil, fmt.Errorf("invalid column %q, expected name:type", arg)
		}
		colType = strings.ToUpper(colType)
		structure.Columns = append(structure.Columns, sequencer.Column{Name: name, Type: colType})
		if structure.TimestampIndex < 0 && colType == "TIMESTAMP" {
			structure.TimestampIndex = i
		}
	}
	if structure.TimestampIndex < 0 {
		structure.Columns = append(structure.Columns, sequencer.Column{Name: "ts", Type: "TIMESTAMP"})
		structure.TimestampIndex = len(structure.Columns) - 1
	}
	return structure, nil
}

func walSystemName(inst *instance, tableName string) (string, error) {
	systemName := inst.pool.WalSystemTableName(tableName)
	if systemName == "" {
		return "", walerror.Newf(walerror.WAL_NO_SUCH_TABLE, "wal table %q does not exist", tableName)
	}
	return systemName, nil
}

var registerCmd = &cobra.Command{
	Use:   "register <table> <table-id> [column:type ...]",
	Short: "register a new wal table",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		tableID, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.Wrapf(err, "invalid table id %q", args[1])
		}
		structure, err := parseColumns(args[0], args[2:])
		if err != nil {
			return err
		}

		inst, err := openInstance(ctx)
		if err != nil {
			return err
		}
		defer inst.Close()

		systemName, created, err := inst.pool.RegisterTableName(ctx, args[0], tableID)
		if err != nil {
			return err
		}
		if !created {
			return walerror.Newf(walerror.WAL_TABLE_EXISTS, "table %q already exists as %s", args[0], systemName)
		}

		if err := inst.pool.RegisterTable(tableID, structure, systemName); err != nil {
			if dropErr := inst.pool.DropTable(ctx, args[0], systemName, true); dropErr != nil {
				seqlog.Zero.Error().Err(dropErr).Str("table", args[0]).Msg("failed to roll back table registration")
			}
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), systemName)
		return nil
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "list wal tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := cmd.Flags().GetBool("all")
		if err != nil {
			return err
		}

		inst, err := openInstance(context.Background())
		if err != nil {
			return err
		}
		defer inst.Close()

		inst.pool.ForAllWalTables(all, func(tableID int, systemName string, lastTxn int64) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d\n", tableID, systemName, lastTxn)
			return err
		})
		return nil
	},
}

var nextTxnCmd = &cobra.Command{
	Use:   "next-txn <table> <wal-id> <segment-id> <segment-txn>",
	Short: "allocate the next txn of a wal table",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		walID, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.Wrapf(err, "invalid wal id %q", args[1])
		}
		segmentID, err := strconv.Atoi(args[2])
		if err != nil {
			return errors.Wrapf(err, "invalid segment id %q", args[2])
		}
		segmentTxn, err := strconv.ParseInt(args[3], 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid segment txn %q", args[3])
		}

		inst, err := openInstance(context.Background())
		if err != nil {
			return err
		}
		defer inst.Close()

		systemName, err := walSystemName(inst, args[0])
		if err != nil {
			return err
		}

		meta := &sequencer.TableMetadata{}
		version, err := inst.pool.CopyMetadataTo(systemName, meta)
		if err != nil {
			return err
		}
		txn, err := inst.pool.NextTxn(systemName, walID, version, segmentID, segmentTxn)
		if err != nil {
			return err
		}
		if txn == sequencer.NoTxn {
			return fmt.Errorf("structure version of %s changed concurrently, retry", args[0])
		}

		fmt.Fprintln(cmd.OutOrStdout(), txn)
		return nil
	},
}

var suspendCmd = &cobra.Command{
	Use:   "suspend <table>",
	Short: "suspend a wal table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := openInstance(context.Background())
		if err != nil {
			return err
		}
		defer inst.Close()

		systemName, err := walSystemName(inst, args[0])
		if err != nil {
			return err
		}
		return inst.pool.SuspendTable(systemName)
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop <table>",
	Short: "drop a wal table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		inst, err := openInstance(ctx)
		if err != nil {
			return err
		}
		defer inst.Close()

		systemName, err := walSystemName(inst, args[0])
		if err != nil {
			return err
		}
		return inst.pool.DropTable(ctx, args[0], systemName, false)
	},
}

func init() {
	tablesCmd.Flags().Bool("all", false, "include dropped tables")
}
