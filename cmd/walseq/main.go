package main

import (
	"context"

	"github.com/pg-sharding/walseq/pkg"
	"github.com/pg-sharding/walseq/pkg/clock"
	"github.com/pg-sharding/walseq/pkg/config"
	"github.com/pg-sharding/walseq/pkg/nameregistry"
	"github.com/pg-sharding/walseq/pkg/seqlog"
	"github.com/pg-sharding/walseq/qdb"
	"github.com/pg-sharding/walseq/sequencer/seqpool"
	"github.com/pg-sharding/walseq/sequencer/xqdbseq"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	cfgPath string

	rootCmd = &cobra.Command{
		Use:   "walseq run --config `path-to-config`",
		Short: "walseq",
		Long:  "WAL table sequencer",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Version:       pkg.WalseqVersionRevision,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "/etc/walseq/walseq.yaml", "path to sequencer config file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(nextTxnCmd)
	rootCmd.AddCommand(suspendCmd)
	rootCmd.AddCommand(dropCmd)
}

type instance struct {
	db   qdb.WalQDB
	pool *seqpool.TableSequencerPool
	cfg  *config.Sequencer
}

func (i *instance) Close() {
	i.pool.Close()
	if err := i.db.Close(); err != nil {
		seqlog.Zero.Error().Err(err).Msg("failed to close qdb")
	}
}

func openInstance(ctx context.Context) (*instance, error) {
	cfgStr, err := config.LoadSequencerCfg(cfgPath)
	if err != nil {
		return nil, err
	}
	cfg := config.SequencerConfig()

	seqlog.ReloadLogger(cfg.LogFileName, cfg.LogLevel, cfg.PrettyLogging)
	seqlog.Zero.Debug().Str("config", cfgStr).Msg("loaded sequencer config")

	db, err := qdb.NewWalQDB(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open qdb")
	}

	registry := nameregistry.NewRegistry(db, cfg.MangleTableSystemNames)
	if err := registry.Reload(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to load table names")
	}

	factory := xqdbseq.NewFactory(db, clock.Real, cfg.StorageOpTimeout)
	return &instance{
		db:   db,
		pool: seqpool.NewTableSequencerPool(cfg, registry, factory, clock.Real),
		cfg:  cfg,
	}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		seqlog.Zero.Fatal().Err(err).Msg("")
	}
}
