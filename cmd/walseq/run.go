package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pg-sharding/walseq/pkg/config"
	"github.com/pg-sharding/walseq/pkg/seqlog"
	"github.com/pg-sharding/walseq/sequencer/seqpool"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run sequencer pool with idle sequencer reclamation",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancelCtx := context.WithCancel(context.Background())
		defer cancelCtx()

		inst, err := openInstance(ctx)
		if err != nil {
			return err
		}
		defer inst.Close()

		reclaimer := seqpool.NewReclaimer(ctx, inst.pool, inst.cfg.ReleaseInactiveInterval)
		reclaimer.Start()
		defer func() {
			reclaimer.Stop()
		}()

		inst.pool.ForAllWalTables(false, func(tableID int, systemName string, lastTxn int64) error {
			seqlog.Zero.Info().
				Int("table id", tableID).
				Str("table", systemName).
				Int64("last txn", lastTxn).
				Msg("found wal table")
			return nil
		})

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigs)

		for {
			s := <-sigs
			seqlog.Zero.Info().Str("signal", s.String()).Msg("received signal")

			switch s {
			case syscall.SIGHUP:
				if _, err := config.LoadSequencerCfg(cfgPath); err != nil {
					seqlog.Zero.Error().Err(err).Msg("failed to reload config")
					continue
				}
				reclaimer = applyReloadedConfig(ctx, inst.pool, config.SequencerConfig(), reclaimer)
			default:
				return nil
			}
		}
	},
}

// applyReloadedConfig pushes the log level and idle TTL into the running pool.
// The reclaimer is replaced when its interval changed.
func applyReloadedConfig(ctx context.Context, pool *seqpool.TableSequencerPool, cfg *config.Sequencer, reclaimer *seqpool.Reclaimer) *seqpool.Reclaimer {
	if err := seqlog.UpdateZeroLogLevel(cfg.LogLevel); err != nil {
		seqlog.Zero.Error().Err(err).Msg("failed to update log level")
	}
	pool.SetInactiveWalWriterTTL(cfg.InactiveWalWriterTTL)

	if cfg.ReleaseInactiveInterval == reclaimer.Interval() {
		return reclaimer
	}
	reclaimer.Stop()
	next := seqpool.NewReclaimer(ctx, pool, cfg.ReleaseInactiveInterval)
	next.Start()

	seqlog.Zero.Info().
		Dur("ttl", cfg.InactiveWalWriterTTL).
		Dur("interval", cfg.ReleaseInactiveInterval).
		Msg("restarted reclaimer with reloaded config")
	return next
}
