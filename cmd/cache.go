package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cacheCmd is the parent command for snapshot maintenance.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the persisted bookmark snapshot",
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print snapshot totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		_, l, c, err := setup(ctx)
		if err != nil {
			return err
		}
		defer l.Sync()

		cached, err := c.snapshots.Current(ctx)
		if err != nil {
			return err
		}
		l.Info("Snapshot",
			zap.Int("bookmarks", cached.Snapshot.TotalBookmarks),
			zap.Int("folders", cached.Snapshot.TotalFolders),
			zap.Time("last_sync", cached.LastSync))
		return nil
	},
}

var cacheRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the snapshot from the store and persist it",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		_, l, c, err := setup(ctx)
		if err != nil {
			return err
		}
		defer l.Sync()

		cached, err := c.snapshots.Refresh(ctx)
		if err != nil {
			return err
		}
		l.Info("Snapshot rebuilt",
			zap.Int("bookmarks", cached.Snapshot.TotalBookmarks),
			zap.Int("folders", cached.Snapshot.TotalFolders))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the persisted snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		cfg, l, c, err := setup(ctx)
		if err != nil {
			return err
		}
		defer l.Sync()

		if c.persister == nil {
			l.Info("Snapshot persistence is disabled", zap.String("backend", cfg.Snapshot.Backend))
			return nil
		}
		if err := c.persister.Clear(ctx); err != nil {
			return err
		}
		l.Info("Persisted snapshot cleared", zap.String("backend", cfg.Snapshot.Backend))
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheShowCmd, cacheRebuildCmd, cacheClearCmd)
	RootCmd.AddCommand(cacheCmd)
}
