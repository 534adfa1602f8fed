package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookmark-manager/core/watch"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	watchFormat   string
	watchYes      bool
	watchDebounce time.Duration
)

// watchCmd keeps the store in step with a bookmarks file.
var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-import a bookmarks file whenever it changes",
	Long: `Imports the file once, then again every time it is written.

Each import wipes both root containers, exactly like "import". The wipe is
confirmed once at startup unless --yes is given.

Examples:
  # Mirror a Chrome profile into the store
  watch ~/.config/google-chrome/Default/Bookmarks --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchFormat, "format", "", "Bundle format: json, yaml, chromium or safari")
	watchCmd.Flags().BoolVar(&watchYes, "yes", false, "Auto-confirm the wipe (non-interactive)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period before re-importing")
	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	path := args[0]

	cfg, l, c, err := setup(ctx)
	if err != nil {
		return err
	}
	defer l.Sync()

	if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "All existing bookmarks will be replaced on every change.", watchYes) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	format := formatFor(path, watchFormat)
	reimport := func(ctx context.Context) error {
		bundle, err := loadBundle(path, format, cfg.Import)
		if err != nil {
			return err
		}
		result, err := c.reconciler.Import(ctx, bundle)
		if err != nil {
			return err
		}
		logResult(l, result)
		return nil
	}

	if err := reimport(ctx); err != nil {
		l.Warn("Initial import failed", zap.Error(err))
	}

	return watch.New(path, watchDebounce, reimport, l).Run(ctx)
}
