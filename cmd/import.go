package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bookmark-manager/core/chromium"
	"bookmark-manager/core/reconcile"
	"bookmark-manager/core/safari"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importFormat string
	importYes    bool
)

// importCmd replaces both root containers with a bundle file.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all bookmarks with a bundle file",
	Long: `Wipes both root containers and rebuilds them from a bundle.

The file is a {folderTree, allLinks} bundle in JSON or YAML, a Chromium
"Bookmarks" file or a Safari "Bookmarks.plist". The format is taken from --format, or from the file
extension when --format is not set.

Examples:
  # Import an exported bundle (with interactive confirmation)
  import backup.yaml

  # Import a Chrome profile without prompting
  import ~/.config/google-chrome/Default/Bookmarks --format chromium --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "", "Bundle format: json, yaml, chromium or safari")
	importCmd.Flags().BoolVar(&importYes, "yes", false, "Auto-confirm the wipe (non-interactive)")
	RootCmd.AddCommand(importCmd)
}

// formatFor guesses a bundle format from the file name.
func formatFor(path, explicit string) string {
	if explicit != "" {
		return explicit
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return reconcile.FormatYAML
	case ".plist":
		return safari.Format
	case "":
		if filepath.Base(path) == "Bookmarks" {
			return chromium.Format
		}
	}
	return reconcile.FormatJSON
}

// loadBundle reads path and converts it according to format.
func loadBundle(path, format string, sentinels reconcile.Config) (*reconcile.Bundle, error) {
	switch format {
	case chromium.Format:
		return chromium.ReadFile(path, sentinels)
	case safari.Format:
		return safari.ReadFile(path, sentinels)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle: %w", err)
	}
	return reconcile.DecodeBundle(data, format)
}

// logResult reports an import outcome and the first few errors.
func logResult(l *zap.Logger, result *reconcile.Result) {
	l.Info("Import report",
		zap.Int("created", result.CreatedCount),
		zap.Int("deleted", result.DeletedCount),
		zap.Int("folders_created", result.FoldersCreated),
		zap.Int("duplicates", result.DuplicateCount),
		zap.Int("errors", len(result.Errors)))

	for i, msg := range result.Errors {
		if i == 5 {
			l.Info("Additional errors not shown", zap.Int("count", len(result.Errors)-i))
			break
		}
		l.Warn("Import error", zap.String("error", msg))
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	path := args[0]

	cfg, l, c, err := setup(ctx)
	if err != nil {
		return err
	}
	defer l.Sync()

	format := formatFor(path, importFormat)

	bundle, err := loadBundle(path, format, cfg.Import)
	if err != nil {
		return err
	}

	l.Info("Bundle loaded",
		zap.String("file", path),
		zap.String("format", format),
		zap.Int("folders", len(bundle.FolderTree)),
		zap.Int("links", len(bundle.AllLinks)))

	if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "All existing bookmarks will be deleted.", importYes) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	result, err := c.reconciler.Import(ctx, bundle)
	if err != nil {
		return err
	}

	logResult(l, result)
	return nil
}
