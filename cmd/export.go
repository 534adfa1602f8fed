package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"bookmark-manager/core/reconcile"
	"bookmark-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportFormat string
	exportOut    string
	exportUpload string
)

// exportCmd writes both root containers as a bundle.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all bookmarks as a bundle",
	Long: `Writes both root containers as a {folderTree, allLinks} bundle that
"import" can replay.

Examples:
  # Print JSON to stdout
  export

  # Write YAML to a file
  export --format yaml --out backup.yaml

  # Upload to the configured bucket
  export --upload backups/bookmarks.json`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", reconcile.FormatJSON, "Bundle format: json or yaml")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default stdout)")
	exportCmd.Flags().StringVar(&exportUpload, "upload", "", "Object name to upload the bundle to")
	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, c, err := setup(ctx)
	if err != nil {
		return err
	}
	defer l.Sync()

	tree, err := c.store.GetTree(ctx)
	if err != nil {
		return fmt.Errorf("failed to read bookmarks: %w", err)
	}

	bundle := reconcile.Export(tree, c.roots)
	data, err := reconcile.EncodeBundle(bundle, exportFormat)
	if err != nil {
		return err
	}

	if exportUpload != "" {
		client := c.storage
		if client == nil {
			if client, err = storage.NewClient(cfg.Storage); err != nil {
				return err
			}
			if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
				return err
			}
		}
		if err := uploadBundle(ctx, client, cfg.Storage.Bucket, exportUpload, exportFormat, data); err != nil {
			return err
		}
		l.Info("Bundle uploaded", zap.String("bucket", cfg.Storage.Bucket), zap.String("object", exportUpload))
	}

	switch {
	case exportOut != "":
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write bundle: %w", err)
		}
		l.Info("Bundle written",
			zap.String("file", exportOut),
			zap.Int("folders", len(bundle.FolderTree)),
			zap.Int("links", len(bundle.AllLinks)))
	case exportUpload == "":
		_, err = cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}

	return nil
}

func uploadBundle(ctx context.Context, client storage.Client, bucket, object, format string, data []byte) error {
	contentType := "application/json"
	if format == reconcile.FormatYAML {
		contentType = "application/yaml"
	}

	_, err := client.PutObject(ctx, bucket, object, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload bundle: %w", err)
	}
	return nil
}
