/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/lafayette53/apiserver/internal/assets"
	"github.com/lafayette53/apiserver/internal/storage"
	"github.com/spf13/cobra"
)

var syncPrune bool

// assetsCmd represents the assets command.
var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Manage the frontend assets",
}

var assetsSyncCmd = &cobra.Command{
	Use:   "sync <dir>",
	Short: "Upload a frontend build to the configured object storage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		backend := strings.ToLower(strings.TrimSpace(cfg.Assets.Backend))
		if backend == "" || backend == storage.BackendLocal {
			return errors.New("assets sync needs ASSETS_BACKEND set to minio or gcs")
		}

		store, err := storage.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		result, err := assets.Sync(cmd.Context(), store, args[0], syncPrune)
		if err != nil {
			return err
		}
		logger.Info("assets synced",
			"bucket", store.Bucket(),
			"uploaded", result.Uploaded,
			"size", humanize.Bytes(uint64(result.Bytes)),
			"deleted", result.Deleted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assetsCmd)
	assetsCmd.AddCommand(assetsSyncCmd)
	assetsSyncCmd.Flags().BoolVar(&syncPrune, "prune", false, "delete objects with no local file")
}
