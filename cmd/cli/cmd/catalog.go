// Package cmd - CLI command: parking-cost catalog
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"parking-cost/adapters/dataset"
	"parking-cost/core/catalog"
	"parking-cost/internal/config"
	"parking-cost/internal/errors"
	"parking-cost/internal/logging"

	"go.uber.org/zap"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Zone dataset management commands",
}

var catalogInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the loaded dataset",
	RunE:  runCatalogInfo,
}

var catalogUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Download a newer zone dataset",
	Long: `Fetch the dataset from the configured remote URL and replace the local
file when the remote version is newer.`,
	RunE: runCatalogUpdate,
}

var (
	updateURL     string
	updateForce   bool
	updateTimeout time.Duration
)

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogInfoCmd)
	catalogCmd.AddCommand(catalogUpdateCmd)

	catalogUpdateCmd.Flags().StringVar(&updateURL, "url", "", "dataset URL (overrides catalog.remote_url)")
	catalogUpdateCmd.Flags().BoolVar(&updateForce, "force", false, "replace the local dataset even if it is not older")
	catalogUpdateCmd.Flags().DurationVar(&updateTimeout, "timeout", 0, "download timeout (default catalog.refresh_timeout_seconds)")
}

func runCatalogInfo(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Path:       %s\n", config.Get().Catalog.Path)
	fmt.Fprintf(out, "Version:    %s\n", cat.Version)
	fmt.Fprintf(out, "Date:       %s\n", cat.Date.Format(time.RFC3339))
	fmt.Fprintf(out, "Hash:       %s\n", cat.Hash)
	fmt.Fprintf(out, "Zones:      %d\n", len(cat.Zones()))
	fmt.Fprintln(out)
	for _, p := range cat.Providers {
		fmt.Fprintf(out, "  %-24s %3d zones\n", p.Name, len(p.Zones))
	}
	for _, g := range cat.Groups {
		name := g.Name
		if g.LocalizedName != "" {
			name = g.LocalizedName
		}
		fmt.Fprintf(out, "  group %-18s %3d zones (%s)\n", name, len(g.Zones), g.Reason)
	}
	return nil
}

func runCatalogUpdate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	url := updateURL
	if url == "" {
		url = cfg.Catalog.RemoteURL
	}
	if url == "" {
		return fmt.Errorf("no dataset URL: pass --url or set catalog.remote_url")
	}

	timeout := updateTimeout
	if timeout == 0 {
		timeout = time.Duration(cfg.Catalog.RefreshTimeoutSeconds) * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	current, err := loadCatalog()
	switch {
	case err == nil:
	case errors.IsType(err, errors.TypeNotFound):
		current = catalog.Empty()
	default:
		logging.Warn("local dataset unreadable, replacing it", zap.Error(err))
		current = catalog.Empty()
	}
	if updateForce {
		current = catalog.Empty()
	}

	store := catalog.NewStore(current)
	changed, data, err := dataset.NewFetcher(timeout).Refresh(ctx, store, url, dataset.Format(cfg.Catalog.Format))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !changed {
		fmt.Fprintf(out, "Dataset %s is up to date\n", current.Version)
		return nil
	}

	if err := writeFileAtomic(cfg.Catalog.Path, data); err != nil {
		return fmt.Errorf("saving dataset: %w", err)
	}
	fmt.Fprintf(out, "Updated dataset to %s (%d zones)\n", store.Load().Version, len(store.Load().Zones()))
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".dataset-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
