// Package cmd - zones command
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"parking-cost/api"
	"parking-cost/core/zone"
	"parking-cost/internal/config"
)

var zonesFormat string

// zonesCmd lists the zones of the loaded catalog
var zonesCmd = &cobra.Command{
	Use:   "zones [code]",
	Short: "List zones and their tariffs",
	Long: `List every zone of the catalog, or show a single zone by code.

Examples:
  parking-cost zones
  parking-cost zones A1
  parking-cost zones --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runZones,
}

func init() {
	rootCmd.AddCommand(zonesCmd)
	zonesCmd.Flags().StringVarP(&zonesFormat, "format", "f", "cli", "output format (cli, json)")
}

func runZones(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	currency := config.Get().Pricing.Currency
	out := cmd.OutOrStdout()

	zones := cat.Zones()
	if len(args) == 1 {
		z, ok := cat.ZoneByCode(args[0])
		if !ok {
			return fmt.Errorf("zone not found: %s", args[0])
		}
		zones = []*zone.Zone{z}
	}

	if zonesFormat == "json" {
		list := api.ZoneListResponse{Count: len(zones)}
		for _, z := range zones {
			sum := api.ZoneSummary{ID: z.ID, Code: z.Code, Point: z.IsPoint(), Description: z.Describe(currency)}
			if p, ok := cat.ProviderFor(z); ok {
				sum.Provider = p.Name
			}
			list.Zones = append(list.Zones, sum)
		}
		return printJSON(out, list)
	}

	for _, z := range zones {
		provider := ""
		if p, ok := cat.ProviderFor(z); ok {
			provider = p.Name
		}
		fmt.Fprintf(out, "%-8s %s\n", z.Code, provider)
		for _, line := range strings.Split(z.Describe(currency), "\n") {
			fmt.Fprintf(out, "         %s\n", line)
		}
	}
	fmt.Fprintf(out, "\n%d zones, catalog %s\n", len(zones), cat.Version)
	return nil
}
