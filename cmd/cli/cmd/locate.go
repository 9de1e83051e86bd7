// Package cmd - locate command
package cmd

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"parking-cost/core/geo"
	"parking-cost/core/zone"
)

var locateLimit int

// locateCmd ranks zones against a coordinate
var locateCmd = &cobra.Command{
	Use:   "locate <lat> <lon>",
	Short: "Find the zones at or nearest to a coordinate",
	Long: `Rank zones by relevance to a coordinate: zones containing it first,
then the rest by distance.

Examples:
  parking-cost locate 59.437 24.745
  parking-cost locate 59.437 24.745 --limit 3`,
	Args: cobra.ExactArgs(2),
	RunE: runLocate,
}

func init() {
	rootCmd.AddCommand(locateCmd)
	locateCmd.Flags().IntVarP(&locateLimit, "limit", "n", 5, "number of zones to show")
}

func runLocate(cmd *cobra.Command, args []string) error {
	lat, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid latitude %q", args[0])
	}
	lon, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid longitude %q", args[1])
	}
	loc := geo.Loc(lat, lon)
	if !loc.Valid() {
		return fmt.Errorf("coordinate out of range: %s", loc)
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	ranked := zone.Rank(cat.Zones(), loc)
	if locateLimit > 0 && len(ranked) > locateLimit {
		ranked = ranked[:locateLimit]
	}

	out := cmd.OutOrStdout()
	for _, z := range ranked {
		switch d := z.Distance(loc); {
		case z.Contains(loc):
			fmt.Fprintf(out, "%-8s inside\n", z.Code)
		case math.IsInf(d, 1):
			fmt.Fprintf(out, "%-8s no geometry\n", z.Code)
		default:
			fmt.Fprintf(out, "%-8s %s\n", z.Code, formatDistance(d))
		}
	}
	return nil
}

func formatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}
