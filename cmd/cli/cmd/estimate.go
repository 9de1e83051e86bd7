// Package cmd - estimate command
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"parking-cost/core/types"
	"parking-cost/core/zone"
	"parking-cost/internal/config"
	"parking-cost/internal/logging"

	"go.uber.org/zap"
)

var (
	estimateFrom     string
	estimateTo       string
	estimateDuration time.Duration
	estimateFormat   string
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate <zone>",
	Short: "Estimate the cost of parking in a zone",
	Long: `Price parking in a zone over a period.

The period starts at --from (default now) and ends at --to, after --duration,
or now. Times without an offset are read in the configured time zone.

Examples:
  parking-cost estimate A1 --from "2024-05-06 10:00" --to "2024-05-06 12:30"
  parking-cost estimate A1 --from "2024-05-06 10:00" --duration 90m
  parking-cost estimate A1 --from 2024-05-06T10:00:00+03:00 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)
	estimateCmd.Flags().StringVar(&estimateFrom, "from", "", "start of parking (default now)")
	estimateCmd.Flags().StringVar(&estimateTo, "to", "", "end of parking")
	estimateCmd.Flags().DurationVarP(&estimateDuration, "duration", "d", 0, "length of parking, instead of --to")
	estimateCmd.Flags().StringVarP(&estimateFormat, "format", "f", "cli", "output format (cli, json)")
	estimateCmd.MarkFlagsMutuallyExclusive("to", "duration")
}

type estimateOutput struct {
	Zone       string                  `json:"zone"`
	Estimate   zone.PriceEstimate      `json:"estimate"`
	To         time.Time               `json:"to"`
	Candidates []zone.StrategyEstimate `json:"candidates"`
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	cal, err := loadCalendar()
	if err != nil {
		return err
	}

	z, ok := cat.ZoneByCode(args[0])
	if !ok {
		return fmt.Errorf("zone not found: %s", args[0])
	}

	now := time.Now().In(cal.Location())
	from := now
	if estimateFrom != "" {
		if from, err = parseWhen(estimateFrom, cal.Location()); err != nil {
			return err
		}
	}
	to := now
	switch {
	case estimateTo != "":
		if to, err = parseWhen(estimateTo, cal.Location()); err != nil {
			return err
		}
	case estimateDuration > 0:
		to = from.Add(estimateDuration)
	}

	logging.Debug("estimating",
		zap.String("zone", z.Code),
		zap.Time("from", from),
		zap.Time("to", to))

	candidates, err := zone.EstimateByStrategy(z, from, to, cal)
	if err != nil {
		return err
	}
	best, err := zone.EstimatedPrice(z, from, to, cal)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if estimateFormat == "json" {
		return printJSON(out, estimateOutput{Zone: z.Code, Estimate: best, To: to, Candidates: candidates})
	}

	currency := config.Get().Pricing.Currency
	fmt.Fprintf(out, "Zone:     %s\n", z.Code)
	fmt.Fprintf(out, "From:     %s\n", from.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(out, "To:       %s (%s)\n", to.Format("2006-01-02 15:04 MST"), to.Sub(from))
	fmt.Fprintln(out)

	if !best.Priced {
		fmt.Fprintln(out, "No price information")
		return nil
	}

	for _, c := range candidates {
		fmt.Fprintf(out, "  %-10s %10s   paid until %s\n",
			c.Strategy, types.NewMoney(c.Cost, currency), c.Until.In(cal.Location()).Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Estimated cost: %s (%s)\n", types.NewMoney(best.Cost, currency), best.Strategy)
	if best.Until.After(to) {
		fmt.Fprintf(out, "Paid until:     %s\n", best.Until.In(cal.Location()).Format("2006-01-02 15:04"))
	}
	return nil
}
