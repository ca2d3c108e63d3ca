package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crosscheck-ai/crosscheck/pkg/priority"
)

var (
	flagROI       float64
	flagUrgency   float64
	flagRisk      float64
	flagAlignment float64
	flagResources float64
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute the priority score for one project",
	Long: `Score computes a weighted priority score from five metrics, each on a
0-100 scale. Strategic alignment and resource availability default to a
neutral 50 when omitted.`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().Float64Var(&flagROI, "roi", 0, "expected return on investment (0-100)")
	scoreCmd.Flags().Float64Var(&flagUrgency, "urgency", 0, "time sensitivity (0-100)")
	scoreCmd.Flags().Float64Var(&flagRisk, "risk", 0, "delivery risk (0-100, higher is worse)")
	scoreCmd.Flags().Float64Var(&flagAlignment, "alignment", 50, "strategic alignment (0-100)")
	scoreCmd.Flags().Float64Var(&flagResources, "resources", 50, "resource availability (0-100)")
	_ = scoreCmd.MarkFlagRequired("roi")
	_ = scoreCmd.MarkFlagRequired("urgency")
	_ = scoreCmd.MarkFlagRequired("risk")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	result := priority.Calculate(priority.Input{
		ROI:                  flagROI,
		Urgency:              flagUrgency,
		Risk:                 flagRisk,
		StrategicAlignment:   flagAlignment,
		ResourceAvailability: flagResources,
	})

	if flagJSON {
		return printJSON(result)
	}

	fmt.Printf("Score: %.1f (%s)\n", result.Score, result.Tier)
	fmt.Printf("Recommendation: %s\n\n", result.Recommendation)
	fmt.Println("Breakdown:")
	printFactor("ROI", result.Breakdown.ROI)
	printFactor("Urgency", result.Breakdown.Urgency)
	printFactor("Risk", result.Breakdown.Risk)
	printFactor("Strategic alignment", result.Breakdown.StrategicAlignment)
	printFactor("Resource availability", result.Breakdown.ResourceAvailability)
	return nil
}

func printFactor(name string, f priority.Factor) {
	fmt.Printf("  %-22s value=%.0f weight=%.2f contribution=%.1f\n", name, f.Value, f.Weight, f.Contribution)
}
