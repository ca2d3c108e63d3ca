package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/crosscheck-ai/crosscheck/pkg/errors"
	"github.com/crosscheck-ai/crosscheck/pkg/logging"
)

var flagNoSave bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <workbook.xlsx> <deck.pptx>",
	Short: "Reconcile an Excel workbook against a PowerPoint deck",
	Long: `Analyze extracts both documents, filters the workbook down to rows the
deck mentions, and asks the configured model for substantive
discrepancies. The result is stored in the history database unless
--no-save is given.`,
	Args: cobra.ExactArgs(2),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "skip writing the result to history")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.Default()

	excelData, err := os.ReadFile(args[0])
	if err != nil {
		return errors.WrapIO("read", args[0], err)
	}
	deckData, err := os.ReadFile(args[1])
	if err != nil {
		return errors.WrapIO("read", args[1], err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	agent, err := newAgent(cfg)
	if err != nil {
		return err
	}

	log.Info().
		Str("excel", filepath.Base(args[0])).
		Str("pptx", filepath.Base(args[1])).
		Str("provider", cfg.Provider).
		Msg("starting analysis")

	analysis, err := agent.Analyze(ctx, excelData, deckData)
	if err != nil {
		return err
	}

	if !flagNoSave {
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		id, err := store.SaveAnalysis(ctx, filepath.Base(args[0]), filepath.Base(args[1]), analysis.Result)
		if err != nil {
			return err
		}
		log.Debug().Int64("id", id).Msg("analysis saved to history")
	}

	if flagJSON {
		return printJSON(analysis)
	}

	result := analysis.Result
	fmt.Printf("Match score: %d\n", result.MatchScore)
	fmt.Printf("Summary: %s\n\n", result.Summary)
	if len(result.Discrepancies) == 0 {
		fmt.Println("No discrepancies found.")
		return nil
	}

	fmt.Printf("Discrepancies (%d):\n", len(result.Discrepancies))
	for i, d := range result.Discrepancies {
		fmt.Printf("%d. [%s/%s] %s\n", i+1, d.Type, d.Severity, d.Description)
		if d.ExcelValue != nil || d.PptxValue != nil {
			fmt.Printf("   Excel: %s | PowerPoint: %s\n", derefOr(d.ExcelValue, "-"), derefOr(d.PptxValue, "-"))
		}
		if d.Recommendation != "" {
			fmt.Printf("   Recommendation: %s\n", d.Recommendation)
		}
	}
	return nil
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
