package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/crosscheck-ai/crosscheck/pkg/errors"
	"github.com/crosscheck-ai/crosscheck/pkg/logging"
)

var flagBatchNoSave bool

var batchCmd = &cobra.Command{
	Use:   "batch <projects.xlsx>",
	Short: "Score every project in an Excel workbook",
	Long: `Batch parses a project workbook, scores every row, and prints the
results ordered by priority score. The run is stored in the history
database unless --no-save is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().BoolVar(&flagBatchNoSave, "no-save", false, "skip writing the result to history")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return errors.WrapIO("read", args[0], err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	agent, err := newAgent(cfg)
	if err != nil {
		return err
	}

	result, err := agent.ScoreBatch(data)
	if err != nil {
		return err
	}

	if !flagBatchNoSave {
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		id, err := store.SavePriority(ctx, filepath.Base(args[0]), result)
		if err != nil {
			return err
		}
		logging.Default().Debug().Int64("id", id).Msg("batch saved to history")
	}

	if flagJSON {
		return printJSON(result)
	}

	fmt.Printf("Scored %d projects:\n\n", result.TotalProjects)
	for i, p := range result.Results {
		fmt.Printf("%2d. %-30s %6.1f  %-8s %s\n", i+1, p.Name, p.Score.Score, p.Score.Tier, p.ID)
	}
	return nil
}
