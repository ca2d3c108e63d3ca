package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse stored analysis results",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored reconciliation analyses, newest first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one stored reconciliation analysis in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyBatchesCmd = &cobra.Command{
	Use:   "batches",
	Short: "List stored priority batch runs, newest first",
	RunE:  runHistoryBatches,
}

func init() {
	historyCmd.PersistentFlags().IntVar(&flagHistoryLimit, "limit", 20, "maximum number of records to list")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyBatchesCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := store.ListAnalyses(cmd.Context(), flagHistoryLimit)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(records)
	}
	if len(records) == 0 {
		fmt.Println("No stored analyses.")
		return nil
	}
	for _, rec := range records {
		fmt.Printf("%4d  %s  %s vs %s  %s\n",
			rec.ID, rec.AnalysisDate.Format("2006-01-02 15:04"),
			rec.ExcelFilename, rec.PptxFilename, rec.Summary)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid history id %q", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	rec, err := store.GetAnalysis(cmd.Context(), id)
	if err != nil {
		return err
	}
	return printJSON(rec)
}

func runHistoryBatches(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := store.ListPriorities(cmd.Context(), flagHistoryLimit)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(records)
	}
	if len(records) == 0 {
		fmt.Println("No stored batch runs.")
		return nil
	}
	for _, rec := range records {
		fmt.Printf("%4d  %s  %s  %d projects\n",
			rec.ID, rec.AnalysisDate.Format("2006-01-02 15:04"),
			rec.Filename, rec.TotalProjects)
	}
	return nil
}
