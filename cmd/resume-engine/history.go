package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tnguyen/resume-engine/internal/config"
	"github.com/tnguyen/resume-engine/internal/history"
	"github.com/tnguyen/resume-engine/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded optimization runs",
	Long: `History manages the local run log built up by the optimize command.
Use subcommands to list recent runs, search stored job descriptions, or
export the full log.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent optimization runs, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRuns(runs, jsonOutput)
}

var historySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over stored job descriptions and changelogs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHistorySearch,
}

func runHistorySearch(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Search(context.Background(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRuns(runs, jsonOutput)
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full run log to YAML",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	out, _ := cmd.Flags().GetString("out")
	if err := store.ExportYAML(context.Background(), out); err != nil {
		return err
	}
	fmt.Printf("exported run history to %s\n", out)
	return nil
}

func openHistory() (*history.Store, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return history.NewStore(cfg.Paths.HistoryDB)
}

func formatRuns(runs []types.Run, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-16s  %-20s  %s\n", "ID", "Date", "Company", "Job URL")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, r := range runs {
		company := r.Company
		if company == "" {
			company = "-"
		}
		if len(company) > 20 {
			company = company[:17] + "..."
		}
		url := r.JobURL
		if len(url) > 45 {
			url = url[:42] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-16s  %-20s  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), company, url)
	}

	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

func init() {
	historyListCmd.Flags().Int("limit", 0, "maximum runs to list (0 = default)")
	historyListCmd.Flags().Bool("json", false, "output runs as JSON")

	historySearchCmd.Flags().Int("limit", 0, "maximum results (0 = default)")
	historySearchCmd.Flags().Bool("json", false, "output runs as JSON")

	historyExportCmd.Flags().String("out", "build/history.yaml", "export file path")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historySearchCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
