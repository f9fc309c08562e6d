package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tnguyen/resume-engine/internal/config"
	"github.com/tnguyen/resume-engine/internal/history"
	"github.com/tnguyen/resume-engine/internal/optimize"
	"github.com/tnguyen/resume-engine/pkg/types"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize <job-url>",
	Short: "Tailor the resume to a job posting with an AI provider",
	Long: `Optimize fetches the job posting at the given URL, sends it together with
the current resume to the configured AI provider, and writes the optimized
resume and a cover letter under the optimized directory. The changelog and
the run history are updated on success.

API keys live in .secrets/ (one file per key, e.g. .secrets/anthropic-api-key)
or in the environment (RESUME_ENGINE_ANTHROPIC_API_KEY).`,
	Args: cobra.ExactArgs(1),
	RunE: runOptimize,
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	company, _ := cmd.Flags().GetString("company")
	provider, _ := cmd.Flags().GetString("provider")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if provider != "" {
		cfg.AI.Provider = provider
	}

	backend, err := optimize.NewBackend(cfg.AI, loadedSecrets, nil)
	if err != nil {
		return err
	}

	opts := optimize.Options{
		JobURL:  args[0],
		Company: company,
		Verbose: verbose,
	}

	out, err := optimize.Run(context.Background(), backend, cfg, opts, os.Stdout)
	if err != nil {
		return err
	}

	if err := history.AppendOptimization(cfg.Paths.Changelog, history.OptimizationEntry{
		JobURL:    opts.JobURL,
		Company:   company,
		Timestamp: out.Timestamp,
		Changes:   out.Result.Changelog,
	}); err != nil {
		return err
	}
	fmt.Printf("updated changelog: %s\n", cfg.Paths.Changelog)

	recordRun(cfg, opts, out)

	fmt.Println("\noptimization complete")
	fmt.Printf("  review the optimized resume: %s\n", out.ResumePath)
	fmt.Printf("  review the cover letter:     %s\n", out.CoverLetterPath)
	return nil
}

// recordRun appends the run to the history database. History is a
// convenience index over outputs that already exist on disk, so failures
// warn instead of aborting.
func recordRun(cfg *config.Config, opts optimize.Options, out *optimize.Outputs) {
	store, err := history.NewStore(cfg.Paths.HistoryDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open history database: %v\n", err)
		return
	}
	defer store.Close()

	_, err = store.Record(context.Background(), types.Run{
		Company:         opts.Company,
		JobURL:          opts.JobURL,
		JobDescription:  out.JobDescription,
		ResumePath:      out.ResumePath,
		CoverLetterPath: out.CoverLetterPath,
		Changelog:       out.Result.Changelog,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record run: %v\n", err)
	}
}

func init() {
	optimizeCmd.Flags().StringP("company", "c", "", "company name (for file naming and history)")
	optimizeCmd.Flags().String("provider", "", "AI provider: claude, gemini, or ollama (default: configured)")
	optimizeCmd.Flags().BoolP("verbose", "v", false, "show detailed progress information")

	rootCmd.AddCommand(optimizeCmd)
}
