package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tnguyen/resume-engine/internal/config"
	"github.com/tnguyen/resume-engine/internal/history"
	"github.com/tnguyen/resume-engine/internal/render"
)

var promoteCmd = &cobra.Command{
	Use:   "promote <optimized-resume.md>",
	Short: "Make an optimized resume the new baseline",
	Long: `Promote backs up the current baseline resume, replaces it with the given
optimized version, appends a promotion entry to the changelog, and rebuilds
all baseline outputs. If anything fails after the baseline was replaced,
the backup is restored.`,
	Args: cobra.ExactArgs(1),
	RunE: runPromote,
}

func runPromote(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	reason, _ := cmd.Flags().GetString("reason")
	optimizedPath := args[0]

	optimized, err := os.ReadFile(optimizedPath)
	if err != nil {
		return fmt.Errorf("reading optimized resume %s: %w", optimizedPath, err)
	}

	baseline := cfg.Paths.ResumeSource

	// Back up the current baseline before touching it.
	var backupPath string
	current, err := os.ReadFile(baseline)
	switch {
	case err == nil:
		if err := os.MkdirAll(cfg.Paths.BackupDir, 0o755); err != nil {
			return fmt.Errorf("creating backup directory: %w", err)
		}
		backupPath = filepath.Join(cfg.Paths.BackupDir,
			fmt.Sprintf("resume_backup_%s.md", time.Now().Format(config.TimestampLayout)))
		if err := os.WriteFile(backupPath, current, 0o644); err != nil {
			return fmt.Errorf("backing up baseline: %w", err)
		}
		fmt.Printf("backed up baseline to %s\n", backupPath)
	case !os.IsNotExist(err):
		return fmt.Errorf("reading baseline %s: %w", baseline, err)
	}

	if err := os.WriteFile(baseline, optimized, 0o644); err != nil {
		return fmt.Errorf("promoting to baseline: %w", err)
	}
	fmt.Printf("promoted %s to %s\n", optimizedPath, baseline)

	if err := finishPromotion(cfg, optimizedPath, backupPath, reason); err != nil {
		if backupPath != "" {
			fmt.Fprintln(os.Stderr, "error occurred, restoring baseline from backup")
			if rerr := os.WriteFile(baseline, current, 0o644); rerr != nil {
				fmt.Fprintf(os.Stderr, "warning: restore failed: %v\n", rerr)
			}
		}
		return err
	}

	fmt.Println("\npromotion complete")
	fmt.Printf("  baseline resume: %s\n", baseline)
	if backupPath != "" {
		fmt.Printf("  backup saved:    %s\n", backupPath)
	}
	return nil
}

func finishPromotion(cfg *config.Config, source, backupPath, reason string) error {
	if err := history.AppendPromotion(cfg.Paths.Changelog, history.PromotionEntry{
		Source: filepath.Base(source),
		Backup: filepath.Base(backupPath),
		Reason: reason,
	}); err != nil {
		return err
	}
	fmt.Printf("updated changelog: %s\n", cfg.Paths.Changelog)

	return buildOutputs(cfg, cfg.Paths.ResumeSource, render.AllFormats, "", os.Stdout)
}

func init() {
	promoteCmd.Flags().StringP("reason", "r", "", "reason for the promotion (recorded in the changelog)")

	rootCmd.AddCommand(promoteCmd)
}
