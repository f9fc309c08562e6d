package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tnguyen/resume-engine/internal/config"
	"github.com/tnguyen/resume-engine/internal/markdown"
	"github.com/tnguyen/resume-engine/internal/render"
	"github.com/tnguyen/resume-engine/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the resume into DOCX, PDF, HTML, and Doxygen outputs",
	Long: `Build parses the resume source and renders it into the requested output
formats under the build directory. With --source pointing at an optimized
resume, outputs use the optimized filename patterns (add --company to tag
them with the company name).`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	source, _ := cmd.Flags().GetString("source")
	formatsFlag, _ := cmd.Flags().GetString("formats")
	company, _ := cmd.Flags().GetString("company")

	formats, err := render.ParseFormats(formatsFlag)
	if err != nil {
		return err
	}

	if source == "" {
		source = cfg.Paths.ResumeSource
	}

	return buildOutputs(cfg, source, formats, company, os.Stdout)
}

// buildOutputs renders sourcePath into the given formats. Output names
// follow the baseline patterns when the source is the configured baseline
// resume and the optimized patterns otherwise. Shared with promote.
func buildOutputs(cfg *config.Config, sourcePath string, formats []types.OutputFormat, company string, w io.Writer) error {
	src, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("reading resume %s: %w", sourcePath, err)
	}

	doc, err := markdown.Parse(src)
	if err != nil {
		return err
	}

	optimized := filepath.Clean(sourcePath) != filepath.Clean(cfg.Paths.ResumeSource)
	timestamp := time.Now().Format(config.TimestampLayout)

	fmt.Fprintf(w, "building outputs from %s\n", sourcePath)
	for _, f := range formats {
		path, err := outputPath(cfg, f, optimized, company, timestamp)
		if err != nil {
			return err
		}
		if err := render.File(doc, f, path); err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-4s %s\n", f, path)
	}
	return nil
}

// outputPath resolves where one rendered format lands. The Doxygen source
// always replaces the configured .dox file so an external Doxygen run
// picks it up.
func outputPath(cfg *config.Config, format types.OutputFormat, optimized bool, company, timestamp string) (string, error) {
	if format == types.FormatDOX {
		return cfg.Paths.ResumeDox, nil
	}

	key := "baseline_" + string(format)
	if optimized {
		key = "optimized_" + string(format)
		if company == "" && format != types.FormatHTML {
			key += "_fallback"
		}
	}

	name, err := cfg.OutputFilename(key, map[string]string{
		"company":   company,
		"timestamp": timestamp,
	})
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg.Paths.BuildDir, name), nil
}

func init() {
	buildCmd.Flags().String("source", "", "resume markdown file (default: configured baseline)")
	buildCmd.Flags().String("formats", "", "comma-separated output formats: docx, pdf, html, dox (default: all)")
	buildCmd.Flags().StringP("company", "c", "", "company name for optimized output filenames")

	rootCmd.AddCommand(buildCmd)
}
