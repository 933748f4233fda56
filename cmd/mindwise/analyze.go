package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/mindwise/internal/observability"
	"github.com/jonathan/mindwise/internal/pipeline"
)

var (
	analyzeJobFile    string
	analyzeJobURL     string
	analyzeResumeLink string
	analyzeBrowser    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compare a resume with a job description",
	Long: `Extract the resume behind a Google Drive link, read the job description from a file or
scrape it from a posting URL, and print the match analysis as JSON.`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeJobFile, "job-file", "f", "", "Path to a text file containing the job description")
	analyzeCmd.Flags().StringVarP(&analyzeJobURL, "job-url", "u", "", "URL of the job posting to scrape")
	analyzeCmd.Flags().StringVarP(&analyzeResumeLink, "resume-link", "r", "", "Google Drive sharing link to a PDF resume (required)")
	analyzeCmd.Flags().BoolVar(&analyzeBrowser, "browser", false, "Render the posting with headless Chrome when static HTML is insufficient")
	_ = analyzeCmd.MarkFlagRequired("resume-link")
	analyzeCmd.MarkFlagsMutuallyExclusive("job-file", "job-url")
	analyzeCmd.MarkFlagsOneRequired("job-file", "job-url")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	input := pipeline.Input{JobURL: analyzeJobURL, ResumeLink: analyzeResumeLink}
	if analyzeJobFile != "" {
		content, err := os.ReadFile(analyzeJobFile)
		if err != nil {
			return fmt.Errorf("failed to read job file: %w", err)
		}
		input.JobDescription = strings.TrimSpace(string(content))
		if input.JobDescription == "" {
			return fmt.Errorf("job file %s is empty", analyzeJobFile)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Printf("[ANALYSIS] Failed to close LLM client: %v", err)
		}
	}()

	runner := newRunner(cfg, client, analyzeBrowser)
	if verbose {
		runner.OnProgress = func(event pipeline.ProgressEvent) {
			log.Printf("[%s] %s", strings.ToUpper(event.Step), event.Message)
		}
	}

	result, err := runner.Run(ctx, input)
	if err != nil {
		return err
	}

	if verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintPosting(result.Posting)
		printer.PrintResumeText(result.ResumeText)
		printer.PrintAnalysis(result.Analysis)
		printer.PrintSkillGap(result.Analysis)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result.Analysis)
}
