package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/mindwise/internal/observability"
)

var (
	jobURL     string
	useBrowser bool
	asJSON     bool
)

var extractJobCmd = &cobra.Command{
	Use:   "extract-job",
	Short: "Scrape a job posting page",
	Long:  "Fetch a job posting page and print the extracted title, company and description.",
	Args:  cobra.NoArgs,
	RunE:  runExtractJob,
}

func init() {
	extractJobCmd.Flags().StringVarP(&jobURL, "url", "u", "", "URL of the job posting (required)")
	extractJobCmd.Flags().BoolVar(&useBrowser, "browser", false, "Render the page with headless Chrome when static HTML is insufficient")
	extractJobCmd.Flags().BoolVar(&asJSON, "json", false, "Print the posting as JSON")
	_ = extractJobCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(extractJobCmd)
}

func runExtractJob(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	posting, err := newJobExtractor(cfg, useBrowser).Extract(cmd.Context(), jobURL)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(posting)
	}

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintPosting(posting)
	}
	fmt.Fprintf(out, "Title:   %s\n", posting.Title)
	fmt.Fprintf(out, "Company: %s\n\n", posting.Company)
	fmt.Fprintln(out, posting.Description)
	return nil
}
