package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/mindwise/internal/observability"
)

var resumeLink string

var extractResumeCmd = &cobra.Command{
	Use:   "extract-resume",
	Short: "Print the text of a resume shared on Google Drive",
	Long:  "Download the PDF behind a Google Drive sharing link and print its plain text.",
	Args:  cobra.NoArgs,
	RunE:  runExtractResume,
}

func init() {
	extractResumeCmd.Flags().StringVarP(&resumeLink, "link", "l", "", "Google Drive sharing link to a PDF resume (required)")
	_ = extractResumeCmd.MarkFlagRequired("link")
	rootCmd.AddCommand(extractResumeCmd)
}

func runExtractResume(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	text, err := newResumeExtractor(cfg).Extract(cmd.Context(), resumeLink)
	if err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintResumeText(text)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
