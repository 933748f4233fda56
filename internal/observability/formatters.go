// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/mindwise/internal/ingestion"
	"github.com/jonathan/mindwise/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList appends up to limit bullet items under heading, noting how many were left out.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintPosting outputs the title, company and description size of a scraped posting.
func (p *Printer) PrintPosting(posting *ingestion.Posting) {
	if posting == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", posting.Company))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", posting.Title))
	sb.WriteString(fmt.Sprintf("Platform: %s\n", posting.Platform))
	sb.WriteString(fmt.Sprintf("Description: %d characters\n", utf8.RuneCountInString(posting.Description)))

	preview := strings.SplitN(posting.Description, "\n", 2)[0]
	sb.WriteString(fmt.Sprintf("  %s", preview))

	p.printBox("SCRAPED JOB POSTING", sb.String())
}

// PrintResumeText outputs the size and opening lines of extracted resume text.
func (p *Printer) PrintResumeText(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	lines := strings.Split(strings.TrimSpace(text), "\n")
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Extracted %d characters, %d lines\n\n", utf8.RuneCountInString(text), len(lines)))

	count := min(len(lines), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(lines[i] + "\n")
	}
	if len(lines) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more lines\n", len(lines)-maxItemsToShow))
	}

	p.printBox("RESUME TEXT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs a human-readable summary of a match analysis.
func (p *Printer) PrintAnalysis(result *types.AIAnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match Score: %d/100 %s\n", result.MatchScore, scoreBar(result.MatchScore)))
	sb.WriteString("\n")

	if result.JobSummary != "" {
		sb.WriteString("Summary:\n")
		for _, line := range wrap(result.JobSummary, boxWidth-6) {
			sb.WriteString("  " + line + "\n")
		}
		sb.WriteString("\n")
	}

	writeList(&sb, "Required Skills", result.RequiredSkills, maxItemsToShow)
	writeList(&sb, "Resume Skills", result.ResumeSkills, maxItemsToShow)
	writeList(&sb, "Skill Gap", result.SkillGap, maxItemsToShow)
	writeList(&sb, "Preparation Tips", result.PreparationTips, 3)

	p.printBox("MATCH ANALYSIS", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintSkillGap outputs the skill gap on its own, or a success box when there is none.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSkillGap(result *types.AIAnalysisResult) {
	if result == nil {
		return
	}
	if len(result.SkillGap) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO SKILL GAP FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Missing %d skills:\n\n", len(result.SkillGap)))
	for _, skill := range result.SkillGap {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", skill))
	}

	p.printBox("SKILL GAP", strings.TrimSuffix(sb.String(), "\n"))
}

// scoreBar renders score as a ten-cell bar.
func scoreBar(score int) string {
	filled := max(0, min(score, 100)) / 10
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", 10-filled) + "]"
}

// wrap splits text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var current string
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
