package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/mindwise/internal/analysis"
	"github.com/jonathan/mindwise/internal/config"
	"github.com/jonathan/mindwise/internal/fetch"
	"github.com/jonathan/mindwise/internal/ingestion"
	"github.com/jonathan/mindwise/internal/llm"
	"github.com/jonathan/mindwise/internal/pipeline"
	"github.com/jonathan/mindwise/internal/resume"
)

// newResumeExtractor builds the resume extractor from configuration.
func newResumeExtractor(cfg *config.Config) *resume.Extractor {
	e := resume.NewExtractor(cfg.ResumeFetchTimeout.Duration)
	e.Verbose = verbose || cfg.Debug
	return e
}

// newJobExtractor builds the job extractor, with headless rendering when browser is set.
func newJobExtractor(cfg *config.Config, browser bool) *ingestion.Extractor {
	e := ingestion.NewExtractor(cfg.JobFetchTimeout.Duration)
	e.Verbose = verbose || cfg.Debug
	if browser {
		e.Renderer = fetch.NewBrowserRenderer(30*time.Second, e.Verbose)
	}
	return e
}

// newLLMClient creates the remote model client, applying the GEMINI_MODEL override.
func newLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	llmCfg := llm.DefaultConfig()
	if cfg.GeminiModel != "" {
		llmCfg = llmCfg.WithModel(llm.TierStandard, cfg.GeminiModel)
	}
	client, err := llm.NewClient(ctx, llmCfg, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// newRunner wires the extractors and an analyzer backed by client.
func newRunner(cfg *config.Config, client llm.Client, browser bool) *pipeline.Runner {
	return &pipeline.Runner{
		Resumes:  newResumeExtractor(cfg),
		Jobs:     newJobExtractor(cfg, browser),
		Analyzer: analysis.NewAnalyzer(client, cfg.AnalysisTimeout.Duration),
	}
}
