// Package analysis scores how well a resume matches a job description using a remote model.
package analysis

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/jonathan/mindwise/internal/llm"
	"github.com/jonathan/mindwise/internal/prompts"
	"github.com/jonathan/mindwise/internal/schemas"
	"github.com/jonathan/mindwise/internal/types"
)

// DefaultTimeout bounds a single model call.
const DefaultTimeout = 60 * time.Second

// Analyzer produces match analyses. Each call is one uncached, unretried model request.
type Analyzer struct {
	client  llm.Client
	timeout time.Duration
}

// NewAnalyzer creates an analyzer over client. A non-positive timeout uses DefaultTimeout.
func NewAnalyzer(client llm.Client, timeout time.Duration) *Analyzer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Analyzer{client: client, timeout: timeout}
}

// Analyze compares jobDescription with resumeText. Nothing but these two texts reaches the prompt.
func (a *Analyzer) Analyze(ctx context.Context, jobDescription, resumeText string) (*types.AIAnalysisResult, error) {
	prompt := BuildPrompt(jobDescription, resumeText)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &AnalysisError{
			Message: "model call failed",
			Cause:   err,
		}
	}

	result, err := ParseResult(raw)
	if err != nil {
		log.Printf("[ANALYSIS] Invalid model output from %s: %v", a.client.GetModel(llm.TierStandard), err)
		return nil, err
	}

	log.Printf("[ANALYSIS] Completed | match score: %d", result.MatchScore)
	return result, nil
}

// BuildPrompt renders the analysis prompt template.
func BuildPrompt(jobDescription, resumeText string) string {
	template := prompts.MustGet("analysis.json", "match-analysis")
	return prompts.Format(template, map[string]string{
		"JobDescription": jobDescription,
		"ResumeText":     resumeText,
	})
}

// ParseResult parses and validates raw model output. The result is only built
// from output that is valid JSON and satisfies the analysis schema.
func ParseResult(raw string) (*types.AIAnalysisResult, error) {
	raw = llm.CleanJSONBlock(raw)
	if !json.Valid([]byte(raw)) {
		return nil, &InvalidResponseError{Message: "model returned invalid JSON"}
	}

	if err := schemas.Validate(schemas.AIAnalysis, raw); err != nil {
		return nil, &InvalidResponseError{
			Message: "model output does not match the analysis schema",
			Cause:   err,
		}
	}

	// The schema accepts integral floats such as 85.0, which do not decode into an int.
	var decoded struct {
		types.AIAnalysisResult
		MatchScore float64 `json:"match_score"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, &InvalidResponseError{
			Message: "failed to decode analysis",
			Cause:   err,
		}
	}
	result := decoded.AIAnalysisResult
	result.MatchScore = int(decoded.MatchScore)
	return &result, nil
}
