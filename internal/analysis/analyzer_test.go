package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/mindwise/internal/llm"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateJSONFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	Prompts          []string
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return validResponse, nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

const validResponse = `{
	"job_summary": "Backend engineer building payment APIs in Go.",
	"required_skills": ["Go", "PostgreSQL", "Kafka"],
	"resume_skills": ["Go", "PostgreSQL"],
	"skill_gap": ["Kafka"],
	"match_score": 78,
	"preparation_tips": ["Review Kafka consumer groups", "Practice SQL query plans"]
}`

func respond(body string) func(context.Context, string, llm.ModelTier) (string, error) {
	return func(context.Context, string, llm.ModelTier) (string, error) { return body, nil }
}

func TestAnalyze_Success(t *testing.T) {
	client := &MockLLMClient{}
	analyzer := NewAnalyzer(client, time.Second)

	result, err := analyzer.Analyze(context.Background(), "Go backend role", "Five years of Go")
	require.NoError(t, err)

	assert.Equal(t, 78, result.MatchScore)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Kafka"}, result.RequiredSkills)
	assert.Equal(t, []string{"Kafka"}, result.SkillGap)
	assert.Len(t, result.PreparationTips, 2)

	require.Len(t, client.Prompts, 1)
	assert.Contains(t, client.Prompts[0], "JOB DESCRIPTION:\nGo backend role")
	assert.Contains(t, client.Prompts[0], "RESUME:\nFive years of Go")
	assert.Contains(t, client.Prompts[0], "Return ONLY valid JSON")
}

func TestAnalyze_UsesStandardTier(t *testing.T) {
	client := &MockLLMClient{GenerateJSONFunc: func(_ context.Context, _ string, tier llm.ModelTier) (string, error) {
		assert.Equal(t, llm.TierStandard, tier)
		return validResponse, nil
	}}

	_, err := NewAnalyzer(client, 0).Analyze(context.Background(), "jd", "cv")
	require.NoError(t, err)
}

func TestAnalyze_InvalidResponses(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"syntactically invalid JSON", `{"job_summary": "x", "match_score": 80`},
		{"prose instead of JSON", `Sure! Here is the analysis you asked for.`},
		{"missing match_score", `{"job_summary": "x", "required_skills": [], "resume_skills": [], "skill_gap": [], "preparation_tips": []}`},
		{"match_score above 100", `{"job_summary": "x", "required_skills": [], "resume_skills": [], "skill_gap": [], "match_score": 140, "preparation_tips": []}`},
		{"match_score below 0", `{"job_summary": "x", "required_skills": [], "resume_skills": [], "skill_gap": [], "match_score": -3, "preparation_tips": []}`},
		{"skills not strings", `{"job_summary": "x", "required_skills": [{"name": "Go"}], "resume_skills": [], "skill_gap": [], "match_score": 50, "preparation_tips": []}`},
		{"top-level array", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := NewAnalyzer(&MockLLMClient{GenerateJSONFunc: respond(tt.response)}, time.Second)

			result, err := analyzer.Analyze(context.Background(), "jd", "cv")
			assert.Nil(t, result)

			var invalidErr *InvalidResponseError
			require.ErrorAs(t, err, &invalidErr)
		})
	}
}

func TestAnalyze_FencedJSONAccepted(t *testing.T) {
	analyzer := NewAnalyzer(&MockLLMClient{GenerateJSONFunc: respond("```json\n" + validResponse + "\n```")}, time.Second)

	result, err := analyzer.Analyze(context.Background(), "jd", "cv")
	require.NoError(t, err)
	assert.Equal(t, 78, result.MatchScore)
}

func TestAnalyze_IntegralFloatScoreAccepted(t *testing.T) {
	response := `{"job_summary": "x", "required_skills": ["Go"], "resume_skills": [], "skill_gap": ["Go"],
		"match_score": 85.0, "preparation_tips": []}`
	analyzer := NewAnalyzer(&MockLLMClient{GenerateJSONFunc: respond(response)}, time.Second)

	result, err := analyzer.Analyze(context.Background(), "jd", "cv")
	require.NoError(t, err)
	assert.Equal(t, 85, result.MatchScore)
	assert.Equal(t, []string{"Go"}, result.SkillGap)
}

func TestAnalyze_FractionalScoreRejected(t *testing.T) {
	response := `{"job_summary": "x", "required_skills": [], "resume_skills": [], "skill_gap": [],
		"match_score": 85.5, "preparation_tips": []}`
	analyzer := NewAnalyzer(&MockLLMClient{GenerateJSONFunc: respond(response)}, time.Second)

	_, err := analyzer.Analyze(context.Background(), "jd", "cv")
	var invalidErr *InvalidResponseError
	require.ErrorAs(t, err, &invalidErr)
}

func TestAnalyze_TransportFailure(t *testing.T) {
	cause := errors.New("503 service unavailable")
	analyzer := NewAnalyzer(&MockLLMClient{GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
		return "", cause
	}}, time.Second)

	_, err := analyzer.Analyze(context.Background(), "jd", "cv")
	var analysisErr *AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.ErrorIs(t, err, cause)
}

func TestAnalyze_Timeout(t *testing.T) {
	client := &MockLLMClient{GenerateJSONFunc: func(ctx context.Context, _ string, _ llm.ModelTier) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}

	_, err := NewAnalyzer(client, 20*time.Millisecond).Analyze(context.Background(), "jd", "cv")
	var analysisErr *AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAnalyze_NoCaching(t *testing.T) {
	client := &MockLLMClient{}
	analyzer := NewAnalyzer(client, time.Second)

	for i := 0; i < 2; i++ {
		_, err := analyzer.Analyze(context.Background(), "same jd", "same cv")
		require.NoError(t, err)
	}
	assert.Len(t, client.Prompts, 2)
}

func TestBuildPrompt_OnlyEmbedsBothTexts(t *testing.T) {
	prompt := BuildPrompt("JD {{.ResumeText}}", "CV text")

	assert.Contains(t, prompt, "JD {{.ResumeText}}", "placeholders inside inputs are not expanded")
	assert.Contains(t, prompt, "RESUME:\nCV text")
	assert.NotContains(t, prompt, "{{.JobDescription}}")
}
