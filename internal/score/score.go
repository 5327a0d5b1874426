// Package score rates a finished resume with the model. Three modes:
// against a real job description (ATS), against a job description
// synthesized from the target role (SYNTH), or on general resume
// quality when neither is available (QUALITY).
package score

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/kalambet/resumeforge/internal/hf"
)

const (
	scoreMaxTokens   = 300
	scoreTemperature = 0.2

	maxReasons    = 4
	maxResumeLen  = 6000
	maxJobDescLen = 4000
)

// Mode names the scoring strategy that was used.
type Mode string

const (
	ModeATS     Mode = "ATS"
	ModeSynth   Mode = "SYNTH"
	ModeQuality Mode = "QUALITY"
)

// Result is a single scoring outcome.
type Result struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
	Mode    Mode     `json:"mode"`
}

// Chatter is the model surface the scorer needs.
type Chatter interface {
	ChatCompletion(ctx context.Context, req hf.ChatRequest) (string, error)
}

// Scorer scores resumes through a chat model.
type Scorer struct {
	client Chatter
	model  string
	logger *slog.Logger
}

// NewScorer creates a scorer that scores with the given model.
func NewScorer(client Chatter, model string, logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{client: client, model: model, logger: logger}
}

// jsonBlob matches the outermost brace pair in model output, so scores
// survive models that wrap their JSON in prose.
var jsonBlob = regexp.MustCompile(`(?s)\{.*\}`)

// Score rates resumeText and returns the result, or nil when the model
// call or its output cannot be used. Scoring is best-effort: a nil
// result means "no score", never a hard failure.
func (s *Scorer) Score(ctx context.Context, resumeText, jobDesc, targetRole, skillsText string) *Result {
	mode := ModeQuality
	switch {
	case strings.TrimSpace(jobDesc) != "":
		mode = ModeATS
	case strings.TrimSpace(targetRole) != "":
		mode = ModeSynth
		jobDesc = synthesizeJobDesc(targetRole, skillsText)
	}

	prompt := buildScorePrompt(mode, resumeText, jobDesc)

	raw, err := s.client.ChatCompletion(ctx, hf.ChatRequest{
		Model:       s.model,
		Messages:    []hf.Message{{Role: "user", Content: prompt}},
		MaxTokens:   scoreMaxTokens,
		Temperature: scoreTemperature,
	})
	if err != nil {
		s.logger.Warn("scoring failed", "mode", mode, "error", err)
		return nil
	}

	res, err := parseResult(raw)
	if err != nil {
		s.logger.Warn("unusable score output", "mode", mode, "error", err)
		return nil
	}
	res.Mode = mode
	return res
}

func synthesizeJobDesc(targetRole, skillsText string) string {
	return fmt.Sprintf(`Role: %s
Key skills to look for: %s
Focus on: impact statements, internships/projects relevant to %s, core tools listed above.`, targetRole, skillsText, targetRole)
}

func buildScorePrompt(mode Mode, resumeText, jobDesc string) string {
	resumeText = truncate(resumeText, maxResumeLen)
	if mode == ModeQuality {
		return fmt.Sprintf(`You are a resume quality checker. Score the resume from 0 to 100 on structure, completeness,
action verbs, measurable outcomes, readability, and section coverage for entry-level tech roles.
Return STRICT JSON with keys: score (integer 0-100), reasons (array of brief strings, max 4).

Resume:
%s

Only return JSON.`, resumeText)
	}
	return fmt.Sprintf(`You are an ATS assistant. Score the candidate resume against the job description from 0 to 100.
Return STRICT JSON with keys: score (integer 0-100), reasons (array of brief strings, max 4).

Resume:
%s

Job Description:
%s

Only return JSON.`, resumeText, truncate(jobDesc, maxJobDescLen))
}

func parseResult(raw string) (*Result, error) {
	blob := raw
	if m := jsonBlob.FindString(raw); m != "" {
		blob = m
	}

	var parsed struct {
		Score   int      `json:"score"`
		Reasons []string `json:"reasons"`
	}
	if err := json.Unmarshal([]byte(blob), &parsed); err != nil {
		return nil, fmt.Errorf("parsing score JSON: %w", err)
	}

	if parsed.Score < 0 {
		parsed.Score = 0
	}
	if parsed.Score > 100 {
		parsed.Score = 100
	}
	if len(parsed.Reasons) > maxReasons {
		parsed.Reasons = parsed.Reasons[:maxReasons]
	}
	return &Result{Score: parsed.Score, Reasons: parsed.Reasons}, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
