package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/NitishV2006/OneOrbit/internal/models"
	"github.com/NitishV2006/OneOrbit/internal/monitoring"
)

// TextAnalyzer is the contract to the hosted generative-text service. Both
// operations collapse every failure mode (network, malformed output, schema
// mismatch) into an empty result; the distinction between "service down"
// and "nothing extracted" exists only in the logs.
type TextAnalyzer interface {
	ExtractGoals(ctx context.Context, reflectionText string) []string
	AnalyzeTaskTitle(ctx context.Context, title string) *models.TaskSuggestion
}

const maxExtractedGoals = 3

type GeminiAnalysisService struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewGeminiAnalysisService(baseURL, apiKey, model string, logger *zap.Logger) *GeminiAnalysisService {
	return &GeminiAnalysisService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

var goalsSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"goals": {
			"type": "ARRAY",
			"description": "A list of up to 3 actionable goals extracted from the reflection.",
			"items": {"type": "STRING", "description": "A single, concise goal."}
		}
	}
}`)

var taskSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"category": {"type": "STRING", "enum": ["Study", "Work", "Personal", "Fitness"]},
		"priority": {"type": "STRING", "enum": ["Low", "Medium", "High"]},
		"duration": {"type": "INTEGER", "description": "Estimated duration in minutes."}
	}
}`)

// ExtractGoals asks the model for up to 3 actionable goals from a weekly
// reflection. Empty result on any failure, never an error.
func (s *GeminiAnalysisService) ExtractGoals(ctx context.Context, reflectionText string) []string {
	prompt := fmt.Sprintf(`You are an assistant for a productivity app called OneOrbit. A user has written a weekly reflection. Your task is to extract up to 3 actionable goals for the upcoming week from their reflection. These goals should be concise and formatted as tasks.

User reflection:
"""
%s
"""

Please identify the key goals and return them.`, reflectionText)

	raw, err := s.generate(ctx, prompt, goalsSchema)
	if err != nil {
		s.logger.Error("extract goals failed", zap.Error(err))
		monitoring.AnalysisCount.WithLabelValues("extract_goals", "failure").Inc()
		return []string{}
	}

	var parsed struct {
		Goals []string `json:"goals"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed.Goals == nil {
		s.logger.Error("extract goals returned malformed payload", zap.Error(err))
		monitoring.AnalysisCount.WithLabelValues("extract_goals", "failure").Inc()
		return []string{}
	}

	goals := make([]string, 0, maxExtractedGoals)
	for _, goal := range parsed.Goals {
		goal = strings.TrimSpace(goal)
		if goal == "" {
			continue
		}
		goals = append(goals, goal)
		if len(goals) == maxExtractedGoals {
			break
		}
	}
	monitoring.AnalysisCount.WithLabelValues("extract_goals", "success").Inc()
	return goals
}

// AnalyzeTaskTitle suggests category, priority and duration for a task
// title. Nil on any failure or shape mismatch.
func (s *GeminiAnalysisService) AnalyzeTaskTitle(ctx context.Context, title string) *models.TaskSuggestion {
	prompt := fmt.Sprintf(`You are an intelligent task assistant for a productivity app called OneOrbit. A user has entered a task title. Your job is to analyze it and suggest a category, priority, and estimated duration in minutes.

Task Title: %q

Analyze the task and provide the most logical suggestions based on the content. The duration should be a reasonable estimate in minutes.`, title)

	raw, err := s.generate(ctx, prompt, taskSchema)
	if err != nil {
		s.logger.Error("analyze task title failed", zap.Error(err))
		monitoring.AnalysisCount.WithLabelValues("analyze_task", "failure").Inc()
		return nil
	}

	var suggestion models.TaskSuggestion
	if err := json.Unmarshal(raw, &suggestion); err != nil {
		s.logger.Error("analyze task title returned malformed payload", zap.Error(err))
		monitoring.AnalysisCount.WithLabelValues("analyze_task", "failure").Inc()
		return nil
	}
	if !models.ValidTaskCategory(suggestion.Category) ||
		!models.ValidTaskPriority(suggestion.Priority) ||
		suggestion.Duration <= 0 {
		s.logger.Warn("analyze task title returned out-of-schema values",
			zap.String("category", suggestion.Category),
			zap.String("priority", suggestion.Priority),
			zap.Int("duration", suggestion.Duration))
		monitoring.AnalysisCount.WithLabelValues("analyze_task", "failure").Inc()
		return nil
	}

	monitoring.AnalysisCount.WithLabelValues("analyze_task", "success").Inc()
	return &suggestion
}

// generate performs a single request against the hosted model: one attempt,
// no retry, no backoff. The declared response schema makes the model reply
// with JSON, which is returned raw for the caller to shape-check.
func (s *GeminiAnalysisService) generate(ctx context.Context, prompt string, schema json.RawMessage) ([]byte, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal generate request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("call model: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode model response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("model response has no candidates")
	}

	return []byte(strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)), nil
}
