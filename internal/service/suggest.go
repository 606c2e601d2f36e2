package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prbeegala/pbconferenceapp/internal/model"
)

// SuggestionService improves draft talk titles and descriptions using an
// OpenAI-compatible chat completions endpoint. It runs outside of any
// registration or review path and never participates in a database
// transaction; failures degrade to echoing the input back unchanged.
type SuggestionService struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

// SuggestionConfig holds configuration for the suggestion service
type SuggestionConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewSuggestionService creates a new suggestion service. An empty API
// key disables the service rather than failing startup.
func NewSuggestionService(cfg SuggestionConfig, logger *slog.Logger) *SuggestionService {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	mdl := cfg.Model
	if mdl == "" {
		mdl = "gpt-4o-mini"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &SuggestionService{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   mdl,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// IsEnabled reports whether an API key is configured
func (s *SuggestionService) IsEnabled() bool {
	return s.apiKey != ""
}

// Suggest returns an improved title and description for a draft
// proposal. When the service is disabled or the upstream call fails, the
// input is echoed back with Success=false so clients can keep whatever
// the user typed.
func (s *SuggestionService) Suggest(ctx context.Context, req *model.SuggestionRequest) *model.SuggestionResponse {
	if !s.IsEnabled() {
		return echoResponse(req, "AI suggestions are not configured")
	}

	content, err := s.complete(ctx, buildPrompt(req))
	if err != nil {
		s.logger.Warn("suggestion request failed", "error", err)
		return echoResponse(req, "suggestion service unavailable")
	}

	var suggestion struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(content), &suggestion); err != nil {
		s.logger.Warn("suggestion response not parseable", "error", err)
		return echoResponse(req, "suggestion service returned an unexpected answer")
	}
	if suggestion.Title == "" && suggestion.Description == "" {
		return echoResponse(req, "suggestion service returned an empty answer")
	}

	return &model.SuggestionResponse{
		Success:              true,
		SuggestedTitle:       suggestion.Title,
		SuggestedDescription: suggestion.Description,
	}
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *chatFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *SuggestionService) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature:    0.7,
		ResponseFormat: &chatFormat{Type: "json_object"},
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("status %d: unparseable response", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("status %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return parsed.Choices[0].Message.Content, nil
}

const systemPrompt = `You help conference speakers polish talk proposals. ` +
	`Given a draft title and description plus context, respond with a JSON object ` +
	`{"title": "...", "description": "..."} containing an improved title (at most 200 characters) ` +
	`and description (at most 1000 characters). Keep the speaker's voice and technical focus.`

func buildPrompt(req *model.SuggestionRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Draft title: %s\n", req.CurrentTitle)
	fmt.Fprintf(&b, "Draft description: %s\n", req.CurrentDescription)
	if req.Technology != "" {
		fmt.Fprintf(&b, "Technology: %s\n", req.Technology)
	}
	if req.DurationMinutes > 0 {
		fmt.Fprintf(&b, "Duration: %d minutes\n", req.DurationMinutes)
	}
	if req.Level != "" {
		fmt.Fprintf(&b, "Audience level: %s\n", req.Level)
	}
	if req.Format != "" {
		fmt.Fprintf(&b, "Format: %s\n", req.Format)
	}
	return b.String()
}

func echoResponse(req *model.SuggestionRequest, msg string) *model.SuggestionResponse {
	return &model.SuggestionResponse{
		Success:              false,
		SuggestedTitle:       req.CurrentTitle,
		SuggestedDescription: req.CurrentDescription,
		ErrorMessage:         msg,
	}
}
