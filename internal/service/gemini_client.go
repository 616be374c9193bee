package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mediaplanner/internal/config"
	"net/http"
	"strings"
	"time"
)

var ErrProviderNotConfigured = errors.New("missing GEMINI_API_KEY")

// TextGenerator produces free text from a prompt
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ProviderError is returned for any failed generation call
type ProviderError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gemini %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("gemini %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GeminiClient calls generateContent on one Gemini model. No retries.
type GeminiClient struct {
	config *config.AIConfig
	model  string
	client *http.Client
}

// NewGeminiClient creates a client bound to a model
func NewGeminiClient(cfg *config.AIConfig, model string) *GeminiClient {
	return &GeminiClient{
		config: cfg,
		model:  model,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
	}
}

// GenerateText sends prompt and returns the first candidate's text
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if !g.config.IsEnabled() {
		return "", &ProviderError{Op: "configure", Err: ErrProviderNotConfigured}
	}

	jsonBody, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", &ProviderError{Op: "encode", Err: err}
	}

	url := fmt.Sprintf("%s?key=%s", g.config.ModelEndpoint(g.model), g.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", &ProviderError{Op: "request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", &ProviderError{Op: "request", Err: redactKey(err, g.config.APIKey)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Op: "read", StatusCode: resp.StatusCode, Err: err}
	}

	var geminiResp geminiResponse
	decodeErr := json.Unmarshal(body, &geminiResp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		if decodeErr == nil && geminiResp.Error != nil && geminiResp.Error.Message != "" {
			msg = geminiResp.Error.Message
		}
		return "", &ProviderError{Op: "generate", StatusCode: resp.StatusCode, Err: errors.New(msg)}
	}
	if decodeErr != nil {
		return "", &ProviderError{Op: "decode", StatusCode: resp.StatusCode, Err: decodeErr}
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", &ProviderError{Op: "decode", StatusCode: resp.StatusCode, Err: errors.New("empty response from Gemini")}
	}
	text := strings.TrimSpace(geminiResp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", &ProviderError{Op: "decode", StatusCode: resp.StatusCode, Err: errors.New("empty response from Gemini")}
	}
	return text, nil
}

// redactKey strips the API key from transport errors, which embed the URL
func redactKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), key, "REDACTED"))
}
