package service

import (
	"context"
	"errors"
	"mediaplanner/internal/chat"
	"mediaplanner/internal/config"
	"mediaplanner/internal/platform/logger"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestChatAskValidation(t *testing.T) {
	s := NewChatService(chat.MustLoadKnowledge(), nil, logger.Nop())
	ctx := context.Background()

	_, err := s.Ask(ctx, "   ")
	if statusOf(t, err) != http.StatusBadRequest || err.Error() != "Question is required and must be a non-empty string" {
		t.Fatalf("expected empty question error, got %v", err)
	}

	_, err = s.Ask(ctx, strings.Repeat("ก", 1001))
	if statusOf(t, err) != http.StatusBadRequest || err.Error() != "Question is too long (max 1000 characters)" {
		t.Fatalf("expected too long error, got %v", err)
	}

	if _, err := s.Ask(ctx, strings.Repeat("ก", 1000)); err != nil {
		t.Fatalf("expected 1000 runes to be accepted, got %v", err)
	}
}

func TestChatAskCannedWithoutProvider(t *testing.T) {
	kb := chat.MustLoadKnowledge()
	gen := &stubGenerator{err: &ProviderError{Op: "configure", Err: ErrProviderNotConfigured}}
	s := NewChatService(kb, gen, logger.Nop())

	resp, err := s.Ask(context.Background(), "ควรแบ่งงบ budget ยังไงดี")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Answer != kb.CannedAnswer(resp.Category) {
		t.Fatalf("expected canned answer for %s, got %q", resp.Category, resp.Answer)
	}
	if len(resp.RetrievedContext) == 0 {
		t.Fatal("expected retrieved context")
	}
}

func TestChatAskUsesGenerator(t *testing.T) {
	gen := &stubGenerator{reply: "ใช้ Google เป็น Hero"}
	s := NewChatService(chat.MustLoadKnowledge(), gen, logger.Nop())

	resp, err := s.Ask(context.Background(), "what is a good ROAS?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Answer != gen.reply {
		t.Fatalf("expected generator reply, got %q", resp.Answer)
	}
	if !strings.Contains(gen.prompt, "what is a good ROAS?") {
		t.Fatal("expected prompt to contain the question")
	}

	gen.err = errBoom
	if _, err := s.Ask(context.Background(), "hello"); !errors.Is(err, errBoom) {
		t.Fatalf("expected provider error to be returned, got %v", err)
	}
}

func TestAIServiceErrors(t *testing.T) {
	kb := chat.MustLoadKnowledge()
	ctx := context.Background()

	s := NewAIService(nil, nil, kb, logger.Nop())
	if _, err := s.Generate(ctx, ""); statusOf(t, err) != http.StatusBadRequest || err.Error() != "Prompt is required" {
		t.Fatalf("expected prompt required, got %v", err)
	}
	if _, err := s.Summarize(ctx, " "); statusOf(t, err) != http.StatusBadRequest || err.Error() != "Text is required" {
		t.Fatalf("expected text required, got %v", err)
	}
	if _, err := s.Generate(ctx, "hi"); statusOf(t, err) != http.StatusInternalServerError || err.Error() != "Missing GEMINI_API_KEY" {
		t.Fatalf("expected missing key error, got %v", err)
	}

	s = NewAIService(&stubGenerator{err: errBoom}, nil, kb, logger.Nop())
	if _, err := s.Generate(ctx, "hi"); statusOf(t, err) != http.StatusInternalServerError || !errors.Is(err, errBoom) {
		t.Fatalf("expected 500 wrapping provider error, got %v", err)
	}
}

func TestAIServiceSummarizeWrapsPrompt(t *testing.T) {
	gen := &stubGenerator{reply: "สรุป"}
	s := NewAIService(nil, gen, chat.MustLoadKnowledge(), logger.Nop())

	out, err := s.Summarize(context.Background(), "long text here")
	if err != nil || out != "สรุป" {
		t.Fatalf("expected summary, got %q (%v)", out, err)
	}
	if gen.prompt == "long text here" || !strings.Contains(gen.prompt, "long text here") {
		t.Fatalf("expected text wrapped in summary instruction, got %q", gen.prompt)
	}
}

func TestMapCSV(t *testing.T) {
	s := NewCsvService(logger.Nop())
	ctx := context.Background()

	res, err := s.MapCSV(ctx, MapCSVRequest{
		Platform:   "facebook",
		CSVContent: "Campaign name,Amount spent (THB),Impressions\nA,100,2000\n",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Mapping["spend"] != "Amount spent (THB)" {
		t.Fatalf("expected spend mapped, got %v", res.Mapping)
	}

	tests := []struct {
		name string
		req  MapCSVRequest
		msg  string
	}{
		{"missing", MapCSVRequest{Platform: "facebook"}, "Missing platform or CSV content"},
		{"platform", MapCSVRequest{Platform: "myspace", CSVContent: "a\n1\n"}, "Invalid platform"},
		{"header only", MapCSVRequest{Platform: "google", CSVContent: "a,b\n"}, "CSV file is empty"},
	}
	for _, tt := range tests {
		_, err := s.MapCSV(ctx, tt.req)
		if statusOf(t, err) != http.StatusBadRequest || err.Error() != tt.msg {
			t.Fatalf("%s: expected %q, got %v", tt.name, tt.msg, err)
		}
	}
}

func TestAuthLoginAndValidate(t *testing.T) {
	s := NewAuthService(authConfig())

	if _, err := s.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	resp, err := s.Login("admin", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := s.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.AdminID != resp.AdminID || claims.ExpiresAt == nil {
		t.Fatalf("expected claims for %s with expiry, got %+v", resp.AdminID, claims)
	}

	if _, err := s.ValidateToken(resp.Token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func authConfig() config.AuthConfig {
	return config.AuthConfig{Username: "admin", Password: "secret", JWTSecret: "test-secret", TokenTTL: time.Hour}
}
