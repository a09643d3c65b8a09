package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"

	"atlas/internal/config"
)

func TestOpenAIProviderGenerateText(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("test-key", "", WithEndpoint(srv.URL))
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}
	text, err := p.GenerateText(context.Background(), "plan my trip")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if text != `{"ok":true}` {
		t.Fatalf("unexpected text %q", text)
	}
	if got.Model != DefaultOpenAIModel || len(got.Messages) != 1 || got.Messages[0].Content != "plan my trip" {
		t.Fatalf("unexpected request %+v", got)
	}
}

func TestOpenAIProviderErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"api error", http.StatusUnauthorized, `{"error":{"message":"bad key"}}`, nil},
		{"empty choices", http.StatusOK, `{"choices":[]}`, ErrEmptyResponse},
		{"not json", http.StatusBadGateway, `<html>`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p, _ := NewOpenAIProvider("k", "m", WithEndpoint(srv.URL))
			_, err := p.GenerateText(context.Background(), "x")
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestOpenAIProviderHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	p, _ := NewOpenAIProvider("k", "m", WithEndpoint(srv.URL))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.GenerateText(ctx, "x")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestNewProvidersRequireKey(t *testing.T) {
	if _, err := NewOpenAIProvider(" ", ""); err == nil {
		t.Fatal("expected error for missing openai key")
	}
	if _, err := NewGeminiProvider(context.Background(), "", ""); err == nil {
		t.Fatal("expected error for missing gemini key")
	}
}

func TestGeminiResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"a":`), genai.Text(" "), genai.Text(`1}`)}},
		}},
	}
	text, err := responseText(resp)
	if err != nil {
		t.Fatalf("responseText: %v", err)
	}
	if text != "{\"a\":\n1}" {
		t.Fatalf("unexpected text %q", text)
	}

	if _, err := responseText(&genai.GenerateContentResponse{}); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestNewProviderSelectsOpenAI(t *testing.T) {
	p, closeFn, err := NewProvider(context.Background(), config.LLMConfig{Provider: config.ProviderOpenAI, OpenAIKey: "k"})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	defer closeFn()
	if _, ok := p.(*OpenAIProvider); !ok {
		t.Fatalf("expected *OpenAIProvider, got %T", p)
	}

	if _, _, err := NewProvider(context.Background(), config.LLMConfig{Provider: "other"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
