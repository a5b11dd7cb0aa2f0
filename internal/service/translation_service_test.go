package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
)

func translationServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") == "" {
			t.Errorf("missing authorization header")
		}

		var req struct {
			Model       string  `json:"model"`
			Temperature float64 `json:"temperature"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Temperature != 0.3 {
			t.Errorf("expected temperature 0.3, got %v", req.Temperature)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": reply}},
			},
		})
	}))
}

func TestTranslate(t *testing.T) {
	server := translationServer(t, "  Villa sul mare  ")
	defer server.Close()

	translator := NewTranslationService(TranslationConfig{APIKey: "sk-test", BaseURL: server.URL})
	got, err := translator.Translate(context.Background(), "Seaside villa", "en", "it", "Property title")
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if got != "Villa sul mare" {
		t.Fatalf("expected trimmed translation, got %q", got)
	}
}

func TestTranslateEmptySource(t *testing.T) {
	translator := NewTranslationService(TranslationConfig{APIKey: "sk-test"})
	if _, err := translator.Translate(context.Background(), "   ", "en", "it", ""); !errors.Is(err, ErrTranslationEmptySource) {
		t.Fatalf("expected ErrTranslationEmptySource, got %v", err)
	}
}

func TestTranslateNotConfigured(t *testing.T) {
	for _, key := range []string{"", "sk-placeholder"} {
		translator := NewTranslationService(TranslationConfig{APIKey: key})
		if _, err := translator.Translate(context.Background(), "text", "en", "it", ""); !errors.Is(err, ErrTranslatorNotConfigured) {
			t.Fatalf("key %q: expected ErrTranslatorNotConfigured, got %v", key, err)
		}
	}
}

func TestTranslateUnsupportedLocale(t *testing.T) {
	translator := NewTranslationService(TranslationConfig{APIKey: "sk-test"})
	if _, err := translator.Translate(context.Background(), "text", "de", "it", ""); !errors.Is(err, ErrUnsupportedLocale) {
		t.Fatalf("expected ErrUnsupportedLocale, got %v", err)
	}
	if _, err := translator.Translate(context.Background(), "text", "en", "xx", ""); !errors.Is(err, ErrUnsupportedLocale) {
		t.Fatalf("expected ErrUnsupportedLocale, got %v", err)
	}
}

func TestTranslateUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	translator := NewTranslationService(TranslationConfig{APIKey: "sk-test", BaseURL: server.URL})
	if _, err := translator.Translate(context.Background(), "text", "en", "it", ""); !errors.Is(err, ErrTranslationFailed) {
		t.Fatalf("expected ErrTranslationFailed, got %v", err)
	}
}

func TestTranslateFieldMergesSingleLocale(t *testing.T) {
	server := translationServer(t, "Casale storico")
	defer server.Close()

	translator := NewTranslationService(TranslationConfig{APIKey: "sk-test", BaseURL: server.URL})
	field := domain.LocaleText{"en": "Historic farmhouse", "cs": "Historicky statek"}

	merged, err := translator.TranslateField(context.Background(), field, "en", "it", "Property title")
	if err != nil {
		t.Fatalf("TranslateField returned error: %v", err)
	}
	if merged["it"] != "Casale storico" {
		t.Fatalf("translation not merged: %v", merged)
	}
	if merged["en"] != "Historic farmhouse" || merged["cs"] != "Historicky statek" {
		t.Fatalf("sibling locales changed: %v", merged)
	}
}

func TestTranslateFieldFailureLeavesFieldIntact(t *testing.T) {
	translator := NewTranslationService(TranslationConfig{APIKey: ""})
	field := domain.LocaleText{"en": "Loft"}

	got, err := translator.TranslateField(context.Background(), field, "en", "it", "")
	if !errors.Is(err, ErrTranslatorNotConfigured) {
		t.Fatalf("expected ErrTranslatorNotConfigured, got %v", err)
	}
	if got["en"] != "Loft" || got["it"] != "" {
		t.Fatalf("field changed on failure: %v", got)
	}
}
