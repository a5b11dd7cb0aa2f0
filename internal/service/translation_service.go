package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
)

var (
	ErrTranslatorNotConfigured = errors.New("translator not configured")
	ErrTranslationEmptySource  = errors.New("translation source text is empty")
	ErrTranslationFailed       = errors.New("translation failed")
	ErrUnsupportedLocale       = errors.New("unsupported locale")
)

var languageNames = map[string]string{
	domain.LocaleEN: "English",
	domain.LocaleCS: "Czech",
	domain.LocaleIT: "Italian",
}

const defaultTranslationModel = "gpt-4o-mini"

type TranslationConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration

	// BaseURL overrides the OpenAI endpoint, used by tests.
	BaseURL string
}

// TranslationService translates one listing field at a time via the OpenAI
// chat-completions API. It never touches sibling locales: the caller merges
// the returned value with LocaleText.Set, so a failed call leaves every
// other translation as it was.
type TranslationService struct {
	cfg  TranslationConfig
	http *http.Client
}

func NewTranslationService(cfg TranslationConfig) *TranslationService {
	if cfg.Model == "" {
		cfg.Model = defaultTranslationModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TranslationService{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

func (s *TranslationService) Configured() bool {
	return s.cfg.APIKey != "" && s.cfg.APIKey != "sk-placeholder"
}

// Translate returns text rendered from sourceLang into targetLang.
// fieldContext describes what is being translated ("Property title" etc.)
// and lands in the system prompt.
func (s *TranslationService) Translate(ctx context.Context, text, sourceLang, targetLang, fieldContext string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrTranslationEmptySource
	}
	if !s.Configured() {
		return "", ErrTranslatorNotConfigured
	}
	sourceName, ok := languageNames[sourceLang]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, sourceLang)
	}
	targetName, ok := languageNames[targetLang]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, targetLang)
	}

	if fieldContext == "" {
		fieldContext = "Real estate property listing"
	}
	systemPrompt := fmt.Sprintf(`You are a professional translator specializing in real estate property descriptions. Translate the following text from %s to %s.

Context: %s

Guidelines:
- Maintain the professional and appealing tone
- Preserve any specific measurements, numbers, or proper nouns
- Adapt idioms and expressions naturally to the target language
- Keep the same paragraph structure
- Focus on accuracy and natural flow in the target language

Provide ONLY the translation, no explanations or additional text.`, sourceName, targetName, fieldContext)

	payload := map[string]any{
		"model": s.cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": text},
		},
		"temperature": 0.3,
		"max_tokens":  2000,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrTranslationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.cfg.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrTranslationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrTranslationFailed, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrTranslationFailed, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrTranslationFailed)
	}

	translated := strings.TrimSpace(completion.Choices[0].Message.Content)
	if translated == "" {
		return "", fmt.Errorf("%w: empty completion", ErrTranslationFailed)
	}
	return translated, nil
}

// TranslateField translates field[sourceLang] into targetLang and merges
// the result into the field, leaving other locales untouched.
func (s *TranslationService) TranslateField(ctx context.Context, field domain.LocaleText, sourceLang, targetLang, fieldContext string) (domain.LocaleText, error) {
	translated, err := s.Translate(ctx, field[sourceLang], sourceLang, targetLang, fieldContext)
	if err != nil {
		return field, err
	}
	return field.Set(targetLang, translated), nil
}
