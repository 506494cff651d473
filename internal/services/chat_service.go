package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const translatePrompt = `You are a translator for a rental housing service in Korea.
Translate the following message into %s. Keep the tone polite and natural,
preserve numbers, dates and addresses exactly, and reply with the translation only.

Message: %s`

const landlordPrompt = `당신은 한국에서 원룸을 임대하는 집주인입니다. 외국인 유학생 세입자의
질문에 친절하고 간결하게 한국어로 답하세요. 보증금, 월세, 관리비, 계약 기간 등
임대차 관련 질문에는 구체적으로 답하고, 모르는 내용은 모른다고 답하세요.

세입자: %s`

// IChatService proxies translation and landlord chat to the Gemini API.
type IChatService interface {
	Translate(ctx context.Context, language, message string) (string, error)
	Chat(ctx context.Context, message string) (string, error)
}

// ChatService implements IChatService.
type ChatService struct {
	client *resty.Client
	apiKey string
	model  string
	logger *zap.Logger
}

// NewChatService creates the Gemini-backed chat service.
func NewChatService(baseURL, apiKey, model string, logger *zap.Logger) *ChatService {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second)
	return &ChatService{
		client: client,
		apiKey: apiKey,
		model:  model,
		logger: logger,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (s *ChatService) Translate(ctx context.Context, language, message string) (string, error) {
	if strings.TrimSpace(language) == "" {
		return "", ErrLanguageRequired
	}
	if strings.TrimSpace(message) == "" {
		return "", ErrMessageRequired
	}

	prompt := fmt.Sprintf(translatePrompt, language, message)
	return s.generate(ctx, prompt, geminiGenerationConfig{Temperature: 0.2})
}

func (s *ChatService) Chat(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrMessageRequired
	}

	prompt := fmt.Sprintf(landlordPrompt, message)
	return s.generate(ctx, prompt, geminiGenerationConfig{
		Temperature:     0.5,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 400,
	})
}

func (s *ChatService) generate(ctx context.Context, prompt string, genCfg geminiGenerationConfig) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: genCfg,
	}

	var result geminiResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("key", s.apiKey).
		SetBody(body).
		SetResult(&result).
		Post(fmt.Sprintf("/models/%s:generateContent", s.model))
	if err != nil {
		s.logger.Error("gemini request failed", zap.Error(err))
		return "", ErrChatUpstream
	}
	if resp.IsError() {
		s.logger.Error("gemini request rejected",
			zap.Int("status", resp.StatusCode()),
			zap.ByteString("body", resp.Body()))
		return "", ErrChatUpstream
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		s.logger.Error("gemini returned no candidates")
		return "", ErrChatUpstream
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
