package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hanja_edu_backend/internal/config"
	"hanja_edu_backend/internal/exam"
	"hanja_edu_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// AIService OpenAI 호환 챗 API 클라이언트. 시험 생성 파이프라인의
// exam.Generator 구현체이기도 하다.
type AIService struct {
	config config.AIConfig
	client *http.Client
	log    *zap.Logger
}

func NewAIService(cfg config.AIConfig, log *zap.Logger) *AIService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		log:    log,
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []AIChatMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Chat 단건 질의. 시험 외의 일반 용도(관리자 도구 등)
func (s *AIService) Chat(ctx context.Context, system, prompt string) (string, error) {
	messages := []AIChatMessage{}
	if system != "" {
		messages = append(messages, AIChatMessage{Role: "system", Content: system})
	}
	messages = append(messages, AIChatMessage{Role: "user", Content: prompt})

	return s.complete(ctx, ChatCompletionRequest{
		Model:    s.config.Model,
		Messages: messages,
	})
}

// batchSystemPrompt 배치 응답 형식을 고정하는 시스템 프롬프트.
// 항목 구분자를 깨뜨리면 파싱이 통째로 실패하므로 형식을 강하게 지시한다.
const batchSystemPrompt = "당신은 한자 급수 시험 문제를 만드는 출제 보조입니다. " +
	"아래에 [q_숫자] 표시가 붙은 요청이 여러 개 주어집니다. " +
	"각 요청에 대한 답을 반드시 같은 [q_숫자] 표시줄로 시작하는 블록으로 작성하세요. " +
	"표시줄은 한 줄에 [q_숫자]만 단독으로 쓰고, 그 다음 줄부터 해당 요청의 답만 쓰세요. " +
	"요청 외의 설명이나 인사는 쓰지 마세요."

// Generate exam.Generator 구현. 시험 생성당 정확히 한 번 호출되며
// 모든 프롬프트를 하나의 챗 요청으로 묶는다. 응답은 [q_N] 구분자로
// 다시 항목별로 쪼개 ID로 연결한다.
func (s *AIService) Generate(ctx context.Context, batch []exam.PromptRequest) ([]exam.GeneratedItem, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	maxTokens := 0
	temperature := 0.0
	for _, req := range batch {
		fmt.Fprintf(&sb, "[%s]\n%s\n\n", req.ID, req.Prompt)
		maxTokens += req.MaxTokens
		if req.Temperature > temperature {
			temperature = req.Temperature
		}
	}

	timeout := time.Duration(s.config.TimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	content, err := s.complete(ctx, ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: batchSystemPrompt},
			{Role: "user", Content: sb.String()},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	monitoring.AIBatchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	items := parseBatchResponse(content)
	s.log.Info("ai batch completed",
		zap.Int("requested", len(batch)),
		zap.Int("returned", len(items)),
		zap.Duration("elapsed", time.Since(start)))
	return items, nil
}

// parseBatchResponse [q_N] 구분자 기준으로 응답을 항목별로 자른다.
// 구분자를 못 찾은 앞부분 텍스트는 버린다.
func parseBatchResponse(content string) []exam.GeneratedItem {
	var items []exam.GeneratedItem
	var currentID string
	var buf []string

	flush := func() {
		if currentID == "" {
			return
		}
		text := strings.TrimSpace(strings.Join(buf, "\n"))
		if text != "" {
			items = append(items, exam.GeneratedItem{ID: currentID, Content: text})
		}
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[q_") && strings.HasSuffix(trimmed, "]") {
			flush()
			currentID = strings.Trim(trimmed, "[]")
			buf = buf[:0]
			continue
		}
		buf = append(buf, line)
	}
	flush()

	return items
}

func (s *AIService) complete(ctx context.Context, reqBody ChatCompletionRequest) (string, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("AI returned no choices")
	}

	return result.Choices[0].Message.Content, nil
}
