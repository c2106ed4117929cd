package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hanja_edu_backend/internal/config"
	"hanja_edu_backend/internal/exam"
)

func TestParseBatchResponse(t *testing.T) {
	content := "[q_1]\n정답: 하늘\n오답: 땅, 물, 불\n\n[q_2]\n빈칸에 들어갈 한자는 天입니다.\n"

	items := parseBatchResponse(content)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "q_1" {
		t.Errorf("first item ID = %q, want q_1", items[0].ID)
	}
	if !strings.Contains(items[0].Content, "정답: 하늘") {
		t.Errorf("first item content missing answer line: %q", items[0].Content)
	}
	if items[1].ID != "q_2" || !strings.Contains(items[1].Content, "天") {
		t.Errorf("unexpected second item: %+v", items[1])
	}
}

func TestParseBatchResponseIgnoresPreamble(t *testing.T) {
	// 형식 지시에도 불구하고 모델이 인사말을 앞에 붙이는 경우
	content := "네, 요청하신 문제를 만들었습니다.\n\n[q_3]\n정답: 착할 선\n"

	items := parseBatchResponse(content)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].ID != "q_3" {
		t.Errorf("item ID = %q, want q_3", items[0].ID)
	}
	if strings.Contains(items[0].Content, "만들었습니다") {
		t.Errorf("preamble leaked into content: %q", items[0].Content)
	}
}

func TestParseBatchResponseSkipsEmptyBlocks(t *testing.T) {
	content := "[q_1]\n\n[q_2]\n내용 있음\n"

	items := parseBatchResponse(content)
	if len(items) != 1 {
		t.Fatalf("expected empty block to be dropped, got %d items", len(items))
	}
	if items[0].ID != "q_2" {
		t.Errorf("item ID = %q, want q_2", items[0].ID)
	}
}

func TestGenerateSingleBatchCall(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}

		var req ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Messages) != 2 {
			t.Fatalf("expected system+user messages, got %d", len(req.Messages))
		}
		user := req.Messages[1].Content
		if !strings.Contains(user, "[q_1]") || !strings.Contains(user, "[q_5]") {
			t.Errorf("user message missing request markers: %q", user)
		}
		if req.MaxTokens != 700 {
			t.Errorf("max_tokens = %d, want sum 700", req.MaxTokens)
		}

		resp := ChatCompletionResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message AIChatMessage `json:"message"`
		}{Message: AIChatMessage{Role: "assistant", Content: "[q_1]\n정답: 하늘\n\n[q_5]\n정답: 물"}})
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := NewAIService(config.AIConfig{
		BaseURL:        server.URL,
		APIKey:         "test-key",
		Model:          "test-model",
		TimeoutSeconds: 5,
	}, nil)

	batch := []exam.PromptRequest{
		{ID: "q_1", Prompt: "문제 1", MaxTokens: 300},
		{ID: "q_5", Prompt: "문제 5", MaxTokens: 400},
	}
	items, err := svc.Generate(context.Background(), batch)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one API call, got %d", calls)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "q_1" || items[1].ID != "q_5" {
		t.Errorf("unexpected item IDs: %s, %s", items[0].ID, items[1].ID)
	}
}

func TestGenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	svc := NewAIService(config.AIConfig{
		BaseURL:        server.URL,
		APIKey:         "test-key",
		Model:          "test-model",
		TimeoutSeconds: 5,
	}, nil)

	_, err := svc.Generate(context.Background(), []exam.PromptRequest{{ID: "q_1", Prompt: "문제"}})
	if err == nil {
		t.Fatal("expected error on non-200 response")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry status code: %v", err)
	}
}

func TestGenerateEmptyBatch(t *testing.T) {
	svc := NewAIService(config.AIConfig{TimeoutSeconds: 5}, nil)

	items, err := svc.Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Generate(nil): %v", err)
	}
	if items != nil {
		t.Errorf("expected nil items for empty batch, got %v", items)
	}
}
