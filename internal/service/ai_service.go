package service

import (
	"bytes"
	"context"
	"encoding/json"
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AIService 调用 OpenAI 兼容的 chat/completions 接口生成题目草稿。
// 未配置时 GenerationService 会退回到内置模板出题
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *AIService) Enabled() bool {
	return s.config.BaseURL != "" && s.config.APIKey != ""
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// questionDraft 模型返回的单题原始结构，入库前由 GenerationService 校验
type questionDraft struct {
	Text          string            `json:"text"`
	Topic         string            `json:"topic"`
	Tags          []string          `json:"tags"`
	Options       []string          `json:"options"`
	CorrectAnswer string            `json:"correctAnswer"`
	Explanation   string            `json:"explanation"`
	SampleAnswer  string            `json:"sampleAnswer"`
	Keywords      []string          `json:"keywords"`
	KeyPoints     []string          `json:"keyPoints"`
	Rubric        map[string]string `json:"rubric"`
}

// GenerateQuestions 请求模型按严格 JSON 数组返回 count 道题目草稿
func (s *AIService) GenerateQuestions(ctx context.Context, subject, course, university string, qType model.QuestionType, difficulty model.Difficulty, count int) ([]questionDraft, error) {
	systemContent := "你是一个大学考试出题助手。只输出一个 JSON 数组，不要包含任何解释性文字或 Markdown 代码块。" +
		"数组每个元素的字段：text, topic, tags, explanation；" +
		"mcq 题附 options（至少4个，互不相同）和 correctAnswer（必须是 options 之一）；" +
		"short_answer 题附 sampleAnswer 和 keywords；" +
		"long_answer 题附 sampleAnswer、keyPoints 和 rubric（评分标准名→描述的映射）。"

	userContent := fmt.Sprintf(
		"出 %d 道 %s 难度的 %s 题。科目：%s，课程：%s，学校：%s。",
		count, difficulty, qType, subject, course, university,
	)

	reqBody := chatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: systemContent},
			{Role: "user", Content: userContent},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, err
	}
	if completion.Error != nil {
		return nil, fmt.Errorf("AI API error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("AI API returned no choices")
	}

	content := stripCodeFence(completion.Choices[0].Message.Content)

	var drafts []questionDraft
	if err := json.Unmarshal([]byte(content), &drafts); err != nil {
		return nil, fmt.Errorf("failed to parse AI response as question array: %w", err)
	}

	return drafts, nil
}

// stripCodeFence 容错处理：有些模型无视指令把 JSON 包在 ``` 代码块里
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
