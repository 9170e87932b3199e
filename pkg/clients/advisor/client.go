package advisor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/forsakeprojects/partnur-backend/config"
	"github.com/forsakeprojects/partnur-backend/constant"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	log "github.com/sirupsen/logrus"
)

var (
	instance *Client
	once     sync.Once
	initErr  error
)

// Client 经营建议生成客户端
type Client struct {
	client    openai.Client
	modelName string
	maxTokens int64
	timeout   time.Duration
}

// GetInstance 获取建议生成客户端单例
func GetInstance() (*Client, error) {
	once.Do(func() {
		cfg := config.GetInstance()

		apiKey := config.GetModelApiKey()
		if apiKey == "" {
			initErr = fmt.Errorf("%s is required", config.EnvModelApiKey)
			return
		}

		modelName := cfg.GetString(config.AdvisorConfigKeyModelName)
		if modelName == "" {
			initErr = fmt.Errorf("%s is required", config.AdvisorConfigKeyModelName)
			return
		}

		baseURL := cfg.GetString(config.AdvisorConfigKeyBaseURL)

		opts := []option.RequestOption{
			option.WithAPIKey(apiKey),
		}

		// 配置了 base_url 时走自定义地址（兼容其他 OpenAI API 服务）
		if baseURL != "" {
			opts = append(opts, option.WithBaseURL(baseURL))
		}

		client := openai.NewClient(opts...)

		instance = &Client{
			client:    client,
			modelName: modelName,
			maxTokens: int64(cfg.GetIntOrDefault(config.AdvisorConfigKeyMaxTokens, 400)),
			timeout:   time.Duration(cfg.GetIntOrDefault(config.AdvisorConfigKeyTimeoutSec, 30)) * time.Second,
		}
	})

	return instance, initErr
}

// GenerateAdvice 根据画像摘要、追问提示和用户消息生成回复
// 失败时由调用方降级为固定兜底文案
func (c *Client) GenerateAdvice(ctx context.Context, profileSummary string, suggestions []string, userMessage string) (string, error) {
	prompt := buildAdvicePrompt(profileSummary, suggestions, userMessage)

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(callCtx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(constant.AdvisorSystemPrompt),
			openai.UserMessage(prompt),
		},
		MaxTokens: openai.Int(c.maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create advice completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("advice completion has no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		log.Warnf("advisor completion content is empty")
		return "", fmt.Errorf("advice completion content is empty")
	}

	return content, nil
}

// buildAdvicePrompt 组装建议生成的用户提示词
func buildAdvicePrompt(profileSummary string, suggestions []string, userMessage string) string {
	if profileSummary == "" {
		profileSummary = "(nothing known yet)"
	}

	hints := "(none)"
	if len(suggestions) > 0 {
		hints = "- " + strings.Join(suggestions, "\n- ")
	}

	return fmt.Sprintf(constant.AdvisorUserPromptTemplate, profileSummary, hints, userMessage)
}
