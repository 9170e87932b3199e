package llm_model

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/forsakeprojects/partnur-backend/config"
	"github.com/forsakeprojects/partnur-backend/constant"
	"github.com/forsakeprojects/partnur-backend/model"

	"github.com/kaptinlin/jsonrepair"
	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

const (
	clientNameChatModel = "chat_model"
)

type ClientChatModel struct {
	config *Config
}

var (
	instance *ClientChatModel
	once     sync.Once
)

func GetInstance() *ClientChatModel {
	once.Do(func() {
		conf := &Config{
			Addr:        config.GetInstance().GetString(config.ClientChatModelAddr),
			Model:       config.GetInstance().GetString(config.ClientChatModelModel),
			Token:       config.GetModelApiKey(),
			Temperature: cast.ToFloat32(config.GetInstance().GetFloat64(config.ClientChatModelTemperature)),
			MaxTokens:   config.GetInstance().GetInt(config.ClientChatModelMaxTokens),
			Timeout:     time.Duration(config.GetInstance().GetIntOrDefault(config.ClientChatModelTimeoutSec, 20)) * time.Second,
		}

		instance = &ClientChatModel{
			config: conf,
		}
	})
	return instance
}

// @Description 封装非流式调用，直接返回完整结果
// @Param c context.Context
// @Param messages []openai.ChatCompletionMessage
// @Success *openai.ChatCompletionResponse
// @Success error
func (zc *ClientChatModel) PostChatCompletionsNonStream(c context.Context, messages []openai.ChatCompletionMessage) (*openai.ChatCompletionResponse, error) {
	defaultReq := openai.DefaultConfig(zc.config.Token)
	defaultReq.BaseURL = zc.config.Addr

	client := openai.NewClientWithConfig(defaultReq)

	// 创建请求结构
	request := openai.ChatCompletionRequest{
		Model:       zc.config.Model,
		Messages:    messages,
		MaxTokens:   zc.config.MaxTokens,
		Temperature: zc.config.Temperature,
		Stream:      false,
	}

	// debug 出完整的请求参数，json格式（仅在 debug 级别时序列化）
	if log.GetLevel() == log.DebugLevel {
		requestJson, err := json.MarshalIndent(request, "", "  ")
		if err != nil {
			log.Errorf("%s chat completion request json marshal error: %v", clientNameChatModel, err)
			return nil, err
		}
		// 直接输出格式化的 JSON 到标准输出，避免日志系统转义换行符
		if _, err := fmt.Fprintf(os.Stdout, "[DEBUG] %s chat completion request:\n%s\n", clientNameChatModel, string(requestJson)); err != nil {
			log.Warnf("%s failed to write debug output: %v", clientNameChatModel, err)
		}
	}

	ctx, cancel := context.WithTimeout(c, zc.config.Timeout)
	defer cancel()

	response, err := client.CreateChatCompletion(ctx, request)

	if err != nil {
		log.Errorf("%s chat completion error: %v", clientNameChatModel, err)
		return nil, err
	}

	// debug 出完整的响应内容，json格式（仅在 debug 级别时序列化）
	if log.GetLevel() == log.DebugLevel {
		responseJson, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			log.Errorf("%s chat completion response json marshal error: %v", clientNameChatModel, err)
		} else {
			if _, err := fmt.Fprintf(os.Stdout, "[DEBUG] %s chat completion response:\n%s\n", clientNameChatModel, string(responseJson)); err != nil {
				log.Warnf("%s failed to write debug output: %v", clientNameChatModel, err)
			}
		}
	}

	return &response, nil
}

// @Description 封装非流式调用，只返回响应内容字符串
// @Param c context.Context
// @Param messages []openai.ChatCompletionMessage
// @Success string
// @Success error
func (zc *ClientChatModel) PostChatCompletionsNonStreamContent(c context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	response, err := zc.PostChatCompletionsNonStream(c, messages)
	if err != nil {
		return "", err
	}

	if response == nil {
		log.Errorf("%s chat completion response is nil", clientNameChatModel)
		return "", fmt.Errorf("chat completion response is nil")
	}

	if len(response.Choices) == 0 {
		log.Errorf("%s chat completion response has no choices", clientNameChatModel)
		return "", fmt.Errorf("chat completion response has no choices")
	}

	content := response.Choices[0].Message.Content
	if content == "" {
		log.Warnf("%s chat completion response content is empty", clientNameChatModel)
	}

	return content, nil
}

// ExtractBusinessInfo 从单条用户消息里抽取画像字段提案
// profileSummary 是已知画像摘要，给模型当上下文，可为空
// 模型输出不是合法 JSON 对象时返回空提案，不算调用失败
func (zc *ClientChatModel) ExtractBusinessInfo(c context.Context, message, profileSummary string) (model.ExtractedInfo, error) {
	if profileSummary == "" {
		profileSummary = "(nothing yet)"
	}

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: constant.ExtractionSystemPrompt,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf(constant.ExtractionUserPromptTemplate, profileSummary, message),
		},
	}

	content, err := zc.PostChatCompletionsNonStreamContent(c, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to extract business info: %w", err)
	}

	return parseExtractedInfo(content), nil
}

// parseExtractedInfo 解析模型返回的 JSON 对象，语法损坏时先修复再解析
func parseExtractedInfo(content string) model.ExtractedInfo {
	content = cleanJSONResponse(content)
	if content == "" {
		return model.ExtractedInfo{}
	}

	var extracted model.ExtractedInfo
	err := json.Unmarshal([]byte(content), &extracted)
	if err != nil {
		if _, ok := err.(*json.SyntaxError); ok {
			if fixed, repairErr := jsonrepair.JSONRepair(content); repairErr == nil {
				extracted = nil
				err = json.Unmarshal([]byte(fixed), &extracted)
			}
		}
	}

	if err != nil {
		// 顶层不是对象（数组、标量）或修复失败，按空提案处理
		log.Warnf("%s unexpected extraction output, dropping: %v", clientNameChatModel, err)
		return model.ExtractedInfo{}
	}
	if extracted == nil {
		return model.ExtractedInfo{}
	}

	return extracted
}

// cleanJSONResponse 清理 JSON 响应
func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)
	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}
