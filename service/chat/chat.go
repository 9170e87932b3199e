package chat

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/forsakeprojects/partnur-backend/constant"
	"github.com/forsakeprojects/partnur-backend/entity"
	"github.com/forsakeprojects/partnur-backend/model"
	"github.com/forsakeprojects/partnur-backend/pkg/clients/advisor"
	"github.com/forsakeprojects/partnur-backend/pkg/clients/llm_model"
	"github.com/forsakeprojects/partnur-backend/pkg/insights"
	"github.com/forsakeprojects/partnur-backend/pkg/profile"
	"github.com/forsakeprojects/partnur-backend/pkg/str"
	"github.com/forsakeprojects/partnur-backend/pkg/timeutil"
	"github.com/forsakeprojects/partnur-backend/repository/factory"
	"github.com/forsakeprojects/partnur-backend/service/analytics"
	"github.com/forsakeprojects/partnur-backend/service/convlog"
	profilesvc "github.com/forsakeprojects/partnur-backend/service/profile"

	log "github.com/sirupsen/logrus"
)

var (
	serviceOnce sync.Once
	instance    *Service
)

// 抽取和生成两个外部协作方按接口注入，便于替换实现
type infoExtractor interface {
	ExtractBusinessInfo(c context.Context, message, profileSummary string) (model.ExtractedInfo, error)
}

type adviceGenerator interface {
	GenerateAdvice(ctx context.Context, profileSummary string, suggestions []string, userMessage string) (string, error)
}

type Service struct {
	profileService   *profilesvc.Service
	convlogService   *convlog.Service
	analyticsService *analytics.Service
	llmClient        infoExtractor
	advisorClient    adviceGenerator
}

func NewService(repositoryFactory factory.Factory) *Service {
	serviceOnce.Do(func() {
		advisorClient, err := advisor.GetInstance()
		if err != nil {
			panic("failed to create advisor client: " + err.Error())
		}

		instance = &Service{
			profileService:   profilesvc.NewService(repositoryFactory),
			convlogService:   convlog.NewService(repositoryFactory),
			analyticsService: analytics.NewService(repositoryFactory),
			llmClient:        llm_model.GetInstance(),
			advisorClient:    advisorClient,
		}
	})

	return instance
}

// validateRequest 校验并规范化请求，任何协作方调用之前先拒掉坏参数
func validateRequest(req *model.ChatRequest) (string, string, *model.Error) {
	if req == nil || strings.TrimSpace(req.MobileNumber) == "" {
		return "", "", model.NewError(model.ErrorMobileNumberEmpty, nil)
	}

	mobileNumber := str.NormalizeMobile(req.MobileNumber)
	if mobileNumber == "" {
		return "", "", model.NewError(model.ErrorMobileNumberInvalid, nil)
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return "", "", model.NewError(model.ErrorMessageEmpty, nil)
	}

	return mobileNumber, message, nil
}

// Chat 处理一条进线消息：建档、抽取、合并、打分、生成回复、落日志
func (s *Service) Chat(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, *model.Error) {
	response, _, modelErr := s.converse(ctx, req)
	return response, modelErr
}

// ChatEnhanced 在基础流程之上追加季节提示、经营洞察和最近一周的活跃度预览
func (s *Service) ChatEnhanced(ctx context.Context, req *model.ChatRequest) (*model.EnhancedChatResponse, *model.Error) {
	response, current, modelErr := s.converse(ctx, req)
	if modelErr != nil {
		return nil, modelErr
	}

	enhanced := &model.EnhancedChatResponse{
		ChatResponse:     *response,
		SeasonalTip:      insights.SeasonalTip(time.Now().Month()),
		BusinessInsights: insights.BusinessInsights(current),
		ContextualTips:   insights.ContextualTips(req.Message, current, constant.MaxContextualTips),
	}

	// 活跃度预览尽力而为，查不到不影响聊天结果
	stats, statsErr := s.analyticsService.WindowedStats(ctx, current.MobileNumber, 7)
	if statsErr != nil {
		log.Warnf("Failed to load weekly activity: %v", statsErr)
	} else {
		enhanced.WeeklyActivity = stats
	}

	return enhanced, nil
}

// converse 聊天主管道，返回基础响应和合并后的画像
func (s *Service) converse(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, *entity.BusinessProfile, *model.Error) {
	mobileNumber, message, modelErr := validateRequest(req)
	if modelErr != nil {
		return nil, nil, modelErr
	}

	start := time.Now()

	current, modelErr := s.profileService.ResolveOrCreate(ctx, mobileNumber)
	if modelErr != nil {
		return nil, nil, modelErr
	}

	// 抽取失败按空提案降级，不打断会话
	extracted, err := s.llmClient.ExtractBusinessInfo(ctx, message, insights.Summary(current))
	if err != nil {
		log.Warnf("Extraction degraded to empty result: mobile=%s, err=%v", mobileNumber, err)
		extracted = model.ExtractedInfo{}
	}

	// 抽取结果先按 schema 过滤，未识别字段直接丢弃
	proposed := profile.Filter(extracted)

	var changed []string
	if len(proposed) > 0 {
		merged, mergedFields, mergeErr := s.profileService.MergeAndScore(ctx, mobileNumber, proposed)
		if mergeErr != nil {
			return nil, nil, mergeErr
		}
		current = merged
		changed = mergedFields
	}

	suggestions := insights.Suggestions(current, constant.MaxSuggestions)
	if suggestions == nil {
		suggestions = []string{}
	}
	contextSummary := insights.Summary(current)

	// 生成失败换固定兜底文案，这条路径永不向上抛错
	responseText, err := s.advisorClient.GenerateAdvice(ctx, contextSummary, suggestions, message)
	if err != nil {
		log.Warnf("Advice generation degraded to apology: mobile=%s, err=%v", mobileNumber, err)
		responseText = constant.ApologyMessage
		suggestions = []string{}
	}

	extractedJSON, _ := json.Marshal(proposed)
	s.convlogService.Record(&entity.ConversationLog{
		MobileNumber:   mobileNumber,
		UserMessage:    message,
		BotResponse:    responseText,
		ExtractedData:  string(extractedJSON),
		FieldsUpdated:  changed,
		ContextSummary: contextSummary,
		LatencyMs:      timeutil.SinceMs(start),
		SessionID:      req.SessionID,
	})

	return &model.ChatResponse{
		Response:          responseText,
		ProfileCompletion: current.CompletionScore,
		ExtractedInfo:     proposed,
		Suggestions:       suggestions,
	}, current, nil
}
