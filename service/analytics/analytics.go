package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/forsakeprojects/partnur-backend/config"
	"github.com/forsakeprojects/partnur-backend/constant"
	"github.com/forsakeprojects/partnur-backend/model"
	"github.com/forsakeprojects/partnur-backend/pkg/clients/redis"
	"github.com/forsakeprojects/partnur-backend/pkg/timeutil"
	"github.com/forsakeprojects/partnur-backend/pkg/tools"
	"github.com/forsakeprojects/partnur-backend/repository"
	"github.com/forsakeprojects/partnur-backend/repository/factory"
	"github.com/forsakeprojects/partnur-backend/repository/interfaces"

	log "github.com/sirupsen/logrus"
)

var (
	serviceOnce sync.Once
	instance    *Service
)

type Service struct {
	repositoryFactory factory.Factory
}

func NewService(repositoryFactory factory.Factory) *Service {
	serviceOnce.Do(func() {
		instance = &Service{
			repositoryFactory: repositoryFactory,
		}
	})

	return instance
}

// WindowedStats 统计单个手机号在 [now-days, now] 窗口内的交互
func (s *Service) WindowedStats(ctx context.Context, mobileNumber string, days int) (*model.WindowedStats, *model.Error) {
	if days <= 0 {
		days = constant.DefaultAnalyticsWindowDays
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "close session")

	logRepo := newConversationLogRepository(s.repositoryFactory, session)

	since := timeutil.WindowStart(time.Now(), days)
	logs, err := logRepo.List(&model.GetConversationLogsCondition{
		MobileNumber: &mobileNumber,
		Since:        &since,
	})
	if err != nil {
		return nil, model.NewError(model.ErrorAnalytics, fmt.Errorf("failed to list conversation logs: %w", err))
	}

	stats := &model.WindowedStats{
		MobileNumber:   mobileNumber,
		WindowDays:     days,
		TotalMessages:  len(logs),
		TopicFrequency: map[string]int{},
	}

	var latencySum int64
	for _, entry := range logs {
		latencySum += entry.LatencyMs
		countTopics(stats.TopicFrequency, entry.ExtractedData)
	}
	if len(logs) > 0 {
		stats.AvgLatencyMs = latencySum / int64(len(logs))
	}

	// 日志默认按 created_at 倒序，前几条就是最近几条
	for i, entry := range logs {
		if i >= constant.RecentEntriesLimit {
			break
		}
		stats.RecentEntries = append(stats.RecentEntries, model.RecentEntry{
			UserMessage:   entry.UserMessage,
			FieldsUpdated: entry.FieldsUpdated,
			CreatedAt:     entry.CreatedAt,
		})
	}

	return stats, nil
}

// ActivitySummary 窗口统计加当前画像快照，画像不存在时返回 (nil, nil)
func (s *Service) ActivitySummary(ctx context.Context, mobileNumber string, days int) (*model.ActivitySummary, *model.Error) {
	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "close session")

	profileRepo := newBusinessProfileRepository(s.repositoryFactory, session)

	p, err := profileRepo.GetByMobile(mobileNumber)
	if err != nil {
		return nil, model.NewError(model.ErrorAnalytics, fmt.Errorf("failed to get profile: %w", err))
	}
	if p == nil {
		return nil, nil
	}

	stats, modelErr := s.WindowedStats(ctx, mobileNumber, days)
	if modelErr != nil {
		return nil, modelErr
	}

	return &model.ActivitySummary{
		Stats:             stats,
		CompletionScore:   p.CompletionScore,
		BusinessType:      p.BusinessType,
		LocationCity:      p.LocationCity,
		LastProfileUpdate: p.LastProfileUpdate,
	}, nil
}

// CompletionTrend 最近画像的完整度趋势，优先读缓存，未命中落库并回填
func (s *Service) CompletionTrend(ctx context.Context, limit int) (*model.CompletionTrends, *model.Error) {
	if limit <= 0 {
		limit = constant.DefaultTrendsLimit
	}

	if redis.Enabled() {
		cached := &model.CompletionTrends{}
		if hit, err := redis.GetInstance().GetJSON(ctx, trendsCacheKey(limit), cached); err != nil {
			log.Warnf("Failed to read trends cache: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	return s.refreshTrends(ctx, limit)
}

// refreshTrends 落库计算趋势并回写缓存，缓存写失败只告警
func (s *Service) refreshTrends(ctx context.Context, limit int) (*model.CompletionTrends, *model.Error) {
	trends, modelErr := s.completionTrendFromDB(ctx, limit)
	if modelErr != nil {
		return nil, modelErr
	}

	if redis.Enabled() {
		ttl := time.Duration(config.GetInstance().GetIntOrDefault(config.AnalyticsTrendsCacheTTLSec, 300)) * time.Second
		if err := redis.GetInstance().SetJSON(ctx, trendsCacheKey(limit), trends, ttl); err != nil {
			log.Warnf("Failed to write trends cache: %v", err)
		}
	}

	return trends, nil
}

func (s *Service) completionTrendFromDB(ctx context.Context, limit int) (*model.CompletionTrends, *model.Error) {
	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "close session")

	profileRepo := newBusinessProfileRepository(s.repositoryFactory, session)

	// 默认排序是 created_at 倒序，取到的就是最近创建的画像
	profiles, err := profileRepo.List(&model.GetBusinessProfilesCondition{
		Pager: &model.Pager{Limit: limit},
	})
	if err != nil {
		return nil, model.NewError(model.ErrorAnalytics, fmt.Errorf("failed to list profiles: %w", err))
	}

	total, err := profileRepo.Count()
	if err != nil {
		return nil, model.NewError(model.ErrorAnalytics, fmt.Errorf("failed to count profiles: %w", err))
	}

	trends := &model.CompletionTrends{
		Trends: make([]model.CompletionTrendRow, 0, len(profiles)),
		Summary: &model.CompletionTrendSummary{
			TotalProfiles: total,
			Categories:    map[string]int{},
		},
	}

	var scoreSum int
	for _, p := range profiles {
		trends.Trends = append(trends.Trends, model.CompletionTrendRow{
			CompletionScore: p.CompletionScore,
			BusinessType:    p.BusinessType,
			LocationCity:    p.LocationCity,
			CreatedAt:       p.CreatedAt,
		})
		scoreSum += p.CompletionScore
		if p.BusinessType != "" {
			trends.Summary.Categories[p.BusinessType]++
		}
	}
	if len(profiles) > 0 {
		trends.Summary.AverageCompletion = math.Round(float64(scoreSum)/float64(len(profiles))*100) / 100
	}

	return trends, nil
}

// countTopics 把 extracted_data 里的 business_type 和 location_city 取值计入同一张频次表
func countTopics(freq map[string]int, extractedData string) {
	if extractedData == "" {
		return
	}

	var extracted map[string]interface{}
	if err := json.Unmarshal([]byte(extractedData), &extracted); err != nil {
		return
	}

	for _, key := range []string{"business_type", "location_city"} {
		if value, ok := extracted[key].(string); ok && value != "" {
			freq[value]++
		}
	}
}

func trendsCacheKey(limit int) string {
	return fmt.Sprintf("analytics:trends:%d", limit)
}

// 辅助函数：创建 repository 实例
func newBusinessProfileRepository(repoFactory factory.Factory, session interfaces.Session) repository.BusinessProfileRepository {
	repo, err := repoFactory.NewBusinessProfileRepository(session)
	if err != nil {
		panic("failed to create business profile repository: " + err.Error())
	}
	return repo
}

func newConversationLogRepository(repoFactory factory.Factory, session interfaces.Session) repository.ConversationLogRepository {
	repo, err := repoFactory.NewConversationLogRepository(session)
	if err != nil {
		panic("failed to create conversation log repository: " + err.Error())
	}
	return repo
}
