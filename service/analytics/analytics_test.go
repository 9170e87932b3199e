package analytics

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forsakeprojects/partnur-backend/entity"
	"github.com/forsakeprojects/partnur-backend/model"
	"github.com/forsakeprojects/partnur-backend/repository"
	"github.com/forsakeprojects/partnur-backend/repository/interfaces"
)

func TestMain(m *testing.M) {
	// 配置单例按 CONFIG_PATH 找配置文件，测试指到 testdata（redis 关闭）
	_ = os.Setenv("CONFIG_PATH", "testdata")
	os.Exit(m.Run())
}

// ---- 内存版仓储，分析服务测试用 ----

type fakeSession struct{}

func (s *fakeSession) Begin() error    { return nil }
func (s *fakeSession) Close() error    { return nil }
func (s *fakeSession) Commit() error   { return nil }
func (s *fakeSession) Rollback() error { return nil }

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles []*entity.BusinessProfile
}

func (r *fakeProfileRepo) Insert(p *entity.BusinessProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = append(r.profiles, p)
	return nil
}

func (r *fakeProfileRepo) GetByMobile(mobileNumber string) (*entity.BusinessProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.MobileNumber == mobileNumber {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) GetByID(id int64) (*entity.BusinessProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) Update(p *entity.BusinessProfile, cols []string) error {
	return fmt.Errorf("not implemented in analytics tests")
}

// List 模拟默认排序：created_at 倒序，带 Limit
func (r *fakeProfileRepo) List(condition *model.GetBusinessProfilesCondition) ([]*entity.BusinessProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := append([]*entity.BusinessProfile(nil), r.profiles...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if condition != nil && condition.Pager != nil && condition.Pager.Limit > 0 && len(out) > condition.Pager.Limit {
		out = out[:condition.Pager.Limit]
	}
	return out, nil
}

func (r *fakeProfileRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.profiles)), nil
}

type fakeLogRepo struct {
	mu   sync.Mutex
	logs []*entity.ConversationLog
}

func (r *fakeLogRepo) Insert(logEntry *entity.ConversationLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, logEntry)
	return nil
}

// List 模拟查询条件：手机号等值、创建时间下界，结果按 created_at 倒序
func (r *fakeLogRepo) List(condition *model.GetConversationLogsCondition) ([]*entity.ConversationLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.ConversationLog, 0, len(r.logs))
	for _, entry := range r.logs {
		if condition != nil && condition.MobileNumber != nil && entry.MobileNumber != *condition.MobileNumber {
			continue
		}
		if condition != nil && condition.Since != nil && entry.CreatedAt.Before(*condition.Since) {
			continue
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeRepositoryFactory struct {
	profileRepo *fakeProfileRepo
	logRepo     *fakeLogRepo
}

func (f *fakeRepositoryFactory) NewSession(ctx context.Context) interfaces.Session {
	return &fakeSession{}
}

func (f *fakeRepositoryFactory) NewBusinessProfileRepository(session interfaces.Session) (repository.BusinessProfileRepository, error) {
	return f.profileRepo, nil
}

func (f *fakeRepositoryFactory) NewConversationLogRepository(session interfaces.Session) (repository.ConversationLogRepository, error) {
	return f.logRepo, nil
}

func newTestService() (*Service, *fakeProfileRepo, *fakeLogRepo) {
	profileRepo := &fakeProfileRepo{}
	logRepo := &fakeLogRepo{}
	svc := &Service{
		repositoryFactory: &fakeRepositoryFactory{profileRepo: profileRepo, logRepo: logRepo},
	}
	return svc, profileRepo, logRepo
}

func seedLog(repo *fakeLogRepo, mobile string, createdAt time.Time, latencyMs int64, extractedData, userMessage string) {
	_ = repo.Insert(&entity.ConversationLog{
		MobileNumber:  mobile,
		UserMessage:   userMessage,
		ExtractedData: extractedData,
		LatencyMs:     latencyMs,
		CreatedAt:     createdAt,
	})
}

// ---- 用例 ----

func TestWindowedStatsEmptyWindow(t *testing.T) {
	svc, _, _ := newTestService()

	stats, modelErr := svc.WindowedStats(context.Background(), "+919876543210", 7)
	require.Nil(t, modelErr)
	assert.Equal(t, 7, stats.WindowDays)
	assert.Equal(t, 0, stats.TotalMessages)
	assert.Equal(t, int64(0), stats.AvgLatencyMs)
	assert.Empty(t, stats.TopicFrequency)
	assert.Empty(t, stats.RecentEntries)
}

func TestWindowedStatsDefaultDays(t *testing.T) {
	svc, _, _ := newTestService()

	stats, modelErr := svc.WindowedStats(context.Background(), "+919876543210", 0)
	require.Nil(t, modelErr)
	assert.Equal(t, 30, stats.WindowDays)
}

func TestWindowedStatsAggregates(t *testing.T) {
	svc, _, logRepo := newTestService()
	now := time.Now()
	mobile := "+919876543210"

	seedLog(logRepo, mobile, now.Add(-1*time.Hour), 100, `{"business_type":"salon","location_city":"Kanpur"}`, "m1")
	seedLog(logRepo, mobile, now.Add(-2*time.Hour), 200, `{"business_type":"salon"}`, "m2")
	seedLog(logRepo, mobile, now.Add(-3*time.Hour), 300, `{}`, "m3")
	// 窗口外和别的手机号都不计入
	seedLog(logRepo, mobile, now.AddDate(0, 0, -45), 99999, `{"business_type":"kirana"}`, "old")
	seedLog(logRepo, "+911111111111", now.Add(-1*time.Hour), 50, `{"business_type":"boutique"}`, "other")

	stats, modelErr := svc.WindowedStats(context.Background(), mobile, 30)
	require.Nil(t, modelErr)
	assert.Equal(t, 3, stats.TotalMessages)
	assert.Equal(t, int64(200), stats.AvgLatencyMs)
	assert.Equal(t, map[string]int{"salon": 2, "Kanpur": 1}, stats.TopicFrequency)
	require.NotEmpty(t, stats.RecentEntries)
	assert.Equal(t, "m1", stats.RecentEntries[0].UserMessage)
}

func TestWindowedStatsRecentEntriesCap(t *testing.T) {
	svc, _, logRepo := newTestService()
	now := time.Now()
	mobile := "+919876543210"

	for i := 0; i < 8; i++ {
		seedLog(logRepo, mobile, now.Add(-time.Duration(i)*time.Minute), 10, `{}`, fmt.Sprintf("m%d", i))
	}

	stats, modelErr := svc.WindowedStats(context.Background(), mobile, 30)
	require.Nil(t, modelErr)
	assert.Equal(t, 8, stats.TotalMessages)
	require.Len(t, stats.RecentEntries, 5)
	assert.Equal(t, "m0", stats.RecentEntries[0].UserMessage)
}

func TestActivitySummary(t *testing.T) {
	svc, profileRepo, logRepo := newTestService()
	now := time.Now()
	mobile := "+919876543210"

	_ = profileRepo.Insert(&entity.BusinessProfile{
		ID:                1,
		MobileNumber:      mobile,
		BusinessType:      "salon",
		LocationCity:      "Kanpur",
		CompletionScore:   23,
		LastProfileUpdate: now.Add(-10 * time.Minute),
		CreatedAt:         now.Add(-time.Hour),
	})
	seedLog(logRepo, mobile, now.Add(-30*time.Minute), 120, `{"business_type":"salon"}`, "m1")

	summary, modelErr := svc.ActivitySummary(context.Background(), mobile, 30)
	require.Nil(t, modelErr)
	require.NotNil(t, summary)
	assert.Equal(t, 23, summary.CompletionScore)
	assert.Equal(t, "salon", summary.BusinessType)
	assert.Equal(t, "Kanpur", summary.LocationCity)
	require.NotNil(t, summary.Stats)
	assert.Equal(t, 1, summary.Stats.TotalMessages)
}

func TestActivitySummaryMissingProfile(t *testing.T) {
	svc, _, _ := newTestService()

	// 画像不存在不算错误，返回空结果
	summary, modelErr := svc.ActivitySummary(context.Background(), "+910000000000", 30)
	require.Nil(t, modelErr)
	assert.Nil(t, summary)
}

func TestCompletionTrendOrderingAndSummary(t *testing.T) {
	svc, profileRepo, _ := newTestService()
	base := time.Now().Add(-time.Hour)

	_ = profileRepo.Insert(&entity.BusinessProfile{
		ID: 1, MobileNumber: "+911000000001", CompletionScore: 10,
		BusinessType: "salon", LocationCity: "Kanpur", CreatedAt: base,
	})
	_ = profileRepo.Insert(&entity.BusinessProfile{
		ID: 2, MobileNumber: "+911000000002", CompletionScore: 50,
		BusinessType: "salon", LocationCity: "Delhi", CreatedAt: base.Add(10 * time.Minute),
	})
	_ = profileRepo.Insert(&entity.BusinessProfile{
		ID: 3, MobileNumber: "+911000000003", CompletionScore: 90,
		BusinessType: "kirana", LocationCity: "Jaipur", CreatedAt: base.Add(20 * time.Minute),
	})

	trends, modelErr := svc.CompletionTrend(context.Background(), 2)
	require.Nil(t, modelErr)
	require.Len(t, trends.Trends, 2)
	// 最新创建的在前
	assert.Equal(t, 90, trends.Trends[0].CompletionScore)
	assert.Equal(t, "kirana", trends.Trends[0].BusinessType)
	assert.Equal(t, 50, trends.Trends[1].CompletionScore)

	require.NotNil(t, trends.Summary)
	assert.Equal(t, int64(3), trends.Summary.TotalProfiles)
	assert.InDelta(t, 70.0, trends.Summary.AverageCompletion, 0.001)
	assert.Equal(t, map[string]int{"kirana": 1, "salon": 1}, trends.Summary.Categories)
}

func TestCompletionTrendEmpty(t *testing.T) {
	svc, _, _ := newTestService()

	trends, modelErr := svc.CompletionTrend(context.Background(), 0)
	require.Nil(t, modelErr)
	assert.Empty(t, trends.Trends)
	assert.Equal(t, int64(0), trends.Summary.TotalProfiles)
	assert.Equal(t, 0.0, trends.Summary.AverageCompletion)
}

func TestCountTopics(t *testing.T) {
	freq := map[string]int{}

	countTopics(freq, `{"business_type":"salon","location_city":"Kanpur","monthly_revenue":80000}`)
	countTopics(freq, `{"business_type":"salon"}`)
	countTopics(freq, `not json`)
	countTopics(freq, ``)

	assert.Equal(t, map[string]int{"salon": 2, "Kanpur": 1}, freq)
}
