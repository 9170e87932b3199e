package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forsakeprojects/partnur-backend/constant"
	"github.com/forsakeprojects/partnur-backend/entity"
	"github.com/forsakeprojects/partnur-backend/model"
	"github.com/forsakeprojects/partnur-backend/repository"
	"github.com/forsakeprojects/partnur-backend/repository/interfaces"
	"github.com/forsakeprojects/partnur-backend/service/analytics"
	"github.com/forsakeprojects/partnur-backend/service/convlog"
	profilesvc "github.com/forsakeprojects/partnur-backend/service/profile"
)

// ---- 内存版仓储 ----

type fakeSession struct{}

func (s *fakeSession) Begin() error    { return nil }
func (s *fakeSession) Close() error    { return nil }
func (s *fakeSession) Commit() error   { return nil }
func (s *fakeSession) Rollback() error { return nil }

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*entity.BusinessProfile
	nextID   int64
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*entity.BusinessProfile{}}
}

func (r *fakeProfileRepo) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = map[string]*entity.BusinessProfile{}
	r.nextID = 0
}

func copyProfile(p *entity.BusinessProfile) *entity.BusinessProfile {
	if p == nil {
		return nil
	}
	raw, _ := json.Marshal(p)
	dup := &entity.BusinessProfile{}
	_ = json.Unmarshal(raw, dup)
	return dup
}

func (r *fakeProfileRepo) Insert(p *entity.BusinessProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	if p.LastProfileUpdate.IsZero() {
		p.LastProfileUpdate = now
	}
	r.profiles[p.MobileNumber] = copyProfile(p)
	return nil
}

func (r *fakeProfileRepo) GetByMobile(mobileNumber string) (*entity.BusinessProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyProfile(r.profiles[mobileNumber]), nil
}

func (r *fakeProfileRepo) GetByID(id int64) (*entity.BusinessProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.ID == id {
			return copyProfile(p), nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) Update(p *entity.BusinessProfile, cols []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.MobileNumber] = copyProfile(p)
	return nil
}

func (r *fakeProfileRepo) List(condition *model.GetBusinessProfilesCondition) ([]*entity.BusinessProfile, error) {
	return nil, nil
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

func (r *fakeLogRepo) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = nil
}

func (r *fakeLogRepo) Insert(logEntry *entity.ConversationLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if logEntry.CreatedAt.IsZero() {
		logEntry.CreatedAt = time.Now()
	}
	r.logs = append(r.logs, logEntry)
	return nil
}

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

func (r *fakeLogRepo) entries() []*entity.ConversationLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.ConversationLog(nil), r.logs...)
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

// ---- 外部协作方替身 ----

type fakeExtractor struct {
	result     model.ExtractedInfo
	err        error
	calls      int
	gotMessage string
	gotSummary string
}

func (f *fakeExtractor) ExtractBusinessInfo(c context.Context, message, profileSummary string) (model.ExtractedInfo, error) {
	f.calls++
	f.gotMessage = message
	f.gotSummary = profileSummary
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeAdvisor struct {
	reply          string
	err            error
	calls          int
	gotSummary     string
	gotSuggestions []string
}

func (f *fakeAdvisor) GenerateAdvice(ctx context.Context, profileSummary string, suggestions []string, userMessage string) (string, error) {
	f.calls++
	f.gotSummary = profileSummary
	f.gotSuggestions = append([]string(nil), suggestions...)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// 子服务是包级单例，测试共用一套仓储替身，逐用例重置状态
var (
	testProfileRepo = newFakeProfileRepo()
	testLogRepo     = &fakeLogRepo{}
	testFactory     = &fakeRepositoryFactory{profileRepo: testProfileRepo, logRepo: testLogRepo}
)

func newTestService(extractor *fakeExtractor, advisorClient *fakeAdvisor) *Service {
	// 上一用例的异步落日志可能仍在途，先等它收尾再重置，避免串进本用例的计数
	time.Sleep(50 * time.Millisecond)
	testProfileRepo.reset()
	testLogRepo.reset()
	return &Service{
		profileService:   profilesvc.NewService(testFactory),
		convlogService:   convlog.NewService(testFactory),
		analyticsService: analytics.NewService(testFactory),
		llmClient:        extractor,
		advisorClient:    advisorClient,
	}
}

// ---- 用例 ----

func TestChatEndToEnd(t *testing.T) {
	extractor := &fakeExtractor{result: model.ExtractedInfo{
		"business_type": "salon",
		"location_city": "Kanpur",
	}}
	advisorClient := &fakeAdvisor{reply: "Salons in Kanpur do well. What are your busiest hours?"}
	svc := newTestService(extractor, advisorClient)

	resp, modelErr := svc.Chat(context.Background(), &model.ChatRequest{
		MobileNumber: "+91 98765 43210",
		Message:      "I run a salon in Kanpur",
		SessionID:    "s1",
	})
	require.Nil(t, modelErr)
	assert.Equal(t, advisorClient.reply, resp.Response)
	assert.Equal(t, 23, resp.ProfileCompletion)
	assert.Equal(t, "salon", resp.ExtractedInfo["business_type"])
	assert.NotEmpty(t, resp.Suggestions)

	// 归一化后的手机号入库，画像已合并
	stored, err := testProfileRepo.GetByMobile("+919876543210")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "salon", stored.BusinessType)
	assert.Equal(t, "Kanpur", stored.LocationCity)
	assert.Equal(t, 23, stored.CompletionScore)

	// 抽取器拿到原始消息，顾问拿到合并后的画像摘要
	assert.Equal(t, "I run a salon in Kanpur", extractor.gotMessage)
	assert.Contains(t, advisorClient.gotSummary, "salon")

	// 对话日志异步落一条
	require.Eventually(t, func() bool { return len(testLogRepo.entries()) == 1 }, time.Second, 10*time.Millisecond)
	entry := testLogRepo.entries()[0]
	assert.Equal(t, "+919876543210", entry.MobileNumber)
	assert.Equal(t, "I run a salon in Kanpur", entry.UserMessage)
	assert.Equal(t, resp.Response, entry.BotResponse)
	assert.ElementsMatch(t, []string{"business_type", "location_city"}, entry.FieldsUpdated)
	assert.Contains(t, entry.ExtractedData, "salon")
	assert.Equal(t, "s1", entry.SessionID)
	assert.GreaterOrEqual(t, entry.LatencyMs, int64(0))
}

func TestChatSecondMessageAccumulates(t *testing.T) {
	extractor := &fakeExtractor{result: model.ExtractedInfo{
		"business_type": "salon",
		"location_city": "Kanpur",
	}}
	advisorClient := &fakeAdvisor{reply: "ok"}
	svc := newTestService(extractor, advisorClient)

	_, modelErr := svc.Chat(context.Background(), &model.ChatRequest{
		MobileNumber: "+919876543210",
		Message:      "I run a salon in Kanpur",
	})
	require.Nil(t, modelErr)

	// 第二条消息补营收，旧字段保留，分数上涨
	extractor.result = model.ExtractedInfo{"monthly_revenue": "80,000"}
	resp, modelErr := svc.Chat(context.Background(), &model.ChatRequest{
		MobileNumber: "+919876543210",
		Message:      "I earn 80,000 per month",
	})
	require.Nil(t, modelErr)
	assert.Equal(t, 31, resp.ProfileCompletion)

	stored, err := testProfileRepo.GetByMobile("+919876543210")
	require.NoError(t, err)
	assert.Equal(t, int64(80000), stored.MonthlyRevenue)
	assert.Equal(t, "salon", stored.BusinessType)

	// 第二轮抽取时带上了已知画像摘要
	assert.Contains(t, extractor.gotSummary, "salon")
}

func TestChatExtractionFailureDegrades(t *testing.T) {
	extractor := &fakeExtractor{err: fmt.Errorf("model timeout")}
	advisorClient := &fakeAdvisor{reply: "Tell me more about your business."}
	svc := newTestService(extractor, advisorClient)

	resp, modelErr := svc.Chat(context.Background(), &model.ChatRequest{
		MobileNumber: "+919876543210",
		Message:      "I run a salon",
	})
	require.Nil(t, modelErr)
	assert.Equal(t, advisorClient.reply, resp.Response)
	// 抽取失败按空提案处理，画像只有地板分
	assert.Equal(t, 5, resp.ProfileCompletion)
	assert.Empty(t, resp.ExtractedInfo)
	assert.NotNil(t, resp.ExtractedInfo)
	assert.NotEmpty(t, resp.Suggestions)
	assert.Equal(t, 1, advisorClient.calls)
}

func TestChatAdvisorFailureApology(t *testing.T) {
	extractor := &fakeExtractor{result: model.ExtractedInfo{
		"business_type": "salon",
		"location_city": "Kanpur",
	}}
	advisorClient := &fakeAdvisor{err: fmt.Errorf("model unavailable")}
	svc := newTestService(extractor, advisorClient)

	resp, modelErr := svc.Chat(context.Background(), &model.ChatRequest{
		MobileNumber: "+919876543210",
		Message:      "I run a salon in Kanpur",
	})
	require.Nil(t, modelErr)
	// 生成失败换固定兜底文案，追问清空，但合并照常完成
	assert.Equal(t, constant.ApologyMessage, resp.Response)
	assert.Empty(t, resp.Suggestions)
	assert.Equal(t, 23, resp.ProfileCompletion)

	require.Eventually(t, func() bool { return len(testLogRepo.entries()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, constant.ApologyMessage, testLogRepo.entries()[0].BotResponse)
}

func TestChatUnknownFieldsFiltered(t *testing.T) {
	extractor := &fakeExtractor{result: model.ExtractedInfo{
		"business_type": "salon",
		"password":      "hunter2",
	}}
	advisorClient := &fakeAdvisor{reply: "ok"}
	svc := newTestService(extractor, advisorClient)

	resp, modelErr := svc.Chat(context.Background(), &model.ChatRequest{
		MobileNumber: "+919876543210",
		Message:      "my password is hunter2",
	})
	require.Nil(t, modelErr)
	assert.Equal(t, "salon", resp.ExtractedInfo["business_type"])
	assert.NotContains(t, resp.ExtractedInfo, "password")

	// 未识别字段不落任何存储
	require.Eventually(t, func() bool { return len(testLogRepo.entries()) == 1 }, time.Second, 10*time.Millisecond)
	assert.NotContains(t, testLogRepo.entries()[0].ExtractedData, "password")
}

func TestChatValidation(t *testing.T) {
	extractor := &fakeExtractor{}
	svc := newTestService(extractor, &fakeAdvisor{reply: "ok"})

	cases := []struct {
		name string
		req  *model.ChatRequest
		code int
	}{
		{"empty mobile", &model.ChatRequest{Message: "hi"}, model.ErrorMobileNumberEmpty},
		{"invalid mobile", &model.ChatRequest{MobileNumber: "abc", Message: "hi"}, model.ErrorMobileNumberInvalid},
		{"empty message", &model.ChatRequest{MobileNumber: "+919876543210", Message: "   "}, model.ErrorMessageEmpty},
	}
	for _, tc := range cases {
		resp, modelErr := svc.Chat(context.Background(), tc.req)
		require.NotNil(t, modelErr, tc.name)
		assert.Equal(t, tc.code, modelErr.Code, tc.name)
		assert.Nil(t, resp, tc.name)
	}

	// 参数被拒时任何协作方都不该被调用
	assert.Equal(t, 0, extractor.calls)
}

func TestChatEnhanced(t *testing.T) {
	extractor := &fakeExtractor{result: model.ExtractedInfo{
		"business_type":   "salon",
		"monthly_revenue": "60000",
	}}
	advisorClient := &fakeAdvisor{reply: "Discounts work best when short."}
	svc := newTestService(extractor, advisorClient)

	// 预埋两条窗口内的历史日志
	now := time.Now()
	_ = testLogRepo.Insert(&entity.ConversationLog{MobileNumber: "+919876543210", UserMessage: "m1", CreatedAt: now.Add(-2 * time.Hour)})
	_ = testLogRepo.Insert(&entity.ConversationLog{MobileNumber: "+919876543210", UserMessage: "m2", CreatedAt: now.Add(-1 * time.Hour)})

	resp, modelErr := svc.ChatEnhanced(context.Background(), &model.ChatRequest{
		MobileNumber: "+919876543210",
		Message:      "Should I run a discount offer?",
	})
	require.Nil(t, modelErr)
	assert.Equal(t, advisorClient.reply, resp.Response)
	assert.NotEmpty(t, resp.SeasonalTip)
	assert.NotEmpty(t, resp.BusinessInsights)
	require.NotEmpty(t, resp.ContextualTips)
	assert.LessOrEqual(t, len(resp.ContextualTips), constant.MaxContextualTips)

	require.NotNil(t, resp.WeeklyActivity)
	assert.Equal(t, 7, resp.WeeklyActivity.WindowDays)
	assert.GreaterOrEqual(t, resp.WeeklyActivity.TotalMessages, 2)
}
