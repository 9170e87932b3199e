package model

import "time"

// WindowedStats 单个商家在滑动窗口内的交互统计
type WindowedStats struct {
	MobileNumber   string         `json:"mobile_number"`
	WindowDays     int            `json:"window_days"`
	TotalMessages  int            `json:"total_messages"`
	AvgLatencyMs   int64          `json:"avg_latency_ms"`
	TopicFrequency map[string]int `json:"topic_frequency"`
	RecentEntries  []RecentEntry  `json:"recent_entries"`
}

// RecentEntry 最近一次交互的摘要
type RecentEntry struct {
	UserMessage   string    `json:"user_message"`
	FieldsUpdated []string  `json:"fields_updated"`
	CreatedAt     time.Time `json:"created_at"`
}

// ActivitySummary 窗口统计加当前画像快照
type ActivitySummary struct {
	Stats             *WindowedStats `json:"stats"`
	CompletionScore   int            `json:"completion_score"`
	BusinessType      string         `json:"business_type,omitempty"`
	LocationCity      string         `json:"location_city,omitempty"`
	LastProfileUpdate time.Time      `json:"last_profile_update"`
}

// CompletionTrendRow 画像完整度趋势里的一行，按创建时间倒序
type CompletionTrendRow struct {
	CompletionScore int       `json:"completion_score"`
	BusinessType    string    `json:"business_type"`
	LocationCity    string    `json:"location_city"`
	CreatedAt       time.Time `json:"created_at"`
}

// CompletionTrendSummary 趋势汇总，Categories 基于返回的这一页行统计
type CompletionTrendSummary struct {
	TotalProfiles     int64          `json:"total_profiles"`
	AverageCompletion float64        `json:"average_completion"`
	Categories        map[string]int `json:"categories"`
}

// CompletionTrends 趋势接口响应
type CompletionTrends struct {
	Trends  []CompletionTrendRow    `json:"trends"`
	Summary *CompletionTrendSummary `json:"summary"`
}
