package model

// ExtractedInfo 单条消息里抽取出来的画像字段提案，合并时再按 schema 过滤
type ExtractedInfo map[string]interface{}

// ChatRequest 聊天请求，JSON body 和 query 两种来源共用
type ChatRequest struct {
	MobileNumber string `json:"mobile_number" form:"mobile_number" binding:"required"`
	Message      string `json:"message" form:"message" binding:"required"`
	SessionID    string `json:"session_id" form:"session_id"`
}

// ChatResponse 聊天响应
type ChatResponse struct {
	Response          string        `json:"response"`
	ProfileCompletion int           `json:"profile_completion"`
	ExtractedInfo     ExtractedInfo `json:"extracted_info"`
	Suggestions       []string      `json:"suggestions"`
}

// EnhancedChatResponse 增强聊天响应，在基础响应之上追加经营建议
type EnhancedChatResponse struct {
	ChatResponse
	SeasonalTip      string         `json:"seasonal_tip"`
	BusinessInsights []string       `json:"business_insights"`
	ContextualTips   []string       `json:"contextual_tips"`
	WeeklyActivity   *WindowedStats `json:"weekly_activity,omitempty"`
}
