package entity

import "time"

const (
	TableNameConversationLog = "conversation_logs"

	ConversationLogFieldID             = "id"
	ConversationLogFieldMobileNumber   = "mobile_number"
	ConversationLogFieldUserMessage    = "user_message"
	ConversationLogFieldBotResponse    = "bot_response"
	ConversationLogFieldExtractedData  = "extracted_data"
	ConversationLogFieldFieldsUpdated  = "fields_updated"
	ConversationLogFieldContextSummary = "context_summary"
	ConversationLogFieldLatencyMs      = "latency_ms"
	ConversationLogFieldSessionID      = "session_id"
	ConversationLogFieldCreatedAt      = "created_at"
)

// ConversationLog 单次请求的交互记录，只插入不更新
type ConversationLog struct {
	ID             int64     `xorm:"pk autoincr id" json:"id"`
	MobileNumber   string    `xorm:"mobile_number" json:"mobile_number"`
	UserMessage    string    `xorm:"user_message" json:"user_message"`
	BotResponse    string    `xorm:"bot_response" json:"bot_response"`
	ExtractedData  string    `xorm:"extracted_data" json:"extracted_data"` // JSONB 类型，存储为 JSON 字符串
	FieldsUpdated  []string  `xorm:"json 'fields_updated'" json:"fields_updated"`
	ContextSummary string    `xorm:"context_summary" json:"context_summary"`
	LatencyMs      int64     `xorm:"latency_ms" json:"latency_ms"`
	SessionID      string    `xorm:"session_id" json:"session_id"`
	CreatedAt      time.Time `xorm:"created_at" json:"created_at"`
}

func (e *ConversationLog) TableName() string {
	return TableNameConversationLog
}
