package repository

import (
	"github.com/forsakeprojects/partnur-backend/entity"
	"github.com/forsakeprojects/partnur-backend/model"
)

// 对话日志只插入不更新
type ConversationLogRepository interface {
	Insert(logEntry *entity.ConversationLog) error
	List(condition *model.GetConversationLogsCondition) ([]*entity.ConversationLog, error)
}
