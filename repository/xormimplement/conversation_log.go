package xormimplement

import (
	"fmt"
	"time"

	"github.com/forsakeprojects/partnur-backend/entity"
	"github.com/forsakeprojects/partnur-backend/model"
	"github.com/forsakeprojects/partnur-backend/repository"

	"xorm.io/builder"
)

type ConversationLogRepository struct {
	session *Session
}

func NewConversationLogRepository(session *Session) repository.ConversationLogRepository {
	return &ConversationLogRepository{session: session}
}

func (r *ConversationLogRepository) Insert(logEntry *entity.ConversationLog) error {
	if logEntry == nil {
		return fmt.Errorf("log entry cannot be nil")
	}
	if logEntry.MobileNumber == "" {
		return fmt.Errorf("mobile_number is required")
	}

	if logEntry.CreatedAt.IsZero() {
		logEntry.CreatedAt = time.Now()
	}

	_, err := r.session.Table(entity.TableNameConversationLog).Insert(logEntry)
	if err != nil {
		return fmt.Errorf("failed to insert conversation_log: %w", err)
	}

	return nil
}

func buildConversationLogsQueryConditions(condition *model.GetConversationLogsCondition) builder.Cond {
	var conds []builder.Cond

	if condition.MobileNumber != nil && *condition.MobileNumber != "" {
		conds = append(conds, builder.Eq{entity.ConversationLogFieldMobileNumber: *condition.MobileNumber})
	}
	if condition.Since != nil && !condition.Since.IsZero() {
		conds = append(conds, builder.Gte{entity.ConversationLogFieldCreatedAt: *condition.Since})
	}

	if len(conds) == 0 {
		return nil
	}
	return builder.And(conds...)
}

// List 默认按 created_at 倒序
func (r *ConversationLogRepository) List(condition *model.GetConversationLogsCondition) ([]*entity.ConversationLog, error) {
	if condition == nil {
		return nil, fmt.Errorf("get condition cannot be nil")
	}

	cond := buildConversationLogsQueryConditions(condition)

	session := r.session.Table(entity.TableNameConversationLog)
	if cond != nil {
		session = session.Where(cond)
	}

	pagerOrder(session, condition, WithDefaultOrderField(entity.ConversationLogFieldCreatedAt))

	var results []*entity.ConversationLog
	if err := session.Find(&results); err != nil {
		return nil, fmt.Errorf("failed to list conversation_log: %w", err)
	}

	return results, nil
}
