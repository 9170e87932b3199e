package model

import "time"

// GetConversationLogsCondition 查询条件（带分页和排序）
type GetConversationLogsCondition struct {
	MobileNumber *string    `json:"mobile_number"`
	Since        *time.Time `json:"since"` // created_at >= Since，闭区间下界
	*Pager
	*Order
}

func (g *GetConversationLogsCondition) GetPager() *Pager {
	return g.Pager
}

func (g *GetConversationLogsCondition) GetOrder() *Order {
	return g.Order
}
