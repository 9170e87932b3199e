package model

import "github.com/forsakeprojects/partnur-backend/entity"

// GetBusinessProfilesCondition 查询条件（带分页和排序）
type GetBusinessProfilesCondition struct {
	MobileNumber *string `json:"mobile_number"`
	BusinessType *string `json:"business_type"`
	LocationCity *string `json:"location_city"`
	*Pager
	*Order
}

func (g *GetBusinessProfilesCondition) GetPager() *Pager {
	return g.Pager
}

func (g *GetBusinessProfilesCondition) GetOrder() *Order {
	return g.Order
}

// ProfileResponse 画像查询响应
type ProfileResponse struct {
	Profile         *entity.BusinessProfile `json:"profile"`
	CompletionScore int                     `json:"completion_score"`
	MissingFields   []string                `json:"missing_fields"`
}
