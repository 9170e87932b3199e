package entity

import "time"

const (
	TableNameBusinessProfile = "business_profiles"

	BusinessProfileFieldID                  = "id"
	BusinessProfileFieldMobileNumber        = "mobile_number"
	BusinessProfileFieldBusinessType        = "business_type"
	BusinessProfileFieldLocationCity        = "location_city"
	BusinessProfileFieldLocationState       = "location_state"
	BusinessProfileFieldMonthlyRevenue      = "monthly_revenue"
	BusinessProfileFieldStaffCount          = "staff_count"
	BusinessProfileFieldProductSource       = "product_source"
	BusinessProfileFieldPricingStrategy     = "pricing_strategy"
	BusinessProfileFieldPeakHours           = "peak_hours"
	BusinessProfileFieldPeakDays            = "peak_days"
	BusinessProfileFieldTopProducts         = "top_products"
	BusinessProfileFieldStaffRoles          = "staff_roles"
	BusinessProfileFieldPaymentMethods      = "payment_methods"
	BusinessProfileFieldAdvertisingChannels = "advertising_channels"
	BusinessProfileFieldPlatformsUsed       = "platforms_used"
	BusinessProfileFieldPastCampaigns       = "past_campaigns"
	BusinessProfileFieldBusinessGoals       = "business_goals"
	BusinessProfileFieldChallenges          = "challenges"
	BusinessProfileFieldCompletionScore     = "completion_score"
	BusinessProfileFieldLastProfileUpdate   = "last_profile_update"
	BusinessProfileFieldCreatedAt           = "created_at"
	BusinessProfileFieldUpdatedAt           = "updated_at"
)

// BusinessProfile 商家画像，一个手机号对应一条记录
// 列表类字段存 JSONB，由 xorm json 映射，保证集合语义（不允许重复元素）
type BusinessProfile struct {
	ID           int64  `xorm:"pk autoincr id" json:"id"`
	MobileNumber string `xorm:"mobile_number unique" json:"mobile_number"`

	// 标量属性：后写覆盖先写
	BusinessType    string `xorm:"business_type" json:"business_type"`
	LocationCity    string `xorm:"location_city" json:"location_city"`
	LocationState   string `xorm:"location_state" json:"location_state"`
	MonthlyRevenue  int64  `xorm:"monthly_revenue" json:"monthly_revenue"`
	StaffCount      int    `xorm:"staff_count" json:"staff_count"`
	ProductSource   string `xorm:"product_source" json:"product_source"`
	PricingStrategy string `xorm:"pricing_strategy" json:"pricing_strategy"`

	// 列表属性：合并时做去重并集
	PeakHours           []string `xorm:"json 'peak_hours'" json:"peak_hours"`
	PeakDays            []string `xorm:"json 'peak_days'" json:"peak_days"`
	TopProducts         []string `xorm:"json 'top_products'" json:"top_products"`
	StaffRoles          []string `xorm:"json 'staff_roles'" json:"staff_roles"`
	PaymentMethods      []string `xorm:"json 'payment_methods'" json:"payment_methods"`
	AdvertisingChannels []string `xorm:"json 'advertising_channels'" json:"advertising_channels"`
	PlatformsUsed       []string `xorm:"json 'platforms_used'" json:"platforms_used"`
	PastCampaigns       []string `xorm:"json 'past_campaigns'" json:"past_campaigns"`
	BusinessGoals       []string `xorm:"json 'business_goals'" json:"business_goals"`
	Challenges          []string `xorm:"json 'challenges'" json:"challenges"`

	CompletionScore   int       `xorm:"completion_score" json:"completion_score"`
	LastProfileUpdate time.Time `xorm:"last_profile_update" json:"last_profile_update"`
	CreatedAt         time.Time `xorm:"created_at" json:"created_at"`
	UpdatedAt         time.Time `xorm:"updated_at" json:"updated_at"`
}

func (e *BusinessProfile) TableName() string {
	return TableNameBusinessProfile
}
