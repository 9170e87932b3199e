package profile

import (
	"github.com/forsakeprojects/partnur-backend/entity"
)

// Shape 字段取值形态
type Shape int

const (
	// ShapeScalar 标量：后写覆盖先写
	ShapeScalar Shape = iota + 1
	// ShapeSequence 列表：合并时做去重并集
	ShapeSequence
)

// FieldSpec 画像字段的静态定义：名称、形态、完整度权重
// 权重总和固定为 100，作为打分分母
type FieldSpec struct {
	Name   string
	Shape  Shape
	Weight int

	filled func(p *entity.BusinessProfile) bool
	apply  func(p *entity.BusinessProfile, value interface{}) bool
}

// Filled 判断该字段在画像中是否已填写
func (s *FieldSpec) Filled(p *entity.BusinessProfile) bool {
	return s.filled(p)
}

// Mergeable 标识字段（手机号）不允许通过合并写入
func (s *FieldSpec) Mergeable() bool {
	return s.apply != nil
}

// 画像字段表。手机号是身份标识，权重计入得分但不可合并；
// 其余字段由抽取结果驱动更新
var fields = []FieldSpec{
	{
		Name:   entity.BusinessProfileFieldMobileNumber,
		Shape:  ShapeScalar,
		Weight: 5,
		filled: func(p *entity.BusinessProfile) bool { return p.MobileNumber != "" },
	},
	{
		Name:   entity.BusinessProfileFieldBusinessType,
		Shape:  ShapeScalar,
		Weight: 10,
		filled: func(p *entity.BusinessProfile) bool { return p.BusinessType != "" },
		apply:  func(p *entity.BusinessProfile, v interface{}) bool { return setText(&p.BusinessType, v) },
	},
	{
		Name:   entity.BusinessProfileFieldLocationCity,
		Shape:  ShapeScalar,
		Weight: 8,
		filled: func(p *entity.BusinessProfile) bool { return p.LocationCity != "" },
		apply:  func(p *entity.BusinessProfile, v interface{}) bool { return setText(&p.LocationCity, v) },
	},
	{
		Name:   entity.BusinessProfileFieldLocationState,
		Shape:  ShapeScalar,
		Weight: 3,
		filled: func(p *entity.BusinessProfile) bool { return p.LocationState != "" },
		apply:  func(p *entity.BusinessProfile, v interface{}) bool { return setText(&p.LocationState, v) },
	},
	{
		Name:   entity.BusinessProfileFieldMonthlyRevenue,
		Shape:  ShapeScalar,
		Weight: 8,
		filled: func(p *entity.BusinessProfile) bool { return p.MonthlyRevenue > 0 },
		apply:  func(p *entity.BusinessProfile, v interface{}) bool { return setAmount(&p.MonthlyRevenue, v) },
	},
	{
		Name:   entity.BusinessProfileFieldStaffCount,
		Shape:  ShapeScalar,
		Weight: 4,
		filled: func(p *entity.BusinessProfile) bool { return p.StaffCount > 0 },
		apply:  func(p *entity.BusinessProfile, v interface{}) bool { return setCount(&p.StaffCount, v) },
	},
	{
		Name:   entity.BusinessProfileFieldProductSource,
		Shape:  ShapeScalar,
		Weight: 5,
		filled: func(p *entity.BusinessProfile) bool { return p.ProductSource != "" },
		apply:  func(p *entity.BusinessProfile, v interface{}) bool { return setText(&p.ProductSource, v) },
	},
	{
		Name:   entity.BusinessProfileFieldPricingStrategy,
		Shape:  ShapeScalar,
		Weight: 5,
		filled: func(p *entity.BusinessProfile) bool { return p.PricingStrategy != "" },
		apply:  func(p *entity.BusinessProfile, v interface{}) bool { return setText(&p.PricingStrategy, v) },
	},
	{
		Name:   entity.BusinessProfileFieldPeakHours,
		Shape:  ShapeSequence,
		Weight: 5,
		filled: func(p *entity.BusinessProfile) bool { return len(p.PeakHours) > 0 },
		apply:  func(p *entity.BusinessProfile, v interface{}) bool { return mergeSequence(&p.PeakHours, v) },
	},
	{
		Name:   entity.BusinessProfileFieldPeakDays,
		Shape:  ShapeSequence,
		Weight: 5,
		filled: func(p *entity.BusinessProfile) bool { return len(p.PeakDays) > 0 },
		apply:  func(p *entity.BusinessProfile, v interface{}) bool { return mergeSequence(&p.PeakDays, v) },
	},
	{
		Name:   entity.BusinessProfileFieldTopProducts,
		Shape:  ShapeSequence,
		Weight: 8,
		filled: func(p *entity.BusinessProfile) bool { return len(p.TopProducts) > 0 },
		apply:  func(p *entity.BusinessProfile, v interface{}) bool { return mergeSequence(&p.TopProducts, v) },
	},
	{
		Name:   entity.BusinessProfileFieldStaffRoles,
		Shape:  ShapeSequence,
		Weight: 3,
		filled: func(p *entity.BusinessProfile) bool { return len(p.StaffRoles) > 0 },
		apply:  func(p *entity.BusinessProfile, v interface{}) bool { return mergeSequence(&p.StaffRoles, v) },
	},
	{
		Name:   entity.BusinessProfileFieldPaymentMethods,
		Shape:  ShapeSequence,
		Weight: 5,
		filled: func(p *entity.BusinessProfile) bool { return len(p.PaymentMethods) > 0 },
		apply:  func(p *entity.BusinessProfile, v interface{}) bool { return mergeSequence(&p.PaymentMethods, v) },
	},
	{
		Name:   entity.BusinessProfileFieldAdvertisingChannels,
		Shape:  ShapeSequence,
		Weight: 6,
		filled: func(p *entity.BusinessProfile) bool { return len(p.AdvertisingChannels) > 0 },
		apply:  func(p *entity.BusinessProfile, v interface{}) bool { return mergeSequence(&p.AdvertisingChannels, v) },
	},
	{
		Name:   entity.BusinessProfileFieldPlatformsUsed,
		Shape:  ShapeSequence,
		Weight: 4,
		filled: func(p *entity.BusinessProfile) bool { return len(p.PlatformsUsed) > 0 },
		apply:  func(p *entity.BusinessProfile, v interface{}) bool { return mergeSequence(&p.PlatformsUsed, v) },
	},
	{
		Name:   entity.BusinessProfileFieldPastCampaigns,
		Shape:  ShapeSequence,
		Weight: 3,
		filled: func(p *entity.BusinessProfile) bool { return len(p.PastCampaigns) > 0 },
		apply:  func(p *entity.BusinessProfile, v interface{}) bool { return mergeSequence(&p.PastCampaigns, v) },
	},
	{
		Name:   entity.BusinessProfileFieldBusinessGoals,
		Shape:  ShapeSequence,
		Weight: 7,
		filled: func(p *entity.BusinessProfile) bool { return len(p.BusinessGoals) > 0 },
		apply:  func(p *entity.BusinessProfile, v interface{}) bool { return mergeSequence(&p.BusinessGoals, v) },
	},
	{
		Name:   entity.BusinessProfileFieldChallenges,
		Shape:  ShapeSequence,
		Weight: 6,
		filled: func(p *entity.BusinessProfile) bool { return len(p.Challenges) > 0 },
		apply:  func(p *entity.BusinessProfile, v interface{}) bool { return mergeSequence(&p.Challenges, v) },
	},
}

var (
	fieldIndex  map[string]*FieldSpec
	totalWeight int
)

func init() {
	fieldIndex = make(map[string]*FieldSpec, len(fields))
	for i := range fields {
		fieldIndex[fields[i].Name] = &fields[i]
		totalWeight += fields[i].Weight
	}
}

// Fields 返回全部字段定义（只读）
func Fields() []FieldSpec {
	return fields
}

// Lookup 按名称查找字段定义
func Lookup(name string) (*FieldSpec, bool) {
	spec, ok := fieldIndex[name]
	return spec, ok
}

// TotalWeight 所有字段权重之和，打分分母
func TotalWeight() int {
	return totalWeight
}
