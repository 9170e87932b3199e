package xormimplement

import (
	"fmt"
	"time"

	"github.com/forsakeprojects/partnur-backend/entity"
	"github.com/forsakeprojects/partnur-backend/model"
	"github.com/forsakeprojects/partnur-backend/repository"

	"xorm.io/builder"
)

type BusinessProfileRepository struct {
	session *Session
}

func NewBusinessProfileRepository(session *Session) repository.BusinessProfileRepository {
	return &BusinessProfileRepository{session: session}
}

func (r *BusinessProfileRepository) Insert(profile *entity.BusinessProfile) error {
	if profile == nil {
		return fmt.Errorf("profile cannot be nil")
	}
	if profile.MobileNumber == "" {
		return fmt.Errorf("mobile_number is required")
	}

	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = now
	}
	if profile.LastProfileUpdate.IsZero() {
		profile.LastProfileUpdate = now
	}

	_, err := r.session.Table(entity.TableNameBusinessProfile).Insert(profile)
	if err != nil {
		return fmt.Errorf("failed to insert business_profile: %w", err)
	}

	return nil
}

func (r *BusinessProfileRepository) GetByMobile(mobileNumber string) (*entity.BusinessProfile, error) {
	if mobileNumber == "" {
		return nil, fmt.Errorf("mobile_number is required")
	}

	result := &entity.BusinessProfile{}
	ok, err := r.session.Table(entity.TableNameBusinessProfile).
		Where(builder.Eq{entity.BusinessProfileFieldMobileNumber: mobileNumber}).
		Get(result)
	if err != nil {
		return nil, fmt.Errorf("failed to get business_profile: %w", err)
	}

	if !ok {
		return nil, nil
	}

	return result, nil
}

func (r *BusinessProfileRepository) GetByID(id int64) (*entity.BusinessProfile, error) {
	if id <= 0 {
		return nil, fmt.Errorf("id is required")
	}

	result := &entity.BusinessProfile{}
	ok, err := r.session.Table(entity.TableNameBusinessProfile).
		Where(builder.Eq{entity.BusinessProfileFieldID: id}).
		Get(result)
	if err != nil {
		return nil, fmt.Errorf("failed to get business_profile: %w", err)
	}

	if !ok {
		return nil, nil
	}

	return result, nil
}

// Update 只更新 cols 里列出的列，配合合并引擎返回的 changed 字段名使用
func (r *BusinessProfileRepository) Update(profile *entity.BusinessProfile, cols []string) error {
	if profile == nil {
		return fmt.Errorf("profile cannot be nil")
	}
	if profile.ID <= 0 {
		return fmt.Errorf("profile id is required")
	}
	if len(cols) == 0 {
		return nil
	}

	_, err := r.session.Table(entity.TableNameBusinessProfile).
		Where(builder.Eq{entity.BusinessProfileFieldID: profile.ID}).
		Cols(cols...).
		Update(profile)
	if err != nil {
		return fmt.Errorf("failed to update business_profile: %w", err)
	}

	return nil
}

func buildBusinessProfilesQueryConditions(condition *model.GetBusinessProfilesCondition) builder.Cond {
	var conds []builder.Cond

	if condition.MobileNumber != nil && *condition.MobileNumber != "" {
		conds = append(conds, builder.Eq{entity.BusinessProfileFieldMobileNumber: *condition.MobileNumber})
	}
	if condition.BusinessType != nil && *condition.BusinessType != "" {
		conds = append(conds, builder.Eq{entity.BusinessProfileFieldBusinessType: *condition.BusinessType})
	}
	if condition.LocationCity != nil && *condition.LocationCity != "" {
		conds = append(conds, builder.Eq{entity.BusinessProfileFieldLocationCity: *condition.LocationCity})
	}

	if len(conds) == 0 {
		return nil
	}
	return builder.And(conds...)
}

// List 默认按 created_at 倒序，趋势接口直接用这个顺序
func (r *BusinessProfileRepository) List(condition *model.GetBusinessProfilesCondition) ([]*entity.BusinessProfile, error) {
	if condition == nil {
		return nil, fmt.Errorf("get condition cannot be nil")
	}

	cond := buildBusinessProfilesQueryConditions(condition)

	session := r.session.Table(entity.TableNameBusinessProfile)
	if cond != nil {
		session = session.Where(cond)
	}

	pagerOrder(session, condition, WithDefaultOrderField(entity.BusinessProfileFieldCreatedAt))

	var results []*entity.BusinessProfile
	if err := session.Find(&results); err != nil {
		return nil, fmt.Errorf("failed to list business_profile: %w", err)
	}

	return results, nil
}

func (r *BusinessProfileRepository) Count() (int64, error) {
	total, err := r.session.Table(entity.TableNameBusinessProfile).Count(&entity.BusinessProfile{})
	if err != nil {
		return 0, fmt.Errorf("failed to count business_profile: %w", err)
	}

	return total, nil
}
