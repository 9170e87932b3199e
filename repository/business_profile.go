package repository

import (
	"github.com/forsakeprojects/partnur-backend/entity"
	"github.com/forsakeprojects/partnur-backend/model"
)

type BusinessProfileRepository interface {
	Insert(profile *entity.BusinessProfile) error
	GetByMobile(mobileNumber string) (*entity.BusinessProfile, error)
	GetByID(id int64) (*entity.BusinessProfile, error)
	// Update 只更新 cols 里列出的列，值取自 profile
	Update(profile *entity.BusinessProfile, cols []string) error
	List(condition *model.GetBusinessProfilesCondition) ([]*entity.BusinessProfile, error)
	Count() (int64, error)
}
