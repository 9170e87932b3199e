package profile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/forsakeprojects/partnur-backend/entity"
	"github.com/forsakeprojects/partnur-backend/model"
	"github.com/forsakeprojects/partnur-backend/pkg/profile"
	"github.com/forsakeprojects/partnur-backend/pkg/tools"
	"github.com/forsakeprojects/partnur-backend/repository"
	"github.com/forsakeprojects/partnur-backend/repository/factory"
	"github.com/forsakeprojects/partnur-backend/repository/interfaces"

	log "github.com/sirupsen/logrus"
)

var (
	serviceOnce sync.Once
	instance    *Service
)

type Service struct {
	repositoryFactory factory.Factory
	// 按手机号的锁，保证同号的读改写串行
	locks *tools.KeyMutex
}

func NewService(repositoryFactory factory.Factory) *Service {
	serviceOnce.Do(func() {
		instance = &Service{
			repositoryFactory: repositoryFactory,
			locks:             tools.NewKeyMutex(),
		}
	})

	return instance
}

// Get 按手机号取画像，不存在时返回 (nil, nil)
func (s *Service) Get(ctx context.Context, mobileNumber string) (*entity.BusinessProfile, *model.Error) {
	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "close session")

	profileRepo := newBusinessProfileRepository(s.repositoryFactory, session)

	p, err := profileRepo.GetByMobile(mobileNumber)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, fmt.Errorf("failed to get profile: %w", err))
	}
	return p, nil
}

// Describe 画像详情，带完整度与按权重排序的缺口字段；画像不存在时返回 (nil, nil)
func (s *Service) Describe(ctx context.Context, mobileNumber string) (*model.ProfileResponse, *model.Error) {
	p, modelErr := s.Get(ctx, mobileNumber)
	if modelErr != nil {
		return nil, modelErr
	}
	if p == nil {
		return nil, nil
	}

	specs := profile.Missing(p)
	missing := make([]string, 0, len(specs))
	for _, spec := range specs {
		missing = append(missing, spec.Name)
	}

	return &model.ProfileResponse{
		Profile:         p,
		CompletionScore: p.CompletionScore,
		MissingFields:   missing,
	}, nil
}

// ResolveOrCreate 按手机号取画像，不存在则插入一条空画像
func (s *Service) ResolveOrCreate(ctx context.Context, mobileNumber string) (*entity.BusinessProfile, *model.Error) {
	existing, modelErr := s.Get(ctx, mobileNumber)
	if modelErr != nil {
		return nil, modelErr
	}
	if existing != nil {
		return existing, nil
	}

	// 首次消息并发到达时避免插出两条
	s.locks.Lock(mobileNumber)
	defer s.locks.Unlock(mobileNumber)

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "close session")

	profileRepo := newBusinessProfileRepository(s.repositoryFactory, session)

	existing, err := profileRepo.GetByMobile(mobileNumber)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, fmt.Errorf("failed to get profile: %w", err))
	}
	if existing != nil {
		return existing, nil
	}

	fresh := &entity.BusinessProfile{MobileNumber: mobileNumber}
	fresh.CompletionScore = profile.Score(fresh)
	if err := profileRepo.Insert(fresh); err != nil {
		return nil, model.NewError(model.ErrorDB, fmt.Errorf("failed to create profile: %w", err))
	}

	log.Infof("Created profile: mobile=%s, score=%d", mobileNumber, fresh.CompletionScore)
	return fresh, nil
}

// MergeAndScore 在手机号锁内重读画像、合并抽取结果、重算完整度并落库
// 返回合并后的画像和实际发生变化的字段名
func (s *Service) MergeAndScore(ctx context.Context, mobileNumber string, proposed model.ExtractedInfo) (*entity.BusinessProfile, []string, *model.Error) {
	s.locks.Lock(mobileNumber)
	defer s.locks.Unlock(mobileNumber)

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "close session")

	profileRepo := newBusinessProfileRepository(s.repositoryFactory, session)

	p, err := profileRepo.GetByMobile(mobileNumber)
	if err != nil {
		return nil, nil, model.NewError(model.ErrorDB, fmt.Errorf("failed to reload profile: %w", err))
	}
	if p == nil {
		return nil, nil, model.NewError(model.ErrorProfileNotFound, fmt.Errorf("profile not found: %s", mobileNumber))
	}

	changed := profile.Apply(p, proposed, time.Now())
	if len(changed) == 0 {
		return p, nil, nil
	}

	p.CompletionScore = profile.Score(p)

	// 字段定义名就是列名，变更列加上分数和时间戳一起更新
	cols := append([]string{}, changed...)
	cols = append(cols,
		entity.BusinessProfileFieldCompletionScore,
		entity.BusinessProfileFieldLastProfileUpdate,
		entity.BusinessProfileFieldUpdatedAt,
	)
	if err := profileRepo.Update(p, cols); err != nil {
		return nil, nil, model.NewError(model.ErrorDB, fmt.Errorf("failed to persist merged profile: %w", err))
	}

	log.Infof("Merged profile: mobile=%s, fields=%v, score=%d", mobileNumber, changed, p.CompletionScore)
	return p, changed, nil
}

// 辅助函数：创建 repository 实例
func newBusinessProfileRepository(repoFactory factory.Factory, session interfaces.Session) repository.BusinessProfileRepository {
	repo, err := repoFactory.NewBusinessProfileRepository(session)
	if err != nil {
		panic("failed to create business profile repository: " + err.Error())
	}
	return repo
}
