package convlog

import (
	"context"
	"fmt"
	"sync"

	"github.com/forsakeprojects/partnur-backend/entity"
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
}

func NewService(repositoryFactory factory.Factory) *Service {
	serviceOnce.Do(func() {
		instance = &Service{
			repositoryFactory: repositoryFactory,
		}
	})

	return instance
}

// Record 异步落一条对话日志，失败只告警，不影响聊天主流程
// 用独立的 context，请求结束后写入仍可完成
func (s *Service) Record(entry *entity.ConversationLog) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Warnf("Recovered while recording conversation log: %v", r)
			}
		}()

		if err := s.RecordSync(context.Background(), entry); err != nil {
			log.Warnf("Failed to record conversation log: %v", err)
		}
	}()
}

// RecordSync 同步落日志，需要确定性写入的场景用
func (s *Service) RecordSync(ctx context.Context, entry *entity.ConversationLog) error {
	if entry == nil {
		return fmt.Errorf("conversation log entry cannot be nil")
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "close session")

	logRepo := newConversationLogRepository(s.repositoryFactory, session)

	if err := logRepo.Insert(entry); err != nil {
		return fmt.Errorf("failed to insert conversation log: %w", err)
	}
	return nil
}

// 辅助函数：创建 repository 实例
func newConversationLogRepository(repoFactory factory.Factory, session interfaces.Session) repository.ConversationLogRepository {
	repo, err := repoFactory.NewConversationLogRepository(session)
	if err != nil {
		panic("failed to create conversation log repository: " + err.Error())
	}
	return repo
}
