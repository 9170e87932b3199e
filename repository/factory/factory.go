package factory

import (
	"context"

	"github.com/forsakeprojects/partnur-backend/repository"
	"github.com/forsakeprojects/partnur-backend/repository/interfaces"
)

type Factory interface {
	NewSession(ctx context.Context) interfaces.Session
	NewBusinessProfileRepository(session interfaces.Session) (repository.BusinessProfileRepository, error)
	NewConversationLogRepository(session interfaces.Session) (repository.ConversationLogRepository, error)
}
