package factory

import (
	"sync"

	"github.com/forsakeprojects/partnur-backend/repository/factory"
	"github.com/forsakeprojects/partnur-backend/repository/xormimplement"
	"github.com/forsakeprojects/partnur-backend/service/analytics"
	"github.com/forsakeprojects/partnur-backend/service/chat"
	"github.com/forsakeprojects/partnur-backend/service/convlog"
	"github.com/forsakeprojects/partnur-backend/service/profile"
)

var instance *Factory
var once sync.Once

// 创建
type Factory struct {
	repositoryFactory factory.Factory
}

// 实例化instance
func init() {
	once.Do(func() {
		instance = &Factory{repositoryFactory: xormimplement.GetRepositoryFactoryInstance()}
	})
}

// 单例模式，
func GetServiceFactory() *Factory {
	return instance
}

// NewChatService 获取聊天服务
func (f *Factory) NewChatService() *chat.Service {
	return chat.NewService(f.repositoryFactory)
}

// NewProfileService 获取画像服务
func (f *Factory) NewProfileService() *profile.Service {
	return profile.NewService(f.repositoryFactory)
}

// NewConvlogService 获取对话日志服务
func (f *Factory) NewConvlogService() *convlog.Service {
	return convlog.NewService(f.repositoryFactory)
}

// NewAnalyticsService 获取分析服务
func (f *Factory) NewAnalyticsService() *analytics.Service {
	return analytics.NewService(f.repositoryFactory)
}
