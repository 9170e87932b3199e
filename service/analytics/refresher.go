package analytics

import (
	"context"
	"time"

	"github.com/forsakeprojects/partnur-backend/config"
	"github.com/forsakeprojects/partnur-backend/constant"
	"github.com/forsakeprojects/partnur-backend/pkg/clients/redis"

	rcron "github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// StartTrendsRefresher 定时预热趋势缓存，未启用 redis 时不启动
// 返回 cron 实例，关停时 Stop 用
func (s *Service) StartTrendsRefresher() *rcron.Cron {
	if !redis.Enabled() {
		return nil
	}

	cfg := config.GetInstance()
	spec := cfg.GetStringOrDefault(config.AnalyticsTrendsCron, "@every 10m")

	c := rcron.New()
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, modelErr := s.refreshTrends(ctx, constant.DefaultTrendsLimit); modelErr != nil {
			log.Warnf("Failed to refresh trends cache: %v", modelErr)
		}
	}); err != nil {
		log.Errorf("Failed to schedule trends refresher (%s): %v", spec, err)
		return nil
	}

	c.Start()
	log.Infof("Trends cache refresher started: %s", spec)
	return c
}
