package timeutil

import (
	"time"
)

const (
	TimeFormatCommonStyleDay = "2006-01-02"
	TimeFormatCommonStyleMin = "2006-01-02 15:04"
	TimeFormatCommonStyleSec = "2006-01-02 15:04:05"
)

func GetNowTimeStr() string {
	return time.Now().Format(TimeFormatCommonStyleSec)
}

// WindowStart 滑动窗口的下界 now-days，窗口为闭区间 [start, now]
func WindowStart(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

// SinceMs 开始时间到现在经过的毫秒数
func SinceMs(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
