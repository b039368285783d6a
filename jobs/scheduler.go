package jobs

import (
	"time"

	"dodeduer/tasks"
)

func StartSchedulers() {
	tickerCleanup := time.NewTicker(1 * time.Hour)
	go func() {
		for {
			<-tickerCleanup.C
			tasks.CleanupExpiredSessions()
		}
	}()
}
