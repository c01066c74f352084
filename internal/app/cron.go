package app

import (
	"context"
	"time"

	pkgcron "github.com/serenitysphere/core/internal/pkg/cron"
	"go.uber.org/zap"
)

const (
	sweepConcurrency = 4
	taskRetention    = 24 * time.Hour
)

func (a *App) registerCronJobs() {
	logger := a.logger.Named("CronService")
	svc := a.svc

	a.sched.Register(pkgcron.Job{
		Name:        "trend_analysis",
		Description: "Run trend analysis for owners with recent mood records",
		Interval:    a.cfg.Trend.ScheduleInterval,
		Fn: func(ctx context.Context) error {
			n, err := svc.trend.AnalyzeAll(ctx, sweepConcurrency)
			if err != nil {
				return err
			}
			logger.Info("scheduled trend analysis finished", zap.Int("notifications", n))
			return nil
		},
	})

	if a.cfg.Reminder.Enable {
		a.sched.Register(pkgcron.Job{
			Name:        "journal_reminders",
			Description: "Remind owners who have not written today's entry",
			Interval:    a.cfg.Reminder.Interval,
			Fn: func(ctx context.Context) error {
				n, err := svc.reminders.Sweep(ctx, sweepConcurrency)
				if err != nil {
					return err
				}
				logger.Info("journal reminders sent", zap.Int("count", n))
				return nil
			},
		})
	}

	if svc.queue != nil {
		a.sched.Register(pkgcron.Job{
			Name:        "purge_tasks",
			Description: "Drop finished analysis tasks from Redis",
			Interval:    time.Hour,
			Fn: func(ctx context.Context) error {
				n, err := svc.queue.PurgeFinished(ctx, time.Now().Add(-taskRetention))
				if err != nil {
					return err
				}
				if n > 0 {
					logger.Info("purged finished tasks", zap.Int("count", n))
				}
				return nil
			},
		})
	}
}
