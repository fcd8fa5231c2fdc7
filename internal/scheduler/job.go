package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-monitor-api/pkg/lock"
)

// scheduleJob registra o job no cron e para o agendador quando o contexto é cancelado
func scheduleJob(ctx context.Context, scheduler *gocron.Scheduler, cron, name string, job func()) error {
	if _, err := scheduler.Cron(cron).Do(job); err != nil {
		return fmt.Errorf("failed to schedule %s job: %w", name, err)
	}

	scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.WithField("job", name).Info("scheduler: stopping")
		scheduler.Stop()
	}()

	return nil
}

// withJobLock executa fn somente se o lock distribuído do job estiver livre
func withJobLock(ctx context.Context, locker lock.Locker, key string, ttl time.Duration, fn func()) (bool, error) {
	release, acquired, err := locker.TryLock(ctx, key, ttl)
	if err != nil {
		return false, err
	}

	if !acquired {
		return false, nil
	}
	defer release()

	fn()
	return true, nil
}
