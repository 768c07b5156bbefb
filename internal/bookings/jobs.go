package bookings

import (
	"context"
	"fmt"

	"audease/pkg/logger"

	"github.com/robfig/cron/v3"
)

// ExpiryJob periodically rejects pending bookings whose date has passed
// without an admin decision, so stale requests stop blocking slots.
type ExpiryJob struct {
	service  Service
	schedule string
	log      *logger.Logger
	cron     *cron.Cron
}

func NewExpiryJob(service Service, schedule string, log *logger.Logger) *ExpiryJob {
	return &ExpiryJob{
		service:  service,
		schedule: schedule,
		log:      log,
		cron:     cron.New(),
	}
}

func (j *ExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return fmt.Errorf("failed to schedule booking expiry sweep: %w", err)
	}
	j.cron.Start()
	return nil
}

// Stop waits for a running sweep to finish.
func (j *ExpiryJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *ExpiryJob) run() {
	ctx := context.Background()
	if _, err := j.service.ExpireStalePending(ctx); err != nil {
		j.log.ErrorWithContext(ctx, "Booking expiry sweep failed", err, nil)
	}
}
