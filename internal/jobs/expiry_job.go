package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ExpiryJobName is the name of the opportunity expiry sweep job
const ExpiryJobName = "opportunity_expiry"

// ExpiryJobTimeout bounds one sweep run
const ExpiryJobTimeout = 10 * time.Minute

// OpportunityExpirer moves stale opportunities to the expired status. This
// interface lets the job call the service without importing the service
// package directly.
type OpportunityExpirer interface {
	// ExpireStale expires active opportunities of non-current fiscal years
	// through the normal lifecycle path. Returns how many were expired.
	ExpireStale(ctx context.Context) (int, error)
}

// ExpiryJob sweeps active opportunities whose fiscal year is no longer
// current. Disabled by default; enabled via jobs.expireOpportunities.
type ExpiryJob struct {
	opportunities OpportunityExpirer
	logger        *zap.Logger
}

// NewExpiryJob creates a new opportunity expiry job.
func NewExpiryJob(opportunities OpportunityExpirer, logger *zap.Logger) *ExpiryJob {
	return &ExpiryJob{
		opportunities: opportunities,
		logger:        logger,
	}
}

// Run executes one expiry sweep. Called by the scheduler according to the
// configured cron expression.
func (j *ExpiryJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), ExpiryJobTimeout)
	defer cancel()

	start := time.Now()
	expired, err := j.opportunities.ExpireStale(ctx)
	if err != nil {
		j.logger.Error("opportunity expiry sweep failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("opportunity expiry sweep completed",
		zap.Int("expired", expired),
		zap.Duration("duration", time.Since(start)))
}
