package crontab

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"

	"agentdesk/internal/config"
	"agentdesk/internal/domain/invitation"
	"agentdesk/internal/infrastructure/logger"
	"agentdesk/internal/infrastructure/metrics"
	"agentdesk/internal/utils/platformerrors"
)

const (
	DefaultSweepInterval = 15               // in minutes
	CronJobTimeout       = 10 * time.Minute // Timeout for each cron job execution
)

type Crontab struct {
	ctab        *crontab.Crontab
	invitations *invitation.Service
}

func NewCrontab(invitations *invitation.Service) *Crontab {
	return &Crontab{
		ctab:        crontab.New(),
		invitations: invitations,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	// execute once on server start
	c.sweepInvitations(ctx)

	interval := DefaultSweepInterval
	if cfg := config.GetGlobal(); cfg != nil && cfg.InvitationSweepMinutes > 0 {
		interval = cfg.InvitationSweepMinutes
	}

	cronExpr := fmt.Sprintf("*/%d * * * *", interval)
	if err := c.ctab.AddJob(cronExpr, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
		defer cancel()
		c.sweepInvitations(jobCtx)
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add invitation sweep job")
	}

	// Schedule environment reload job
	if err := c.ctab.AddJob("* * * * *", func() {
		config.Load()
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add env reload job")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) sweepInvitations(ctx context.Context) {
	log := logger.GetLogger()

	expired, err := c.invitations.ExpireStale(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to expire stale invitations")
		return
	}
	if expired > 0 {
		metrics.InvitationsExpiredTotal.Add(float64(expired))
		log.Info().Msgf("Expired %d stale invitation(s)", expired)
	}
}
