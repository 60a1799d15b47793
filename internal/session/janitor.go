package session

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// StartJanitor sweeps idle sessions on a cron schedule ("@every 1m", "*/5 * * * *").
// The caller stops the returned scheduler.
func StartJanitor(m *Manager, schedule string, idle time.Duration) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		n, err := m.Sweep(context.Background(), idle)
		if err != nil {
			log.Error().Err(err).Msg("session sweep failed")
			return
		}
		if n > 0 {
			log.Info().Int("removed", n).Msg("swept idle sessions")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule session sweep %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}
