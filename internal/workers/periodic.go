// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/Comraich/sortr-sub001/internal/logger"
)

const defaultInterval = time.Minute

// periodic calls task on a ticker until its context ends.
type periodic struct {
	name      string
	interval  time.Duration
	immediate bool
	task      func(ctx context.Context) error
	logger    *logger.Logger
}

func (p *periodic) Run(ctx context.Context) {
	interval := p.interval
	if interval <= 0 {
		interval = defaultInterval
	}

	p.logger.Debug().Str("worker", p.name).Dur("interval", interval).Msg("worker started")
	defer p.logger.Debug().Str("worker", p.name).Msg("worker stopped")

	if p.immediate {
		p.tick(ctx)
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.tick(ctx)
		}
	}
}

func (p *periodic) tick(ctx context.Context) {
	if err := p.task(ctx); err != nil && ctx.Err() == nil {
		p.logger.Warn().Err(err).Str("worker", p.name).Msg("worker run failed")
	}
}

// NewLimiterSweeper drops idle rate limiter clients every interval.
func NewLimiterSweeper(limiter Sweeper, interval time.Duration, logger *logger.Logger) Worker {
	return &periodic{
		name:     "limiter-sweeper",
		interval: interval,
		task:     sweepTask("limiter-sweeper", limiter, logger),
		logger:   logger,
	}
}

// NewCacheJanitor evicts expired client cache entries every interval.
func NewCacheJanitor(cache Sweeper, interval time.Duration, logger *logger.Logger) Worker {
	return &periodic{
		name:     "cache-janitor",
		interval: interval,
		task:     sweepTask("cache-janitor", cache, logger),
		logger:   logger,
	}
}

// NewHealthProber refreshes the health status right away and then every
// interval.
func NewHealthProber(prober Prober, interval time.Duration, logger *logger.Logger) Worker {
	return &periodic{
		name:      "health-prober",
		interval:  interval,
		immediate: true,
		task:      prober.Probe,
		logger:    logger,
	}
}

func sweepTask(name string, s Sweeper, logger *logger.Logger) func(context.Context) error {
	return func(context.Context) error {
		if n := s.Sweep(); n > 0 {
			logger.Debug().Str("worker", name).Int("removed", n).Msg("swept")
		}
		return nil
	}
}
