// Package sweeper runs the periodic voucher-expiry pass. The sweep is
// bookkeeping only: redemption and lookup already reject overdue vouchers
// at read time, so a delayed or missed tick never changes observable
// behavior, only how quickly rows converge to their terminal status.
package sweeper

import (
	"context"
	"log/slog"
	"time"

	"loyalty-ledger/internal/pkg/config"
	"loyalty-ledger/internal/usecase/commands"
)

type Sweeper struct {
	sweep    commands.SweepCommands
	interval time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

func New(sweep commands.SweepCommands, cfg config.LoyaltyConfig) *Sweeper {
	return &Sweeper{
		sweep:    sweep,
		interval: cfg.SweepInterval,
	}
}

// Start launches the background loop. One pass runs immediately so a
// restart does not postpone overdue expirations by a full interval.
func (s *Sweeper) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx)
}

func (s *Sweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	expired, err := s.sweep.ExpireDueVouchers(ctx)
	if err != nil {
		slog.Error("voucher expiry sweep failed", "error", err)
		return
	}
	if expired > 0 {
		slog.Info("voucher expiry sweep completed", "expired", expired)
	}
}
