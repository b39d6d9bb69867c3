package delegation

import (
	"context"
	"time"

	"github.com/yahya12213/SiteManagement-sub007/pkg/clock"

	"go.uber.org/zap"
)

// Sweeper flags delegations whose window is fully in the past. Pure
// housekeeping: eligibility is always decided by the window itself, so a
// missed sweep never grants or removes authority.
type Sweeper struct {
	Repo   DelegationRepository
	Clock  clock.Clock
	Logger *zap.Logger
}

func NewSweeper(repo DelegationRepository, clk clock.Clock, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		Repo:   repo,
		Clock:  clk,
		Logger: logger,
	}
}

func (s *Sweeper) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := s.Repo.MarkExpired(ctx, s.Clock.Now())
	if err != nil {
		s.Logger.Error("delegation expiry sweep failed", zap.Error(err))
		return
	}
	if count > 0 {
		s.Logger.Info("flagged expired delegations", zap.Int64("count", count))
	}
}
