package usecases

import (
	"context"

	"medrecords/internal/domain/user"
	"medrecords/internal/shared/biztime"
	"medrecords/internal/shared/logger"
)

// SweepExpiredSessionsUseCase deactivates every active session past its
// expiry. Sessions are kept, not deleted.
type SweepExpiredSessionsUseCase struct {
	sessionRepo user.SessionRepository
	clock       biztime.Clock
	logger      logger.Interface
}

func NewSweepExpiredSessionsUseCase(sessionRepo user.SessionRepository, clock biztime.Clock, logger logger.Interface) *SweepExpiredSessionsUseCase {
	return &SweepExpiredSessionsUseCase{
		sessionRepo: sessionRepo,
		clock:       clock.OrDefault(),
		logger:      logger,
	}
}

func (uc *SweepExpiredSessionsUseCase) Execute(ctx context.Context) (int, error) {
	n, err := uc.sessionRepo.DeactivateExpired(ctx, uc.clock())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		uc.logger.Debugw("swept expired sessions", "count", n)
	}
	return int(n), nil
}
