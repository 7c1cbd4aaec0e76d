package usecases

import (
	"context"
	"fmt"

	"medrecords/internal/domain/user"
	"medrecords/internal/shared/biztime"
	"medrecords/internal/shared/errors"
	"medrecords/internal/shared/logger"
)

// ResolveSessionUseCase turns a presented session token into its user.
type ResolveSessionUseCase struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	tokens      SessionTokenGenerator
	clock       biztime.Clock
	logger      logger.Interface
}

func NewResolveSessionUseCase(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	tokens SessionTokenGenerator,
	clock biztime.Clock,
	logger logger.Interface,
) *ResolveSessionUseCase {
	return &ResolveSessionUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		clock:       clock.OrDefault(),
		logger:      logger,
	}
}

// Execute succeeds only for an active, unexpired session whose user is
// active. An expired session found here is deactivated on the spot. On
// success the session's last access time moves forward.
func (uc *ResolveSessionUseCase) Execute(ctx context.Context, token string) (*user.User, error) {
	if token == "" {
		return nil, errors.NewSessionInvalidError()
	}

	session, err := uc.sessionRepo.GetByTokenHash(ctx, uc.tokens.Hash(token))
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if session == nil || !session.IsActive {
		return nil, errors.NewSessionInvalidError()
	}

	now := uc.clock()
	if session.IsExpired(now) {
		if _, err := uc.sessionRepo.Deactivate(ctx, session.ID); err != nil {
			uc.logger.Warnw("failed to deactivate expired session", "session_id", session.ID, "error", err)
		}
		return nil, errors.NewSessionInvalidError()
	}

	u, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewSessionInvalidError()
		}
		return nil, err
	}
	if !u.IsActive() {
		return nil, errors.NewSessionInvalidError()
	}

	if err := uc.sessionRepo.Touch(ctx, session.ID, now); err != nil {
		uc.logger.Warnw("failed to refresh session access time", "session_id", session.ID, "error", err)
	}
	return u, nil
}
