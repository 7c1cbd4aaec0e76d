package usecases

import (
	"context"
	"fmt"

	"medrecords/internal/domain/user"
	"medrecords/internal/shared/logger"
)

type LogoutUseCase struct {
	sessionRepo user.SessionRepository
	tokens      SessionTokenGenerator
	logger      logger.Interface
}

func NewLogoutUseCase(sessionRepo user.SessionRepository, tokens SessionTokenGenerator, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{
		sessionRepo: sessionRepo,
		tokens:      tokens,
		logger:      logger,
	}
}

// Execute deactivates the session behind token. It reports false, not an
// error, when there is no active session, so repeated logouts are harmless.
func (uc *LogoutUseCase) Execute(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	session, err := uc.sessionRepo.GetByTokenHash(ctx, uc.tokens.Hash(token))
	if err != nil {
		uc.logger.Errorw("failed to look up session", "error", err)
		return false, fmt.Errorf("failed to logout: %w", err)
	}
	if session == nil {
		return false, nil
	}

	deactivated, err := uc.sessionRepo.Deactivate(ctx, session.ID)
	if err != nil {
		uc.logger.Errorw("failed to deactivate session", "error", err, "session_id", session.ID)
		return false, fmt.Errorf("failed to logout: %w", err)
	}

	if deactivated {
		uc.logger.Infow("user logged out successfully", "user_id", session.UserID, "session_id", session.ID)
	}
	return deactivated, nil
}
