package usecases

import (
	"context"

	"medrecords/internal/domain/user"
	"medrecords/internal/shared/db"
	"medrecords/internal/shared/errors"
	"medrecords/internal/shared/logger"
	"medrecords/internal/shared/utils"
)

// DeactivateUserUseCase disables an account and revokes all its sessions
// in one transaction.
type DeactivateUserUseCase struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	txManager   db.Transactor
	logger      logger.Interface
}

func NewDeactivateUserUseCase(userRepo user.Repository, sessionRepo user.SessionRepository, txManager db.Transactor, logger logger.Interface) *DeactivateUserUseCase {
	return &DeactivateUserUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute returns the number of sessions revoked.
func (uc *DeactivateUserUseCase) Execute(ctx context.Context, email string) (int64, error) {
	u, err := uc.userRepo.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		return 0, err
	}
	if u == nil {
		return 0, errors.NewNotFoundError("user not found")
	}

	var revoked int64
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.userRepo.Deactivate(txCtx, u.ID()); err != nil {
			return err
		}
		n, err := uc.sessionRepo.DeactivateByUserID(txCtx, u.ID())
		revoked = n
		return err
	})
	if err != nil {
		return 0, err
	}

	uc.logger.Infow("user deactivated", "user_id", u.ID(), "email", utils.MaskEmail(u.Email()), "sessions_revoked", revoked)
	return revoked, nil
}
