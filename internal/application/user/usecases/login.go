package usecases

import (
	"context"
	"fmt"
	"time"

	"medrecords/internal/application/user/dto"
	"medrecords/internal/domain/user"
	"medrecords/internal/shared/biztime"
	"medrecords/internal/shared/db"
	"medrecords/internal/shared/errors"
	"medrecords/internal/shared/id"
	"medrecords/internal/shared/logger"
	"medrecords/internal/shared/utils"
)

type LoginCommand struct {
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *dto.UserResponse
}

type LoginUseCase struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	hasher      user.PasswordHasher
	tokens      SessionTokenGenerator
	txManager   db.Transactor
	lifetime    time.Duration
	clock       biztime.Clock
	logger      logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	hasher user.PasswordHasher,
	tokens SessionTokenGenerator,
	txManager db.Transactor,
	lifetime time.Duration,
	clock biztime.Clock,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		tokens:      tokens,
		txManager:   txManager,
		lifetime:    lifetime,
		clock:       clock.OrDefault(),
		logger:      logger,
	}
}

// Execute returns the same InvalidCredentials error for an unknown email, a
// deactivated account and a wrong password.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	cmd.Email = user.NormalizeEmail(cmd.Email)
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	existingUser, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if existingUser == nil || !existingUser.IsActive() || !existingUser.VerifyPassword(cmd.Password, uc.hasher) {
		uc.logger.Warnw("login failed",
			"email", utils.MaskEmail(cmd.Email),
			"ip", cmd.IPAddress,
		)
		return nil, errors.NewInvalidCredentialsError()
	}

	plainToken, tokenHash, err := uc.tokens.Generate()
	if err != nil {
		uc.logger.Errorw("failed to generate session token", "error", err)
		return nil, errors.NewInternalError("failed to create session")
	}

	now := uc.clock()
	session, err := user.NewSession(id.New(), existingUser.ID(), tokenHash, cmd.IPAddress, cmd.UserAgent, now, uc.lifetime)
	if err != nil {
		return nil, errors.NewInternalError("failed to create session", err.Error())
	}

	existingUser.RecordLogin(now)
	newHash := uc.upgradePasswordHash(existingUser, cmd.Password)

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		recorded, err := uc.userRepo.RecordLogin(txCtx, existingUser.ID(), now, newHash)
		if err != nil {
			return err
		}
		if !recorded {
			// deactivated between the credential check and this write
			return errors.NewInvalidCredentialsError()
		}
		return uc.sessionRepo.Create(txCtx, session)
	})
	if err != nil {
		if errors.IsInvalidCredentialsError(err) {
			uc.logger.Warnw("login failed, account deactivated", "user_id", existingUser.ID())
			return nil, err
		}
		uc.logger.Errorw("failed to persist login", "user_id", existingUser.ID(), "error", err)
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	uc.logger.Infow("user logged in successfully", "user_id", existingUser.ID(), "session_id", session.ID)

	return &LoginResult{
		Token:     plainToken,
		ExpiresAt: session.ExpiresAt,
		User:      dto.ToUserResponse(existingUser),
	}, nil
}

// upgradePasswordHash returns a new hash for a password stored in an
// outdated scheme, or "" to keep the stored one. A failed rehash keeps the
// old hash, which still verifies.
func (uc *LoginUseCase) upgradePasswordHash(u *user.User, password string) string {
	checker, ok := uc.hasher.(user.RehashChecker)
	if !ok || !checker.NeedsRehash(u.PasswordHash()) {
		return ""
	}
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		uc.logger.Warnw("failed to rehash password", "user_id", u.ID(), "error", err)
		return ""
	}
	u.ReplacePasswordHash(hash)
	uc.logger.Infow("password hash upgraded", "user_id", u.ID())
	return hash
}
