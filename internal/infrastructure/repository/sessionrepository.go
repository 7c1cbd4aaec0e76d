package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"medrecords/internal/domain/user"
	"medrecords/internal/infrastructure/persistence/mappers"
	"medrecords/internal/infrastructure/persistence/models"
	"medrecords/internal/shared/db"
)

type SessionRepository struct {
	db     *gorm.DB
	mapper mappers.SessionMapper
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{
		db:     db,
		mapper: mappers.NewSessionMapper(),
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *user.Session) error {
	model := r.mapper.ToModel(session)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetByTokenHash returns inactive and expired sessions too; the caller
// decides whether the session is usable.
func (r *SessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*user.Session, error) {
	var model models.SessionModel
	err := db.GetTxFromContext(ctx, r.db).Where("token_hash = ?", tokenHash).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session by token hash: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// Touch only ever moves last_accessed_at forward, so concurrent requests
// cannot rewind it.
func (r *SessionRepository) Touch(ctx context.Context, sessionID string, at time.Time) error {
	at = at.UTC()
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.SessionModel{}).
		Where("id = ? AND last_accessed_at < ?", sessionID, at).
		Update("last_accessed_at", at).Error
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Deactivate(ctx context.Context, sessionID string) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SessionModel{}).
		Where("id = ? AND is_active = ?", sessionID, true).
		Update("is_active", false)
	if result.Error != nil {
		return false, fmt.Errorf("failed to deactivate session: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *SessionRepository) DeactivateByUserID(ctx context.Context, userID string) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SessionModel{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Update("is_active", false)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to deactivate sessions by user ID: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *SessionRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SessionModel{}).
		Scopes(db.ActiveExpiredBefore(now.UTC())).
		Update("is_active", false)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to deactivate expired sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

var _ user.SessionRepository = (*SessionRepository)(nil)
