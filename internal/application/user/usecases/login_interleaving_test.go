package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"medrecords/internal/domain/user"
	"medrecords/internal/infrastructure/persistence/models"
	"medrecords/internal/infrastructure/repository"
	"medrecords/internal/shared/db"
	apperrors "medrecords/internal/shared/errors"
	"medrecords/internal/shared/logger"
)

// interleavingHasher calls during once, inside the first Verify. That is
// after login has read the user row and before it writes anything.
type interleavingHasher struct {
	fakeHasher
	during func()
}

func (h *interleavingHasher) Verify(password, encoded string) bool {
	if h.during != nil {
		during := h.during
		h.during = nil
		during()
	}
	return h.fakeHasher.Verify(password, encoded)
}

type sqliteRepos struct {
	gdb      *gorm.DB
	users    *repository.UserRepository
	sessions *repository.SessionRepository
}

func newSQLiteRepos(t *testing.T) sqliteRepos {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(models.All()...))
	return sqliteRepos{
		gdb:      gdb,
		users:    repository.NewUserRepository(gdb, logger.NewNopLogger()),
		sessions: repository.NewSessionRepository(gdb),
	}
}

func seedUser(t *testing.T, repos sqliteRepos, email, passwordHash string) *user.User {
	t.Helper()
	u, err := user.NewUser("usr-1", "Old Name", email, user.GenderFemale, "555-0100", passwordHash, testNow.Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, repos.users.Create(context.Background(), u))
	return u
}

func TestLoginUseCase_KeepsConcurrentProfileUpdate(t *testing.T) {
	repos := newSQLiteRepos(t)
	ctx := context.Background()
	seedUser(t, repos, "a@x.com", "legacy:secret1")

	profile := NewUpdateProfileUseCase(repos.users, new(mockBlobStore), newPicturePolicy(), logger.NewNopLogger())
	hasher := &interleavingHasher{}
	hasher.during = func() {
		_, err := profile.Execute(ctx, "usr-1", UpdateProfileCommand{
			FullName:    "New Name",
			Email:       "new@x.com",
			Gender:      "Female",
			PhoneNumber: "555-0199",
		})
		require.NoError(t, err)
	}

	login := NewLoginUseCase(repos.users, repos.sessions, hasher, &fakeTokens{next: "tok-1"},
		db.NewTransactionManager(repos.gdb), testLifetime, fixedClock, logger.NewNopLogger())

	_, err := login.Execute(ctx, LoginCommand{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	got, err := repos.users.GetByID(ctx, "usr-1")
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.FullName())
	assert.Equal(t, "new@x.com", got.Email())
	assert.Equal(t, "555-0199", got.PhoneNumber())
	assert.Equal(t, "h:secret1", got.PasswordHash(), "legacy hash still upgraded")
	require.NotNil(t, got.LastLoginAt())
	assert.True(t, got.LastLoginAt().Equal(testNow))
	assert.True(t, got.IsActive())
}

func TestLoginUseCase_ConcurrentDeactivationWins(t *testing.T) {
	repos := newSQLiteRepos(t)
	ctx := context.Background()
	seedUser(t, repos, "a@x.com", "h:secret1")

	txManager := db.NewTransactionManager(repos.gdb)
	deactivate := NewDeactivateUserUseCase(repos.users, repos.sessions, txManager, logger.NewNopLogger())
	hasher := &interleavingHasher{}
	hasher.during = func() {
		_, err := deactivate.Execute(ctx, "a@x.com")
		require.NoError(t, err)
	}

	login := NewLoginUseCase(repos.users, repos.sessions, hasher, &fakeTokens{next: "tok-1"},
		txManager, testLifetime, fixedClock, logger.NewNopLogger())

	result, err := login.Execute(ctx, LoginCommand{Email: "a@x.com", Password: "secret1"})
	assert.Nil(t, result)
	assert.True(t, apperrors.IsInvalidCredentialsError(err), "got %v", err)

	got, err := repos.users.GetByID(ctx, "usr-1")
	require.NoError(t, err)
	assert.False(t, got.IsActive())
	assert.Nil(t, got.LastLoginAt())

	session, err := repos.sessions.GetByTokenHash(ctx, "hash(tok-1)")
	require.NoError(t, err)
	assert.Nil(t, session, "session creation rolled back")
}
