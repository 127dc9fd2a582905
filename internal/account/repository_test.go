package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/expensaver/expensaver-api/internal/account"
	"github.com/expensaver/expensaver-api/internal/utils"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), utils.GormConfig())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection to :memory: is its own database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&account.Account{}))
	return db
}

func insert(t *testing.T, repo account.AccountRepository, identifier string) *account.Account {
	t.Helper()
	a := account.NewAccount(identifier, "Test", "hash")
	require.NoError(t, repo.Insert(context.Background(), a))
	require.NotZero(t, a.ID)
	return a
}

func TestAccountRepository_InsertAndFind(t *testing.T) {
	repo := account.NewAccountRepository(openTestDB(t), time.Second)
	ctx := context.Background()
	a := insert(t, repo, "a@x.com")

	byIdentifier, err := repo.FindByIdentifier(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byIdentifier.ID)
	assert.Equal(t, account.User, byIdentifier.Role)
	assert.Nil(t, byIdentifier.AccessTokenHash)

	byID, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Identifier)

	_, err = repo.FindByIdentifier(ctx, "b@x.com")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
	_, err = repo.FindByID(ctx, a.ID+100)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestAccountRepository_DuplicateIdentifier(t *testing.T) {
	repo := account.NewAccountRepository(openTestDB(t), time.Second)
	insert(t, repo, "a@x.com")

	err := repo.Insert(context.Background(), account.NewAccount("a@x.com", "Other", "hash"))
	assert.ErrorIs(t, err, account.ErrIdentifierTaken)
}

func TestAccountRepository_UpdateTokenPair(t *testing.T) {
	repo := account.NewAccountRepository(openTestDB(t), time.Second)
	ctx := context.Background()
	a := insert(t, repo, "a@x.com")

	require.NoError(t, repo.UpdateTokenPair(ctx, a.ID, "access-1", "refresh-1"))
	got, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.MatchesAccessToken("access-1"))
	assert.True(t, got.MatchesRefreshToken("refresh-1"))

	require.NoError(t, repo.UpdateTokenPair(ctx, a.ID, "", ""))
	got, err = repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AccessTokenHash)
	assert.Nil(t, got.RefreshTokenHash)

	err = repo.UpdateTokenPair(ctx, a.ID+100, "x", "y")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestAccountRepository_RotateTokenPair(t *testing.T) {
	repo := account.NewAccountRepository(openTestDB(t), time.Second)
	ctx := context.Background()
	a := insert(t, repo, "a@x.com")
	require.NoError(t, repo.UpdateTokenPair(ctx, a.ID, "access-1", "refresh-1"))

	require.NoError(t, repo.RotateTokenPair(ctx, a.ID, "refresh-1", "access-2", "refresh-2"))

	err := repo.RotateTokenPair(ctx, a.ID, "refresh-1", "access-3", "refresh-3")
	assert.ErrorIs(t, err, account.ErrTokenPairChanged)

	got, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.MatchesRefreshToken("refresh-2"))

	err = repo.RotateTokenPair(ctx, a.ID+100, "refresh-2", "a", "r")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestAccountRepository_DeleteIsPermanent(t *testing.T) {
	repo := account.NewAccountRepository(openTestDB(t), time.Second)
	ctx := context.Background()
	a := insert(t, repo, "a@x.com")

	require.NoError(t, repo.Delete(ctx, a.ID))
	_, err := repo.FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), account.ErrAccountNotFound)

	// the identifier is free again
	insert(t, repo, "a@x.com")
}

func TestAccountRepository_StoreUnavailable(t *testing.T) {
	db := openTestDB(t)
	repo := account.NewAccountRepository(db, time.Second)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = repo.FindByIdentifier(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, account.ErrUnresponsiveDatabase)
	assert.NotErrorIs(t, err, account.ErrAccountNotFound)
}
