package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrIdentifierTaken      = errors.New("identifier already exists")
	ErrAccountNotFound      = errors.New("account not found")
	ErrTokenPairChanged     = errors.New("stored token pair changed concurrently")
	ErrUnresponsiveDatabase = errors.New("error occurred during accessing accounts table")
)

// AccountRepository is the persistence contract of the token service.
// Token arguments are digests; an empty digest clears the column.
type AccountRepository interface {
	FindByIdentifier(ctx context.Context, identifier string) (*Account, error)
	FindByID(ctx context.Context, id uint) (*Account, error)
	Insert(ctx context.Context, account *Account) error
	UpdateTokenPair(ctx context.Context, id uint, accessHash, refreshHash string) error
	// RotateTokenPair only writes when the stored refresh digest still equals
	// expectedRefreshHash; otherwise it returns ErrTokenPairChanged.
	RotateTokenPair(ctx context.Context, id uint, expectedRefreshHash, accessHash, refreshHash string) error
	Delete(ctx context.Context, id uint) error
}

type accountRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewAccountRepository(db *gorm.DB, timeout time.Duration) AccountRepository {
	return &accountRepository{db: db, timeout: timeout}
}

func (r *accountRepository) conn(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if r.timeout <= 0 {
		return r.db.WithContext(ctx), func() {}
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	return r.db.WithContext(ctx), cancel
}

func (r *accountRepository) FindByIdentifier(ctx context.Context, identifier string) (*Account, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var account Account
	err := db.Where("identifier = ?", identifier).First(&account).Error
	if err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

func (r *accountRepository) FindByID(ctx context.Context, id uint) (*Account, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var account Account
	if err := db.First(&account, id).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

func (r *accountRepository) Insert(ctx context.Context, account *Account) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	if err := db.Create(account).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *accountRepository) UpdateTokenPair(ctx context.Context, id uint, accessHash, refreshHash string) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	res := db.Model(&Account{}).
		Where("id = ?", id).
		Updates(tokenColumns(accessHash, refreshHash))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) RotateTokenPair(
	ctx context.Context,
	id uint,
	expectedRefreshHash, accessHash, refreshHash string,
) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	res := db.Model(&Account{}).
		Where("id = ?", id).
		Where("refresh_token_hash = ?", expectedRefreshHash).
		Updates(tokenColumns(accessHash, refreshHash))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&Account{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return translate(err)
	}
	if count == 0 {
		return ErrAccountNotFound
	}
	return ErrTokenPairChanged
}

func (r *accountRepository) Delete(ctx context.Context, id uint) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	res := db.Unscoped().Delete(&Account{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func tokenColumns(accessHash, refreshHash string) map[string]interface{} {
	return map[string]interface{}{
		"access_token_hash":  nullable(accessHash),
		"refresh_token_hash": nullable(refreshHash),
		"last_seen":          time.Now().UTC(),
	}
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAccountNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrIdentifierTaken
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrIdentifierTaken
	}
	return fmt.Errorf("%w: %v", ErrUnresponsiveDatabase, err)
}
