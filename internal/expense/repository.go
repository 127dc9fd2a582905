package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrUnresponsiveDatabase = errors.New("error occurred during accessing expenses table")
)

// ExpenseRepository scopes every query to the owning account.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) error
	ListByAccount(ctx context.Context, accountID uint) ([]Expense, error)
	Update(ctx context.Context, accountID, id uint, changes Changes) (*Expense, error)
	Delete(ctx context.Context, accountID, id uint) error
}

type expenseRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewExpenseRepository(db *gorm.DB, timeout time.Duration) ExpenseRepository {
	return &expenseRepository{db: db, timeout: timeout}
}

func (r *expenseRepository) conn(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if r.timeout <= 0 {
		return r.db.WithContext(ctx), func() {}
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	return r.db.WithContext(ctx), cancel
}

func (r *expenseRepository) Create(ctx context.Context, expense *Expense) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	if err := db.Create(expense).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrUnresponsiveDatabase, err)
	}
	return nil
}

func (r *expenseRepository) ListByAccount(ctx context.Context, accountID uint) ([]Expense, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	expenses := make([]Expense, 0)
	err := db.Where("account_id = ?", accountID).
		Order("spent_at DESC").
		Order("id DESC").
		Find(&expenses).
		Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnresponsiveDatabase, err)
	}
	return expenses, nil
}

func (r *expenseRepository) Update(ctx context.Context, accountID, id uint, changes Changes) (*Expense, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var expense Expense
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND account_id = ?", id, accountID).First(&expense).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExpenseNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnresponsiveDatabase, err)
		}

		changes.apply(&expense)
		if err := tx.Save(&expense).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrUnresponsiveDatabase, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) Delete(ctx context.Context, accountID, id uint) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	res := db.Unscoped().
		Where("id = ? AND account_id = ?", id, accountID).
		Delete(&Expense{})
	if res.Error != nil {
		return fmt.Errorf("%w: %v", ErrUnresponsiveDatabase, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}
