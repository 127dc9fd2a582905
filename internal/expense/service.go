package expense

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

var ErrInvalidExpense = errors.New("invalid expense")

// Changes is a validated create or update payload.
type Changes struct {
	Title    string
	Amount   float64
	Quantity int
	SpentAt  time.Time
}

func (ch Changes) apply(e *Expense) {
	e.Title = ch.Title
	e.Amount = ch.Amount
	e.Quantity = ch.Quantity
	e.SpentAt = ch.SpentAt
}

func (ch *Changes) normalize() error {
	ch.Title = strings.TrimSpace(ch.Title)
	if ch.Title == "" || ch.Amount <= 0 || ch.Quantity < 0 {
		return ErrInvalidExpense
	}
	if ch.Quantity == 0 {
		ch.Quantity = 1
	}
	if ch.SpentAt.IsZero() {
		ch.SpentAt = time.Now().UTC()
	}
	return nil
}

type ExpenseService interface {
	CreateExpense(ctx context.Context, accountID uint, changes Changes) (*Expense, error)
	ListExpenses(ctx context.Context, accountID uint) ([]Expense, error)
	UpdateExpense(ctx context.Context, accountID, id uint, changes Changes) (*Expense, error)
	DeleteExpense(ctx context.Context, accountID, id uint) error
}

type expenseService struct {
	repo   ExpenseRepository
	logger *zap.Logger
}

func NewExpenseService(repo ExpenseRepository, logger *zap.Logger) ExpenseService {
	return &expenseService{repo: repo, logger: logger}
}

func (s *expenseService) CreateExpense(ctx context.Context, accountID uint, changes Changes) (*Expense, error) {
	if err := changes.normalize(); err != nil {
		return nil, err
	}
	e := &Expense{AccountID: accountID}
	changes.apply(e)
	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("failed to create expense", zap.Uint("accountID", accountID), zap.Error(err))
		return nil, err
	}
	return e, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, accountID uint) ([]Expense, error) {
	expenses, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		s.logger.Error("failed to list expenses", zap.Uint("accountID", accountID), zap.Error(err))
		return nil, err
	}
	return expenses, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, accountID, id uint, changes Changes) (*Expense, error) {
	if err := changes.normalize(); err != nil {
		return nil, err
	}
	e, err := s.repo.Update(ctx, accountID, id, changes)
	if err != nil {
		if !errors.Is(err, ErrExpenseNotFound) {
			s.logger.Error("failed to update expense", zap.Uint("accountID", accountID), zap.Uint("id", id), zap.Error(err))
		}
		return nil, err
	}
	return e, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, accountID, id uint) error {
	if err := s.repo.Delete(ctx, accountID, id); err != nil {
		if !errors.Is(err, ErrExpenseNotFound) {
			s.logger.Error("failed to delete expense", zap.Uint("accountID", accountID), zap.Uint("id", id), zap.Error(err))
		}
		return err
	}
	return nil
}
