package account

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// AccountService is the read side used by account handlers. Writes go through the
// authentication service, which owns credentials and token state.
type AccountService interface {
	ReadAccountByID(ctx context.Context, id uint) (*Account, error)
	ReadAccountByIdentifier(ctx context.Context, identifier string) (*Account, error)
}

type accountService struct {
	repo   AccountRepository
	logger *zap.Logger
}

func NewAccountService(repo AccountRepository, logger *zap.Logger) AccountService {
	return &accountService{
		repo:   repo,
		logger: logger,
	}
}

func (s *accountService) ReadAccountByID(ctx context.Context, id uint) (*Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logFailure("failed to get account by ID", err, zap.Uint("id", id))
		return nil, err
	}
	return account, nil
}

func (s *accountService) ReadAccountByIdentifier(ctx context.Context, identifier string) (*Account, error) {
	account, err := s.repo.FindByIdentifier(ctx, NormalizeIdentifier(identifier))
	if err != nil {
		s.logFailure("failed to get account by identifier", err, zap.String("identifier", identifier))
		return nil, err
	}
	return account, nil
}

func (s *accountService) logFailure(msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if errors.Is(err, ErrAccountNotFound) {
		s.logger.Warn(msg, fields...)
		return
	}
	s.logger.Error(msg, fields...)
}
