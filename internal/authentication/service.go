package authentication

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/expensaver/expensaver-api/internal/account"
	"github.com/expensaver/expensaver-api/internal/utils"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores everything past 72 bytes; longer secrets are rejected instead.
const maxSecretBytes = 72

type AuthenticationService interface {
	Register(ctx context.Context, identifier, displayName, secret string) (*account.Account, TokenPair, error)
	Login(ctx context.Context, identifier, secret string) (TokenPair, error)
	ValidateAccess(ctx context.Context, accessToken string) (*Claim, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	Logout(ctx context.Context, claim *Claim) error
	DeleteAccount(ctx context.Context, claim *Claim, secret string) error
}

type authenticationService struct {
	repo     account.AccountRepository
	logger   *zap.Logger
	settings TokenSettings
}

func NewAuthenticationService(
	repo account.AccountRepository,
	logger *zap.Logger,
	settings TokenSettings,
) AuthenticationService {
	if settings.BcryptCost == 0 {
		settings.BcryptCost = bcrypt.DefaultCost
	}
	return &authenticationService{
		repo:     repo,
		logger:   logger,
		settings: settings,
	}
}

func (a *authenticationService) Register(ctx context.Context, identifier, displayName, secret string) (*account.Account, TokenPair, error) {
	identifier = account.NormalizeIdentifier(identifier)
	displayName = strings.TrimSpace(displayName)

	if err := checkSecret(secret); err != nil {
		return nil, TokenPair{}, err
	}
	if displayName == "" {
		return nil, TokenPair{}, fmt.Errorf("%w: display name is required", ErrInvalidInput)
	}
	if err := account.CheckIdentifier(identifier); err != nil {
		return nil, TokenPair{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), a.settings.BcryptCost)
	if err != nil {
		a.logger.Error("failed to hash password", zap.Error(err))
		return nil, TokenPair{}, fmt.Errorf("hash password: %w", err)
	}

	acc := account.NewAccount(identifier, displayName, string(hashed))
	if err := a.repo.Insert(ctx, acc); err != nil {
		err = a.storeError("insert account", err, zap.String("identifier", identifier))
		return nil, TokenPair{}, err
	}

	pair, err := a.issue(ctx, acc)
	if err != nil {
		return nil, TokenPair{}, err
	}
	a.logger.Info("account registered", zap.Uint("accountID", acc.ID))
	return acc, pair, nil
}

func (a *authenticationService) Login(ctx context.Context, identifier, secret string) (TokenPair, error) {
	identifier = account.NormalizeIdentifier(identifier)
	if identifier == "" || secret == "" {
		return TokenPair{}, fmt.Errorf("%w: identifier and password are required", ErrInvalidInput)
	}

	// An unknown identifier returns before any hash comparison.
	acc, err := a.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return TokenPair{}, a.storeError("find account by identifier", err, zap.String("identifier", identifier))
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(secret)) != nil {
		a.logger.Warn("password mismatch", zap.Uint("accountID", acc.ID))
		return TokenPair{}, ErrInvalidCredentials
	}

	return a.issue(ctx, acc)
}

func (a *authenticationService) ValidateAccess(ctx context.Context, accessToken string) (*Claim, error) {
	if accessToken == "" {
		return nil, ErrMissingToken
	}

	claims, err := utils.ParseAccessToken(accessToken, a.settings.AccessSecret)
	if err != nil {
		return nil, classifyTokenError(err)
	}
	id, err := parseSubject(claims.Subject)
	if err != nil {
		return nil, err
	}

	acc, err := a.repo.FindByID(ctx, id)
	if err != nil {
		return nil, a.storeError("find account by id", err, zap.Uint("accountID", id))
	}
	if !acc.MatchesAccessToken(utils.HashToken(accessToken)) {
		return nil, ErrSuperseded
	}

	claim := &Claim{Subject: id, Role: claims.Role}
	if claims.ExpiresAt != nil {
		claim.ExpiresAt = claims.ExpiresAt.Time
	}
	return claim, nil
}

func (a *authenticationService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, ErrMissingToken
	}

	claims, err := utils.ParseRefreshToken(refreshToken, a.settings.RefreshSecret)
	if err != nil {
		return TokenPair{}, classifyTokenError(err)
	}
	id, err := parseSubject(claims.Subject)
	if err != nil {
		return TokenPair{}, err
	}

	acc, err := a.repo.FindByID(ctx, id)
	if err != nil {
		return TokenPair{}, a.storeError("find account by id", err, zap.Uint("accountID", id))
	}
	presented := utils.HashToken(refreshToken)
	if !acc.MatchesRefreshToken(presented) {
		a.logger.Warn("superseded refresh token presented", zap.Uint("accountID", id))
		return TokenPair{}, ErrSuperseded
	}

	pair, err := a.mint(acc)
	if err != nil {
		return TokenPair{}, err
	}
	err = a.repo.RotateTokenPair(ctx, acc.ID, presented,
		utils.HashToken(pair.AccessToken), utils.HashToken(pair.RefreshToken))
	if err != nil {
		return TokenPair{}, a.storeError("rotate token pair", err, zap.Uint("accountID", id))
	}
	return pair, nil
}

func (a *authenticationService) Logout(ctx context.Context, claim *Claim) error {
	if claim == nil {
		return ErrMissingToken
	}
	if err := a.repo.UpdateTokenPair(ctx, claim.Subject, "", ""); err != nil {
		return a.storeError("clear token pair", err, zap.Uint("accountID", claim.Subject))
	}
	a.logger.Info("account logged out", zap.Uint("accountID", claim.Subject))
	return nil
}

func (a *authenticationService) DeleteAccount(ctx context.Context, claim *Claim, secret string) error {
	if claim == nil {
		return ErrMissingToken
	}
	if secret == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	acc, err := a.repo.FindByID(ctx, claim.Subject)
	if err != nil {
		return a.storeError("find account by id", err, zap.Uint("accountID", claim.Subject))
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(secret)) != nil {
		a.logger.Warn("password mismatch on account deletion", zap.Uint("accountID", acc.ID))
		return ErrInvalidCredentials
	}
	if err := a.repo.Delete(ctx, acc.ID); err != nil {
		return a.storeError("delete account", err, zap.Uint("accountID", acc.ID))
	}
	a.logger.Info("account deleted", zap.Uint("accountID", acc.ID))
	return nil
}

// issue mints a pair and makes it the only accepted one for acc.
func (a *authenticationService) issue(ctx context.Context, acc *account.Account) (TokenPair, error) {
	pair, err := a.mint(acc)
	if err != nil {
		return TokenPair{}, err
	}
	accessHash := utils.HashToken(pair.AccessToken)
	refreshHash := utils.HashToken(pair.RefreshToken)
	if err := a.repo.UpdateTokenPair(ctx, acc.ID, accessHash, refreshHash); err != nil {
		return TokenPair{}, a.storeError("store token pair", err, zap.Uint("accountID", acc.ID))
	}
	acc.AccessTokenHash = &accessHash
	acc.RefreshTokenHash = &refreshHash
	return pair, nil
}

func (a *authenticationService) mint(acc *account.Account) (TokenPair, error) {
	subject := strconv.FormatUint(uint64(acc.ID), 10)

	contact := utils.Contact{Name: acc.DisplayName}
	if account.IsEmail(acc.Identifier) {
		contact.Email = acc.Identifier
	} else {
		contact.Phone = acc.Identifier
	}

	accessJWT, err := utils.IssueAccessToken(subject, acc.Role, contact, a.settings.AccessSecret, a.settings.AccessTTL)
	if err != nil {
		a.logger.Error("failed to sign access token", zap.Error(err))
		return TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refreshJWT, err := utils.IssueRefreshToken(subject, a.settings.RefreshSecret, a.settings.RefreshTTL)
	if err != nil {
		a.logger.Error("failed to sign refresh token", zap.Error(err))
		return TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return TokenPair{AccessToken: accessJWT, RefreshToken: refreshJWT}, nil
}

// storeError converts repository errors into the service taxonomy. Anything not
// recognised is treated as the store being unavailable.
func (a *authenticationService) storeError(op string, err error, fields ...zap.Field) error {
	switch {
	case errors.Is(err, account.ErrAccountNotFound):
		return ErrNotFound
	case errors.Is(err, account.ErrIdentifierTaken):
		return ErrDuplicateIdentifier
	case errors.Is(err, account.ErrTokenPairChanged):
		return ErrSuperseded
	}
	a.logger.Error(op+" failed", append(fields, zap.Error(err))...)
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}

func checkSecret(secret string) error {
	if secret == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if len(secret) > maxSecretBytes {
		return fmt.Errorf("%w: password longer than %d bytes", ErrInvalidInput, maxSecretBytes)
	}
	return nil
}

func parseSubject(subject string) (uint, error) {
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid subject %q", ErrMalformed, subject)
	}
	return uint(id), nil
}

// classifyTokenError checks the signature first: a forged token that is also
// expired is reported as forged.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
