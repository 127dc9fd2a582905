package accountfake

import (
	"context"
	"sync"
	"time"

	"github.com/expensaver/expensaver-api/internal/account"
)

var _ account.AccountRepository = (*FakeAccountRepo)(nil)

// FakeAccountRepo is an in-memory AccountRepository for tests. Setting Err makes
// every call fail with it, which is how store outages are simulated.
type FakeAccountRepo struct {
	accounts    map[uint]*account.Account
	identifiers map[string]uint
	nextID      uint
	lock        sync.RWMutex

	Err error
}

func NewFakeAccountRepo() *FakeAccountRepo {
	return &FakeAccountRepo{
		accounts:    make(map[uint]*account.Account),
		identifiers: make(map[string]uint),
		nextID:      1,
	}
}

func (r *FakeAccountRepo) FindByIdentifier(_ context.Context, identifier string) (*account.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	id, ok := r.identifiers[identifier]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return clone(r.accounts[id]), nil
}

func (r *FakeAccountRepo) FindByID(_ context.Context, id uint) (*account.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	a, ok := r.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return clone(a), nil
}

func (r *FakeAccountRepo) Insert(_ context.Context, a *account.Account) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.identifiers[a.Identifier]; ok {
		return account.ErrIdentifierTaken
	}
	a.ID = r.nextID
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	r.nextID++
	r.accounts[a.ID] = clone(a)
	r.identifiers[a.Identifier] = a.ID
	return nil
}

func (r *FakeAccountRepo) UpdateTokenPair(_ context.Context, id uint, accessHash, refreshHash string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Err != nil {
		return r.Err
	}
	a, ok := r.accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	setPair(a, accessHash, refreshHash)
	return nil
}

func (r *FakeAccountRepo) RotateTokenPair(_ context.Context, id uint, expectedRefreshHash, accessHash, refreshHash string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Err != nil {
		return r.Err
	}
	a, ok := r.accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	if a.RefreshTokenHash == nil || *a.RefreshTokenHash != expectedRefreshHash {
		return account.ErrTokenPairChanged
	}
	setPair(a, accessHash, refreshHash)
	return nil
}

func (r *FakeAccountRepo) Delete(_ context.Context, id uint) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Err != nil {
		return r.Err
	}
	a, ok := r.accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	delete(r.identifiers, a.Identifier)
	delete(r.accounts, id)
	return nil
}

// SetRole lets tests promote an account without going through a handler.
func (r *FakeAccountRepo) SetRole(id uint, role account.Role) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if a, ok := r.accounts[id]; ok {
		a.Role = role
	}
}

func setPair(a *account.Account, accessHash, refreshHash string) {
	a.AccessTokenHash = optional(accessHash)
	a.RefreshTokenHash = optional(refreshHash)
	a.LastSeen = time.Now().UTC()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func clone(a *account.Account) *account.Account {
	c := *a
	if a.AccessTokenHash != nil {
		c.AccessTokenHash = optional(*a.AccessTokenHash)
	}
	if a.RefreshTokenHash != nil {
		c.RefreshTokenHash = optional(*a.RefreshTokenHash)
	}
	return &c
}
