package authentication

import (
	"time"

	"github.com/expensaver/expensaver-api/internal/account"
)

// Claim is the verified payload of an access token.
type Claim struct {
	Subject   uint
	Role      account.Role
	ExpiresAt time.Time
}

// TokenPair is the only pair accepted for an account until the next issuance.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenSettings configures both token kinds. The two secrets must differ so a token
// of one kind never verifies as the other.
type TokenSettings struct {
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
	BcryptCost    int
}
