package account

import (
	"crypto/subtle"
	"time"

	"gorm.io/gorm"
)

// Role represents the set of possible account roles.
// @Description account role type: "admin" or "user"
type Role string

const (
	// Admin has full access
	Admin Role = "admin"
	// User has limited access
	User Role = "user"
)

// Account represents a registered user.
// swagger:model AccountResponse
// @Description account model
// @Property ID            body integer true  "unique identifier"
// @Property identifier    body string  true  "email address or E.164 phone number"
// @Property display_name  body string  true  "display name"
// @Property last_seen     body string  true  "last login or refresh timestamp"
// @Property role          body string  true  "account role"
type Account struct {
	gorm.Model
	// Identifier is the login key (unique)
	Identifier string `json:"identifier" gorm:"uniqueIndex;not null"`
	// DisplayName shown to other users
	DisplayName string `json:"display_name" gorm:"not null"`
	// Password hash (hidden from JSON)
	Password string `json:"-" gorm:"not null"`
	// Role of the account
	Role Role `json:"role" gorm:"type:text;default:'user'"`
	// Digests of the only token pair currently accepted for this account
	AccessTokenHash  *string `json:"-"`
	RefreshTokenHash *string `json:"-"`
	// LastSeen indicates the last token issuance
	LastSeen time.Time `json:"last_seen"`
}

// NewAccount initializes an Account with the default role.
func NewAccount(identifier, displayName, passwordHash string) *Account {
	return &Account{
		Identifier:  identifier,
		DisplayName: displayName,
		Password:    passwordHash,
		LastSeen:    time.Now().UTC(),
		Role:        User,
	}
}

// MatchesAccessToken reports whether digest is the stored access token digest.
func (a *Account) MatchesAccessToken(digest string) bool {
	return matches(a.AccessTokenHash, digest)
}

// MatchesRefreshToken reports whether digest is the stored refresh token digest.
func (a *Account) MatchesRefreshToken(digest string) bool {
	return matches(a.RefreshTokenHash, digest)
}

func matches(stored *string, digest string) bool {
	if stored == nil || *stored == "" || digest == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*stored), []byte(digest)) == 1
}
