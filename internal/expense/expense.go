package expense

import (
	"time"

	"github.com/expensaver/expensaver-api/internal/account"
	"gorm.io/gorm"
)

// Expense is a single spending record owned by one account.
// swagger:model ExpenseResponse
type Expense struct {
	gorm.Model
	AccountID uint            `json:"account_id" gorm:"index;not null"`
	Account   account.Account `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Title     string          `json:"title" gorm:"not null"`
	Amount    float64         `json:"amount" gorm:"not null"`
	Quantity  int             `json:"quantity" gorm:"not null;default:1"`
	SpentAt   time.Time       `json:"spent_at" gorm:"index;not null"`
}
