package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered participant. The account's ID is also its holder
// ID in the holdings book: campaign owners, investors and depositors are
// all accounts.
type Account struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
