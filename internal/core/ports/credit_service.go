package ports

import (
	"context"
	"time"
)

// CreditService asks the external credit bureau for a person's credit limit.
type CreditService interface {
	GetCreditLimit(ctx context.Context, lastName string, dateOfBirth time.Time) (int, error)
}
