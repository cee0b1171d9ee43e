package repository

import (
	"context"

	"asset-service/internal/domain/account"
)

// AccountReader is the slice of the account repository the auth middleware
// needs to resolve a token subject into a principal.
type AccountReader interface {
	GetByUsername(ctx context.Context, username string) (*account.Account, error)
}
