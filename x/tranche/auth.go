package tranche

import (
	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/x"
)

// CanDistribute returns true if the owner of the contract or any of the
// distributors signed the transaction.
func CanDistribute(ctx ledger.Context, auth x.Authenticator, c *Contract, distributors []ledger.Address) bool {
	return CanClose(ctx, auth, c) || x.HasAnyAddress(ctx, auth, distributors)
}

// CanClose returns true if the owner of the contract signed the
// transaction.
func CanClose(ctx ledger.Context, auth x.Authenticator, c *Contract) bool {
	return auth.HasAddress(ctx, c.Owner)
}
