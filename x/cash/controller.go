package cash

import (
	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/coin"
	"github.com/iov-one/tranche/errors"
)

// CoinMover is an interface for moving coins between accounts.
type CoinMover interface {
	// MoveCoins removes funds from the source account and adds them to the
	// destination account. This operation is atomic.
	MoveCoins(db ledger.KVStore, src, dest ledger.Address, amount coin.Amount) error
}

// CoinMinter is an interface to create new coins.
type CoinMinter interface {
	// CoinMint increases the number of funds on given account by a
	// specified amount.
	CoinMint(db ledger.KVStore, dest ledger.Address, amount coin.Amount) error
}

// Balancer reports the funds of an account.
type Balancer interface {
	// Balance returns the funds held by given address. ErrNotFound is
	// returned if the address never held anything.
	Balance(db ledger.ReadOnlyKVStore, addr ledger.Address) (coin.Amount, error)
}

// Controller is the functionality needed by cash.Handler and cash.Decorator.
// BaseController should work plenty fine, but you can add other logic if so
// desired.
type Controller interface {
	CoinMover
	CoinMinter
	Balancer
}

// BaseController is a simple implementation of controller wallet must return
// a concrete type (not pointer).
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a base controller
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount stored in the wallet.
func (c BaseController) Balance(db ledger.ReadOnlyKVStore, addr ledger.Address) (coin.Amount, error) {
	obj, err := c.bucket.Get(db, addr)
	if err != nil {
		return 0, errors.Wrap(err, "cannot get wallet")
	}
	if obj == nil {
		return 0, errors.Wrapf(errors.ErrNotFound, "wallet %s", addr)
	}
	return AsAmount(obj), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db ledger.KVStore, src, dest ledger.Address, amount coin.Amount) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "cannot move")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return errors.Wrap(err, "cannot get source wallet")
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}
	have := AsAmount(sender)
	left, err := have.Subtract(amount)
	if err != nil {
		return errors.Wrapf(err, "source %s holds %s", src, have)
	}

	// Moving to self changes nothing once the funds are known to exist.
	if src.Equals(dest) {
		return nil
	}

	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot get destination wallet")
	}
	got, err := AsAmount(recipient).Add(amount)
	if err != nil {
		return errors.Wrapf(err, "destination %s", dest)
	}

	sender.Value().(*Balance).Amount = left
	recipient.Value().(*Balance).Amount = got
	if err := c.bucket.Save(db, sender); err != nil {
		return errors.Wrap(err, "cannot save source wallet")
	}
	if err := c.bucket.Save(db, recipient); err != nil {
		return errors.Wrap(err, "cannot save destination wallet")
	}
	return nil
}

// CoinMint attempts to add the given amount of coins to the destination
// address. Fails if it overflows the wallet.
func (c BaseController) CoinMint(db ledger.KVStore, dest ledger.Address, amount coin.Amount) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "cannot mint")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot get destination wallet")
	}
	got, err := AsAmount(recipient).Add(amount)
	if err != nil {
		return errors.Wrapf(err, "destination %s", dest)
	}
	recipient.Value().(*Balance).Amount = got
	return c.bucket.Save(db, recipient)
}
