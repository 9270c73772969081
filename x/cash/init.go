package cash

import (
	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/coin"
	"github.com/iov-one/tranche/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use ledger.Address, so address in hex, not base64
type GenesisAccount struct {
	Address ledger.Address `json:"address"`
	Amount  coin.Amount    `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ ledger.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts ledger.Options, kv ledger.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	control := NewController(NewBucket())
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := control.CoinMint(kv, acct.Address, acct.Amount); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
