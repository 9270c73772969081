package tranche

import (
	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/gconf"
)

// Initializer loads the distributor configuration from genesis. The
// configuration is optional.
type Initializer struct{}

var _ ledger.Initializer = Initializer{}

// FromGenesis stores opts["conf"]["tranche"] if present.
func (Initializer) FromGenesis(opts ledger.Options, db ledger.KVStore) error {
	err := gconf.InitConfig(db, opts, packageName, &Configuration{})
	if err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "tranche configuration")
	}
	return nil
}
