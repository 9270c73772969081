package tranche

import (
	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/codec"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/gconf"
)

const packageName = "tranche"

// Configuration holds the addresses allowed to distribute tranches of any
// contract, in addition to its owner. Owner may update the configuration.
type Configuration struct {
	Owner        ledger.Address   `json:"owner" protobuf:"bytes,1,opt,name=owner,proto3"`
	Distributors []ledger.Address `json:"distributors" protobuf:"bytes,2,rep,name=distributors,proto3"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) GetOwner() ledger.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	if len(c.Owner) != 0 {
		if err := c.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	seen := make(map[string]struct{}, len(c.Distributors))
	for i, d := range c.Distributors {
		if err := d.Validate(); err != nil {
			return errors.Wrapf(err, "distributor %d", i)
		}
		if _, ok := seen[string(d)]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "distributor %s", d)
		}
		seen[string(d)] = struct{}{}
	}
	return nil
}

func (c *Configuration) Marshal() ([]byte, error) {
	return codec.Marshal((*configurationData)(c))
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*configurationData)(c))
}

// loadConf returns the stored configuration. A chain started without one
// behaves as if the distributor list was empty.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{}, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}
