package app

import (
	"encoding/json"
	"io/ioutil"

	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/errors"
)

// Genesis is the part of the tendermint genesis file the application reads.
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState json.RawMessage `json:"app_state"`
}

// LoadGenesis reads a genesis file.
func LoadGenesis(filePath string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "genesis file: %s", err)
	}
	return &gen, nil
}

// Options returns the app state as extension options.
func (g *Genesis) Options() (ledger.Options, error) {
	var opts ledger.Options
	if len(g.AppState) == 0 {
		return opts, nil
	}
	if err := json.Unmarshal(g.AppState, &opts); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "app_state: %s", err)
	}
	return opts, nil
}

// LoadGenesis initializes the application state from a genesis file the
// same way InitChain does.
func (s *StoreApp) LoadGenesis(filePath string, init ledger.Initializer) error {
	gen, err := LoadGenesis(filePath)
	if err != nil {
		return err
	}
	return s.parseAppState(gen.AppState, gen.ChainID, init)
}
