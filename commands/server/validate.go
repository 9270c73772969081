package server

import (
	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/app"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/store"
)

// ValidateGenesis loads every given genesis file into an in-memory store
// and returns the first failure.
func ValidateGenesis(ini ledger.Initializer, genesisPaths []string) error {
	if len(genesisPaths) == 0 {
		return errors.Wrap(errors.ErrInput, "usage: cmd validate <genesis.json>...")
	}
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini ledger.Initializer, genesisPath string) error {
	gen, err := app.LoadGenesis(genesisPath)
	if err != nil {
		return err
	}
	if !ledger.IsValidChainID(gen.ChainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", gen.ChainID)
	}
	opts, err := gen.Options()
	if err != nil {
		return err
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()
	if err := ini.FromGenesis(opts, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
