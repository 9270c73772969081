package server

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"time"

	"github.com/iov-one/tranche/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	// DirConfig is the tendermint configuration directory under home.
	DirConfig = "config"
	// AppStateKey is the genesis entry read by the application.
	AppStateKey = "app_state"
	// GenesisTimeKey is the genesis entry holding the chain start time.
	GenesisTimeKey = "genesis_time"

	genesisFile = "genesis.json"
)

// GenInitOptions can parse command-line args to generate default
// app_state for the genesis file. This is application-specific.
type GenInitOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

// InitCmd adds the app_state to the genesis file created by
// `tendermint init` in the given home directory. A genesis that already
// carries an app_state is never overwritten.
func InitCmd(gen GenInitOptions, logger log.Logger, home string, args []string) error {
	genFile := filepath.Join(home, DirConfig, genesisFile)
	doc, err := readGenesisDoc(genFile)
	if err != nil {
		return err
	}
	if len(doc[AppStateKey]) > 0 {
		return errors.Wrapf(errors.ErrState, "%s already has an app_state", genFile)
	}

	options, err := gen(args)
	if err != nil {
		return errors.Wrap(err, "generate app_state")
	}
	doc[AppStateKey] = options

	now, err := json.Marshal(time.Now().UTC())
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	doc[GenesisTimeKey] = now

	if err := writeGenesisDoc(genFile, doc); err != nil {
		return err
	}
	logger.Info("Initialized genesis", "path", genFile)
	return nil
}

func readGenesisDoc(path string) (GenesisDoc, error) {
	bz, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "genesis file, run `tendermint init` first: %s", err)
	}
	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "genesis file %s: %s", path, err)
	}
	return doc, nil
}

func writeGenesisDoc(path string, doc GenesisDoc) error {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := ioutil.WriteFile(path, out, 0600); err != nil {
		return errors.Wrapf(errors.ErrInput, "write %s: %s", path, err)
	}
	return nil
}
