package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"

	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/coin"
	"github.com/iov-one/tranche/crypto"
	"github.com/iov-one/tranche/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"golang.org/x/crypto/ed25519"
)

const (
	appName = "tranched"
	dbName  = "abci.db"

	// genesisFunds is the balance of the development account.
	genesisFunds coin.Amount = 123456789
)

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode. The account owns the contract
// configuration and is the only allowed distributor.
//
// An address may be passed as the only argument, otherwise a new key is
// generated and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addr ledger.Address
	if len(args) > 0 {
		parsed, err := ledger.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "genesis account")
		}
		if err := parsed.Validate(); err != nil {
			return nil, errors.Wrap(err, "genesis account")
		}
		addr = parsed
	} else {
		generated, secret, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = generated
		fmt.Println(secret)
	}

	type (
		dict  map[string]interface{}
		array []interface{}
	)
	return json.Marshal(dict{
		"cash": array{
			dict{
				"address": addr,
				"amount":  genesisFunds,
			},
		},
		"conf": dict{
			"tranche": dict{
				"owner":        addr,
				"distributors": array{addr},
			},
		},
	})
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, dbName)
	}
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	return InlineApp(kv, logger, debug), nil
}

// InlineApp will take a previously prepared CommitStore and return a
// complete Application
func InlineApp(kv ledger.CommitKVStore, logger log.Logger, debug bool) abci.Application {
	application := Application(appName, Stack(), TxDecoder, kv, debug)
	application.WithLogger(logger)
	return application
}

type output struct {
	Address ledger.Address `json:"address"`
	Seed    string         `json:"seed"`
}

// GenerateCoinKey returns the address of a new key along with a json
// representation of its hex encoded seed. Give coins to this address
// and recover the key from the seed to use them.
func GenerateCoinKey() (ledger.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	addr := privKey.PublicKey().Address()

	seed := ed25519.PrivateKey(privKey.Ed25519).Seed()
	out := output{Address: addr, Seed: hex.EncodeToString(seed)}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return addr, string(keys), nil
}
