/*
Package app links together all the various components
to construct the tranched app.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/app"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/orm"
	"github.com/iov-one/tranche/store/iavl"
	"github.com/iov-one/tranche/x"
	"github.com/iov-one/tranche/x/cash"
	"github.com/iov-one/tranche/x/sigs"
	"github.com/iov-one/tranche/x/tranche"
	"github.com/iov-one/tranche/x/utils"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// CashControl returns a controller for cash functions
func CashControl() cash.BaseController {
	return cash.NewController(cash.NewBucket())
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching wallet, nonce and contract messages.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	cash.RegisterRoutes(r, authFn, CashControl())
	sigs.RegisterRoutes(r, authFn)
	tranche.RegisterRoutes(r, authFn, CashControl())
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/wallets", "/auth", "/contracts" and "/"
func QueryRouter() ledger.QueryRouter {
	r := ledger.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		tranche.RegisterQuery,
		orm.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() ledger.Handler {
	return Chain().WithHandler(Router(Authenticator()))
}

// Initializers loads the genesis state of every extension.
func Initializers() ledger.Initializer {
	return ledger.ChainInitializers(
		cash.Initializer{},
		tranche.Initializer{},
	)
}

// Application constructs a basic ABCI application on top of the given
// store.
func Application(name string, h ledger.Handler, tx ledger.TxDecoder,
	kv ledger.CommitKVStore, debug bool) app.BaseApp {
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	store.WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug)
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path. An empty path keeps everything in memory.
func CommitKVStore(dbPath string) (ledger.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewCommitStoreWithDB(dbm.NewMemDB()), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name %q: %s", dbPath, err)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))
	return iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path))
}
