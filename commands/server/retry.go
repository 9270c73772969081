package server

import (
	"bytes"
	"flag"
	"fmt"
	"io/ioutil"

	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/errors"
	iavlstore "github.com/iov-one/tranche/store/iavl"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tendermint/tendermint/types"
)

const (
	flagUntilError = "error"
	flagMaxTries   = "max"
)

type retryArgs struct {
	dbPath     string
	blockPath  string
	debug      bool
	untilError bool
	maxTries   int
}

func parseRetryArgs(args []string) (retryArgs, error) {
	if len(args) < 2 {
		return retryArgs{}, errors.Wrap(errors.ErrInput,
			"usage: cmd retry <path to abci.db> <path to block.json> [-debug] [-error] [-max=N]")
	}
	res := retryArgs{
		dbPath:    args[0],
		blockPath: args[1],
	}
	retryFlags := flag.NewFlagSet("retry", flag.ContinueOnError)
	retryFlags.BoolVar(&res.debug, flagDebug, false, "print out debug info")
	retryFlags.BoolVar(&res.untilError, flagUntilError, false, "retry multiple times until an error appears")
	retryFlags.IntVar(&res.maxTries, flagMaxTries, 10, "maximum number of times to retry if -error is passed")
	if err := retryFlags.Parse(args[2:]); err != nil {
		return res, errors.Wrap(errors.ErrInput, err.Error())
	}
	return res, nil
}

// InlineAppGenerator builds the application on top of an already opened
// store.
type InlineAppGenerator func(ledger.CommitKVStore, log.Logger, bool) abci.Application

type appBuilder func(ledger.CommitKVStore) abci.Application

func wrapInlineAppGenerator(gen InlineAppGenerator, logger log.Logger, debug bool) appBuilder {
	return func(kv ledger.CommitKVStore) abci.Application {
		return gen(kv, logger, debug)
	}
}

// RetryCmd takes the app state and the last block from the file system.
// It verifies that they match, then rolls back one block and re-runs the
// given block. It prints the new hash after running.
//
// If -error is passed, then it will try -max times until a different app
// hash results. This finds non-deterministic transaction processing.
func RetryCmd(makeApp InlineAppGenerator, logger log.Logger, home string, args []string) error {
	flags, err := parseRetryArgs(args)
	if err != nil {
		return err
	}

	fmt.Println("--> Loading Block")
	blockJSON, err := ioutil.ReadFile(flags.blockPath)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	var block *types.Block
	if err := cdc.UnmarshalJSON(blockJSON, &block); err != nil {
		return errors.Wrapf(errors.ErrInput, "block json: %s", err)
	}

	fmt.Println("--> Loading Database")
	dir, name, err := splitDBPath(flags.dbPath)
	if err != nil {
		return err
	}
	kv, err := iavlstore.NewCommitStore(dir, name)
	if err != nil {
		return errors.Wrap(err, "error reading abci data")
	}
	defer kv.Close()
	if err := kv.LoadLatestVersion(); err != nil {
		return err
	}

	builder := wrapInlineAppGenerator(makeApp, logger, flags.debug)
	return retryBlock(builder, kv, block, flags.untilError, flags.maxTries)
}

func retryBlock(builder appBuilder, kv *iavlstore.CommitStore, block *types.Block, untilError bool, maxTries int) error {
	latest, err := kv.LatestVersion()
	if err != nil {
		return err
	}
	if latest.Version == 0 {
		return errors.Wrap(errors.ErrState, "iavl tree is empty")
	}
	if latest.Version != block.Header.Height {
		return errors.Wrapf(errors.ErrState,
			"height mismatch - block=%d, abcistore=%d", block.Header.Height, latest.Version)
	}
	fmt.Printf("Original Height: %d\n", block.Header.Height)
	fmt.Printf("Original Hash: %X\n", latest.Hash)

	same, err := rerunBlock(builder, kv, block, latest.Hash)
	if err != nil {
		return err
	}
	for same && untilError && maxTries > 0 {
		maxTries--
		same, err = rerunBlock(builder, kv, block, latest.Hash)
		if err != nil {
			return err
		}
	}
	if !same {
		return errors.Wrapf(errors.ErrState, "block %d produced a different app hash", block.Header.Height)
	}
	return nil
}

func rerunBlock(builder appBuilder, kv *iavlstore.CommitStore, block *types.Block, origHash []byte) (bool, error) {
	backHeight := block.Header.Height - 1

	fmt.Printf("Rollback to height: %d\n", backHeight)
	if err := kv.Rollback(backHeight); err != nil {
		return false, err
	}
	app := builder(kv)

	fmt.Println("---> Begin Block")
	app.BeginBlock(abci.RequestBeginBlock{Hash: block.Header.Hash(), Header: toAbciHeader(block.Header)})
	for i, tx := range block.Txs {
		res := app.DeliverTx(tx)
		fmt.Printf("---> Deliver Tx %d: code=%d\n", i, res.Code)
	}
	fmt.Println("---> End Block")
	app.EndBlock(abci.RequestEndBlock{Height: block.Header.Height})
	hash := app.Commit().Data
	fmt.Printf("Recomputed Hash: %X\n", hash)

	return bytes.Equal(origHash, hash), nil
}

func toAbciHeader(h types.Header) abci.Header {
	lb := h.LastBlockID
	return abci.Header{
		Version: abci.Version{
			Block: uint64(h.Version.Block),
			App:   uint64(h.Version.App),
		},
		ChainID:  h.ChainID,
		Height:   h.Height,
		Time:     h.Time,
		NumTxs:   h.NumTxs,
		TotalTxs: h.TotalTxs,
		LastBlockId: abci.BlockID{
			Hash: lb.Hash,
			PartsHeader: abci.PartSetHeader{
				Total: int32(lb.PartsHeader.Total),
				Hash:  lb.PartsHeader.Hash,
			},
		},
		LastCommitHash:     h.LastCommitHash,
		DataHash:           h.DataHash,
		ValidatorsHash:     h.ValidatorsHash,
		NextValidatorsHash: h.NextValidatorsHash,
		ConsensusHash:      h.ConsensusHash,
		AppHash:            h.AppHash,
		LastResultsHash:    h.LastResultsHash,
		EvidenceHash:       h.EvidenceHash,
		ProposerAddress:    h.ProposerAddress,
	}
}
