package server

import (
	"bytes"
	"testing"

	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/weavetest/assert"
	"github.com/tendermint/tendermint/blockchain"
	dbm "github.com/tendermint/tendermint/libs/db"
)

func TestParseGetBlockArgs(t *testing.T) {
	_, _, err := parseGetBlockArgs(nil)
	assert.IsErr(t, errors.ErrInput, err)

	path, height, err := parseGetBlockArgs([]string{"data/blockstore.db", "-height=12"})
	assert.Nil(t, err)
	assert.Equal(t, "data/blockstore.db", path)
	assert.Equal(t, int64(12), height)

	_, height, err = parseGetBlockArgs([]string{"data/blockstore.db"})
	assert.Nil(t, err)
	assert.Equal(t, int64(0), height)
}

func TestPrintMissingBlock(t *testing.T) {
	store := blockchain.NewBlockStore(dbm.NewMemDB())
	var out bytes.Buffer
	err := printBlock(&out, store, 3)
	assert.IsErr(t, errors.ErrNotFound, err)
	assert.Equal(t, 0, out.Len())
}
