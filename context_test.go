package ledger_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	ledger "github.com/iov-one/tranche"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContext(t *testing.T) {
	bg := context.Background()

	// try logger with default
	newLogger := log.NewTMLogger(&bytes.Buffer{})
	ctx := ledger.WithLogger(bg, newLogger)
	assert.Equal(t, ledger.DefaultLogger, ledger.GetLogger(bg))
	assert.Equal(t, newLogger, ledger.GetLogger(ctx))

	// test height - uninitialized
	_, ok := ledger.GetHeight(ctx)
	assert.False(t, ok)
	// set
	ctx = ledger.WithHeight(ctx, 7)
	h, ok := ledger.GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(7), h)
	// no reset
	assert.Panics(t, func() { ledger.WithHeight(ctx, 9) })

	// header
	now := time.Date(2019, 4, 1, 12, 0, 0, 0, time.UTC)
	_, ok = ledger.BlockTime(ctx)
	assert.False(t, ok)
	ctx = ledger.WithHeader(ctx, abci.Header{Height: 7, Time: now})
	bt, ok := ledger.BlockTime(ctx)
	require.True(t, ok)
	assert.Equal(t, now, bt)
	assert.Panics(t, func() { ledger.WithHeader(ctx, abci.Header{}) })

	// chain id MUST be set
	assert.Panics(t, func() { ledger.GetChainID(ctx) })
	// and must be valid
	assert.Panics(t, func() { ledger.WithChainID(ctx, "no") })
	ctx = ledger.WithChainID(ctx, "tranche-chain")
	assert.Equal(t, "tranche-chain", ledger.GetChainID(ctx))
	assert.Panics(t, func() { ledger.WithChainID(ctx, "other-chain") })
}

func TestChainID(t *testing.T) {
	cases := []struct {
		chainID string
		valid   bool
	}{
		{"", false},
		{"foo", false},
		{"special", true},
		{"wish-YOU-88", true},
		{"invalid;;chars", false},
		{"this-chain-id-is-way-too-long", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.valid, ledger.IsValidChainID(tc.chainID), tc.chainID)
	}
}
