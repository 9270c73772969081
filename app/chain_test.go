package app

import (
	"context"
	"testing"

	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/weavetest"
	"github.com/iov-one/tranche/x/utils"
	"github.com/stretchr/testify/assert"
)

// panicAtHeight panics when the block height is at least the configured one.
type panicAtHeight int64

func (p panicAtHeight) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	if h, _ := ledger.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
	return next.Check(ctx, db, tx)
}

func (p panicAtHeight) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	if h, _ := ledger.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
	return next.Deliver(ctx, db, tx)
}

func TestChain(t *testing.T) {
	c1 := &weavetest.Decorator{}
	c2 := &weavetest.Decorator{}
	c3 := &weavetest.Decorator{}
	h := &weavetest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		c2,
		panicAtHeight(6),
		c3,
	).WithHandler(h)

	bg := context.Background()

	ctx := ledger.WithHeight(bg, 4)
	_, err := stack.Check(ctx, nil, &weavetest.Tx{})
	assert.NoError(t, err)
	_, err = stack.Deliver(ctx, nil, &weavetest.Tx{})
	assert.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// the panic is recovered below c1, c3 and the handler are never reached
	ctx = ledger.WithHeight(bg, 8)
	_, err = stack.Check(ctx, nil, &weavetest.Tx{})
	assert.Error(t, err)
	_, err = stack.Deliver(ctx, nil, &weavetest.Tx{})
	assert.Error(t, err)

	assert.Equal(t, 4, c1.CallCount())
	assert.Equal(t, 4, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainSkipsNil(t *testing.T) {
	var missing *weavetest.Decorator
	d := &weavetest.Decorator{}
	h := &weavetest.Handler{}

	stack := ChainDecorators(nil, missing, d).Chain(nil).WithHandler(h)
	_, err := stack.Deliver(context.Background(), nil, &weavetest.Tx{})
	assert.NoError(t, err)
	assert.Equal(t, 1, d.CallCount())
	assert.Equal(t, 1, h.CallCount())
}
