package cash

import (
	"math"
	"testing"

	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/coin"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/store"
	"github.com/iov-one/tranche/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinMint(t *testing.T) {
	db := store.MemStore()
	controller := NewController(NewBucket())

	addr := weavetest.NewCondition().Address()
	addr2 := weavetest.NewCondition().Address()

	_, err := controller.Balance(db, addr)
	assert.True(t, errors.ErrNotFound.Is(err), "%+v", err)

	require.NoError(t, controller.CoinMint(db, addr, 500))
	require.NoError(t, controller.CoinMint(db, addr, 20))
	assertBalance(t, controller, db, addr, 520)

	_, err = controller.Balance(db, addr2)
	assert.True(t, errors.ErrNotFound.Is(err))

	err = controller.CoinMint(db, addr, 0)
	assert.True(t, errors.ErrAmount.Is(err))

	err = controller.CoinMint(db, addr, math.MaxUint64)
	assert.True(t, errors.ErrOverflow.Is(err))
	assertBalance(t, controller, db, addr, 520)

	err = controller.CoinMint(db, ledger.Address("short"), 1)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestMoveCoins(t *testing.T) {
	src := weavetest.NewCondition().Address()
	dst := weavetest.NewCondition().Address()
	empty := weavetest.NewCondition().Address()

	cases := map[string]struct {
		from    ledger.Address
		to      ledger.Address
		amount  coin.Amount
		wantErr *errors.Error
		wantSrc coin.Amount
		wantDst coin.Amount
	}{
		"move part": {
			from: src, to: dst, amount: 300,
			wantSrc: 700, wantDst: 300,
		},
		"move all": {
			from: src, to: dst, amount: 1000,
			wantSrc: 0, wantDst: 1000,
		},
		"not enough funds": {
			from: src, to: dst, amount: 1001,
			wantErr: errors.ErrInsufficientAmount,
			wantSrc: 1000,
		},
		"zero cannot be moved": {
			from: src, to: dst, amount: 0,
			wantErr: errors.ErrAmount,
			wantSrc: 1000,
		},
		"empty source account": {
			from: empty, to: dst, amount: 1,
			wantErr: errors.ErrEmpty,
			wantSrc: 1000,
		},
		"move to self": {
			from: src, to: src, amount: 400,
			wantSrc: 1000,
		},
		"move to self more than held": {
			from: src, to: src, amount: 4000,
			wantErr: errors.ErrInsufficientAmount,
			wantSrc: 1000,
		},
		"invalid destination": {
			from: src, to: ledger.Address("bad"), amount: 1,
			wantErr: errors.ErrInput,
			wantSrc: 1000,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			controller := NewController(NewBucket())
			require.NoError(t, controller.CoinMint(db, src, 1000))

			err := controller.MoveCoins(db, tc.from, tc.to, tc.amount)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			assertBalance(t, controller, db, src, tc.wantSrc)
			if !src.Equals(tc.to) && tc.to.Validate() == nil {
				got, _ := controller.Balance(db, tc.to)
				assert.Equal(t, tc.wantDst, got)
			}
		})
	}
}

func TestMoveCoinsOverflow(t *testing.T) {
	db := store.MemStore()
	controller := NewController(NewBucket())
	src := weavetest.NewCondition().Address()
	dst := weavetest.NewCondition().Address()

	require.NoError(t, controller.CoinMint(db, src, 10))
	require.NoError(t, controller.CoinMint(db, dst, math.MaxUint64-5))

	err := controller.MoveCoins(db, src, dst, 6)
	assert.True(t, errors.ErrOverflow.Is(err))
	assertBalance(t, controller, db, src, 10)
	assertBalance(t, controller, db, dst, math.MaxUint64-5)
}

func assertBalance(t testing.TB, c Controller, db ledger.ReadOnlyKVStore, addr ledger.Address, want coin.Amount) {
	t.Helper()
	got, err := c.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
