package utils

import (
	"context"
	"fmt"
	"testing"

	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/store"
	"github.com/iov-one/tranche/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	// always write ok, ov before calling functions
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}
	// a default error if desired
	derr := fmt.Errorf("something went wrong")

	cases := map[string]struct {
		save    ledger.Decorator
		handler ledger.Handler
		check   bool // whether to call Check or Deliver
		isError bool

		written [][]byte
		missing [][]byte
	}{
		"savepoint deactivated, returns error, both written": {
			save:    NewSavepoint(),
			handler: weavetest.WriteHandler{Key: nk, Value: nv, Err: derr},
			check:   true,
			isError: true,
			written: [][]byte{ok, nk},
		},
		"savepoint activated, returns error, one written": {
			save:    NewSavepoint().OnCheck(),
			handler: weavetest.WriteHandler{Key: nk, Value: nv, Err: derr},
			check:   true,
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint activated for deliver": {
			save:    NewSavepoint().OnDeliver(),
			handler: weavetest.WriteHandler{Key: nk, Value: nv, Err: derr},
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"double activation maintains both behaviors": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			handler: weavetest.WriteHandler{Key: nk, Value: nv, Err: derr},
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint on check does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			handler: weavetest.WriteHandler{Key: nk, Value: nv, Err: derr},
			isError: true,
			written: [][]byte{ok, nk},
		},
		"no rollback on success": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			handler: weavetest.WriteHandler{Key: nk, Value: nv},
			written: [][]byte{ok, nk},
		},
		"panic recovered inside savepoint rolls back": {
			save:    NewSavepoint().OnDeliver(),
			handler: weavetest.Decorate(weavetest.WriteHandler{Key: nk, Value: nv}, panicAfter{}),
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			require.NoError(t, kv.Set(ok, ov))

			var err error
			if tc.check {
				_, err = tc.save.Check(ctx, kv, nil, tc.handler)
			} else {
				_, err = tc.save.Deliver(ctx, kv, nil, tc.handler)
			}

			if tc.isError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			for _, k := range tc.written {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "%x", k)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "%x", k)
			}
		})
	}
}

// panicAfter lets the wrapped handler write and then panics. Recovery turns
// the panic into an error so the savepoint above can discard the write.
type panicAfter struct{}

func (panicAfter) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	return NewRecovery().Check(ctx, db, tx, checkerFunc(func() (*ledger.CheckResult, error) {
		next.Check(ctx, db, tx)
		panic("after check")
	}))
}

func (panicAfter) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	return NewRecovery().Deliver(ctx, db, tx, delivererFunc(func() (*ledger.DeliverResult, error) {
		next.Deliver(ctx, db, tx)
		panic("after deliver")
	}))
}

type checkerFunc func() (*ledger.CheckResult, error)

func (fn checkerFunc) Check(ledger.Context, ledger.KVStore, ledger.Tx) (*ledger.CheckResult, error) {
	return fn()
}

type delivererFunc func() (*ledger.DeliverResult, error)

func (fn delivererFunc) Deliver(ledger.Context, ledger.KVStore, ledger.Tx) (*ledger.DeliverResult, error) {
	return fn()
}
