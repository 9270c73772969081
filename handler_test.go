package ledger_test

import (
	"encoding/json"
	"testing"

	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/store"
	"github.com/iov-one/tranche/weavetest/assert"
)

type keyInit struct {
	key string
	err error
}

func (k keyInit) FromGenesis(opts ledger.Options, db ledger.KVStore) error {
	var value string
	if err := opts.ReadOptions(k.key, &value); err != nil {
		return err
	}
	if k.err != nil {
		return k.err
	}
	return db.Set([]byte(k.key), []byte(value))
}

func TestChainInitializers(t *testing.T) {
	opts := ledger.Options{
		"first":  json.RawMessage(`"one"`),
		"second": json.RawMessage(`"two"`),
	}

	db := store.MemStore()
	ini := ledger.ChainInitializers(keyInit{key: "first"}, keyInit{key: "second"}, keyInit{key: "missing"})
	assert.Nil(t, ini.FromGenesis(opts, db))
	got, err := db.Get([]byte("second"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("two"), got)
	// a missing key reads as the zero value
	got, err = db.Get([]byte("missing"))
	assert.Nil(t, err)
	if len(got) != 0 {
		t.Fatalf("unexpected value for a missing option: %q", got)
	}

	db = store.MemStore()
	ini = ledger.ChainInitializers(keyInit{key: "first", err: errors.ErrState}, keyInit{key: "second"})
	assert.IsErr(t, errors.ErrState, ini.FromGenesis(opts, db))
	has, err := db.Has([]byte("second"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)
}

func TestQueryRouter(t *testing.T) {
	r := ledger.NewQueryRouter()
	assert.Equal(t, nil, r.Handler("/contracts"))

	var h ledger.QueryHandler = noopQuery{}
	r.RegisterAll(func(qr ledger.QueryRouter) { qr.Register("/contracts", h) })
	assert.Equal(t, h, r.Handler("/contracts"))
	assert.Panics(t, func() { r.Register("/contracts", h) })
}

type noopQuery struct{}

func (noopQuery) Query(ledger.ReadOnlyKVStore, string, []byte) ([]ledger.Model, error) {
	return nil, nil
}

func TestDeliverTxError(t *testing.T) {
	res := ledger.DeliverTxError(errors.Wrap(errors.ErrUnauthorized, "owner"), false)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code)

	_, err := ledger.ParseDeliverOrError(res)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	ok := ledger.DeliverOrError(&ledger.DeliverResult{Data: []byte{1}}, nil, false)
	parsed, err := ledger.ParseDeliverOrError(ok)
	assert.Nil(t, err)
	assert.Equal(t, []byte{1}, parsed.Data)
}
