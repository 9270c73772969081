package orm

import (
	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/errors"
)

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr ledger.Iterator) []ledger.Model {
	defer itr.Close()

	var res []ledger.Model
	for ; itr.Valid(); itr.Next() {
		res = append(res, ledger.Pair(itr.Key(), itr.Value()))
	}
	return res
}

// queryPrefix returns every entry with a key starting with prefix.
func queryPrefix(db ledger.ReadOnlyKVStore, prefix []byte) ([]ledger.Model, error) {
	itr, err := db.Iterator(prefix, prefixEnd(prefix))
	if err != nil {
		return nil, errors.Wrap(err, "prefix iterator")
	}
	return ConsumeIterator(itr), nil
}

// prefixEnd returns the smallest key greater than every key with given
// prefix, or nil if no such key exists.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// RegisterQuery exposes the raw key-value store under "/". Data is the full
// database key, or a key prefix with the "prefix" modifier.
func RegisterQuery(qr ledger.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

func (rawQuery) Query(db ledger.ReadOnlyKVStore, mod string, data []byte) ([]ledger.Model, error) {
	switch mod {
	case ledger.KeyQueryMod:
		value, err := db.Get(data)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []ledger.Model{ledger.Pair(data, value)}, nil
	case ledger.PrefixQueryMod:
		return queryPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}
