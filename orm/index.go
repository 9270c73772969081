package orm

import (
	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/errors"
)

const indexPrefix = "_i."

// Indexer calculates the secondary index key for a given object.
// A nil key leaves the object out of the index.
type Indexer func(Object) ([]byte, error)

// Index maintains a secondary index over a Bucket. Entries are stored under
// _i.<name>:<index key> and hold the primary key (unique index) or a
// MultiRef of primary keys.
type Index struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
	refKey func([]byte) []byte
}

var _ ledger.QueryHandler = Index{}

// NewIndex constructs an index. refKey turns a primary key into the full
// database key of the indexed object, and is used to answer queries.
func NewIndex(name string, indexer Indexer, unique bool, refKey func([]byte) []byte) Index {
	return Index{
		name:   name,
		id:     []byte(indexPrefix + name + ":"),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

// IndexKey returns the full key of an index entry.
func (i Index) IndexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update changes the index entries to reflect the transition from prev to
// save. A nil prev is a create, a nil save is a delete.
func (i Index) Update(db ledger.KVStore, prev Object, save Object) error {
	var prevKey, saveKey []byte
	var err error
	if prev != nil {
		if prevKey, err = i.index(prev); err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
	}
	if save != nil {
		if saveKey, err = i.index(save); err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
	}

	if prev != nil && save != nil && string(prevKey) == string(saveKey) {
		return nil
	}
	if prevKey != nil {
		if err := i.remove(db, prevKey, prev.Key()); err != nil {
			return err
		}
	}
	if saveKey != nil {
		if err := i.insert(db, saveKey, save.Key()); err != nil {
			return err
		}
	}
	return nil
}

func (i Index) insert(db ledger.KVStore, key []byte, pk []byte) error {
	dbkey := i.IndexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return err
	}

	if i.unique {
		if cur != nil {
			return errors.Wrapf(errors.ErrDuplicate, "index %s: %X", i.name, key)
		}
		return db.Set(dbkey, pk)
	}

	var refs MultiRef
	if err := refs.Unmarshal(cur); err != nil {
		return err
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	raw, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(dbkey, raw)
}

func (i Index) remove(db ledger.KVStore, key []byte, pk []byte) error {
	dbkey := i.IndexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrapf(errors.ErrNotFound, "index %s: %X", i.name, key)
	}

	if i.unique {
		return db.Delete(dbkey)
	}

	var refs MultiRef
	if err := refs.Unmarshal(cur); err != nil {
		return err
	}
	if err := refs.Remove(pk); err != nil {
		return err
	}
	if len(refs.Refs) == 0 {
		return db.Delete(dbkey)
	}
	raw, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(dbkey, raw)
}

// GetAt returns the primary keys stored under given index key.
func (i Index) GetAt(db ledger.ReadOnlyKVStore, key []byte) ([][]byte, error) {
	raw, err := db.Get(i.IndexKey(key))
	if err != nil || raw == nil {
		return nil, err
	}
	return i.refs(raw)
}

func (i Index) refs(raw []byte) ([][]byte, error) {
	if i.unique {
		return [][]byte{raw}, nil
	}
	var refs MultiRef
	if err := refs.Unmarshal(raw); err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

// Query returns the objects referenced by the index. With KeyQueryMod data
// is the exact index key, with PrefixQueryMod every index key starting with
// data is matched.
func (i Index) Query(db ledger.ReadOnlyKVStore, mod string, data []byte) ([]ledger.Model, error) {
	var pks [][]byte
	switch mod {
	case ledger.KeyQueryMod:
		refs, err := i.GetAt(db, data)
		if err != nil {
			return nil, err
		}
		pks = refs
	case ledger.PrefixQueryMod:
		entries, err := queryPrefix(db, i.IndexKey(data))
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			refs, err := i.refs(e.Value)
			if err != nil {
				return nil, err
			}
			pks = append(pks, refs...)
		}
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}

	res := make([]ledger.Model, 0, len(pks))
	for _, pk := range pks {
		key := i.refKey(pk)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, errors.Wrapf(errors.ErrState, "index %s points to missing %X", i.name, pk)
		}
		res = append(res, ledger.Pair(key, value))
	}
	return res, nil
}
