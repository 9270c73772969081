package orm

import (
	"testing"

	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/store"
	"github.com/iov-one/tranche/weavetest/assert"
)

func TestBucketName(t *testing.T) {
	obj := NewSimpleObj(nil, &Counter{})

	assert.Panics(t, func() {
		// An invalid bucket name must crash.
		NewBucket("l33t", obj)
	})
}

func TestBucketNameCollision(t *testing.T) {
	const bucketName = "mybucket"
	var objkey = []byte("collision-key")

	o1 := newCounterObj("collision-key", 1, "one")
	b1 := NewBucket(bucketName, o1)

	o2 := NewSimpleObj(objkey, &MultiRef{Refs: [][]byte{[]byte("foobar")}})
	b2 := NewBucket(bucketName, o2)

	db := store.MemStore()
	assert.Nil(t, b1.Save(db, o1))

	// Buckets do not know about each other. Saving an object under the
	// same key overwrites and because there is no check of stored data,
	// this operation does not fail.
	assert.Nil(t, b2.Save(db, o2))

	// Loading an object using the wrong bucket must fail because the
	// stored field has a different wire type.
	if _, err := b1.Get(db, objkey); !errors.ErrModel.Is(err) {
		t.Fatalf("want model error, got %+v", err)
	}
}

func TestBucketCannotSaveInvalid(t *testing.T) {
	o := newCounterObj("mykey", 1, "")
	b := NewBucket("mybucket", o)

	db := store.MemStore()
	if err := b.Save(db, o); !errors.ErrEmpty.Is(err) {
		t.Fatalf("invalid object must not save: %+v", err)
	}
	if err := b.Save(db, NewSimpleObj(nil, &Counter{Label: "x"})); !errors.ErrEmpty.Is(err) {
		t.Fatalf("object without a key must not save: %+v", err)
	}
}

func TestBucketGetSaveDelete(t *testing.T) {
	o := newCounterObj("mykey", 848, "first")
	b := NewBucket("mybucket", o)
	db := store.MemStore()

	assert.Nil(t, b.Save(db, o))

	res, err := b.Get(db, []byte("mykey"))
	assert.Nil(t, err)
	c, ok := res.Value().(*Counter)
	if !ok {
		t.Fatalf("unexpected type: %T", res.Value())
	}
	assert.Equal(t, uint64(848), c.Count)

	// res holds a reference, so changing it and saving updates the state
	c.Count = 59
	assert.Nil(t, b.Save(db, res))
	res, err = b.Get(db, []byte("mykey"))
	assert.Nil(t, err)
	assert.Equal(t, uint64(59), res.Value().(*Counter).Count)

	has, err := b.Has(db, []byte("mykey"))
	assert.Nil(t, err)
	assert.Equal(t, true, has)

	assert.Nil(t, b.Delete(db, []byte("mykey")))
	res, err = b.Get(db, []byte("mykey"))
	assert.Nil(t, err)
	assert.Nil(t, res)
}

func TestBucketQuery(t *testing.T) {
	b := NewBucket("cnts", NewSimpleObj(nil, &Counter{}))
	db := store.MemStore()

	for _, o := range []*SimpleObj{
		newCounterObj("a1", 1, "x"),
		newCounterObj("a2", 2, "y"),
		newCounterObj("b1", 3, "z"),
	} {
		assert.Nil(t, b.Save(db, o))
	}

	qr := ledger.NewQueryRouter()
	b.Register("counters", qr)
	h := qr.Handler("/counters")
	if h == nil {
		t.Fatal("bucket not registered")
	}

	res, err := h.Query(db, ledger.KeyQueryMod, []byte("a2"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, []byte("cnts:a2"), res[0].Key)

	res, err = h.Query(db, ledger.KeyQueryMod, []byte("missing"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	res, err = h.Query(db, ledger.PrefixQueryMod, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))
	assert.Equal(t, []byte("cnts:a1"), res[0].Key)

	_, err = h.Query(db, "range", nil)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestBucketSequence(t *testing.T) {
	b := NewBucket("cnts", NewSimpleObj(nil, &Counter{}))
	db := store.MemStore()

	seq := b.Sequence(SeqID)
	first, err := seq.NextVal(db)
	assert.Nil(t, err)
	second, err := seq.NextVal(db)
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(1), first)
	assert.Equal(t, EncodeSequence(2), second)

	// sequences of different buckets are independent
	other := NewBucket("other", NewSimpleObj(nil, &Counter{})).Sequence(SeqID)
	n, err := other.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), n)
}
