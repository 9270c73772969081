package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/store"
	"github.com/iov-one/tranche/weavetest/assert"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("bucket", "name")

	latest, _, err := s.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), latest)

	var prev []byte
	for i := int64(1); i <= 300; i++ {
		val, err := s.NextVal(db)
		assert.Nil(t, err)
		if prev != nil && bytes.Compare(prev, val) >= 0 {
			t.Fatalf("sequence not increasing at %d", i)
		}
		prev = val
	}

	latest, raw, err := s.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(300), latest)
	assert.Equal(t, prev, raw)
}

func TestValidateSequence(t *testing.T) {
	assert.Nil(t, ValidateSequence(EncodeSequence(7)))
	assert.IsErr(t, errors.ErrEmpty, ValidateSequence(nil))
	assert.IsErr(t, errors.ErrInput, ValidateSequence([]byte{1, 2}))

	_, err := DecodeSequence([]byte{1})
	assert.IsErr(t, errors.ErrInput, err)
}
