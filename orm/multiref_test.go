package orm

import (
	"testing"

	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/weavetest/assert"
)

func TestMultiRef(t *testing.T) {
	a, b, c := []byte("a"), []byte("b"), []byte("c")

	m, err := NewMultiRef(c, a)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{a, c}, m.Refs)

	assert.Nil(t, m.Add(b))
	assert.Equal(t, [][]byte{a, b, c}, m.Refs)
	assert.IsErr(t, errors.ErrDuplicate, m.Add(b))

	raw, err := m.Marshal()
	assert.Nil(t, err)
	var got MultiRef
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, m.Refs, got.Refs)

	assert.Nil(t, m.Remove(a))
	assert.IsErr(t, errors.ErrNotFound, m.Remove(a))
	assert.Equal(t, [][]byte{b, c}, m.Refs)

	cpy := m.Copy().(*MultiRef)
	assert.Nil(t, cpy.Remove(b))
	assert.Equal(t, 2, len(m.Refs))

	assert.IsErr(t, errors.ErrEmpty, (&MultiRef{}).Validate())
}
