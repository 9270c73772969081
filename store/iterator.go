package store

import (
	"bytes"
)

// mergeIterator combines the items cached in a btree with the iterator of
// the store below it. Cached items take precedence on equal keys and
// deleted items hide the parent entry.
type mergeIterator struct {
	cached    []item
	parent    Iterator
	ascending bool

	// current position, valid only if ok
	key   []byte
	value []byte
	ok    bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cached []item, parent Iterator, ascending bool) *mergeIterator {
	it := &mergeIterator{
		cached:    cached,
		parent:    parent,
		ascending: ascending,
	}
	it.advance()
	return it
}

// before returns true if a should be visited before b.
func (m *mergeIterator) before(a, b []byte) bool {
	cmp := bytes.Compare(a, b)
	if m.ascending {
		return cmp < 0
	}
	return cmp > 0
}

// advance moves to the next visible entry, skipping deleted items and
// the parent entries they shadow.
func (m *mergeIterator) advance() {
	for {
		parentOK := m.parent != nil && m.parent.Valid()
		switch {
		case len(m.cached) == 0 && !parentOK:
			m.ok = false
			m.key, m.value = nil, nil
			return
		case len(m.cached) == 0 || (parentOK && m.before(m.parent.Key(), m.cached[0].key)):
			m.key, m.value, m.ok = m.parent.Key(), m.parent.Value(), true
			m.parent.Next()
			return
		}

		head := m.cached[0]
		m.cached = m.cached[1:]
		if parentOK && bytes.Equal(head.key, m.parent.Key()) {
			m.parent.Next()
		}
		if head.deleted {
			continue
		}
		m.key, m.value, m.ok = head.key, head.value, true
		return
	}
}

// Valid implements Iterator and returns true iff it can be read
func (m *mergeIterator) Valid() bool {
	return m.ok
}

// Next moves the iterator to the next sequential key.
//
// If Valid returns false, this method will panic.
func (m *mergeIterator) Next() {
	if !m.ok {
		panic("Advanced past the end!")
	}
	m.advance()
}

// Key returns the key of the cursor.
func (m *mergeIterator) Key() []byte {
	if !m.ok {
		panic("Advanced past the end!")
	}
	return m.key
}

// Value returns the value of the cursor.
func (m *mergeIterator) Value() []byte {
	if !m.ok {
		panic("Advanced past the end!")
	}
	return m.value
}

// Close releases the Iterator.
func (m *mergeIterator) Close() {
	if m.parent != nil {
		m.parent.Close()
	}
	m.cached = nil
	m.ok = false
}

// SliceIterator wraps an Iterator over a slice of models
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator creates a new Iterator over this slice
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{
		data: data,
	}
}

// Valid implements Iterator and returns true iff it can be read
func (s *SliceIterator) Valid() bool {
	return s.idx < len(s.data)
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
//
// If Valid returns false, this method will panic.
func (s *SliceIterator) Next() {
	s.assertValid()
	s.idx++
}

func (s *SliceIterator) assertValid() {
	if s.idx >= len(s.data) {
		panic("Passed end of slice")
	}
}

// Key returns the key of the cursor.
func (s *SliceIterator) Key() (key []byte) {
	s.assertValid()
	return s.data[s.idx].Key
}

// Value returns the value of the cursor.
func (s *SliceIterator) Value() (value []byte) {
	s.assertValid()
	return s.data[s.idx].Value
}

// Close releases the Iterator.
func (s *SliceIterator) Close() {
	s.data = nil
}
