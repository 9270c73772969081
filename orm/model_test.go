package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tranche/codec"
	"github.com/iov-one/tranche/errors"
)

// Counter is a model used by the tests of this package.
type Counter struct {
	Count uint64 `protobuf:"varint,1,opt,name=count,proto3"`
	Label string `protobuf:"bytes,2,opt,name=label,proto3"`
}

var _ CloneableData = (*Counter)(nil)

func (c *Counter) Validate() error {
	if c.Label == "" {
		return errors.Wrap(errors.ErrEmpty, "label")
	}
	return nil
}

func (c *Counter) Copy() CloneableData {
	cpy := *c
	return &cpy
}

func (c *Counter) Marshal() ([]byte, error) {
	return codec.Marshal((*counterData)(c))
}

func (c *Counter) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*counterData)(c))
}

type counterData Counter

func (m *counterData) Reset()         { *m = counterData{} }
func (m *counterData) String() string { return proto.CompactTextString(m) }
func (*counterData) ProtoMessage()    {}

func labelIndex(obj Object) ([]byte, error) {
	c, ok := obj.Value().(*Counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return []byte(c.Label), nil
}

func newCounterObj(key string, count uint64, label string) *SimpleObj {
	return NewSimpleObj([]byte(key), &Counter{Count: count, Label: label})
}
