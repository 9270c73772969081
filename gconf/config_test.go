package gconf

import (
	"github.com/gogo/protobuf/proto"
	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/codec"
	"github.com/iov-one/tranche/errors"
)

// myconfig is the configuration shape used by the tests of this package.
type myconfig struct {
	Owner ledger.Address `json:"owner" protobuf:"bytes,1,opt,name=owner,proto3"`
	Num   int64          `json:"num" protobuf:"varint,2,opt,name=num,proto3"`
	Str   string         `json:"str" protobuf:"bytes,3,opt,name=str,proto3"`
}

var _ OwnedConfig = (*myconfig)(nil)

func (c *myconfig) GetOwner() ledger.Address {
	return c.Owner
}

func (c *myconfig) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if c.Num < 0 {
		return errors.Wrap(errors.ErrInput, "num must not be negative")
	}
	return nil
}

func (c *myconfig) Marshal() ([]byte, error) {
	return codec.Marshal((*myconfigData)(c))
}

func (c *myconfig) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*myconfigData)(c))
}

type myconfigMsg struct {
	Patch *myconfig `protobuf:"bytes,1,opt,name=patch,proto3"`
}

var _ ledger.Msg = (*myconfigMsg)(nil)

func (m *myconfigMsg) Path() string {
	return "gconf/update"
}

func (m *myconfigMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return nil
}

func (m *myconfigMsg) Marshal() ([]byte, error) {
	return codec.Marshal((*myconfigMsgData)(m))
}

func (m *myconfigMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*myconfigMsgData)(m))
}

type myconfigData myconfig

func (m *myconfigData) Reset()         { *m = myconfigData{} }
func (m *myconfigData) String() string { return proto.CompactTextString(m) }
func (*myconfigData) ProtoMessage()    {}

type myconfigMsgData myconfigMsg

func (m *myconfigMsgData) Reset()         { *m = myconfigMsgData{} }
func (m *myconfigMsgData) String() string { return proto.CompactTextString(m) }
func (*myconfigMsgData) ProtoMessage()    {}
