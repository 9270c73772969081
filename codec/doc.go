/*
Package codec serializes models, messages and transactions with the
gogo/protobuf reflection marshaller.

A type declares its wire layout with protobuf struct tags and exposes a
method free wire form of itself, for example

	type Balance struct {
		Amount coin.Amount `protobuf:"varint,1,opt,name=amount,proto3"`
	}

	type balanceData Balance

	func (m *balanceData) Reset()         { *m = balanceData{} }
	func (m *balanceData) String() string { return proto.CompactTextString(m) }
	func (*balanceData) ProtoMessage()    {}

	func (b *Balance) Marshal() ([]byte, error) {
		return codec.Marshal((*balanceData)(b))
	}

The wire form must not implement Marshal or Unmarshal, otherwise the
protobuf runtime would call back into the model. Embedded messages may
implement them, they are used as is.
*/
package codec
