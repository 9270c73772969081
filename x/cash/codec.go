package cash

import "github.com/gogo/protobuf/proto"

type balanceData Balance

func (m *balanceData) Reset()         { *m = balanceData{} }
func (m *balanceData) String() string { return proto.CompactTextString(m) }
func (*balanceData) ProtoMessage()    {}

type sendMsgData SendMsg

func (m *sendMsgData) Reset()         { *m = sendMsgData{} }
func (m *sendMsgData) String() string { return proto.CompactTextString(m) }
func (*sendMsgData) ProtoMessage()    {}
