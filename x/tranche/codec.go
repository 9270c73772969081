package tranche

import "github.com/gogo/protobuf/proto"

// Wire forms of the models and messages of this package, encoded by
// reflection over their protobuf tags.

type contractData Contract

func (m *contractData) Reset()         { *m = contractData{} }
func (m *contractData) String() string { return proto.CompactTextString(m) }
func (*contractData) ProtoMessage()    {}

type configurationData Configuration

func (m *configurationData) Reset()         { *m = configurationData{} }
func (m *configurationData) String() string { return proto.CompactTextString(m) }
func (*configurationData) ProtoMessage()    {}

type createMsgData CreateMsg

func (m *createMsgData) Reset()         { *m = createMsgData{} }
func (m *createMsgData) String() string { return proto.CompactTextString(m) }
func (*createMsgData) ProtoMessage()    {}

type distributeMsgData DistributeMsg

func (m *distributeMsgData) Reset()         { *m = distributeMsgData{} }
func (m *distributeMsgData) String() string { return proto.CompactTextString(m) }
func (*distributeMsgData) ProtoMessage()    {}

type closeMsgData CloseMsg

func (m *closeMsgData) Reset()         { *m = closeMsgData{} }
func (m *closeMsgData) String() string { return proto.CompactTextString(m) }
func (*closeMsgData) ProtoMessage()    {}

type updateConfigurationMsgData UpdateConfigurationMsg

func (m *updateConfigurationMsgData) Reset()         { *m = updateConfigurationMsgData{} }
func (m *updateConfigurationMsgData) String() string { return proto.CompactTextString(m) }
func (*updateConfigurationMsgData) ProtoMessage()    {}
