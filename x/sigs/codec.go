package sigs

import "github.com/gogo/protobuf/proto"

type stdSignatureData StdSignature

func (m *stdSignatureData) Reset()         { *m = stdSignatureData{} }
func (m *stdSignatureData) String() string { return proto.CompactTextString(m) }
func (*stdSignatureData) ProtoMessage()    {}

type accountData UserData

func (m *accountData) Reset()         { *m = accountData{} }
func (m *accountData) String() string { return proto.CompactTextString(m) }
func (*accountData) ProtoMessage()    {}

type bumpSequenceMsgData BumpSequenceMsg

func (m *bumpSequenceMsgData) Reset()         { *m = bumpSequenceMsgData{} }
func (m *bumpSequenceMsgData) String() string { return proto.CompactTextString(m) }
func (*bumpSequenceMsgData) ProtoMessage()    {}
