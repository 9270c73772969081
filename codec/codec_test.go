package codec

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tranche/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type label string

type inner struct {
	Name label `protobuf:"bytes,1,opt,name=name,proto3"`
}

type innerData inner

func (m *innerData) Reset()         { *m = innerData{} }
func (m *innerData) String() string { return proto.CompactTextString(m) }
func (*innerData) ProtoMessage()    {}

func (i *inner) Marshal() ([]byte, error) {
	return Marshal((*innerData)(i))
}

func (i *inner) Unmarshal(raw []byte) error {
	return Unmarshal(raw, (*innerData)(i))
}

type sample struct {
	Count uint64   `protobuf:"varint,1,opt,name=count,proto3"`
	Name  string   `protobuf:"bytes,2,opt,name=name,proto3"`
	Refs  [][]byte `protobuf:"bytes,3,rep,name=refs,proto3"`
	Inner *inner   `protobuf:"bytes,4,opt,name=inner,proto3"`
}

type sampleData sample

func (m *sampleData) Reset()         { *m = sampleData{} }
func (m *sampleData) String() string { return proto.CompactTextString(m) }
func (*sampleData) ProtoMessage()    {}

func TestWireLayout(t *testing.T) {
	s := sample{Count: 3, Name: "ab", Refs: [][]byte{{}, {1}}}
	raw, err := Marshal((*sampleData)(&s))
	require.NoError(t, err)
	want := []byte{
		0x08, 0x03, // count
		0x12, 0x02, 'a', 'b', // name
		0x1a, 0x00, // empty ref is kept
		0x1a, 0x01, 0x01,
	}
	assert.Equal(t, want, raw)

	empty, err := Marshal(&sampleData{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRoundTrip(t *testing.T) {
	s := sample{Count: 7, Name: "x", Refs: [][]byte{{1, 2}}, Inner: &inner{Name: "in"}}
	raw, err := Marshal((*sampleData)(&s))
	require.NoError(t, err)

	got := sample{Count: 99}
	require.NoError(t, Unmarshal(raw, (*sampleData)(&got)))
	assert.Equal(t, s, got)
}

func TestUnmarshalErrors(t *testing.T) {
	var s sample
	err := Unmarshal([]byte{0x12, 0x05, 'a'}, (*sampleData)(&s))
	assert.True(t, errors.ErrInput.Is(err))

	// unknown fields are skipped
	err = Unmarshal([]byte{0x48, 0x01, 0x08, 0x02}, (*sampleData)(&s))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), s.Count)
}
