package cash

import (
	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/codec"
	"github.com/iov-one/tranche/coin"
	"github.com/iov-one/tranche/errors"
)

const (
	pathSendMsg = "cash/send"

	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// SendMsg moves funds from the source wallet, which must sign, to the
// destination wallet.
type SendMsg struct {
	Source      ledger.Address `protobuf:"bytes,1,opt,name=source,proto3"`
	Destination ledger.Address `protobuf:"bytes,2,opt,name=destination,proto3"`
	Amount      coin.Amount    `protobuf:"varint,3,opt,name=amount,proto3"`
	Memo        string         `protobuf:"bytes,4,opt,name=memo,proto3"`
}

// Ensure we implement the Msg interface
var _ ledger.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrState, "memo too long")
	}
	return nil
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return codec.Marshal((*sendMsgData)(m))
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*sendMsgData)(m))
}
