package app

import (
	"github.com/gogo/protobuf/proto"
	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/codec"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/x/cash"
	"github.com/iov-one/tranche/x/sigs"
	"github.com/iov-one/tranche/x/tranche"
)

// txData is the wire form of Tx. At most one message field is set.
type txData struct {
	Signatures                    []*sigs.StdSignature            `protobuf:"bytes,1,rep,name=signatures,proto3"`
	SendMsg                       *cash.SendMsg                   `protobuf:"bytes,51,opt,name=send_msg,proto3"`
	BumpSequenceMsg               *sigs.BumpSequenceMsg           `protobuf:"bytes,52,opt,name=bump_sequence_msg,proto3"`
	CreateTrancheMsg              *tranche.CreateMsg              `protobuf:"bytes,60,opt,name=create_tranche_msg,proto3"`
	DistributeTrancheMsg          *tranche.DistributeMsg          `protobuf:"bytes,61,opt,name=distribute_tranche_msg,proto3"`
	CloseTrancheMsg               *tranche.CloseMsg               `protobuf:"bytes,62,opt,name=close_tranche_msg,proto3"`
	UpdateTrancheConfigurationMsg *tranche.UpdateConfigurationMsg `protobuf:"bytes,63,opt,name=update_tranche_configuration_msg,proto3"`
}

func (m *txData) Reset()         { *m = txData{} }
func (m *txData) String() string { return proto.CompactTextString(m) }
func (*txData) ProtoMessage()    {}

func (d *txData) setMsg(msg ledger.Msg) error {
	switch m := msg.(type) {
	case *cash.SendMsg:
		d.SendMsg = m
	case *sigs.BumpSequenceMsg:
		d.BumpSequenceMsg = m
	case *tranche.CreateMsg:
		d.CreateTrancheMsg = m
	case *tranche.DistributeMsg:
		d.DistributeTrancheMsg = m
	case *tranche.CloseMsg:
		d.CloseTrancheMsg = m
	case *tranche.UpdateConfigurationMsg:
		d.UpdateTrancheConfigurationMsg = m
	default:
		return errors.Wrapf(errors.ErrMsg, "unsupported message %T", msg)
	}
	return nil
}

// msg returns the only message set, nil if there is none.
func (d *txData) msg() (ledger.Msg, error) {
	var found []ledger.Msg
	if d.SendMsg != nil {
		found = append(found, d.SendMsg)
	}
	if d.BumpSequenceMsg != nil {
		found = append(found, d.BumpSequenceMsg)
	}
	if d.CreateTrancheMsg != nil {
		found = append(found, d.CreateTrancheMsg)
	}
	if d.DistributeTrancheMsg != nil {
		found = append(found, d.DistributeTrancheMsg)
	}
	if d.CloseTrancheMsg != nil {
		found = append(found, d.CloseTrancheMsg)
	}
	if d.UpdateTrancheConfigurationMsg != nil {
		found = append(found, d.UpdateTrancheConfigurationMsg)
	}
	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "%d messages in one transaction", len(found))
	}
}

// Tx is the transaction format of the chain: one message and the
// signatures authorizing it.
type Tx struct {
	Sum        ledger.Msg
	Signatures []*sigs.StdSignature
}

// make sure tx fulfills all interfaces
var _ ledger.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (ledger.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the single message of the transaction.
func (tx *Tx) GetMsg() (ledger.Msg, error) {
	if tx.Sum == nil {
		return nil, errors.Wrap(errors.ErrInput, "unable to decode")
	}
	return tx.Sum, nil
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = sigs
	return bz, err
}

func (tx *Tx) Marshal() ([]byte, error) {
	data := txData{Signatures: tx.Signatures}
	if tx.Sum != nil {
		if err := data.setMsg(tx.Sum); err != nil {
			return nil, err
		}
	}
	return codec.Marshal(&data)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	*tx = Tx{}
	var data txData
	if err := codec.Unmarshal(raw, &data); err != nil {
		return err
	}
	msg, err := data.msg()
	if err != nil {
		return err
	}
	tx.Sum = msg
	tx.Signatures = data.Signatures
	return nil
}
