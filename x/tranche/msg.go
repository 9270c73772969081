package tranche

import (
	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/codec"
	"github.com/iov-one/tranche/coin"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/orm"
)

const (
	pathCreateMsg              = "tranche/create"
	pathDistributeMsg          = "tranche/distribute"
	pathCloseMsg               = "tranche/close"
	pathUpdateConfigurationMsg = "tranche/update_configuration"
)

// CreateMsg funds a new contract from the wallet of the main signer.
type CreateMsg struct {
	TotalAmount  coin.Amount      `protobuf:"varint,1,opt,name=total_amount,proto3"`
	TrancheCount uint64           `protobuf:"varint,2,opt,name=tranche_count,proto3"`
	Recipients   []ledger.Address `protobuf:"bytes,3,rep,name=recipients,proto3"`
}

var _ ledger.Msg = (*CreateMsg)(nil)

func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Validate checks the message in a fixed order and reports only the first
// problem found.
func (m *CreateMsg) Validate() error {
	if uint64(len(m.Recipients)) != m.TrancheCount {
		return errors.Wrapf(ErrInvalidRecipientsCount, "%d recipients for %d tranches", len(m.Recipients), m.TrancheCount)
	}
	if m.TotalAmount == 0 {
		return errors.Wrap(ErrInvalidAmount, "total must be positive")
	}
	if m.TrancheCount == 0 {
		return errors.Wrap(ErrInvalidTrancheCount, "at least one tranche required")
	}
	return validateRecipients(m.Recipients, m.TrancheCount)
}

func (m *CreateMsg) Marshal() ([]byte, error) {
	return codec.Marshal((*createMsgData)(m))
}

func (m *CreateMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*createMsgData)(m))
}

// DistributeMsg pays the next tranche of a contract. The caller asserts who
// is owed it, the transaction fails if the assertion is wrong.
type DistributeMsg struct {
	ContractID []byte         `protobuf:"bytes,1,opt,name=contract_id,proto3"`
	Recipient  ledger.Address `protobuf:"bytes,2,opt,name=recipient,proto3"`
}

var _ ledger.Msg = (*DistributeMsg)(nil)

func (DistributeMsg) Path() string {
	return pathDistributeMsg
}

// Validate checks only the contract reference. The recipient is compared
// against the contract state and reported as ErrInvalidRecipient there.
func (m *DistributeMsg) Validate() error {
	if err := orm.ValidateSequence(m.ContractID); err != nil {
		return errors.Wrap(err, "contract id")
	}
	return nil
}

func (m *DistributeMsg) Marshal() ([]byte, error) {
	return codec.Marshal((*distributeMsgData)(m))
}

func (m *DistributeMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*distributeMsgData)(m))
}

// CloseMsg returns whatever a contract still holds to its owner and removes
// the contract.
type CloseMsg struct {
	ContractID []byte `protobuf:"bytes,1,opt,name=contract_id,proto3"`
}

var _ ledger.Msg = (*CloseMsg)(nil)

func (CloseMsg) Path() string {
	return pathCloseMsg
}

func (m *CloseMsg) Validate() error {
	if err := orm.ValidateSequence(m.ContractID); err != nil {
		return errors.Wrap(err, "contract id")
	}
	return nil
}

func (m *CloseMsg) Marshal() ([]byte, error) {
	return codec.Marshal((*closeMsgData)(m))
}

func (m *CloseMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*closeMsgData)(m))
}

// UpdateConfigurationMsg patches the package configuration. Only non-zero
// fields of Patch are applied.
type UpdateConfigurationMsg struct {
	Patch *Configuration `protobuf:"bytes,1,opt,name=patch,proto3"`
}

var _ ledger.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	if err := m.Patch.Validate(); err != nil {
		return errors.Wrap(err, "patch")
	}
	return nil
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return codec.Marshal((*updateConfigurationMsgData)(m))
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*updateConfigurationMsgData)(m))
}
