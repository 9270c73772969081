package tranche

import (
	"testing"

	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/orm"
	"github.com/iov-one/tranche/weavetest"
	"github.com/iov-one/tranche/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg     *CreateMsg
		wantErr *errors.Error
	}{
		"valid": {
			msg: &CreateMsg{TotalAmount: 90, TrancheCount: 3, Recipients: recipients(t, 3)},
		},
		"full capacity": {
			msg: &CreateMsg{TotalAmount: 90, TrancheCount: MaxRecipients, Recipients: recipients(t, MaxRecipients)},
		},
		"over capacity": {
			msg:     &CreateMsg{TotalAmount: 90, TrancheCount: MaxRecipients + 1, Recipients: recipients(t, MaxRecipients+1)},
			wantErr: ErrInvalidRecipientsCount,
		},
		"recipients mismatch": {
			msg:     &CreateMsg{TotalAmount: 90, TrancheCount: 3, Recipients: recipients(t, 2)},
			wantErr: ErrInvalidRecipientsCount,
		},
		"mismatch is reported before zero amount": {
			msg:     &CreateMsg{TrancheCount: 3, Recipients: recipients(t, 2)},
			wantErr: ErrInvalidRecipientsCount,
		},
		"zero amount": {
			msg:     &CreateMsg{TrancheCount: 3, Recipients: recipients(t, 3)},
			wantErr: ErrInvalidAmount,
		},
		"zero amount is reported before zero count": {
			msg:     &CreateMsg{},
			wantErr: ErrInvalidAmount,
		},
		"zero count": {
			msg:     &CreateMsg{TotalAmount: 90},
			wantErr: ErrInvalidTrancheCount,
		},
		"malformed recipient": {
			msg:     &CreateMsg{TotalAmount: 90, TrancheCount: 2, Recipients: []ledger.Address{weavetest.RandomAddr(t), {1, 2, 3}}},
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, tc.msg.Validate())
		})
	}
}

func TestContractRefMsgValidate(t *testing.T) {
	id := orm.EncodeSequence(1)
	cases := map[string]struct {
		msg     ledger.Msg
		wantErr *errors.Error
	}{
		"distribute": {
			msg: &DistributeMsg{ContractID: id, Recipient: weavetest.RandomAddr(t)},
		},
		"distribute to malformed recipient passes": {
			msg: &DistributeMsg{ContractID: id, Recipient: ledger.Address{1}},
		},
		"distribute without contract": {
			msg:     &DistributeMsg{Recipient: weavetest.RandomAddr(t)},
			wantErr: errors.ErrEmpty,
		},
		"distribute with malformed contract": {
			msg:     &DistributeMsg{ContractID: []byte{1, 2}},
			wantErr: errors.ErrInput,
		},
		"close": {
			msg: &CloseMsg{ContractID: id},
		},
		"close without contract": {
			msg:     &CloseMsg{},
			wantErr: errors.ErrEmpty,
		},
		"config patch": {
			msg: &UpdateConfigurationMsg{Patch: &Configuration{Distributors: recipients(t, 2)}},
		},
		"config without patch": {
			msg:     &UpdateConfigurationMsg{},
			wantErr: errors.ErrEmpty,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, tc.msg.Validate())
		})
	}
}

func TestMsgSerialization(t *testing.T) {
	create := &CreateMsg{TotalAmount: 100, TrancheCount: 2, Recipients: recipients(t, 2)}
	raw, err := create.Marshal()
	require.NoError(t, err)
	var gotCreate CreateMsg
	require.NoError(t, gotCreate.Unmarshal(raw))
	assert.Equal(t, create, &gotCreate)

	update := &UpdateConfigurationMsg{Patch: &Configuration{
		Owner:        weavetest.RandomAddr(t),
		Distributors: recipients(t, 3),
	}}
	raw, err = update.Marshal()
	require.NoError(t, err)
	var gotUpdate UpdateConfigurationMsg
	require.NoError(t, gotUpdate.Unmarshal(raw))
	assert.Equal(t, update, &gotUpdate)
}

func TestDistributeMsgWireLayout(t *testing.T) {
	recipient := make(ledger.Address, 20)
	for i := range recipient {
		recipient[i] = byte(i)
	}
	msg := &DistributeMsg{ContractID: orm.EncodeSequence(7), Recipient: recipient}
	raw, err := msg.Marshal()
	require.NoError(t, err)

	want := []byte{0x0a, 0x08, 0, 0, 0, 0, 0, 0, 0, 7, 0x12, 0x14}
	want = append(want, recipient...)
	assert.Equal(t, want, raw)

	var got DistributeMsg
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, msg, &got)

	err = got.Unmarshal(raw[:len(raw)-1])
	assert.IsErr(t, errors.ErrInput, err)
}
