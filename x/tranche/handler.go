package tranche

import (
	"fmt"
	"strconv"

	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/gconf"
	"github.com/iov-one/tranche/orm"
	"github.com/iov-one/tranche/x"
	"github.com/iov-one/tranche/x/cash"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	createContractCost     int64 = 300
	distributeContractCost int64 = 100
	closeContractCost      int64 = 0
)

const (
	tagContract  = "contract"
	tagRecipient = "recipient"
	tagTranche   = "tranche"
	tagAmount    = "amount"
)

// Bank is the subset of the cash controller the contracts depend on.
type Bank interface {
	cash.CoinMover
	cash.Balancer
}

// RegisterRoutes registers handlers for contract and configuration
// messages.
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, bank Bank) {
	bucket := NewContractBucket()
	r.Handle(&CreateMsg{}, CreateHandler{auth: auth, bucket: bucket, bank: bank})
	r.Handle(&DistributeMsg{}, DistributeHandler{auth: auth, bucket: bucket, bank: bank})
	r.Handle(&CloseMsg{}, CloseHandler{auth: auth, bucket: bucket, bank: bank})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(packageName, &Configuration{}, auth))
}

// RegisterQuery exposes contracts under "/contracts" and
// "/contracts/owner".
func RegisterQuery(qr ledger.QueryRouter) {
	NewContractBucket().Register("contracts", qr)
}

// CreateHandler creates a contract funded by the main signer.
type CreateHandler struct {
	auth   x.Authenticator
	bucket ContractBucket
	bank   Bank
}

var _ ledger.Handler = CreateHandler{}

func (h CreateHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	res := ledger.NewCheck(createContractCost, "")
	return &res, nil
}

// Deliver stores the contract and moves the total amount into its custody.
// The new contract id is returned as data.
func (h CreateHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	contract := &Contract{
		Owner:        owner,
		TotalAmount:  msg.TotalAmount,
		TrancheCount: msg.TrancheCount,
		Recipients:   msg.Recipients,
	}
	id, err := h.bucket.Create(db, contract)
	if err != nil {
		return nil, errors.Wrap(err, "cannot store contract")
	}
	if err := h.bank.MoveCoins(db, owner, contract.Address, msg.TotalAmount); err != nil {
		return nil, errors.Wrap(err, "cannot fund contract")
	}

	ledger.GetLogger(ctx).Info("contract created",
		"contract", string(idTag(id)), "owner", owner,
		"total", msg.TotalAmount, "tranches", msg.TrancheCount)
	return &ledger.DeliverResult{
		Data: id,
		Tags: []common.KVPair{
			ledger.Tag(tagContract, idTag(id)),
			ledger.Tag(tagAmount, []byte(msg.TotalAmount.String())),
		},
	}, nil
}

func (h CreateHandler) validate(ctx ledger.Context, tx ledger.Tx) (*CreateMsg, ledger.Address, error) {
	var msg CreateMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}
	return &msg, signer.Address(), nil
}

// DistributeHandler pays the next tranche of a contract.
type DistributeHandler struct {
	auth   x.Authenticator
	bucket ContractBucket
	bank   Bank
}

var _ ledger.Handler = DistributeHandler{}

func (h DistributeHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	res := ledger.NewCheck(distributeContractCost, "")
	return &res, nil
}

// Deliver moves a single tranche from custody to the recipient and advances
// the contract.
func (h DistributeHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, contract, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	index := contract.PaidTranches
	amount := contract.TrancheAmount()
	// A total smaller than the tranche count pays nothing per tranche, the
	// whole total is returned on close.
	if amount > 0 {
		if err := h.bank.MoveCoins(db, contract.Address, msg.Recipient, amount); err != nil {
			return nil, errors.Wrap(err, "cannot pay tranche")
		}
	}
	contract.PaidTranches++
	if err := h.bucket.Update(db, msg.ContractID, contract); err != nil {
		return nil, errors.Wrap(err, "cannot store contract")
	}

	ledger.GetLogger(ctx).Info("tranche distributed",
		"contract", string(idTag(msg.ContractID)), "tranche", index,
		"recipient", msg.Recipient, "amount", amount)
	return &ledger.DeliverResult{
		Tags: []common.KVPair{
			ledger.Tag(tagContract, idTag(msg.ContractID)),
			ledger.Tag(tagRecipient, []byte(msg.Recipient.String())),
			ledger.Tag(tagTranche, []byte(strconv.FormatUint(index, 10))),
			ledger.Tag(tagAmount, []byte(amount.String())),
		},
	}, nil
}

// validate runs the distribution preconditions in order: the contract must
// have an unpaid tranche, the recipient must be the one owed it and the
// owner or a configured distributor must sign.
func (h DistributeHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*DistributeMsg, *Contract, error) {
	var msg DistributeMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	contract, err := h.bucket.GetContract(db, msg.ContractID)
	if err != nil {
		return nil, nil, err
	}
	next, err := contract.NextRecipient()
	if err != nil {
		return nil, nil, err
	}
	if !next.Equals(msg.Recipient) {
		return nil, nil, errors.Wrapf(ErrInvalidRecipient, "tranche %d is owed to %s", contract.PaidTranches, next)
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if !CanDistribute(ctx, h.auth, contract, conf.Distributors) {
		return nil, nil, errors.Wrap(ErrInvalidSigner, "owner or distributor signature required")
	}
	return &msg, contract, nil
}

// CloseHandler returns the funds held by a contract to its owner and
// deletes it.
type CloseHandler struct {
	auth   x.Authenticator
	bucket ContractBucket
	bank   Bank
}

var _ ledger.Handler = CloseHandler{}

func (h CloseHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	res := ledger.NewCheck(closeContractCost, "")
	return &res, nil
}

func (h CloseHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, contract, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	remainder, err := contract.Remainder()
	if err != nil {
		return nil, errors.Wrap(err, "remainder")
	}
	held, err := h.bank.Balance(db, contract.Address)
	switch {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		held = 0
	default:
		return nil, errors.Wrap(err, "custody balance")
	}
	if held < remainder {
		return nil, errors.Wrapf(errors.ErrState, "custody holds %s, expected at least %s", held, remainder)
	}
	// Anything sent to the custody address beyond the remainder goes to the
	// owner as well.
	if held > 0 {
		if err := h.bank.MoveCoins(db, contract.Address, contract.Owner, held); err != nil {
			return nil, errors.Wrap(err, "cannot return funds")
		}
	}
	if err := h.bucket.Delete(db, msg.ContractID); err != nil {
		return nil, errors.Wrap(err, "cannot delete contract")
	}

	ledger.GetLogger(ctx).Info("contract closed",
		"contract", string(idTag(msg.ContractID)), "owner", contract.Owner,
		"paid", contract.PaidTranches, "returned", held)
	return &ledger.DeliverResult{
		Tags: []common.KVPair{
			ledger.Tag(tagContract, idTag(msg.ContractID)),
			ledger.Tag(tagAmount, []byte(held.String())),
		},
	}, nil
}

func (h CloseHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*CloseMsg, *Contract, error) {
	var msg CloseMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	contract, err := h.bucket.GetContract(db, msg.ContractID)
	if err != nil {
		return nil, nil, err
	}
	if !CanClose(ctx, h.auth, contract) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}
	return &msg, contract, nil
}

// idTag renders a contract id as its decimal sequence number.
func idTag(id []byte) []byte {
	n, err := orm.DecodeSequence(id)
	if err != nil {
		return []byte(fmt.Sprintf("%X", id))
	}
	return []byte(strconv.FormatInt(n, 10))
}
