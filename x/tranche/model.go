package tranche

import (
	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/codec"
	"github.com/iov-one/tranche/coin"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/orm"
)

const (
	// BucketName is where contracts are stored.
	BucketName = "contract"

	// MaxRecipients is the capacity of the recipient list of a contract.
	MaxRecipients = 10
)

// Contract is the state of a single tranche escrow.
type Contract struct {
	Owner        ledger.Address `protobuf:"bytes,1,opt,name=owner,proto3"`
	TotalAmount  coin.Amount    `protobuf:"varint,2,opt,name=total_amount,proto3"`
	TrancheCount uint64         `protobuf:"varint,3,opt,name=tranche_count,proto3"`
	// Recipients[i] is owed the i-th tranche.
	Recipients   []ledger.Address `protobuf:"bytes,4,rep,name=recipients,proto3"`
	PaidTranches uint64           `protobuf:"varint,5,opt,name=paid_tranches,proto3"`
	// Address is the custody wallet holding the undistributed funds.
	Address ledger.Address `protobuf:"bytes,6,opt,name=address,proto3"`
}

var _ orm.CloneableData = (*Contract)(nil)

// Validate checks the invariants every stored contract keeps.
func (c *Contract) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if c.TotalAmount == 0 {
		return errors.Wrap(ErrInvalidAmount, "total must be positive")
	}
	if c.TrancheCount == 0 {
		return errors.Wrap(ErrInvalidTrancheCount, "at least one tranche required")
	}
	if err := validateRecipients(c.Recipients, c.TrancheCount); err != nil {
		return err
	}
	if c.PaidTranches > c.TrancheCount {
		return errors.Wrapf(errors.ErrState, "paid %d of %d tranches", c.PaidTranches, c.TrancheCount)
	}
	if err := c.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	// A tranche paid to the custody wallet would never leave it.
	for i, r := range c.Recipients {
		if r.Equals(c.Address) {
			return errors.Wrapf(ErrInvalidRecipient, "recipient %d is the contract custody", i)
		}
	}
	return nil
}

func validateRecipients(recipients []ledger.Address, count uint64) error {
	if uint64(len(recipients)) != count {
		return errors.Wrapf(ErrInvalidRecipientsCount, "%d recipients for %d tranches", len(recipients), count)
	}
	if len(recipients) > MaxRecipients {
		return errors.Wrapf(ErrInvalidRecipientsCount, "%d recipients exceeds capacity of %d", len(recipients), MaxRecipients)
	}
	for i, r := range recipients {
		if err := r.Validate(); err != nil {
			return errors.Wrapf(err, "recipient %d", i)
		}
	}
	return nil
}

func (c *Contract) Copy() orm.CloneableData {
	recipients := make([]ledger.Address, len(c.Recipients))
	for i, r := range c.Recipients {
		recipients[i] = r.Clone()
	}
	return &Contract{
		Owner:        c.Owner.Clone(),
		TotalAmount:  c.TotalAmount,
		TrancheCount: c.TrancheCount,
		Recipients:   recipients,
		PaidTranches: c.PaidTranches,
		Address:      c.Address.Clone(),
	}
}

func (c *Contract) Marshal() ([]byte, error) {
	return codec.Marshal((*contractData)(c))
}

func (c *Contract) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*contractData)(c))
}

// TrancheAmount is the value paid by every distribution. The division
// truncates, the remainder is returned on close.
func (c *Contract) TrancheAmount() coin.Amount {
	one, _, err := c.TotalAmount.Divide(c.TrancheCount)
	if err != nil {
		return 0
	}
	return one
}

// NextRecipient returns the address owed the next tranche.
func (c *Contract) NextRecipient() (ledger.Address, error) {
	if c.PaidTranches >= c.TrancheCount {
		return nil, errors.Wrapf(ErrAllTranchesPaid, "%d of %d paid", c.PaidTranches, c.TrancheCount)
	}
	return c.Recipients[c.PaidTranches], nil
}

// Disbursed returns the value paid out so far.
func (c *Contract) Disbursed() (coin.Amount, error) {
	return c.TrancheAmount().Multiply(c.PaidTranches)
}

// Remainder returns the value the contract should still hold:
//
//	total - paid * (total / count)
func (c *Contract) Remainder() (coin.Amount, error) {
	paid, err := c.Disbursed()
	if err != nil {
		return 0, err
	}
	return c.TotalAmount.Subtract(paid)
}

// CustodyCondition is the condition owning the funds of the contract with
// given id. No key can sign for it, only this extension moves its funds.
func CustodyCondition(id []byte) ledger.Condition {
	return ledger.NewCondition("tranche", "seq", id)
}

// ContractBucket stores contracts, indexed by owner.
type ContractBucket struct {
	orm.Bucket
	idSeq orm.Sequence
}

// NewContractBucket returns a bucket for managing contracts.
func NewContractBucket() ContractBucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Contract{})).
		WithIndex("owner", ownerIndex, false)
	return ContractBucket{
		Bucket: b,
		idSeq:  b.Sequence(orm.SeqID),
	}
}

func ownerIndex(obj orm.Object) ([]byte, error) {
	c, ok := obj.Value().(*Contract)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return c.Owner, nil
}

// Create assigns the next id and custody address to the contract and saves
// it. The id is returned.
func (b ContractBucket) Create(db ledger.KVStore, c *Contract) ([]byte, error) {
	id, err := b.idSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire id")
	}
	c.Address = CustodyCondition(id).Address()
	if err := b.Save(db, orm.NewSimpleObj(id, c)); err != nil {
		return nil, err
	}
	return id, nil
}

// GetContract loads the contract with given id. ErrNotFound is returned if
// it does not exist.
func (b ContractBucket) GetContract(db ledger.ReadOnlyKVStore, id []byte) (*Contract, error) {
	obj, err := b.Get(db, id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "contract %X", id)
	}
	return obj.Value().(*Contract), nil
}

// Update stores the contract under an existing id.
func (b ContractBucket) Update(db ledger.KVStore, id []byte, c *Contract) error {
	return b.Save(db, orm.NewSimpleObj(id, c))
}

// ByOwner returns all contracts funded by given owner.
func (b ContractBucket) ByOwner(db ledger.ReadOnlyKVStore, owner ledger.Address) ([]orm.Object, error) {
	return b.GetIndexed(db, "owner", owner)
}
