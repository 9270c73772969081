package cash

import (
	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/codec"
	"github.com/iov-one/tranche/coin"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Balance is the value kept under every wallet address.
type Balance struct {
	Amount coin.Amount `protobuf:"varint,1,opt,name=amount,proto3"`
}

var _ orm.CloneableData = (*Balance)(nil)

// Validate accepts every amount. An emptied wallet is still a wallet.
func (b *Balance) Validate() error {
	return nil
}

func (b *Balance) Copy() orm.CloneableData {
	return &Balance{Amount: b.Amount}
}

func (b *Balance) Marshal() ([]byte, error) {
	return codec.Marshal((*balanceData)(b))
}

func (b *Balance) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*balanceData)(b))
}

// NewWallet creates a wallet object holding given amount under the address.
func NewWallet(key ledger.Address, amount coin.Amount) orm.Object {
	return orm.NewSimpleObj(key, &Balance{Amount: amount})
}

// AsAmount extracts the balance of a wallet object. A nil object holds
// nothing.
func AsAmount(obj orm.Object) coin.Amount {
	if obj == nil || obj.Value() == nil {
		return 0
	}
	return obj.Value().(*Balance).Amount
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewWallet(nil, 0)),
	}
}

// Save enforces the proper type
func (b Bucket) Save(db ledger.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Balance); !ok {
		return errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

// GetOrCreate loads the wallet of given address or returns an empty one
// that was not saved yet.
func (b Bucket) GetOrCreate(db ledger.KVStore, key ledger.Address) (orm.Object, error) {
	obj, err := b.Get(db, key)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		obj = NewWallet(key, 0)
	}
	return obj, nil
}
