package app

import (
	"github.com/gogo/protobuf/proto"
	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/codec"
	"github.com/iov-one/tranche/errors"
)

// ResultSet is the serialized form of query results. Keys and values of a
// query are returned as two sets of equal size.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3"`
}

func (r *ResultSet) Marshal() ([]byte, error) {
	return codec.Marshal((*resultSetData)(r))
}

func (r *ResultSet) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*resultSetData)(r))
}

type resultSetData ResultSet

func (m *resultSetData) Reset()         { *m = resultSetData{} }
func (m *resultSetData) String() string { return proto.CompactTextString(m) }
func (*resultSetData) ProtoMessage()    {}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []ledger.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []ledger.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]ledger.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys and %d values", len(kref), len(vref))
	}
	mods := make([]ledger.Model, len(kref))
	for i := range mods {
		mods[i] = ledger.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o ledger.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return err
	}
	if len(res.Results) == 0 {
		return nil
	}
	return o.Unmarshal(res.Results[0])
}
