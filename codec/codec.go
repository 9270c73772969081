package codec

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tranche/errors"
)

// Marshal encodes m using its protobuf field tags.
func Marshal(m proto.Message) ([]byte, error) {
	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal %T", m)
	}
	return raw, nil
}

// Unmarshal resets m and decodes raw into it. Malformed data is reported as
// ErrInput.
func Unmarshal(raw []byte, m proto.Message) error {
	if err := proto.Unmarshal(raw, m); err != nil {
		return errors.Wrapf(errors.ErrInput, "unmarshal %T: %s", m, err)
	}
	return nil
}
