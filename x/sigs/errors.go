package sigs

import "github.com/iov-one/tranche/errors"

// ErrInvalidSequence is returned when a signature does not carry the
// sequence expected by the signer's account.
var ErrInvalidSequence = errors.Register(20, "invalid sequence")
