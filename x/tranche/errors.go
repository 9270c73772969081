package tranche

import "github.com/iov-one/tranche/errors"

var (
	// ErrInvalidRecipientsCount is returned when the recipient list does not
	// match the tranche count or does not fit into a contract.
	ErrInvalidRecipientsCount = errors.Register(4000, "invalid recipients count")
	// ErrInvalidAmount is returned when a contract would hold nothing.
	ErrInvalidAmount = errors.Register(4001, "invalid amount")
	// ErrInvalidTrancheCount is returned for a contract without tranches.
	ErrInvalidTrancheCount = errors.Register(4002, "invalid tranche count")
	// ErrAllTranchesPaid is returned when distributing from an exhausted
	// contract.
	ErrAllTranchesPaid = errors.Register(4003, "all tranches paid")
	// ErrInvalidRecipient is returned when the asserted recipient is not the
	// one owed the next tranche.
	ErrInvalidRecipient = errors.Register(4004, "invalid recipient")
	// ErrInvalidSigner is returned when neither the owner nor a configured
	// distributor signed a distribution.
	ErrInvalidSigner = errors.Register(4005, "invalid signer")
)
