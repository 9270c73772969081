package weavetest

import (
	"crypto/rand"
	"testing"

	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/crypto"
)

// NewKey returns a fresh ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the condition of a fresh signature key.
func NewCondition() ledger.Condition {
	return NewKey().PublicKey().Condition()
}

// RandomAddr returns a valid address nobody controls.
func RandomAddr(t testing.TB) ledger.Address {
	t.Helper()
	raw := make([]byte, ledger.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot read random data: %s", err)
	}
	return ledger.Address(raw)
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation.
func ParseAddress(t testing.TB, encodedAddress string) ledger.Address {
	t.Helper()

	addr, err := ledger.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
