/*
Package crypto holds the ed25519 keys and signatures that authenticate
transactions. A public key maps to a Condition owned by the sigs
extension, and through it to an Address.
*/
package crypto

import (
	"github.com/gogo/protobuf/proto"
	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/codec"
	"github.com/iov-one/tranche/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() ledger.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3"`
}

var _ PubKey = (*PublicKey)(nil)

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if sig == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition encodes the public key into a ledger condition
//
//	p.Condition().Address()
//
// will return an Address if needed.
func (p *PublicKey) Condition() ledger.Condition {
	if len(p.Ed25519) == 0 {
		return nil
	}
	return ledger.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the address controlled by this key.
func (p *PublicKey) Address() ledger.Address {
	return p.Condition().Address()
}

// Validate checks the key length.
func (p *PublicKey) Validate() error {
	if len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "public key length %d", len(p.Ed25519))
	}
	return nil
}

// Marshal serializes the key.
func (p *PublicKey) Marshal() ([]byte, error) {
	return codec.Marshal((*publicKeyData)(p))
}

// Unmarshal deserializes the key.
func (p *PublicKey) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*publicKeyData)(p))
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3"`
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid private key")
	}
	return &Signature{
		Ed25519: ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message),
	}, nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// Marshal serializes the key.
func (p *PrivateKey) Marshal() ([]byte, error) {
	return codec.Marshal((*privateKeyData)(p))
}

// Unmarshal deserializes the key.
func (p *PrivateKey) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*privateKeyData)(p))
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}

// Signature is an ed25519 signature.
type Signature struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3"`
}

// Validate checks the signature length.
func (s *Signature) Validate() error {
	if len(s.Ed25519) != ed25519.SignatureSize {
		return errors.Wrapf(errors.ErrInput, "signature length %d", len(s.Ed25519))
	}
	return nil
}

// Marshal serializes the signature.
func (s *Signature) Marshal() ([]byte, error) {
	return codec.Marshal((*signatureData)(s))
}

// Unmarshal deserializes the signature.
func (s *Signature) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*signatureData)(s))
}

type publicKeyData PublicKey

func (m *publicKeyData) Reset()         { *m = publicKeyData{} }
func (m *publicKeyData) String() string { return proto.CompactTextString(m) }
func (*publicKeyData) ProtoMessage()    {}

type privateKeyData PrivateKey

func (m *privateKeyData) Reset()         { *m = privateKeyData{} }
func (m *privateKeyData) String() string { return proto.CompactTextString(m) }
func (*privateKeyData) ProtoMessage()    {}

type signatureData Signature

func (m *signatureData) Reset()         { *m = signatureData{} }
func (m *signatureData) String() string { return proto.CompactTextString(m) }
func (*signatureData) ProtoMessage()    {}
