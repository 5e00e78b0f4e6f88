package algorand

import (
	"crypto/ed25519"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
)

// Signer holds the service's fixed signing identity. It is constructed once
// at startup and read-only thereafter.
type Signer struct {
	sk      ed25519.PrivateKey
	address string
}

// NewSigner derives the signing key and address from a 25-word mnemonic.
func NewSigner(mn string) (*Signer, error) {
	sk, err := mnemonic.ToPrivateKey(mn)
	if err != nil {
		return nil, fmt.Errorf("deriving key from mnemonic: %w", err)
	}
	account, err := crypto.AccountFromPrivateKey(sk)
	if err != nil {
		return nil, fmt.Errorf("deriving address: %w", err)
	}
	return &Signer{sk: sk, address: account.Address.String()}, nil
}

// Address returns the deployer address in its canonical string form.
func (s *Signer) Address() string {
	return s.address
}
