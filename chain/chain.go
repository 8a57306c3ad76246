// Package chain renders addresses and signer keys for derived secp256k1 keys.
package chain

import (
	"github.com/btcsuite/btcd/btcec/v2"
)

// Chain turns a derived public key into the chain's address text.
type Chain interface {
	Name() string
	// CoinType is the registered BIP44 coin type, unhardened.
	CoinType() uint32
	Address(pub *btcec.PublicKey) (string, error)
}
