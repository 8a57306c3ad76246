package chain

import (
	"crypto/ecdsa"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/linlinbupt123-crypto/wallet_core/bip32"
	wrapErrors "github.com/linlinbupt123-crypto/wallet_core/errors"
)

// ETHChain renders EIP-55 checksummed account addresses.
type ETHChain struct{}

func NewETHChain() *ETHChain {
	return &ETHChain{}
}

func (e *ETHChain) Name() string {
	return "ethereum"
}

func (e *ETHChain) CoinType() uint32 {
	return CoinTypeEther
}

func (e *ETHChain) Address(pub *btcec.PublicKey) (string, error) {
	const op = "chain.ETHChain.Address"

	if pub == nil {
		return "", wrapErrors.New(wrapErrors.InvalidSecp256k1PublicKey, op)
	}
	key, err := crypto.DecompressPubkey(pub.SerializeCompressed())
	if err != nil {
		return "", wrapErrors.WrapWithCode(wrapErrors.InvalidSecp256k1PublicKey, op, err)
	}
	return crypto.PubkeyToAddress(*key).Hex(), nil
}

// SignerKey converts a derived private key into the form go-ethereum signers
// take.
func (e *ETHChain) SignerKey(priv *btcec.PrivateKey) (*ecdsa.PrivateKey, error) {
	const op = "chain.ETHChain.SignerKey"

	if priv == nil {
		return nil, wrapErrors.New(wrapErrors.InvalidEcdsa, op)
	}
	b := priv.Serialize()
	defer bip32.ClearBytes(b)

	key, err := crypto.ToECDSA(b)
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.InvalidEcdsa, op, err)
	}
	return key, nil
}
