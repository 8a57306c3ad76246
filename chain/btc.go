package chain

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/linlinbupt123-crypto/wallet_core/bip32"
	wrapErrors "github.com/linlinbupt123-crypto/wallet_core/errors"
)

// BTCChain renders pay-to-pubkey-hash addresses.
type BTCChain struct {
	MainNet bool
}

func NewBTCChain(mainnet bool) *BTCChain {
	return &BTCChain{MainNet: mainnet}
}

func (b *BTCChain) netParams() *chaincfg.Params {
	if b.MainNet {
		return &chaincfg.MainNetParams
	}
	return &chaincfg.TestNet3Params
}

func (b *BTCChain) Name() string {
	return b.netParams().Name
}

func (b *BTCChain) CoinType() uint32 {
	return b.netParams().HDCoinType
}

// Versions returns the extended key version tags of the network.
func (b *BTCChain) Versions() (private, public bip32.Version) {
	p := b.netParams()
	return bip32.Version(p.HDPrivateKeyID), bip32.Version(p.HDPublicKeyID)
}

func (b *BTCChain) Address(pub *btcec.PublicKey) (string, error) {
	if pub == nil {
		return "", wrapErrors.New(wrapErrors.InvalidSecp256k1PublicKey, "chain.BTCChain.Address")
	}
	addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(pub.SerializeCompressed()), b.netParams())
	if err != nil {
		return "", wrapErrors.WrapWithCode(wrapErrors.InvalidSecp256k1PublicKey, "chain.BTCChain.Address", err)
	}
	return addr.EncodeAddress(), nil
}
