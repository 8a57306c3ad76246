package chain

import (
	"github.com/linlinbupt123-crypto/wallet_core/bip32"
)

/*
BIP44 lays the tree out as

	m / purpose' / coin_type' / account' / change / address_index

purpose is always 44'. coin_type is the registered coin number (0' bitcoin,
1' any testnet, 60' ethereum). account splits funds the way bank accounts
do. change is 0 for receiving addresses and 1 for change addresses, and
address_index counts addresses within the account. The first three levels
are hardened, the last two are not, so an account xpub can derive every
address of its account.
*/
const (
	Purpose         uint32 = 44
	CoinTypeBitcoin uint32 = 0
	CoinTypeTestnet uint32 = 1
	CoinTypeEther   uint32 = 60

	ExternalChain uint32 = 0
	InternalChain uint32 = 1
)

// AccountPath returns m/44'/coin'/account'.
func AccountPath(coin, account uint32) bip32.DerivationPath {
	return bip32.DerivationPath{bip32.Hard(Purpose), bip32.Hard(coin), bip32.Hard(account)}
}

// BIP44Path returns m/44'/coin'/account'/change/index.
func BIP44Path(coin, account, change, index uint32) bip32.DerivationPath {
	return AccountPath(coin, account).Child(bip32.Soft(change), bip32.Soft(index))
}
