package chain

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wrapErrors "github.com/linlinbupt123-crypto/wallet_core/errors"
)

func keyOne() *btcec.PrivateKey {
	var one [32]byte
	one[31] = 1
	priv, _ := btcec.PrivKeyFromBytes(one[:])
	return priv
}

func TestBIP44Path(t *testing.T) {
	assert.Equal(t, "m/44'/60'/0'/0/3", BIP44Path(CoinTypeEther, 0, ExternalChain, 3).String())
	assert.Equal(t, "m/44'/0'/2'/1/0", BIP44Path(CoinTypeBitcoin, 2, InternalChain, 0).String())
	assert.Equal(t, "m/44'/1'/0'", AccountPath(CoinTypeTestnet, 0).String())
}

func TestBTCAddress(t *testing.T) {
	pub := keyOne().PubKey()

	main := NewBTCChain(true)
	addr, err := main.Address(pub)
	require.NoError(t, err)
	assert.Equal(t, "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", addr)
	assert.Equal(t, "mainnet", main.Name())
	assert.Equal(t, CoinTypeBitcoin, main.CoinType())

	priv, public := main.Versions()
	assert.Equal(t, "0488ade4", priv.String())
	assert.Equal(t, "0488b21e", public.String())

	test := NewBTCChain(false)
	addr, err = test.Address(pub)
	require.NoError(t, err)
	assert.Equal(t, "mrCDrCybB6J1vRfbwM5hemdJz73FwDBC8r", addr)
	assert.Equal(t, CoinTypeTestnet, test.CoinType())

	_, err = main.Address(nil)
	assert.ErrorIs(t, err, wrapErrors.InvalidSecp256k1PublicKey)
}

func TestETHAddress(t *testing.T) {
	e := NewETHChain()
	addr, err := e.Address(keyOne().PubKey())
	require.NoError(t, err)
	assert.Equal(t, "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", addr)
	assert.Equal(t, CoinTypeEther, e.CoinType())

	_, err = e.Address(nil)
	assert.ErrorIs(t, err, wrapErrors.InvalidSecp256k1PublicKey)
}

func TestSignerKey(t *testing.T) {
	e := NewETHChain()
	key, err := e.SignerKey(keyOne())
	require.NoError(t, err)
	assert.Equal(t, "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", crypto.PubkeyToAddress(key.PublicKey).Hex())

	_, err = e.SignerKey(nil)
	assert.ErrorIs(t, err, wrapErrors.InvalidEcdsa)
}

func TestChainsImplementChain(t *testing.T) {
	for _, c := range []Chain{NewBTCChain(true), NewETHChain()} {
		assert.NotEmpty(t, c.Name())
	}
}
