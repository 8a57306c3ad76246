package bip32_test

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"

	"github.com/linlinbupt123-crypto/wallet_core/curve/secp256k1"
)

type (
	btcecPriv = btcec.PrivateKey
	btcecPub  = btcec.PublicKey
)

func scalarOf(t *testing.T, k secp256k1.ExtendedPrivateKey) []byte {
	t.Helper()
	priv, err := k.PrivateKey()
	require.NoError(t, err)
	return priv.Serialize()
}
