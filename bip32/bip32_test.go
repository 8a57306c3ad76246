package bip32_test

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linlinbupt123-crypto/wallet_core/bip32"
	"github.com/linlinbupt123-crypto/wallet_core/curve/secp256k1"
	wrapErrors "github.com/linlinbupt123-crypto/wallet_core/errors"
)

const (
	vector1Seed = "000102030405060708090a0b0c0d0e0f"
	vector1XPrv = "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi"
	vector1XPub = "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8"
)

func master(t *testing.T) secp256k1.ExtendedPrivateKey {
	t.Helper()
	seed, err := hex.DecodeString(vector1Seed)
	require.NoError(t, err)
	m, err := secp256k1.NewMaster(seed)
	require.NoError(t, err)
	return m
}

func payloadOf(t *testing.T, s string) []byte {
	t.Helper()
	decoded := base58.Decode(s)
	require.Len(t, decoded, 82)
	return decoded[:78]
}

func withChecksum(payload []byte) string {
	sum := chainhash.DoubleHashB(payload)[:4]
	return base58.Encode(append(append([]byte{}, payload...), sum...))
}

func TestMasterMetadata(t *testing.T) {
	m := master(t)

	assert.True(t, m.IsMaster())
	assert.Equal(t, uint8(0), m.Depth())
	assert.Equal(t, bip32.Fingerprint{}, m.ParentFingerprint())
	assert.Equal(t, bip32.ChildNumber(0), m.ChildNumber())
	assert.Equal(t, "3442193e1bb70916e914552172cd4e2dbc9df811", hex.EncodeToString(m.Identifier()))
	assert.Equal(t, "3442193e", m.Fingerprint().String())
	assert.Equal(t, uint32(0x3442193e), m.Fingerprint().Uint32())
	assert.Equal(t, "secp256k1", m.Curve().Name())

	pub := m.DeterministicPublicKey()
	assert.Equal(t, m.SerializedPublicKey(), pub.SerializedPublicKey())
	assert.Equal(t, m.ChainCode(), pub.ChainCode())
	assert.Equal(t, m.Fingerprint(), pub.Fingerprint())
	assert.Equal(t, m.Identifier(), pub.Identifier())
}

func TestChildMetadata(t *testing.T) {
	m := master(t)
	child, err := m.DeriveFromPath("m/0'/1")
	require.NoError(t, err)

	parent, err := m.DeriveFromPath("m/0'")
	require.NoError(t, err)

	assert.False(t, child.IsMaster())
	assert.Equal(t, uint8(2), child.Depth())
	assert.Equal(t, bip32.ChildNumber(1), child.ChildNumber())
	assert.Equal(t, parent.Fingerprint(), child.ParentFingerprint())
	assert.Equal(t, bip32.ChildNumber(0x80000000), parent.ChildNumber())
	assert.Equal(t, m.Fingerprint(), parent.ParentFingerprint())
}

func TestNewMasterEmptySeed(t *testing.T) {
	_, err := secp256k1.NewMaster(nil)
	assert.ErrorIs(t, err, wrapErrors.CanNotDerivePairFromSeed)
}

func TestDeriveIsDeterministicAndPure(t *testing.T) {
	m := master(t)
	before := m.Encode(bip32.BitcoinMainnetPrivate)
	path := bip32.MustParsePath("m/44'/0'/0'/0/7")

	a, err := m.Derive(path)
	require.NoError(t, err)
	b, err := m.Derive(path)
	require.NoError(t, err)

	assert.Equal(t, a.Encode(bip32.BitcoinMainnetPrivate), b.Encode(bip32.BitcoinMainnetPrivate))
	assert.Equal(t, before, m.Encode(bip32.BitcoinMainnetPrivate))

	empty, err := m.Derive(nil)
	require.NoError(t, err)
	assert.Equal(t, before, empty.Encode(bip32.BitcoinMainnetPrivate))
}

func TestDeriveSplitsAlongPath(t *testing.T) {
	m := master(t)

	whole, err := m.DeriveFromPath("m/44'/0'/0'/0/3")
	require.NoError(t, err)
	account, err := m.DeriveFromPath("m/44'/0'/0'")
	require.NoError(t, err)
	leaf, err := account.DeriveFromPath("0/3")
	require.NoError(t, err)

	assert.Equal(t, whole.Encode(bip32.BitcoinMainnetPrivate), leaf.Encode(bip32.BitcoinMainnetPrivate))
}

func TestPrivateAndPublicDerivationAgree(t *testing.T) {
	m := master(t)
	account, err := m.DeriveFromPath("m/44'/0'/0'")
	require.NoError(t, err)

	for _, p := range []string{"0", "0/0", "1/5", "0/2147483647", "7/8/9"} {
		t.Run(p, func(t *testing.T) {
			priv, err := account.DeriveFromPath(p)
			require.NoError(t, err)
			pub, err := account.DeterministicPublicKey().DeriveFromPath(p)
			require.NoError(t, err)

			assert.Equal(t, priv.DeterministicPublicKey().Encode(bip32.BitcoinMainnetPublic),
				pub.Encode(bip32.BitcoinMainnetPublic))
		})
	}
}

func TestPublicDerivationRejectsHardened(t *testing.T) {
	pub := master(t).DeterministicPublicKey()

	_, err := pub.Derive(bip32.DerivationPath{bip32.Hard(0)})
	assert.ErrorIs(t, err, wrapErrors.CannotDeriveFromHardenedKey)

	_, err = pub.DeriveFromPath("m/0/1'/2")
	assert.ErrorIs(t, err, wrapErrors.CannotDeriveFromHardenedKey)
}

func TestDeriveInvalidIndex(t *testing.T) {
	m := master(t)

	_, err := m.Derive(bip32.DerivationPath{bip32.Soft(bip32.HardenedKeyStart)})
	assert.ErrorIs(t, err, wrapErrors.InvalidChildNumber)

	_, err = m.DeriveFromPath("m/0/x")
	assert.ErrorIs(t, err, wrapErrors.InvalidDerivationPathFormat)
}

func TestDeriveDepthLimit(t *testing.T) {
	m := master(t)
	deep, err := bip32.NewExtendedPrivateKey[*btcecPriv, *btcecPub](secp256k1.Curve{}, 255,
		m.Fingerprint(), 1, m.ChainCode(), scalarOf(t, m))
	require.NoError(t, err)

	_, err = deep.Derive(bip32.DerivationPath{bip32.Soft(0)})
	assert.ErrorIs(t, err, wrapErrors.OverflowChildNumber)

	_, err = deep.DeterministicPublicKey().Derive(bip32.DerivationPath{bip32.Soft(0)})
	assert.ErrorIs(t, err, wrapErrors.OverflowChildNumber)
}

func TestDeriveEach(t *testing.T) {
	m := master(t)
	paths := []bip32.DerivationPath{
		bip32.MustParsePath("m/0'"),
		bip32.MustParsePath("m/0'/1"),
	}
	keys, err := bip32.DeriveEach(m, paths...)
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, "xprv9uHRZZhk6KAJC1avXpDAp4MDc3sQKNxDiPvvkX8Br5ngLNv1TxvUxt4cV1rGL5hj6KCesnDYUhd7oWgT11eZG7XnxHrnYeSvkzY7d2bhkJ7",
		keys[0].Encode(bip32.BitcoinMainnetPrivate))

	pubs, err := bip32.DeriveEach(m.DeterministicPublicKey(), bip32.MustParsePath("0"), bip32.MustParsePath("0'"))
	assert.ErrorIs(t, err, wrapErrors.CannotDeriveFromHardenedKey)
	assert.Nil(t, pubs)
}

func TestCodecRoundTrip(t *testing.T) {
	priv, version, err := secp256k1.DecodePrivate(vector1XPrv)
	require.NoError(t, err)
	assert.Equal(t, bip32.BitcoinMainnetPrivate, version)
	assert.Equal(t, vector1XPrv, priv.Encode(version))
	assert.Equal(t, vector1XPub, priv.DeterministicPublicKey().Encode(bip32.BitcoinMainnetPublic))

	pub, version, err := secp256k1.DecodePublic(vector1XPub)
	require.NoError(t, err)
	assert.Equal(t, bip32.BitcoinMainnetPublic, version)
	assert.Equal(t, vector1XPub, pub.Encode(version))

	// The version tag is not part of the key.
	tprv := priv.Encode(bip32.BitcoinTestnetPrivate)
	assert.True(t, strings.HasPrefix(tprv, "tprv"))
	again, version, err := secp256k1.DecodePrivate(tprv)
	require.NoError(t, err)
	assert.Equal(t, bip32.BitcoinTestnetPrivate, version)
	assert.Equal(t, vector1XPrv, again.Encode(bip32.BitcoinMainnetPrivate))
}

func TestDecodeErrors(t *testing.T) {
	xprv := payloadOf(t, vector1XPrv)
	xpub := payloadOf(t, vector1XPub)

	mutate := func(payload []byte, f func([]byte)) string {
		b := append([]byte{}, payload...)
		f(b)
		return withChecksum(b)
	}

	badChecksum := base58.Decode(vector1XPrv)
	badChecksum[len(badChecksum)-1] ^= 0x01

	tests := []struct {
		name    string
		in      string
		private bool
		code    wrapErrors.Code
	}{
		{"empty", "", true, wrapErrors.InvalidBase58},
		{"alphabet", "0OIl", true, wrapErrors.InvalidBase58},
		{"checksum", base58.Encode(badChecksum), true, wrapErrors.InvalidBase58},
		{"too short", base58.Encode([]byte{1, 2, 3}), true, wrapErrors.InvalidLength},
		{"77 bytes", withChecksum(xprv[:77]), true, wrapErrors.InvalidLength},
		{"79 bytes", withChecksum(append(append([]byte{}, xprv...), 0)), true, wrapErrors.InvalidLength},
		{"pad byte", mutate(xprv, func(b []byte) { b[45] = 0x01 }), true, wrapErrors.InvalidKeyType},
		{"zero scalar", mutate(xprv, func(b []byte) {
			copy(b[46:], make([]byte, 32))
		}), true, wrapErrors.InvalidEcdsa},
		{"scalar overflow", mutate(xprv, func(b []byte) {
			copy(b[46:], bytes.Repeat([]byte{0xff}, 32))
		}), true, wrapErrors.InvalidEcdsa},
		{"master with parent", mutate(xprv, func(b []byte) { b[5] = 0x01 }), true, wrapErrors.InvalidChildNumberFormat},
		{"master with index", mutate(xprv, func(b []byte) { b[12] = 0x01 }), true, wrapErrors.InvalidChildNumberFormat},
		{"point prefix", mutate(xpub, func(b []byte) { b[45] = 0x05 }), false, wrapErrors.InvalidSecp256k1PublicKey},
		{"private as public", vector1XPrv, false, wrapErrors.InvalidSecp256k1PublicKey},
		{"public as private", vector1XPub, true, wrapErrors.InvalidKeyType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.private {
				_, _, err = secp256k1.DecodePrivate(tt.in)
			} else {
				_, _, err = secp256k1.DecodePublic(tt.in)
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.code)

			code, ok := wrapErrors.CodeOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestPrivateKeyNeverPrinted(t *testing.T) {
	m := master(t)
	child, err := m.DeriveFromPath("m/0'")
	require.NoError(t, err)

	scalar := hex.EncodeToString(scalarOf(t, child))
	cc := child.ChainCode()
	chainCode := hex.EncodeToString(cc[:])
	encoded := child.Encode(bip32.BitcoinMainnetPrivate)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Info().Object("key", child).Msg("derived")

	for _, out := range []string{
		child.String(),
		fmt.Sprintf("%v", child),
		fmt.Sprintf("%+v", child),
		fmt.Sprintf("%#v", child),
		fmt.Sprint(child),
		buf.String(),
	} {
		assert.NotContains(t, out, scalar)
		assert.NotContains(t, out, chainCode)
		assert.NotContains(t, out, encoded)
	}
	assert.Contains(t, child.String(), "depth: 1")
	assert.Contains(t, buf.String(), `"fingerprint"`)
}

func TestNewExtendedPublicKey(t *testing.T) {
	m := master(t)
	p := m.SerializedPublicKey()

	pub, err := bip32.NewExtendedPublicKey[*btcecPriv, *btcecPub](secp256k1.Curve{}, 0,
		bip32.Fingerprint{}, 0, m.ChainCode(), p[:])
	require.NoError(t, err)
	assert.Equal(t, vector1XPub, pub.Encode(bip32.BitcoinMainnetPublic))

	_, err = bip32.NewExtendedPublicKey[*btcecPriv, *btcecPub](secp256k1.Curve{}, 0,
		bip32.Fingerprint{}, 0, m.ChainCode(), p[:32])
	assert.ErrorIs(t, err, wrapErrors.InvalidSecp256k1PublicKey)

	_, err = bip32.NewExtendedPublicKey[*btcecPriv, *btcecPub](secp256k1.Curve{}, 0,
		bip32.Fingerprint{1}, 0, m.ChainCode(), p[:])
	assert.ErrorIs(t, err, wrapErrors.InvalidChildNumberFormat)
}
