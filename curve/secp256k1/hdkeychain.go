package secp256k1

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"

	"github.com/linlinbupt123-crypto/wallet_core/bip32"
	wrapErrors "github.com/linlinbupt123-crypto/wallet_core/errors"
)

// ToHDKeychain exports k as a btcutil hdkeychain key tagged with version.
func ToHDKeychain(k ExtendedPrivateKey, version bip32.Version) (*hdkeychain.ExtendedKey, error) {
	priv, err := k.PrivateKey()
	if err != nil {
		return nil, wrapErrors.Ensure(wrapErrors.InvalidEcdsa, "secp256k1.ToHDKeychain", err)
	}
	if priv == nil {
		return nil, wrapErrors.New(wrapErrors.InvalidEcdsa, "secp256k1.ToHDKeychain")
	}
	return newHDKey(k.Depth(), k.ParentFingerprint(), k.ChildNumber(), k.ChainCode(),
		priv.Serialize(), version, true), nil
}

// PublicToHDKeychain exports k as a public btcutil hdkeychain key.
func PublicToHDKeychain(k ExtendedPublicKey, version bip32.Version) *hdkeychain.ExtendedKey {
	p := k.SerializedPublicKey()
	return newHDKey(k.Depth(), k.ParentFingerprint(), k.ChildNumber(), k.ChainCode(),
		p[:], version, false)
}

func newHDKey(depth uint8, fp bip32.Fingerprint, cn bip32.ChildNumber, cc bip32.ChainCode,
	key []byte, version bip32.Version, private bool) *hdkeychain.ExtendedKey {

	return hdkeychain.NewExtendedKey(version[:], key, cc[:], fp[:], depth, uint32(cn), private)
}

// PrivateFromHDKeychain imports a private btcutil hdkeychain key.
func PrivateFromHDKeychain(key *hdkeychain.ExtendedKey) (ExtendedPrivateKey, error) {
	const op = "secp256k1.PrivateFromHDKeychain"

	priv, err := key.ECPrivKey()
	if err != nil {
		return ExtendedPrivateKey{}, mapError(op, err)
	}
	fp, cc := hdHeader(key)
	k, err := bip32.NewExtendedPrivateKey[*btcec.PrivateKey, *btcec.PublicKey](Curve{}, key.Depth(), fp,
		bip32.ChildNumber(key.ChildIndex()), cc, priv.Serialize())
	if err != nil {
		return ExtendedPrivateKey{}, wrapErrors.Ensure(wrapErrors.InvalidEcdsa, op, err)
	}
	return k, nil
}

// PublicFromHDKeychain imports a btcutil hdkeychain key as a public key,
// neutering private keys on the way.
func PublicFromHDKeychain(key *hdkeychain.ExtendedKey) (ExtendedPublicKey, error) {
	const op = "secp256k1.PublicFromHDKeychain"

	pub, err := key.ECPubKey()
	if err != nil {
		return ExtendedPublicKey{}, mapError(op, err)
	}
	fp, cc := hdHeader(key)
	k, err := bip32.NewExtendedPublicKey[*btcec.PrivateKey, *btcec.PublicKey](Curve{}, key.Depth(), fp,
		bip32.ChildNumber(key.ChildIndex()), cc, pub.SerializeCompressed())
	if err != nil {
		return ExtendedPublicKey{}, wrapErrors.Ensure(wrapErrors.InvalidSecp256k1PublicKey, op, err)
	}
	return k, nil
}

func hdHeader(key *hdkeychain.ExtendedKey) (bip32.Fingerprint, bip32.ChainCode) {
	var fp bip32.Fingerprint
	binary.BigEndian.PutUint32(fp[:], key.ParentFingerprint())

	var cc bip32.ChainCode
	copy(cc[:], key.ChainCode())
	return fp, cc
}
