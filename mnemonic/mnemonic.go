// Package mnemonic turns BIP39 phrases into the seeds bip32 master keys are
// created from.
package mnemonic

import (
	bip39 "github.com/tyler-smith/go-bip39"

	"github.com/linlinbupt123-crypto/wallet_core/bip32"
	wrapErrors "github.com/linlinbupt123-crypto/wallet_core/errors"
)

// Supported entropy sizes, in bits.
const (
	Words12 = 128
	Words24 = 256
)

// New generates a fresh English mnemonic backed by bits of entropy. bits
// must be a multiple of 32 in [128, 256].
func New(bits int) (string, error) {
	const op = "mnemonic.New"

	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", wrapErrors.WrapWithCode(wrapErrors.InvalidMnemonic, op, err)
	}
	defer bip32.ClearBytes(entropy)

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", wrapErrors.WrapWithCode(wrapErrors.InvalidMnemonic, op, err)
	}
	return phrase, nil
}

// Validate reports whether phrase is a well formed mnemonic with a correct
// checksum.
func Validate(phrase string) error {
	if !bip39.IsMnemonicValid(phrase) {
		return wrapErrors.New(wrapErrors.InvalidMnemonic, "mnemonic.Validate")
	}
	return nil
}

// ToSeed runs the BIP39 key stretching over phrase and passphrase and returns
// the 64-byte seed. The caller owns the seed and should clear it after use.
func ToSeed(phrase, passphrase string) ([]byte, error) {
	const op = "mnemonic.ToSeed"

	if err := Validate(phrase); err != nil {
		return nil, err
	}
	seed, err := bip39.NewSeedWithErrorChecking(phrase, passphrase)
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.InvalidMnemonic, op, err)
	}
	return seed, nil
}
