package bip32

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/pkg/errors"

	wrapErrors "github.com/linlinbupt123-crypto/wallet_core/errors"
)

// Version is the 4-byte network tag prefixed to a serialized extended key.
// It is chosen by the caller and is not part of the key itself.
type Version [4]byte

var (
	BitcoinMainnetPrivate = Version(chaincfg.MainNetParams.HDPrivateKeyID)
	BitcoinMainnetPublic  = Version(chaincfg.MainNetParams.HDPublicKeyID)
	BitcoinTestnetPrivate = Version(chaincfg.TestNet3Params.HDPrivateKeyID)
	BitcoinTestnetPublic  = Version(chaincfg.TestNet3Params.HDPublicKeyID)
)

// ParseVersion decodes an 8 character hex tag such as "0488ade4".
func ParseVersion(s string) (Version, error) {
	var v Version
	b, err := hex.DecodeString(s)
	if err != nil {
		return v, wrapErrors.WrapWithCode(wrapErrors.InvalidLength, "bip32.ParseVersion", err)
	}
	if len(b) != len(v) {
		return v, wrapErrors.WrapWithCode(wrapErrors.InvalidLength, "bip32.ParseVersion",
			errors.Errorf("version is %d bytes, want %d", len(b), len(v)))
	}
	copy(v[:], b)
	return v, nil
}

func (v Version) String() string {
	return hex.EncodeToString(v[:])
}
