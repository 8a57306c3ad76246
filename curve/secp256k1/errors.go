package secp256k1

import (
	stderrors "errors"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	wrapErrors "github.com/linlinbupt123-crypto/wallet_core/errors"
)

var (
	errScalarLength    = errors.New("private scalar must be 32 bytes")
	errScalarOverflow  = errors.New("scalar is not below the curve order")
	errScalarZero      = errors.New("scalar is zero")
	errPointLength     = errors.New("public point must be 33 bytes")
	errPointAtInfinity = errors.New("point at infinity")
)

// mapError is the only place secp256k1, btcec and hdkeychain failures are
// translated into the errors taxonomy.
func mapError(op string, err error) error {
	var code wrapErrors.Code
	switch {
	case err == nil:
		return nil

	case stderrors.Is(err, errScalarLength),
		stderrors.Is(err, errScalarOverflow),
		stderrors.Is(err, errScalarZero):
		code = wrapErrors.InvalidEcdsa

	case stderrors.Is(err, errPointAtInfinity):
		code = wrapErrors.CannotDeriveKey

	case stderrors.Is(err, errPointLength),
		stderrors.Is(err, secp.ErrPubKeyInvalidLen),
		stderrors.Is(err, secp.ErrPubKeyInvalidFormat),
		stderrors.Is(err, secp.ErrPubKeyXTooBig),
		stderrors.Is(err, secp.ErrPubKeyYTooBig),
		stderrors.Is(err, secp.ErrPubKeyNotOnCurve),
		stderrors.Is(err, secp.ErrPubKeyMismatchedOddness):
		code = wrapErrors.InvalidSecp256k1PublicKey

	case stderrors.Is(err, hdkeychain.ErrDeriveHardFromPublic):
		code = wrapErrors.CannotDeriveFromHardenedKey
	case stderrors.Is(err, hdkeychain.ErrDeriveBeyondMaxDepth):
		code = wrapErrors.OverflowChildNumber
	case stderrors.Is(err, hdkeychain.ErrInvalidChild):
		code = wrapErrors.CannotDeriveKey
	case stderrors.Is(err, hdkeychain.ErrUnusableSeed),
		stderrors.Is(err, hdkeychain.ErrInvalidSeedLen):
		code = wrapErrors.CanNotDerivePairFromSeed
	case stderrors.Is(err, hdkeychain.ErrNotPrivExtKey):
		code = wrapErrors.InvalidKeyType
	case stderrors.Is(err, hdkeychain.ErrBadChecksum):
		code = wrapErrors.InvalidBase58
	case stderrors.Is(err, hdkeychain.ErrInvalidKeyLen):
		code = wrapErrors.InvalidLength

	default:
		code = wrapErrors.InvalidEcdsa
	}
	return wrapErrors.WrapWithCode(code, op, err)
}
