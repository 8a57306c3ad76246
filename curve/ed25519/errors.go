package ed25519

import (
	stderrors "errors"

	"github.com/pkg/errors"

	wrapErrors "github.com/linlinbupt123-crypto/wallet_core/errors"
)

var (
	errScalarLength    = errors.New("private scalar must be 32 bytes")
	errScalarOverflow  = errors.New("scalar is not below the group order")
	errScalarZero      = errors.New("scalar is zero")
	errPointLength     = errors.New("public point must be 33 bytes")
	errPointPrefix     = errors.New("public point must start with a zero byte")
	errPointAtInfinity = errors.New("identity point")
)

// mapError translates edwards failures into the errors taxonomy. The edwards
// package reports parse failures as plain errors, so anything unrecognised is
// an invalid key.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	code := wrapErrors.InvalidEcdsa
	if stderrors.Is(err, errPointAtInfinity) {
		code = wrapErrors.CannotDeriveKey
	}
	return wrapErrors.WrapWithCode(code, op, err)
}
