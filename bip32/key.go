package bip32

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/rs/zerolog"

	wrapErrors "github.com/linlinbupt123-crypto/wallet_core/errors"
)

// Fingerprint is the first four bytes of the Hash160 of a serialized public
// point.
type Fingerprint [4]byte

func (f Fingerprint) Uint32() uint32 {
	return binary.BigEndian.Uint32(f[:])
}

func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// ChainCode is the 32 bytes of derivation entropy carried with every key.
type ChainCode [32]byte

// header holds the metadata shared by private and public extended keys.
type header struct {
	depth       uint8
	parentFP    Fingerprint
	childNumber ChildNumber
	chainCode   ChainCode
}

func newHeader(depth uint8, parentFP Fingerprint, childNumber ChildNumber, chainCode ChainCode) (header, error) {
	if depth == 0 && (parentFP != Fingerprint{} || childNumber != 0) {
		return header{}, wrapErrors.WrapWithCode(wrapErrors.InvalidChildNumberFormat,
			"bip32.newHeader", errMasterHeader)
	}
	return header{
		depth:       depth,
		parentFP:    parentFP,
		childNumber: childNumber,
		chainCode:   chainCode,
	}, nil
}

func (h header) Depth() uint8 { return h.depth }
func (h header) ParentFingerprint() Fingerprint { return h.parentFP }
func (h header) ChildNumber() ChildNumber { return h.childNumber }
func (h header) ChainCode() ChainCode { return h.chainCode }

// IsMaster reports whether the key sits at the root of its tree.
func (h header) IsMaster() bool {
	return h.depth == 0
}

func fingerprintOf(p Point) Fingerprint {
	var fp Fingerprint
	copy(fp[:], btcutil.Hash160(p[:]))
	return fp
}

// ExtendedPrivateKey is an immutable node of a derivation tree holding a
// private scalar. The zero value is not usable; obtain keys from NewMaster,
// NewExtendedPrivateKey, Derive or the decoder.
type ExtendedPrivateKey[Priv, Pub any] struct {
	curve Curve[Priv, Pub]
	header
	scalar Scalar
	point  Point
}

// NewExtendedPrivateKey assembles a key from raw fields, enforcing the same
// invariants as the decoder.
func NewExtendedPrivateKey[Priv, Pub any](c Curve[Priv, Pub], depth uint8, parentFP Fingerprint,
	childNumber ChildNumber, chainCode ChainCode, scalar []byte) (ExtendedPrivateKey[Priv, Pub], error) {

	const op = "bip32.NewExtendedPrivateKey"

	h, err := newHeader(depth, parentFP, childNumber, chainCode)
	if err != nil {
		return ExtendedPrivateKey[Priv, Pub]{}, err
	}
	k, err := c.ParseScalar(scalar)
	if err != nil {
		return ExtendedPrivateKey[Priv, Pub]{}, wrapErrors.Ensure(wrapErrors.InvalidEcdsa, op, err)
	}
	return newPrivate(c, h, k, op, wrapErrors.InvalidEcdsa)
}

func newPrivate[Priv, Pub any](c Curve[Priv, Pub], h header, k Scalar, op string,
	code wrapErrors.Code) (ExtendedPrivateKey[Priv, Pub], error) {

	p, err := c.ScalarBaseMult(k)
	if err != nil {
		return ExtendedPrivateKey[Priv, Pub]{}, wrapErrors.Recode(code, op, err)
	}
	return ExtendedPrivateKey[Priv, Pub]{curve: c, header: h, scalar: k, point: p}, nil
}

// Curve returns the backend the key belongs to.
func (k ExtendedPrivateKey[Priv, Pub]) Curve() Curve[Priv, Pub] {
	return k.curve
}

// PrivateKey projects the key to the backend's plain private key. The zero
// value fails with InvalidKeyType.
func (k ExtendedPrivateKey[Priv, Pub]) PrivateKey() (Priv, error) {
	if k.curve == nil {
		var zero Priv
		return zero, errZeroKey("bip32.ExtendedPrivateKey.PrivateKey")
	}
	return k.curve.PrivateKey(k.scalar)
}

// PublicKey projects the key's public point to the backend's plain public key.
func (k ExtendedPrivateKey[Priv, Pub]) PublicKey() (Pub, error) {
	if k.curve == nil {
		var zero Pub
		return zero, errZeroKey("bip32.ExtendedPrivateKey.PublicKey")
	}
	return k.curve.PublicKey(k.point)
}

// DeterministicPublicKey returns the public counterpart of k with the same
// header.
func (k ExtendedPrivateKey[Priv, Pub]) DeterministicPublicKey() ExtendedPublicKey[Priv, Pub] {
	return ExtendedPublicKey[Priv, Pub]{curve: k.curve, header: k.header, point: k.point}
}

// SerializedPublicKey returns the compressed public point.
func (k ExtendedPrivateKey[Priv, Pub]) SerializedPublicKey() Point {
	return k.point
}

// Identifier is the Hash160 of the key's public point.
func (k ExtendedPrivateKey[Priv, Pub]) Identifier() []byte {
	return btcutil.Hash160(k.point[:])
}

// Fingerprint is what children of k record as their parent fingerprint.
func (k ExtendedPrivateKey[Priv, Pub]) Fingerprint() Fingerprint {
	return fingerprintOf(k.point)
}

// String never includes secret material.
func (k ExtendedPrivateKey[Priv, Pub]) String() string {
	return describe("ExtendedPrivateKey", k.curve, k.header, k.point)
}

func (k ExtendedPrivateKey[Priv, Pub]) GoString() string {
	return k.String()
}

func (k ExtendedPrivateKey[Priv, Pub]) MarshalZerologObject(e *zerolog.Event) {
	marshalHeader(e, k.curve, k.header, k.point)
}

// ExtendedPublicKey is an immutable node of a derivation tree holding only a
// public point.
type ExtendedPublicKey[Priv, Pub any] struct {
	curve Curve[Priv, Pub]
	header
	point Point
}

// NewExtendedPublicKey assembles a key from raw fields, enforcing the same
// invariants as the decoder.
func NewExtendedPublicKey[Priv, Pub any](c Curve[Priv, Pub], depth uint8, parentFP Fingerprint,
	childNumber ChildNumber, chainCode ChainCode, point []byte) (ExtendedPublicKey[Priv, Pub], error) {

	h, err := newHeader(depth, parentFP, childNumber, chainCode)
	if err != nil {
		return ExtendedPublicKey[Priv, Pub]{}, err
	}
	p, err := c.ParsePoint(point)
	if err != nil {
		return ExtendedPublicKey[Priv, Pub]{}, wrapErrors.Ensure(wrapErrors.InvalidEcdsa,
			"bip32.NewExtendedPublicKey", err)
	}
	return ExtendedPublicKey[Priv, Pub]{curve: c, header: h, point: p}, nil
}

func (k ExtendedPublicKey[Priv, Pub]) Curve() Curve[Priv, Pub] {
	return k.curve
}

// PublicKey projects the key to the backend's plain public key.
func (k ExtendedPublicKey[Priv, Pub]) PublicKey() (Pub, error) {
	if k.curve == nil {
		var zero Pub
		return zero, errZeroKey("bip32.ExtendedPublicKey.PublicKey")
	}
	return k.curve.PublicKey(k.point)
}

func (k ExtendedPublicKey[Priv, Pub]) SerializedPublicKey() Point {
	return k.point
}

func (k ExtendedPublicKey[Priv, Pub]) Identifier() []byte {
	return btcutil.Hash160(k.point[:])
}

func (k ExtendedPublicKey[Priv, Pub]) Fingerprint() Fingerprint {
	return fingerprintOf(k.point)
}

func (k ExtendedPublicKey[Priv, Pub]) String() string {
	return describe("ExtendedPublicKey", k.curve, k.header, k.point)
}

func (k ExtendedPublicKey[Priv, Pub]) MarshalZerologObject(e *zerolog.Event) {
	marshalHeader(e, k.curve, k.header, k.point)
}

type named interface {
	Name() string
}

func curveName(c named) string {
	if c == nil {
		return "none"
	}
	return c.Name()
}

func describe(kind string, c named, h header, p Point) string {
	return fmt.Sprintf("%s{curve: %s, depth: %d, child: %s, parent: %s, fingerprint: %s}",
		kind, curveName(c), h.depth, h.childNumber, h.parentFP, fingerprintOf(p))
}

func marshalHeader(e *zerolog.Event, c named, h header, p Point) {
	e.Str("curve", curveName(c)).
		Uint8("depth", h.depth).
		Str("child", h.childNumber.String()).
		Str("parent", h.parentFP.String()).
		Str("fingerprint", fingerprintOf(p).String())
}

func errZeroKey(op string) error {
	return wrapErrors.WrapWithCode(wrapErrors.InvalidKeyType, op, errUninitialized)
}
