// Package secp256k1 plugs the secp256k1 curve into the bip32 derivation
// engine. Keys derived here are byte-for-byte compatible with BIP32.
package secp256k1

import (
	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/linlinbupt123-crypto/wallet_core/bip32"
)

// Name of the backend in configuration files.
const Name = "secp256k1"

var seedKey = []byte("Bitcoin seed")

type (
	ExtendedPrivateKey = bip32.ExtendedPrivateKey[*btcec.PrivateKey, *btcec.PublicKey]
	ExtendedPublicKey  = bip32.ExtendedPublicKey[*btcec.PrivateKey, *btcec.PublicKey]
)

// Curve implements bip32.Curve with btcec.
type Curve struct{}

var _ bip32.Curve[*btcec.PrivateKey, *btcec.PublicKey] = Curve{}

func (Curve) Name() string { return Name }

func (Curve) SeedKey() []byte {
	return seedKey
}

func (c Curve) MasterScalar(il []byte) (bip32.Scalar, error) {
	return c.ParseScalar(il)
}

func (c Curve) Tweak(il []byte) (bip32.Scalar, error) {
	return c.ParseScalar(il)
}

// ParseScalar accepts 32 bytes encoding an integer in [1, n).
func (Curve) ParseScalar(b []byte) (bip32.Scalar, error) {
	const op = "secp256k1.ParseScalar"

	var out bip32.Scalar
	if len(b) != len(out) {
		return out, mapError(op, errScalarLength)
	}
	var k btcec.ModNScalar
	if overflow := k.SetByteSlice(b); overflow {
		return out, mapError(op, errScalarOverflow)
	}
	if k.IsZero() {
		return out, mapError(op, errScalarZero)
	}
	copy(out[:], b)
	return out, nil
}

func (Curve) AddScalars(a, b bip32.Scalar) (bip32.Scalar, error) {
	var x, y btcec.ModNScalar
	x.SetBytes((*[32]byte)(&a))
	y.SetBytes((*[32]byte)(&b))
	x.Add(&y)
	if x.IsZero() {
		return bip32.Scalar{}, mapError("secp256k1.AddScalars", errScalarZero)
	}
	return x.Bytes(), nil
}

func (Curve) ScalarBaseMult(k bip32.Scalar) (bip32.Point, error) {
	var s btcec.ModNScalar
	s.SetBytes((*[32]byte)(&k))
	if s.IsZero() {
		return bip32.Point{}, mapError("secp256k1.ScalarBaseMult", errScalarZero)
	}
	var p btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&s, &p)
	p.ToAffine()
	return serialize(btcec.NewPublicKey(&p.X, &p.Y)), nil
}

// TweakPoint computes p + t*G.
func (Curve) TweakPoint(p bip32.Point, t bip32.Scalar) (bip32.Point, error) {
	const op = "secp256k1.TweakPoint"

	pub, err := btcec.ParsePubKey(p[:])
	if err != nil {
		return bip32.Point{}, mapError(op, err)
	}
	var s btcec.ModNScalar
	s.SetBytes((*[32]byte)(&t))

	var tG, parent, sum btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&s, &tG)
	pub.AsJacobian(&parent)
	btcec.AddNonConst(&tG, &parent, &sum)
	if (sum.X.IsZero() && sum.Y.IsZero()) || sum.Z.IsZero() {
		return bip32.Point{}, mapError(op, errPointAtInfinity)
	}
	sum.ToAffine()
	return serialize(btcec.NewPublicKey(&sum.X, &sum.Y)), nil
}

// ParsePoint accepts compressed points only.
func (Curve) ParsePoint(b []byte) (bip32.Point, error) {
	const op = "secp256k1.ParsePoint"

	var out bip32.Point
	if len(b) != len(out) {
		return out, mapError(op, errPointLength)
	}
	if _, err := btcec.ParsePubKey(b); err != nil {
		return out, mapError(op, err)
	}
	copy(out[:], b)
	return out, nil
}

func (Curve) PrivateKey(k bip32.Scalar) (*btcec.PrivateKey, error) {
	priv, _ := btcec.PrivKeyFromBytes(k[:])
	return priv, nil
}

func (Curve) PublicKey(p bip32.Point) (*btcec.PublicKey, error) {
	pub, err := btcec.ParsePubKey(p[:])
	if err != nil {
		return nil, mapError("secp256k1.PublicKey", err)
	}
	return pub, nil
}

func serialize(pub *btcec.PublicKey) bip32.Point {
	var out bip32.Point
	copy(out[:], pub.SerializeCompressed())
	return out
}

// NewMaster derives the BIP32 master key for seed.
func NewMaster(seed []byte) (ExtendedPrivateKey, error) {
	return bip32.NewMaster[*btcec.PrivateKey, *btcec.PublicKey](Curve{}, seed)
}

// DecodePrivate parses an xprv style string.
func DecodePrivate(s string) (ExtendedPrivateKey, bip32.Version, error) {
	return bip32.DecodePrivate[*btcec.PrivateKey, *btcec.PublicKey](Curve{}, s)
}

// DecodePublic parses an xpub style string.
func DecodePublic(s string) (ExtendedPublicKey, bip32.Version, error) {
	return bip32.DecodePublic[*btcec.PrivateKey, *btcec.PublicKey](Curve{}, s)
}
