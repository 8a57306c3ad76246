// Package ed25519 plugs the edwards25519 group into the bip32 derivation
// engine.
//
// Derivation is additive: a child scalar is (k + IL) mod L and a child point
// is P + IL*G, with IL reduced modulo the group order instead of rejected.
// This keeps public derivation possible, which is what threshold signers
// built on these keys rely on. It is not SLIP-10: SLIP-10 ed25519 only knows
// hardened derivation and uses the HMAC output as an RFC 8032 seed.
//
// Points are stored as 0x00 followed by the 32-byte RFC 8032 encoding so they
// fit the 33-byte key material field of the serialized format.
package ed25519

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/edwards/v2"

	"github.com/linlinbupt123-crypto/wallet_core/bip32"
)

const Name = "ed25519"

var seedKey = []byte("ed25519 seed")

type (
	ExtendedPrivateKey = bip32.ExtendedPrivateKey[*edwards.PrivateKey, *edwards.PublicKey]
	ExtendedPublicKey  = bip32.ExtendedPublicKey[*edwards.PrivateKey, *edwards.PublicKey]
)

type Curve struct{}

var _ bip32.Curve[*edwards.PrivateKey, *edwards.PublicKey] = Curve{}

func (Curve) Name() string { return Name }

func (Curve) SeedKey() []byte {
	return seedKey
}

func (Curve) MasterScalar(il []byte) (bip32.Scalar, error) {
	return reduce("ed25519.MasterScalar", il)
}

func (Curve) Tweak(il []byte) (bip32.Scalar, error) {
	return reduce("ed25519.Tweak", il)
}

func reduce(op string, b []byte) (bip32.Scalar, error) {
	n := new(big.Int).SetBytes(b)
	n.Mod(n, edwards.Edwards().N)
	if n.Sign() == 0 {
		return bip32.Scalar{}, mapError(op, errScalarZero)
	}
	return toScalar(n), nil
}

func toScalar(n *big.Int) bip32.Scalar {
	var out bip32.Scalar
	n.FillBytes(out[:])
	return out
}

// ParseScalar accepts 32 big-endian bytes encoding an integer in [1, L).
func (Curve) ParseScalar(b []byte) (bip32.Scalar, error) {
	const op = "ed25519.ParseScalar"

	if len(b) != len(bip32.Scalar{}) {
		return bip32.Scalar{}, mapError(op, errScalarLength)
	}
	n := new(big.Int).SetBytes(b)
	if n.Cmp(edwards.Edwards().N) >= 0 {
		return bip32.Scalar{}, mapError(op, errScalarOverflow)
	}
	if n.Sign() == 0 {
		return bip32.Scalar{}, mapError(op, errScalarZero)
	}
	return toScalar(n), nil
}

func (Curve) AddScalars(a, b bip32.Scalar) (bip32.Scalar, error) {
	sum := new(big.Int).SetBytes(a[:])
	sum.Add(sum, new(big.Int).SetBytes(b[:]))
	sum.Mod(sum, edwards.Edwards().N)
	if sum.Sign() == 0 {
		return bip32.Scalar{}, mapError("ed25519.AddScalars", errScalarZero)
	}
	return toScalar(sum), nil
}

func (Curve) ScalarBaseMult(k bip32.Scalar) (bip32.Point, error) {
	x, y := edwards.Edwards().ScalarBaseMult(k[:])
	return encode(x, y), nil
}

func (Curve) TweakPoint(p bip32.Point, t bip32.Scalar) (bip32.Point, error) {
	const op = "ed25519.TweakPoint"

	pub, err := parse(op, p[:])
	if err != nil {
		return bip32.Point{}, err
	}
	curve := edwards.Edwards()
	tx, ty := curve.ScalarBaseMult(t[:])
	x, y := curve.Add(pub.GetX(), pub.GetY(), tx, ty)
	if x.Sign() == 0 && y.Cmp(big.NewInt(1)) == 0 {
		return bip32.Point{}, mapError(op, errPointAtInfinity)
	}
	return encode(x, y), nil
}

func (Curve) ParsePoint(b []byte) (bip32.Point, error) {
	var out bip32.Point
	if _, err := parse("ed25519.ParsePoint", b); err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

func (Curve) PrivateKey(k bip32.Scalar) (*edwards.PrivateKey, error) {
	priv, _, err := edwards.PrivKeyFromScalar(k[:])
	if err != nil {
		return nil, mapError("ed25519.PrivateKey", err)
	}
	return priv, nil
}

func (Curve) PublicKey(p bip32.Point) (*edwards.PublicKey, error) {
	return parse("ed25519.PublicKey", p[:])
}

func parse(op string, b []byte) (*edwards.PublicKey, error) {
	if len(b) != len(bip32.Point{}) {
		return nil, mapError(op, errPointLength)
	}
	if b[0] != 0x00 {
		return nil, mapError(op, errPointPrefix)
	}
	pub, err := edwards.ParsePubKey(b[1:])
	if err != nil {
		return nil, mapError(op, err)
	}
	return pub, nil
}

func encode(x, y *big.Int) bip32.Point {
	var out bip32.Point
	copy(out[1:], edwards.NewPublicKey(x, y).Serialize())
	return out
}

func NewMaster(seed []byte) (ExtendedPrivateKey, error) {
	return bip32.NewMaster[*edwards.PrivateKey, *edwards.PublicKey](Curve{}, seed)
}

func DecodePrivate(s string) (ExtendedPrivateKey, bip32.Version, error) {
	return bip32.DecodePrivate[*edwards.PrivateKey, *edwards.PublicKey](Curve{}, s)
}

func DecodePublic(s string) (ExtendedPublicKey, bip32.Version, error) {
	return bip32.DecodePublic[*edwards.PrivateKey, *edwards.PublicKey](Curve{}, s)
}
