package bip32

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"

	wrapErrors "github.com/linlinbupt123-crypto/wallet_core/errors"
)

const maxDepth = 255

// ClearBytes zeroes b. Callers use it on buffers that held key material.
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// hmacSHA512 splits HMAC-SHA512(key, data) into its left and right halves.
// The caller owns both halves and must clear them.
func hmacSHA512(key, data []byte) (il, ir []byte) {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}

// NewMaster derives the master key of the tree rooted at seed.
func NewMaster[Priv, Pub any](c Curve[Priv, Pub], seed []byte) (ExtendedPrivateKey[Priv, Pub], error) {
	const op = "bip32.NewMaster"

	if len(seed) == 0 {
		return ExtendedPrivateKey[Priv, Pub]{}, wrapErrors.WrapWithCode(
			wrapErrors.CanNotDerivePairFromSeed, op, errEmptySeed)
	}

	il, ir := hmacSHA512(c.SeedKey(), seed)
	defer ClearBytes(il)
	defer ClearBytes(ir)

	k, err := c.MasterScalar(il)
	if err != nil {
		return ExtendedPrivateKey[Priv, Pub]{}, wrapErrors.Recode(wrapErrors.CanNotDerivePairFromSeed, op, err)
	}

	var h header
	copy(h.chainCode[:], ir)
	master, err := newPrivate(c, h, k, op, wrapErrors.CanNotDerivePairFromSeed)
	if err != nil {
		return ExtendedPrivateKey[Priv, Pub]{}, err
	}

	log.Debug().Object("key", master).Msg("master key created")
	return master, nil
}

// childHeader computes the header of the child of parent at j and returns
// the 32-bit child number to hash.
func childHeader(parent header, parentPoint Point, j Junction) (header, error) {
	cn, err := j.ChildNumber()
	if err != nil {
		return header{}, err
	}
	if parent.depth == maxDepth {
		return header{}, wrapErrors.WrapWithCode(wrapErrors.OverflowChildNumber,
			"bip32.childHeader", errDepthExhausted)
	}
	return header{
		depth:       parent.depth + 1,
		parentFP:    fingerprintOf(parentPoint),
		childNumber: cn,
	}, nil
}

// Derive walks path from k and returns the key at its end. The receiver is
// never modified and nothing is returned unless every step succeeds.
func (k ExtendedPrivateKey[Priv, Pub]) Derive(path DerivationPath) (ExtendedPrivateKey[Priv, Pub], error) {
	cur := k
	for _, j := range path {
		next, err := cur.child(j)
		if err != nil {
			log.Debug().Object("parent", cur).Str("junction", j.String()).Err(err).
				Msg("private derivation failed")
			return ExtendedPrivateKey[Priv, Pub]{}, err
		}
		cur = next
	}
	return cur, nil
}

// DeriveFromPath parses path and derives along it.
func (k ExtendedPrivateKey[Priv, Pub]) DeriveFromPath(path string) (ExtendedPrivateKey[Priv, Pub], error) {
	p, err := ParsePath(path)
	if err != nil {
		return ExtendedPrivateKey[Priv, Pub]{}, err
	}
	return k.Derive(p)
}

func (k ExtendedPrivateKey[Priv, Pub]) child(j Junction) (ExtendedPrivateKey[Priv, Pub], error) {
	const op = "bip32.ExtendedPrivateKey.Derive"

	h, err := childHeader(k.header, k.point, j)
	if err != nil {
		return ExtendedPrivateKey[Priv, Pub]{}, err
	}

	// Hardened:     0x00 || ser256(k) || ser32(i)
	// Non-hardened: serP(K) || ser32(i)
	data := make([]byte, 0, len(Point{})+4)
	if j.Hardened {
		data = append(data, 0x00)
		data = append(data, k.scalar[:]...)
	} else {
		data = append(data, k.point[:]...)
	}
	data = binary.BigEndian.AppendUint32(data, uint32(h.childNumber))
	defer ClearBytes(data)

	il, ir := hmacSHA512(k.chainCode[:], data)
	defer ClearBytes(il)
	defer ClearBytes(ir)

	tweak, err := k.curve.Tweak(il)
	if err != nil {
		return ExtendedPrivateKey[Priv, Pub]{}, wrapErrors.Recode(wrapErrors.CannotDeriveKey, op, err)
	}
	scalar, err := k.curve.AddScalars(k.scalar, tweak)
	if err != nil {
		return ExtendedPrivateKey[Priv, Pub]{}, wrapErrors.Recode(wrapErrors.CannotDeriveKey, op, err)
	}
	copy(h.chainCode[:], ir)

	child, err := newPrivate(k.curve, h, scalar, op, wrapErrors.CannotDeriveKey)
	if err != nil {
		return ExtendedPrivateKey[Priv, Pub]{}, err
	}
	log.Trace().Object("key", child).Msg("derived private child")
	return child, nil
}

// Derive walks path from k using public derivation only. Any hardened
// junction fails with CannotDeriveFromHardenedKey.
func (k ExtendedPublicKey[Priv, Pub]) Derive(path DerivationPath) (ExtendedPublicKey[Priv, Pub], error) {
	cur := k
	for _, j := range path {
		next, err := cur.child(j)
		if err != nil {
			log.Debug().Object("parent", cur).Str("junction", j.String()).Err(err).
				Msg("public derivation failed")
			return ExtendedPublicKey[Priv, Pub]{}, err
		}
		cur = next
	}
	return cur, nil
}

func (k ExtendedPublicKey[Priv, Pub]) DeriveFromPath(path string) (ExtendedPublicKey[Priv, Pub], error) {
	p, err := ParsePath(path)
	if err != nil {
		return ExtendedPublicKey[Priv, Pub]{}, err
	}
	return k.Derive(p)
}

func (k ExtendedPublicKey[Priv, Pub]) child(j Junction) (ExtendedPublicKey[Priv, Pub], error) {
	const op = "bip32.ExtendedPublicKey.Derive"

	if j.Hardened {
		return ExtendedPublicKey[Priv, Pub]{}, wrapErrors.New(wrapErrors.CannotDeriveFromHardenedKey, op)
	}
	h, err := childHeader(k.header, k.point, j)
	if err != nil {
		return ExtendedPublicKey[Priv, Pub]{}, err
	}

	data := make([]byte, 0, len(Point{})+4)
	data = append(data, k.point[:]...)
	data = binary.BigEndian.AppendUint32(data, uint32(h.childNumber))

	il, ir := hmacSHA512(k.chainCode[:], data)
	defer ClearBytes(il)

	tweak, err := k.curve.Tweak(il)
	if err != nil {
		return ExtendedPublicKey[Priv, Pub]{}, wrapErrors.Recode(wrapErrors.CannotDeriveKey, op, err)
	}
	point, err := k.curve.TweakPoint(k.point, tweak)
	if err != nil {
		return ExtendedPublicKey[Priv, Pub]{}, wrapErrors.Recode(wrapErrors.CannotDeriveKey, op, err)
	}
	copy(h.chainCode[:], ir)

	child := ExtendedPublicKey[Priv, Pub]{curve: k.curve, header: h, point: point}
	log.Trace().Object("key", child).Msg("derived public child")
	return child, nil
}
