package bip32

// Scalar is a big-endian private scalar or tweak.
type Scalar [32]byte

// Point is a 33-byte serialized public point.
type Point [33]byte

// Curve is what an elliptic-curve backend supplies to the derivation engine.
// Priv and Pub are the backend's plain (non-extended) key types handed to
// signers and address renderers.
//
// Every error a Curve returns must already carry a code from the errors
// taxonomy; the engine relabels it by context where the operation demands a
// specific code.
type Curve[Priv, Pub any] interface {
	// Name identifies the backend, e.g. "secp256k1".
	Name() string

	// SeedKey is the HMAC-SHA512 key used to turn a seed into a master key.
	SeedKey() []byte

	// MasterScalar turns the left half of the master HMAC output into a
	// private scalar.
	MasterScalar(il []byte) (Scalar, error)

	// Tweak turns the left half of a child HMAC output into the additive
	// tweak applied to the parent scalar or point.
	Tweak(il []byte) (Scalar, error)

	// ParseScalar validates serialized private key material.
	ParseScalar(b []byte) (Scalar, error)

	// AddScalars returns (a + b) mod n and fails when the sum is zero.
	AddScalars(a, b Scalar) (Scalar, error)

	// ScalarBaseMult returns the serialized point k*G.
	ScalarBaseMult(k Scalar) (Point, error)

	// TweakPoint returns the serialized point p + t*G and fails when the
	// result is the point at infinity.
	TweakPoint(p Point, t Scalar) (Point, error)

	// ParsePoint validates a serialized public point.
	ParsePoint(b []byte) (Point, error)

	// PrivateKey projects a scalar to the backend's plain private key.
	PrivateKey(k Scalar) (Priv, error)

	// PublicKey projects a point to the backend's plain public key.
	PublicKey(p Point) (Pub, error)
}

// Deriver is the derive capability shared by both extended key kinds.
type Deriver[T any] interface {
	Derive(path DerivationPath) (T, error)
}

// DeriveEach derives every path from parent. It fails as a whole on the
// first error.
func DeriveEach[T Deriver[T]](parent T, paths ...DerivationPath) ([]T, error) {
	out := make([]T, 0, len(paths))
	for _, p := range paths {
		child, err := parent.Derive(p)
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}
