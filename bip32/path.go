package bip32

import (
	"strconv"
	"strings"

	wrapErrors "github.com/linlinbupt123-crypto/wallet_core/errors"
)

// HardenedKeyStart is the first child number of the hardened range (2^31).
const HardenedKeyStart uint32 = 0x80000000

// Junction is one step of a derivation path.
type Junction struct {
	Index    uint32
	Hardened bool
}

// Hard returns the hardened junction for index.
func Hard(index uint32) Junction {
	return Junction{Index: index, Hardened: true}
}

// Soft returns the non-hardened junction for index.
func Soft(index uint32) Junction {
	return Junction{Index: index}
}

// ChildNumber encodes the junction as a 32-bit child number. Indexes outside
// the 31-bit range fail with InvalidChildNumber.
func (j Junction) ChildNumber() (ChildNumber, error) {
	if j.Index >= HardenedKeyStart {
		return 0, wrapErrors.WrapWithCode(wrapErrors.InvalidChildNumber, "bip32.Junction.ChildNumber",
			errIndexOutOfRange(j.Index))
	}
	if j.Hardened {
		return ChildNumber(j.Index + HardenedKeyStart), nil
	}
	return ChildNumber(j.Index), nil
}

func (j Junction) String() string {
	s := strconv.FormatUint(uint64(j.Index), 10)
	if j.Hardened {
		s += "'"
	}
	return s
}

// ChildNumber is the serialized form of a junction, the high bit marking
// hardened derivation.
type ChildNumber uint32

func (c ChildNumber) IsHardened() bool {
	return uint32(c) >= HardenedKeyStart
}

func (c ChildNumber) Index() uint32 {
	return uint32(c) &^ HardenedKeyStart
}

func (c ChildNumber) Junction() Junction {
	return Junction{Index: c.Index(), Hardened: c.IsHardened()}
}

func (c ChildNumber) String() string {
	return c.Junction().String()
}

// DerivationPath is an ordered root-to-leaf sequence of junctions.
type DerivationPath []Junction

// ParsePath parses "m/44'/0'/0'/0/0" or the relative form "0/0". A bare "m"
// is the empty path. Hardened segments end with an apostrophe; "h" and "H"
// are accepted as well.
func ParsePath(path string) (DerivationPath, error) {
	const op = "bip32.ParsePath"

	if path == "" {
		return nil, wrapErrors.WrapWithCode(wrapErrors.InvalidDerivationPathFormat, op, errEmptyPath)
	}
	parts := strings.Split(path, "/")
	if parts[0] == "m" || parts[0] == "M" {
		parts = parts[1:]
	}

	out := make(DerivationPath, 0, len(parts))
	for _, part := range parts {
		j, err := parseJunction(part)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, nil
}

// MustParsePath is ParsePath for constant paths; it panics on error.
func MustParsePath(path string) DerivationPath {
	p, err := ParsePath(path)
	if err != nil {
		panic(err)
	}
	return p
}

func parseJunction(segment string) (Junction, error) {
	const op = "bip32.ParsePath"

	digits := segment
	hardened := false
	if n := len(digits); n > 0 {
		switch digits[n-1] {
		case '\'', 'h', 'H':
			hardened = true
			digits = digits[:n-1]
		}
	}
	if digits == "" {
		return Junction{}, wrapErrors.WrapWithCode(wrapErrors.InvalidDerivationPathFormat, op,
			errBadSegment(segment))
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Junction{}, wrapErrors.WrapWithCode(wrapErrors.InvalidDerivationPathFormat, op,
				errBadSegment(segment))
		}
	}

	// Only digits remain, so any parse failure is an out of range value.
	v, err := strconv.ParseUint(digits, 10, 32)
	if err != nil || uint32(v) >= HardenedKeyStart {
		return Junction{}, wrapErrors.WrapWithCode(wrapErrors.InvalidChildNumber, op,
			errBadIndex(digits))
	}
	return Junction{Index: uint32(v), Hardened: hardened}, nil
}

// IsHardened reports whether any junction of p is hardened.
func (p DerivationPath) IsHardened() bool {
	for _, j := range p {
		if j.Hardened {
			return true
		}
	}
	return false
}

// Child returns a new path with j appended; p is left untouched.
func (p DerivationPath) Child(j ...Junction) DerivationPath {
	out := make(DerivationPath, 0, len(p)+len(j))
	out = append(out, p...)
	return append(out, j...)
}

func (p DerivationPath) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, j := range p {
		b.WriteByte('/')
		b.WriteString(j.String())
	}
	return b.String()
}
