package errors

// Code is one entry of the closed failure taxonomy shared by every curve
// backend. A Code is itself an error so callers can match with errors.Is.
type Code string

const (
	InvalidEcdsa                Code = "invalid_ecdsa"
	OverflowChildNumber         Code = "overflow_child_number"
	CannotDeriveFromHardenedKey Code = "cannot_derive_from_hardened_key"
	InvalidChildNumber          Code = "invalid_child_number"
	InvalidChildNumberFormat    Code = "invalid_child_number_format"
	InvalidDerivationPathFormat Code = "invalid_derivation_path_format"
	InvalidBase58               Code = "invalid_base58"
	InvalidLength               Code = "invalid_length"
	CanNotDerivePairFromSeed    Code = "can_not_derive_pair_from_seed"
	CannotDeriveKey             Code = "can_not_derive_key"
	UnsupportedCurve            Code = "unsupported_curve"
	InvalidSecp256k1PublicKey   Code = "invalid_secp256k1_public_key"
	InvalidMnemonic             Code = "invalid_mnemonic"
	InvalidKeyType              Code = "invalid_key_type"
	AccountNotFound             Code = "account_not_found"
)

// Codes lists the whole taxonomy.
var Codes = []Code{
	InvalidEcdsa,
	OverflowChildNumber,
	CannotDeriveFromHardenedKey,
	InvalidChildNumber,
	InvalidChildNumberFormat,
	InvalidDerivationPathFormat,
	InvalidBase58,
	InvalidLength,
	CanNotDerivePairFromSeed,
	CannotDeriveKey,
	UnsupportedCurve,
	InvalidSecp256k1PublicKey,
	InvalidMnemonic,
	InvalidKeyType,
	AccountNotFound,
}

func (c Code) Error() string {
	return string(c)
}

// Valid reports whether c belongs to the taxonomy.
func (c Code) Valid() bool {
	for _, known := range Codes {
		if c == known {
			return true
		}
	}
	return false
}
