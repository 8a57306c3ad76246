package bip32

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	wrapErrors "github.com/linlinbupt123-crypto/wallet_core/errors"
)

// Serialized layout:
//
//	[0:4)   version
//	[4]     depth
//	[5:9)   parent fingerprint
//	[9:13)  child number, big endian
//	[13:45) chain code
//	[45:78) public point, or 0x00 || private scalar
const (
	serializedKeyLen = 78
	checksumLen      = 4
	keyMaterialStart = 45
)

func (h header) serialize(v Version, material []byte) []byte {
	out := make([]byte, 0, serializedKeyLen+checksumLen)
	out = append(out, v[:]...)
	out = append(out, h.depth)
	out = append(out, h.parentFP[:]...)
	out = binary.BigEndian.AppendUint32(out, uint32(h.childNumber))
	out = append(out, h.chainCode[:]...)
	return append(out, material...)
}

func checksum(payload []byte) []byte {
	return chainhash.DoubleHashB(payload)[:checksumLen]
}

func checkEncode(payload []byte) string {
	return base58.Encode(append(payload, checksum(payload)...))
}

// checkDecode returns the payload of a base58check string, requiring it to be
// exactly one serialized extended key long.
func checkDecode(s string) ([]byte, error) {
	const op = "bip32.Decode"

	decoded := base58.Decode(s)
	if len(decoded) == 0 {
		return nil, wrapErrors.WrapWithCode(wrapErrors.InvalidBase58, op, errNotBase58)
	}
	if len(decoded) < checksumLen {
		return nil, wrapErrors.WrapWithCode(wrapErrors.InvalidLength, op, errPayloadLength(0))
	}
	payload, sum := decoded[:len(decoded)-checksumLen], decoded[len(decoded)-checksumLen:]
	if !bytes.Equal(checksum(payload), sum) {
		return nil, wrapErrors.WrapWithCode(wrapErrors.InvalidBase58, op, errChecksumMismatch)
	}
	if len(payload) != serializedKeyLen {
		return nil, wrapErrors.WrapWithCode(wrapErrors.InvalidLength, op, errPayloadLength(len(payload)))
	}
	return payload, nil
}

type decodedHeader struct {
	version     Version
	depth       uint8
	parentFP    Fingerprint
	childNumber ChildNumber
	chainCode   ChainCode
}

func splitPayload(payload []byte) (decodedHeader, []byte) {
	var d decodedHeader
	copy(d.version[:], payload[0:4])
	d.depth = payload[4]
	copy(d.parentFP[:], payload[5:9])
	d.childNumber = ChildNumber(binary.BigEndian.Uint32(payload[9:13]))
	copy(d.chainCode[:], payload[13:keyMaterialStart])
	return d, payload[keyMaterialStart:]
}

// Encode serializes k under version v as base58check text.
func (k ExtendedPrivateKey[Priv, Pub]) Encode(v Version) string {
	material := make([]byte, 0, 1+len(k.scalar))
	material = append(material, 0x00)
	material = append(material, k.scalar[:]...)
	payload := k.header.serialize(v, material)
	ClearBytes(material)

	s := checkEncode(payload)
	ClearBytes(payload[:cap(payload)])
	return s
}

// Encode serializes k under version v as base58check text.
func (k ExtendedPublicKey[Priv, Pub]) Encode(v Version) string {
	return checkEncode(k.header.serialize(v, k.point[:]))
}

// DecodePrivate parses an extended private key and returns it together with
// the version tag it was encoded under.
func DecodePrivate[Priv, Pub any](c Curve[Priv, Pub], s string) (ExtendedPrivateKey[Priv, Pub], Version, error) {
	payload, err := checkDecode(s)
	if err != nil {
		return ExtendedPrivateKey[Priv, Pub]{}, Version{}, err
	}
	defer ClearBytes(payload)

	d, material := splitPayload(payload)
	if material[0] != 0x00 {
		return ExtendedPrivateKey[Priv, Pub]{}, Version{}, wrapErrors.WrapWithCode(wrapErrors.InvalidKeyType,
			"bip32.DecodePrivate", errNonZeroPad)
	}
	k, err := NewExtendedPrivateKey(c, d.depth, d.parentFP, d.childNumber, d.chainCode, material[1:])
	if err != nil {
		return ExtendedPrivateKey[Priv, Pub]{}, Version{}, err
	}
	return k, d.version, nil
}

// DecodePublic parses an extended public key and returns it together with
// the version tag it was encoded under.
func DecodePublic[Priv, Pub any](c Curve[Priv, Pub], s string) (ExtendedPublicKey[Priv, Pub], Version, error) {
	payload, err := checkDecode(s)
	if err != nil {
		return ExtendedPublicKey[Priv, Pub]{}, Version{}, err
	}
	d, material := splitPayload(payload)
	k, err := NewExtendedPublicKey(c, d.depth, d.parentFP, d.childNumber, d.chainCode, material)
	if err != nil {
		return ExtendedPublicKey[Priv, Pub]{}, Version{}, err
	}
	return k, d.version, nil
}
