package bip32

import (
	"github.com/pkg/errors"
)

var (
	errEmptyPath        = errors.New("empty derivation path")
	errEmptySeed        = errors.New("empty seed")
	errDepthExhausted   = errors.New("cannot derive a key with more than 255 indices in its path")
	errChecksumMismatch = errors.New("bad checksum")
	errNotBase58        = errors.New("malformed base58 string")
	errNonZeroPad       = errors.New("private key material must start with a zero byte")
	errMasterHeader     = errors.New("master key must have zero parent fingerprint and child number")
	errUninitialized    = errors.New("extended key is the zero value")
)

func errIndexOutOfRange(index uint32) error {
	return errors.Errorf("index %d is not below 2^31", index)
}

func errBadSegment(segment string) error {
	return errors.Errorf("invalid path segment %q", segment)
}

func errBadIndex(digits string) error {
	return errors.Errorf("path index %s is out of range", digits)
}

func errPayloadLength(n int) error {
	return errors.Errorf("serialized extended key is %d bytes, want %d", n, serializedKeyLen)
}
