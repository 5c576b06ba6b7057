package primitive

import (
	"encoding/hex"

	"github.com/ada-tools/ccbor/errs"
)

// HexToBytes decodes a hex string into bytes. It fails with
// errs.ErrInvalidHex when the input has odd length or contains non-hex
// characters.
func HexToBytes(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, errs.ErrInvalidHex
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errs.ErrInvalidHex
	}

	return b, nil
}

// BytesToHex encodes b as a lowercase hex string.
func BytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}
