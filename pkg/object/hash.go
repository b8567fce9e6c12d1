package object

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

// Serialize frames a marshaled payload as "type len\0payload". This is
// pure framing: the payload must already be in canonical encoded form.
func Serialize(t Type, payload []byte) []byte {
	header := fmt.Sprintf("%s %d\x00", t, len(payload))
	out := make([]byte, 0, len(header)+len(payload))
	out = append(out, header...)
	out = append(out, payload...)
	return out
}

// HashObject computes the SHA-1 of the framed payload, mirroring Git's
// object addressing exactly so identical logical objects always hash
// identically.
func HashObject(t Type, payload []byte) Hash {
	header := fmt.Sprintf("%s %d\x00", t, len(payload))
	h := sha1.New()
	h.Write([]byte(header))
	h.Write(payload)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// IsFullHash reports whether s is a 40-character lowercase hex hash.
func IsFullHash(s string) bool {
	return len(s) == 40 && isLowerHex(s)
}

// IsHashPrefix reports whether s is a valid abbreviated hash: between
// 4 and 40 lowercase hex characters.
func IsHashPrefix(s string) bool {
	return len(s) >= 4 && len(s) <= 40 && isLowerHex(s)
}

func isLowerHex(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
