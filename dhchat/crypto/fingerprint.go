package crypto

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const fingerprintGroups = 4

// Fingerprint returns a short BLAKE2b digest of the shared secret, formatted
// as dash-separated groups, for users to compare out of band.
func Fingerprint(secret uint64) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], secret)
	sum := blake2b.Sum256(buf[:])

	digits := hex.EncodeToString(sum[:fingerprintGroups*2])
	groups := make([]string, 0, fingerprintGroups)
	for i := 0; i < len(digits); i += 4 {
		groups = append(groups, digits[i:i+4])
	}
	return strings.Join(groups, "-")
}
