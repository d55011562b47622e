package xl

import (
	"hash/fnv"

	"github.com/google/uuid"
)

// ArchiveHash fingerprints archive bytes as a UUID-shaped FNV-128 hash.
// Equal archives always hash equal.
func ArchiveHash(blob []byte) uuid.UUID {
	h := fnv.New128()
	h.Write(blob)
	uid, _ := uuid.FromBytes(h.Sum([]byte{}))
	return uid
}
