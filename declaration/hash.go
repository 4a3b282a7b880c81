package declaration

import (
	"github.com/minio/highwayhash"
	"github.com/pkg/errors"
)

// fingerprintKey seeds highwayhash, it must stay 32 bytes and stable across releases
const fingerprintKey = "ntdecl/declaration-fingerprint!!"

var key = []byte(fingerprintKey)

// Hash returns highwayhash 64 digest of supplied data
func Hash(data ...[]byte) (uint64, error) {
	if len(key) != highwayhash.Size {
		return 0, errors.Errorf("invalid fingerprint key size: %d", len(key))
	}
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	for _, item := range data {
		if _, err = hash.Write(item); err != nil {
			return 0, err
		}
	}
	return hash.Sum64(), nil
}

// Fingerprint returns digest of the table literal rendering, two runs producing the same table share a fingerprint
func (t *Table) Fingerprint() (uint64, error) {
	data, err := (&LiteralEmitter{}).Emit(t)
	if err != nil {
		return 0, err
	}
	return Hash(data)
}
