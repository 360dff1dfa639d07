package snapshot

import (
	"encoding/hex"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/zeebo/blake3"

	"github.com/revelaction/treedoc/storage"
)

// Policy names accepted by ParsePolicy.
const (
	PolicyHash  = "hash"
	PolicyMtime = "mtime"
	PolicyTrust = "trust"
)

// ParsePolicy returns the policy for name. An empty name selects HashPolicy.
func ParsePolicy(name string) (storage.Policy, error) {
	switch strings.ToLower(name) {
	case "", PolicyHash:
		return HashPolicy{}, nil
	case PolicyMtime:
		return ModTimePolicy{}, nil
	case PolicyTrust:
		return TrustPolicy{}, nil
	}
	return nil, errors.Newf("unknown snapshot policy %q (want %s, %s or %s)", name, PolicyHash, PolicyMtime, PolicyTrust)
}

// TrustPolicy serves every snapshot as is. A snapshot whose source changed
// after it was written is still served.
type TrustPolicy struct{}

func (TrustPolicy) Stamp(source string) (storage.Stamp, error) {
	return storage.Stamp{Source: source}, nil
}

func (TrustPolicy) Valid(storage.Stamp) (bool, error) {
	return true, nil
}

// ModTimePolicy invalidates a snapshot when the modification time of its
// source differs from the recorded one.
type ModTimePolicy struct{}

func (ModTimePolicy) Stamp(source string) (storage.Stamp, error) {
	info, err := os.Stat(source)
	if err != nil {
		return storage.Stamp{}, errors.Wrapf(err, "stat %s", source)
	}
	return storage.Stamp{Source: source, ModTime: info.ModTime().UnixNano()}, nil
}

func (ModTimePolicy) Valid(s storage.Stamp) (bool, error) {
	info, err := os.Stat(s.Source)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, errors.Wrapf(err, "stat %s", s.Source)
	}
	return info.ModTime().UnixNano() == s.ModTime, nil
}

// HashPolicy invalidates a snapshot when the BLAKE3 digest of its source
// bytes differs from the recorded one.
type HashPolicy struct{}

func (HashPolicy) Stamp(source string) (storage.Stamp, error) {
	digest, err := Digest(source)
	if err != nil {
		return storage.Stamp{}, err
	}
	return storage.Stamp{Source: source, Digest: digest}, nil
}

func (HashPolicy) Valid(s storage.Stamp) (bool, error) {
	digest, err := Digest(s.Source)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, err
	}
	return digest == s.Digest, nil
}

// Digest returns the hex BLAKE3-256 digest of the raw bytes of path.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrapf(err, "hash %s", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
