package fingerprint

import (
	"math/bits"

	"github.com/turtacn/KeyIP-Fingerprint/pkg/errors"
)

// Tanimoto computes |a∩b| / |a∪b| over two bit vectors of equal length.
// Two empty vectors have similarity 0.
func Tanimoto(a, b BitVector) (float64, error) {
	if a == nil || b == nil {
		return 0, errors.InvalidParam("fingerprint must not be nil")
	}
	if a.Len() != b.Len() {
		return 0, errors.Newf(errors.ErrCodeValidation, "fingerprints must have the same length, got %d and %d", a.Len(), b.Len())
	}
	ab, bb := a.Bytes(), b.Bytes()
	intersection, union := 0, 0
	for i := range ab {
		intersection += bits.OnesCount8(ab[i] & bb[i])
		union += bits.OnesCount8(ab[i] | bb[i])
	}
	if union == 0 {
		return 0, nil
	}
	return float64(intersection) / float64(union), nil
}

//Personal.AI order the ending
