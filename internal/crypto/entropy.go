package crypto

import "math"

// EstimateEntropy returns length * log2(poolSize) bits, or 0 when the pool
// offers no choice. poolSize must be the effective pool after exclusions.
func EstimateEntropy(poolSize, length int) float64 {
	if poolSize <= 1 || length <= 0 {
		return 0
	}
	return float64(length) * math.Log2(float64(poolSize))
}
