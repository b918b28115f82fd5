package keysetpager

// Page size bounds applied to client supplied sizes.
const (
	// NoLimit asks FindPage for every remaining row.
	NoLimit = -1
	// MaxLimit is the largest size Decode and NewPageRequest accept.
	MaxLimit = 100
	// DefaultLimit replaces a missing or non-positive size.
	DefaultLimit = 10

	// UnpagedSize is the size reported by Unpaged().
	UnpagedSize = 20
)

// IsNormalizedLimitMax returns the page size to use for limit under maxLimit
// and reports whether limit was usable as is. A non-positive limit becomes
// DefaultLimit, never more than maxLimit.
func IsNormalizedLimitMax(limit int, maxLimit int) (int, bool) {
	switch {
	case limit <= 0:
		return min(DefaultLimit, maxLimit), false
	case limit > maxLimit:
		return maxLimit, false
	default:
		return limit, true
	}
}

func NormalizeLimitMax(limit int, maxLimit int) int {
	size, _ := IsNormalizedLimitMax(limit, maxLimit)
	return size
}

func NormalizeLimit(limit int) int {
	return NormalizeLimitMax(limit, MaxLimit)
}
