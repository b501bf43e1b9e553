package geocoding

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

func cacheKey(prefix, query string) string {
	return prefix + hashHex(query)
}

// reverseCacheKey keeps coordinate lookups under their own "reverse_" segment.
// Text keys are prefix + hex digest, so the two can never collide.
func reverseCacheKey(prefix string, lat, lon float64) string {
	return prefix + "reverse_" + hashHex(
		strconv.FormatFloat(lat, 'f', -1, 64)+"_"+strconv.FormatFloat(lon, 'f', -1, 64))
}

func hashHex(s string) string {
	return strconv.FormatUint(xxhash.Sum64String(s), 16)
}
