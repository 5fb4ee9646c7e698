// SPDX-License-Identifier: EPL-2.0

package mp3

// Sample rates MPEG-1, MPEG-2 and MPEG-2.5 Layer III can carry.
var legalRates = []int{8000, 11025, 12000, 16000, 22050, 24000, 32000, 44100, 48000}

func IsLegalRate(rate int) bool {
	for _, r := range legalRates {
		if r == rate {
			return true
		}
	}
	return false
}

// NearestRate returns the Layer III rate closest to rate. Ties resolve to
// the higher rate.
func NearestRate(rate int) int {
	best := legalRates[0]
	bestDist := abs(rate - best)

	for _, r := range legalRates[1:] {
		if d := abs(rate - r); d <= bestDist {
			best, bestDist = r, d
		}
	}

	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
