package domain

import "strings"

// Levenshtein returns the edit distance between a and b, counted in runes.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	matrix := make([][]int, len(ra)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(rb)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[len(ra)][len(rb)]
}

// Suggest picks the candidate closest to value. Candidates are tried in
// order: the first one value is a prefix of, then the first one containing
// value, then the one with the smallest edit distance (earliest wins ties).
// An empty value yields the first candidate; no candidates yields "".
func Suggest(value string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	if value == "" {
		return candidates[0]
	}

	for _, c := range candidates {
		if strings.HasPrefix(c, value) {
			return c
		}
	}
	for _, c := range candidates {
		if strings.Contains(c, value) {
			return c
		}
	}

	best := candidates[0]
	bestDistance := Levenshtein(value, best)
	for _, c := range candidates[1:] {
		if d := Levenshtein(value, c); d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best
}
