package mapping

// Levenshtein computes the Levenshtein distance (edit distance) between two strings.
// The distance is the minimum number of single-character edits (insertions, deletions,
// or substitutions) required to transform one string into the other.
//
// Time complexity: O(len(a) * len(b))
// Space complexity: O(min(len(a), len(b))).
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	// Ensure a is the shorter string for space optimization
	if len(a) > len(b) {
		a, b = b, a
	}

	// Use two rows instead of full matrix for space optimization
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			curr[i] = min3(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// LevenshteinRatio computes a normalized similarity score between 0 and 1.
// 1.0 means identical strings, 0.0 means completely different.
// The score is: 1 - (distance / max(len(a), len(b))).
func LevenshteinRatio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	maxLen := max(len(a), len(b))
	distance := Levenshtein(a, b)

	return 1.0 - float64(distance)/float64(maxLen)
}

// overlapCoefficient measures how completely the smaller token set is
// contained in the larger one: |A ∩ B| / min(|A|, |B|).
func overlapCoefficient(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}

	shared := 0
	for _, t := range b {
		if set[t] {
			shared++
			delete(set, t)
		}
	}

	return float64(shared) / float64(min(len(a), len(b)))
}

// Similarity scores two raw headers after normalization. The score is the
// maximum of the normalized Levenshtein ratio and the token overlap
// coefficient; the latter is what lets a short header like "UPC" claim
// "UPC Code" at the default 0.6 threshold.
func Similarity(a, b string) float64 {
	normA := Normalize(a)
	normB := Normalize(b)

	score := LevenshteinRatio(normA, normB)
	if overlap := overlapCoefficient(Tokens(a), Tokens(b)); overlap > score {
		score = overlap
	}

	return score
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}

		return c
	}

	if b < c {
		return b
	}

	return c
}
