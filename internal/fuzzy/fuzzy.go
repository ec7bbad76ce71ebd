// Package fuzzy ranks registered command names against mistyped input.
// Used by capo/errors.go to build "Did you mean" suggestions.
package fuzzy

import (
	"sort"
	"strings"
)

// Matcher ranks candidates by bounded Levenshtein distance.
type Matcher struct {
	maxDistance int
	minLength   int
}

// NewMatcher creates a matcher accepting candidates up to maxDistance edits away.
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{
		maxDistance: maxDistance,
		minLength:   2, // Don't suggest for very short inputs
	}
}

// Match is one ranked candidate.
type Match struct {
	Value    string
	Distance int
	Prefix   int
}

// Rank returns the candidates within distance, best first. Exact matches
// are skipped since they are not typos.
func (m *Matcher) Rank(input string, candidates []string) []Match {
	if len(input) < m.minLength {
		return nil
	}
	input = strings.ToLower(input)

	var matches []Match
	for _, candidate := range candidates {
		lower := strings.ToLower(candidate)
		if lower == input {
			continue
		}
		distance := m.Distance(input, lower)
		if distance > m.maxDistance {
			continue
		}
		matches = append(matches, Match{
			Value:    candidate,
			Distance: distance,
			Prefix:   commonPrefix(input, lower),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Prefix > matches[j].Prefix
	})
	return matches
}

// Best returns the top candidate or "" when nothing is close enough.
func (m *Matcher) Best(input string, candidates []string) string {
	matches := m.Rank(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// Distance computes the edit distance between a and b, returning
// maxDistance+1 as soon as the bound is exceeded.
func (m *Matcher) Distance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if abs(len(a)-len(b)) > m.maxDistance {
		return m.maxDistance + 1
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	previous := make([]int, len(a)+1)
	current := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}

	for i := 1; i <= len(b); i++ {
		current[0] = i
		rowMin := i
		for j := 1; j <= len(a); j++ {
			cost := 1
			if a[j-1] == b[i-1] {
				cost = 0
			}
			current[j] = min(current[j-1]+1, previous[j]+1, previous[j-1]+cost)
			rowMin = min(rowMin, current[j])
		}
		if rowMin > m.maxDistance {
			return m.maxDistance + 1
		}
		previous, current = current, previous
	}
	return previous[len(a)]
}

// Suggest returns up to limit candidates close to input.
func Suggest(input string, candidates []string, maxDistance, limit int) []string {
	matches := NewMatcher(maxDistance).Rank(input, candidates)
	out := make([]string, 0, min(len(matches), limit))
	for _, match := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, match.Value)
	}
	return out
}

// SuggestPrefix compares each multi-word candidate with as many leading
// words of argv as the candidate has, so "gret John" still suggests "greet".
func SuggestPrefix(argv, candidates []string, maxDistance, limit int) []string {
	byInput := make(map[string][]string)
	var inputs []string
	for _, candidate := range candidates {
		n := len(strings.Fields(candidate))
		if n > len(argv) {
			n = len(argv)
		}
		input := strings.Join(argv[:n], " ")
		if _, ok := byInput[input]; !ok {
			inputs = append(inputs, input)
		}
		byInput[input] = append(byInput[input], candidate)
	}

	matcher := NewMatcher(maxDistance)
	var ranked []Match
	for _, input := range inputs {
		ranked = append(ranked, matcher.Rank(input, byInput[input])...)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})

	out := make([]string, 0, min(len(ranked), limit))
	for _, match := range ranked {
		if len(out) == limit {
			break
		}
		out = append(out, match.Value)
	}
	return out
}

func commonPrefix(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
