//nolint:testpackage // using package name 'benchmark' to access unexported fields for testing
package benchmark

import (
	"testing"

	fuzzy "github.com/dzonerzy/go-capo/internal/fuzzy"
)

// Category: fuzzy (exported paths only)

var fuzzyCandidates = []string{
	"help", "version", "verbose", "config", "output", "input",
	"force", "debug", "port", "host", "timeout", "retry",
}

func BenchmarkMatcher_Best(b *testing.B) {
	matcher := fuzzy.NewMatcher(2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		matcher.Best("hep", fuzzyCandidates)
	}
}

func BenchmarkMatcher_Rank(b *testing.B) {
	matcher := fuzzy.NewMatcher(2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		matcher.Rank("ver", fuzzyCandidates)
	}
}

func BenchmarkSuggest(b *testing.B) {
	b.Run("Suggest", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			fuzzy.Suggest("confg", fuzzyCandidates, 2, 3)
		}
	})
	b.Run("SuggestPrefix", func(b *testing.B) {
		commands := []string{"remote add", "remote remove", "remote show", "commit", "checkout"}
		argv := []string{"remote", "ad", "origin"}
		for i := 0; i < b.N; i++ {
			fuzzy.SuggestPrefix(argv, commands, 2, 3)
		}
	})
}
