package capo

// MaxAmbiguousOptions bounds the number of options that may be read either
// as flags or as taking the following word. Later options beyond the bound
// are read as flags.
const MaxAmbiguousOptions = 16

// Combination is one interpretation of an argument vector: the command
// words and the options, each holding true (flag) or the consumed word.
type Combination struct {
	Command []string
	Options map[string]any
}

// Parse tokenizes argv and enumerates every combination.
func Parse(argv []string, mode Mode) []Combination {
	return Combinations(Tokenize(argv, mode))
}

// Combinations enumerates the 2^N readings of the N ambiguous options.
// The first ambiguous option is the most significant digit and the
// value-consuming reading comes before the flag reading.
func Combinations(tokens Tokens) []Combination {
	ambiguous, flags := classifyOptions(tokens)
	words := tokens.Words()

	n := len(ambiguous)
	total := 1 << n
	combinations := make([]Combination, 0, total)
	for mask := 0; mask < total; mask++ {
		options := make(map[string]any, n+len(flags))
		for i, option := range ambiguous {
			if mask>>(n-1-i)&1 == 1 {
				options[option.Name] = true
				continue
			}
			next, _ := tokens.Next(option)
			options[option.Name] = next.Name
		}
		for _, option := range flags {
			options[option.Name] = true
		}

		command := make([]string, 0, len(words))
		for _, word := range words {
			if previous, ok := tokens.Previous(word); ok && previous.IsOption() {
				if value, isString := options[previous.Name].(string); isString && value == word.Name {
					continue
				}
			}
			command = append(command, word.Name)
		}

		combinations = append(combinations, Combination{Command: command, Options: options})
	}
	return combinations
}

// classifyOptions splits option tokens into ambiguous ones (followed by a
// word that could be their value) and flags. A name seen once as a flag
// is a flag everywhere.
func classifyOptions(tokens Tokens) (ambiguous, flags Tokens) {
	for _, option := range tokens.Options() {
		if containsName(flags, option.Name) {
			continue
		}
		if next, ok := tokens.Next(option); ok && next.IsWord() && !next.Verbatim {
			ambiguous = append(ambiguous, option)
			continue
		}
		flags = append(flags, option)
		ambiguous = withoutName(ambiguous, option.Name)
	}

	for len(ambiguous) > MaxAmbiguousOptions {
		last := ambiguous[len(ambiguous)-1]
		flags = append(flags, last)
		ambiguous = withoutName(ambiguous, last.Name)
	}
	return ambiguous, flags
}

func containsName(tokens Tokens, name string) bool {
	for _, t := range tokens {
		if t.Name == name {
			return true
		}
	}
	return false
}

func withoutName(tokens Tokens, name string) Tokens {
	out := tokens[:0:0]
	for _, t := range tokens {
		if t.Name != name {
			out = append(out, t)
		}
	}
	return out
}
