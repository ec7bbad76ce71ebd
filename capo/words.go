package capo

import (
	"math"
	"regexp"
	"strconv"
)

var numberPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// LooksLikeNumber reports whether the whole word is a decimal number.
func LooksLikeNumber(word string) bool {
	if !numberPattern.MatchString(word) {
		return false
	}
	f, err := strconv.ParseFloat(word, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// ParseBoolean recognizes the exact words "true" and "false".
func ParseBoolean(word string) (value, ok bool) {
	switch word {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// Evaluate coerces a raw word into the first fitting type of the set,
// trying boolean, then number, then string.
func Evaluate(types Types, word string) (any, bool) {
	if types.Has(TypeBoolean) {
		if b, ok := ParseBoolean(word); ok {
			return b, true
		}
	}
	if types.Has(TypeNumber) && LooksLikeNumber(word) {
		f, _ := strconv.ParseFloat(word, 64)
		return f, true
	}
	if types.Has(TypeString) {
		return word, true
	}
	return nil, false
}

// evaluateAll coerces every word, failing as soon as one does not fit.
func evaluateAll(types Types, words []string) ([]any, bool) {
	values := make([]any, 0, len(words))
	for _, word := range words {
		value, ok := Evaluate(types, word)
		if !ok {
			return nil, false
		}
		values = append(values, value)
	}
	return values, true
}

// matchWords is the cardinality and type check shared by parameters and
// store wildcards.
func matchWords(types Types, optional, variadic bool, words []string) bool {
	if !variadic && len(words) >= 2 {
		return false
	}
	if !optional && len(words) == 0 {
		return false
	}
	_, ok := evaluateAll(types, words)
	return ok
}
