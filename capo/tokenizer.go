package capo

// TokenType classifies a token.
type TokenType int

const (
	TokenWord TokenType = iota
	TokenOption
)

// String returns "word" or "option".
func (t TokenType) String() string {
	if t == TokenOption {
		return "option"
	}
	return "word"
}

// Token is one classified argument. Index is the position in the token
// sequence, which skips the end of options marker.
type Token struct {
	Type  TokenType
	Name  string
	Index int

	// Verbatim marks words that came after the end of options marker.
	Verbatim bool
}

// IsWord reports whether the token is a word.
func (t Token) IsWord() bool { return t.Type == TokenWord }

// IsOption reports whether the token is an option.
func (t Token) IsOption() bool { return t.Type == TokenOption }

// Tokens is a tokenized argument vector.
type Tokens []Token

// Tokenize classifies argv under mode. It panics if mode is misconfigured.
func Tokenize(argv []string, mode Mode) Tokens {
	mode.mustValidate()

	tokens := make(Tokens, 0, len(argv))
	parsing := true
	for _, arg := range argv {
		if parsing && arg == mode.EndOfOptions {
			parsing = false
			continue
		}

		token := Token{Type: TokenWord, Name: arg, Index: len(tokens), Verbatim: !parsing}
		if parsing {
			if name, ok := mode.optionName(arg); ok {
				token.Type = TokenOption
				token.Name = name
			}
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// Previous returns the token before t.
func (ts Tokens) Previous(t Token) (Token, bool) {
	return ts.at(t.Index - 1)
}

// Next returns the token after t.
func (ts Tokens) Next(t Token) (Token, bool) {
	return ts.at(t.Index + 1)
}

func (ts Tokens) at(index int) (Token, bool) {
	if index < 0 || index >= len(ts) {
		return Token{}, false
	}
	return ts[index], true
}

// Words returns the word tokens in order.
func (ts Tokens) Words() Tokens {
	return ts.filter(TokenWord)
}

// Options returns the option tokens in order.
func (ts Tokens) Options() Tokens {
	return ts.filter(TokenOption)
}

func (ts Tokens) filter(typ TokenType) Tokens {
	out := make(Tokens, 0, len(ts))
	for _, t := range ts {
		if t.Type == typ {
			out = append(out, t)
		}
	}
	return out
}
