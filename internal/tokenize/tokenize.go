package tokenize

import (
	"strings"
)

// Token is one display unit of a subtitle line. Reading carries the kana
// reading when a morphological backend provides one.
type Token struct {
	Surface string `json:"surface"`
	Reading string `json:"reading,omitempty"`
}

// Tokenizer splits text for a given language tag.
type Tokenizer interface {
	Tokenize(text, language string) ([]Token, error)
}

// Whitespace splits on Unicode whitespace regardless of language.
type Whitespace struct{}

func (Whitespace) Tokenize(text, language string) ([]Token, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, nil
	}
	tokens := make([]Token, len(fields))
	for i, field := range fields {
		tokens[i] = Token{Surface: field}
	}
	return tokens, nil
}

// Surfaces flattens tokens to their surface forms.
func Surfaces(tokens []Token) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, len(tokens))
	for i, token := range tokens {
		out[i] = token.Surface
	}
	return out
}
