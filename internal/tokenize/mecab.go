package tokenize

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// MeCab tokenizes Japanese text through the mecab binary. Non-Japanese
// text falls back to whitespace splitting.
type MeCab struct {
	Binary string
}

// NewMeCab returns a MeCab tokenizer for the given binary name or path.
func NewMeCab(binary string) *MeCab {
	if binary == "" {
		binary = "mecab"
	}
	return &MeCab{Binary: binary}
}

// Available reports whether the mecab binary can be resolved.
func (m *MeCab) Available() bool {
	_, err := exec.LookPath(m.Binary)
	return err == nil
}

func (m *MeCab) Tokenize(text, language string) ([]Token, error) {
	if !strings.HasPrefix(strings.ToLower(language), "ja") {
		return Whitespace{}.Tokenize(text, language)
	}
	return m.run(context.Background(), text)
}

// run feeds the text to mecab on stdin and parses the default lattice
// output, one "surface\tfeatures" line per morpheme terminated by EOS.
func (m *MeCab) run(ctx context.Context, text string) ([]Token, error) {
	cmd := exec.CommandContext(ctx, m.Binary) //nolint:gosec
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("mecab: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}
	return parseMeCabOutput(stdout.String()), nil
}

func parseMeCabOutput(output string) []Token {
	var tokens []Token
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || line == "EOS" {
			continue
		}
		surface, features, ok := strings.Cut(line, "\t")
		if !ok || surface == "" {
			continue
		}
		token := Token{Surface: surface}
		// IPADIC feature CSV carries the kana reading in field 8.
		fields := strings.Split(features, ",")
		if len(fields) > 7 && fields[7] != "*" && fields[7] != "" {
			token.Reading = fields[7]
		}
		tokens = append(tokens, token)
	}
	return tokens
}
