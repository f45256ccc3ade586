// Package args provides the cursor used to walk the flat list of tokens
// handed to the build command.
package args

import (
	"strings"

	"git.home.luguber.info/inful/docbuild/internal/foundation/errors"
)

// Stream is a forward-only cursor over command-line tokens.
//
// Tokens of the form --flag=value are split into two tokens at construction
// so handlers never need to care which syntax the user chose.
type Stream struct {
	tokens []string
	pos    int
}

// New captures tokens. A token containing more than one '=' is rejected with
// an InvalidArgument error.
func New(tokens []string) (*Stream, error) {
	split := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		switch strings.Count(tok, "=") {
		case 0:
			split = append(split, tok)
		case 1:
			flag, value, _ := strings.Cut(tok, "=")
			split = append(split, flag, value)
		default:
			return nil, errors.InvalidArgument(tok).Build()
		}
	}
	return &Stream{tokens: split}, nil
}

// Next returns the next token. ok is false once the stream is exhausted.
func (s *Stream) Next() (tok string, ok bool) {
	if s.pos >= len(s.tokens) {
		return "", false
	}
	tok = s.tokens[s.pos]
	s.pos++
	return tok, true
}

// NextOrFail returns the next token or a MissingArgument error naming the
// token that was consumed last.
func (s *Stream) NextOrFail() (string, error) {
	if tok, ok := s.Next(); ok {
		return tok, nil
	}
	return "", errors.MissingArgument(s.previous()).Build()
}

// Remaining reports how many tokens are left.
func (s *Stream) Remaining() int {
	return len(s.tokens) - s.pos
}

// Tokens returns a copy of the normalized token list.
func (s *Stream) Tokens() []string {
	out := make([]string, len(s.tokens))
	copy(out, s.tokens)
	return out
}

func (s *Stream) previous() string {
	if s.pos == 0 {
		return ""
	}
	return s.tokens[s.pos-1]
}
