package idspec

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"msigctl/internal/domain"
)

const (
	tokenSeparator = ","
	rangeSeparator = "-"

	// DefaultMaxIDs bounds how many ids a single spec may expand to.
	DefaultMaxIDs = 10000
)

// TokenKind tags the variant held by a Token.
type TokenKind int

const (
	// TokenLiteral is a single id passed through as typed.
	TokenLiteral TokenKind = iota
	// TokenRange is an inclusive lo-hi range.
	TokenRange
	// TokenMalformed is a range token whose bounds are not integers. It is
	// only produced in lenient mode and contributes no ids.
	TokenMalformed
)

// Token is one comma-separated element of an id spec.
type Token struct {
	Kind    TokenKind
	Raw     string
	Lo, Hi  uint64
	Literal domain.TxID
}

// Len returns the number of ids the token expands to, saturating at
// math.MaxUint64 for the full 0-MaxUint64 range.
func (t Token) Len() uint64 {
	switch t.Kind {
	case TokenLiteral:
		return 1
	case TokenRange:
		if t.Lo > t.Hi {
			return 0
		}
		if t.Hi-t.Lo == math.MaxUint64 {
			return math.MaxUint64
		}
		return t.Hi - t.Lo + 1
	default:
		return 0
	}
}

// Options tune parsing.
type Options struct {
	// Strict turns malformed range bounds into a *ParseError instead of an
	// empty expansion. Descending ranges expand to nothing in either mode.
	Strict bool
	// MaxIDs caps the expanded sequence length; zero means DefaultMaxIDs.
	MaxIDs int
}

var (
	// ErrTooManyIDs is returned when a spec expands beyond Options.MaxIDs.
	ErrTooManyIDs = errors.New("id spec expands to too many ids")
)

// ParseError describes a token rejected in strict mode.
type ParseError struct {
	Index  int
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("id spec token #%d %q: %s", e.Index, e.Token, e.Reason)
}

// Parse expands spec with the lenient policy: malformed ranges contribute
// nothing and never fail.
func Parse(spec string) ([]domain.TxID, error) {
	return ParseWith(spec, Options{})
}

// ParseWith expands spec into an ordered id sequence. Tokens are expanded
// left to right, ranges ascending and inclusive, duplicates kept.
func ParseWith(spec string, opts Options) ([]domain.TxID, error) {
	tokens, err := Tokenize(spec, opts.Strict)
	if err != nil {
		return nil, err
	}
	return Expand(tokens, opts.MaxIDs)
}

// Tokenize splits spec on commas and classifies every token.
func Tokenize(spec string, strict bool) ([]Token, error) {
	parts := strings.Split(spec, tokenSeparator)
	tokens := make([]Token, 0, len(parts))
	for i, raw := range parts {
		lo, hi, isRange := strings.Cut(raw, rangeSeparator)
		if !isRange {
			tokens = append(tokens, Token{Kind: TokenLiteral, Raw: raw, Literal: domain.TxID(raw)})
			continue
		}
		if !strict {
			// "1-2-3" reads as 1-2.
			hi, _, _ = strings.Cut(hi, rangeSeparator)
		}

		loN, loErr := strconv.ParseUint(lo, 10, 64)
		hiN, hiErr := strconv.ParseUint(hi, 10, 64)
		if loErr != nil || hiErr != nil {
			if strict {
				return nil, &ParseError{Index: i, Token: raw, Reason: boundReason(lo, hi, loErr)}
			}
			tokens = append(tokens, Token{Kind: TokenMalformed, Raw: raw})
			continue
		}
		tokens = append(tokens, Token{Kind: TokenRange, Raw: raw, Lo: loN, Hi: hiN})
	}
	return tokens, nil
}

// Expand flattens tokens into the id sequence, refusing to grow past limit ids.
func Expand(tokens []Token, limit int) ([]domain.TxID, error) {
	if limit <= 0 {
		limit = DefaultMaxIDs
	}
	var total uint64
	for _, t := range tokens {
		n := t.Len()
		if n > uint64(limit) || total+n > uint64(limit) {
			return nil, fmt.Errorf("%w: more than %d", ErrTooManyIDs, limit)
		}
		total += n
	}

	ids := make([]domain.TxID, 0, total)
	for _, t := range tokens {
		switch t.Kind {
		case TokenLiteral:
			ids = append(ids, t.Literal)
		case TokenRange:
			if t.Lo > t.Hi {
				continue
			}
			// Stop on hi itself so hi == MaxUint64 cannot wrap around.
			for id := t.Lo; ; id++ {
				ids = append(ids, domain.TxID(strconv.FormatUint(id, 10)))
				if id == t.Hi {
					break
				}
			}
		}
	}
	return ids, nil
}

func boundReason(lo, hi string, loErr error) string {
	bad := hi
	side := "upper"
	if loErr != nil {
		bad, side = lo, "lower"
	}
	if bad == "" {
		return side + " bound is empty"
	}
	return fmt.Sprintf("%s bound %q is not a base-10 integer", side, bad)
}
