package engine

import (
	"errors"
	"fmt"
	"strings"
)

// CodeLen is the number of positions in a code.
const CodeLen = 4

var (
	ErrInvalidCode           = errors.New("invalid code")
	ErrContradictoryFeedback = errors.New("contradictory feedback")
)

// Code is 4 distinct digits, leading zeros allowed.
type Code string

// InvalidInputError reports why a raw guess is not a well-formed Code.
type InvalidInputError struct {
	Input  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid code %q: %s", e.Input, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidCode }

// ParseCode is the input boundary: nothing reaches Evaluate without passing here.
func ParseCode(s string) (Code, error) {
	s = strings.TrimSpace(s)
	if len(s) != CodeLen {
		return "", &InvalidInputError{Input: s, Reason: fmt.Sprintf("must be exactly %d digits", CodeLen)}
	}
	var seen DigitSet
	for i := 0; i < CodeLen; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return "", &InvalidInputError{Input: s, Reason: "must contain only digits 0-9"}
		}
		d := int(c - '0')
		if seen.Has(d) {
			return "", &InvalidInputError{Input: s, Reason: fmt.Sprintf("digit %d is repeated", d)}
		}
		seen = seen.Add(d)
	}
	return Code(s), nil
}

// MustCode panics on malformed input. Intended for constants and tests.
func MustCode(s string) Code {
	c, err := ParseCode(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Digit returns the numeric digit at position i.
func (c Code) Digit(i int) int { return int(c[i] - '0') }

// Digits returns the set of digits in c.
func (c Code) Digits() DigitSet {
	var s DigitSet
	for i := 0; i < len(c); i++ {
		s = s.Add(c.Digit(i))
	}
	return s
}

func (c Code) String() string { return string(c) }
