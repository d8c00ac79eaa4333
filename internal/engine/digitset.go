package engine

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DigitSet is a bit set over the digits 0-9.
type DigitSet uint16

const allDigits DigitSet = 1<<10 - 1

func (s DigitSet) Has(d int) bool { return s&(1<<uint(d)) != 0 }

func (s DigitSet) Add(d int) DigitSet { return s | 1<<uint(d) }

func (s DigitSet) Full() bool { return s&allDigits == allDigits }

// Complement returns the digits 0-9 not in s.
func (s DigitSet) Complement() DigitSet { return ^s & allDigits }

func (s DigitSet) Len() int {
	n := 0
	for d := 0; d < 10; d++ {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// Digits lists the members in ascending order.
func (s DigitSet) Digits() []int {
	out := make([]int, 0, s.Len())
	for d := 0; d < 10; d++ {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

func (s DigitSet) String() string {
	parts := make([]string, 0, 10)
	for _, d := range s.Digits() {
		parts = append(parts, strconv.Itoa(d))
	}
	return strings.Join(parts, ", ")
}

func (s DigitSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Digits())
}

func (s *DigitSet) UnmarshalJSON(b []byte) error {
	var ds []int
	if err := json.Unmarshal(b, &ds); err != nil {
		return err
	}
	var out DigitSet
	for _, d := range ds {
		if d < 0 || d > 9 {
			return fmt.Errorf("digit set: %d is not a digit", d)
		}
		out = out.Add(d)
	}
	*s = out
	return nil
}
