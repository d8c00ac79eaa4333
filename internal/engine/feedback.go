package engine

import "fmt"

// Feedback is the bulls (A) and cows (B) count of one guess.
type Feedback struct {
	A int `json:"a"`
	B int `json:"b"`
}

func (f Feedback) Solved() bool { return f.A == CodeLen }

func (f Feedback) String() string { return fmt.Sprintf("%dA%dB", f.A, f.B) }

// Evaluate scores guess against secret. Cows are counted by membership, so a
// guess with repeated digits would double count; ParseCode keeps those out.
func Evaluate(secret, guess Code) Feedback {
	var fb Feedback
	inSecret := secret.Digits()
	for i := 0; i < CodeLen; i++ {
		switch {
		case guess[i] == secret[i]:
			fb.A++
		case inSecret.Has(guess.Digit(i)):
			fb.B++
		}
	}
	return fb
}

// ParseFeedback accepts exactly "2A1B" (letters case-insensitive) and
// validates a+b <= 4. Signs, spaces and trailing input are rejected.
func ParseFeedback(s string) (Feedback, error) {
	if len(s) != 4 || !isCount(s[0]) || !isCount(s[2]) ||
		(s[1] != 'A' && s[1] != 'a') || (s[3] != 'B' && s[3] != 'b') {
		return Feedback{}, fmt.Errorf("feedback %q: want form 1A2B", s)
	}
	fb := Feedback{A: int(s[0] - '0'), B: int(s[2] - '0')}
	if !fb.Valid() {
		return Feedback{}, fmt.Errorf("feedback %q: counts out of range", s)
	}
	return fb, nil
}

func isCount(c byte) bool { return c >= '0' && c <= '0'+CodeLen }

func (f Feedback) Valid() bool {
	return f.A >= 0 && f.B >= 0 && f.A+f.B <= CodeLen
}
