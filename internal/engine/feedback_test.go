package engine

import "testing"

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name          string
		secret, guess Code
		want          Feedback
	}{
		{"all match", "1234", "1234", Feedback{4, 0}},
		{"swapped tail", "1234", "1243", Feedback{2, 2}},
		{"no match", "1234", "5678", Feedback{0, 0}},
		{"reversed", "1234", "4321", Feedback{0, 4}},
		{"leading zero", "0123", "1035", Feedback{0, 3}},
		{"mixed", "5079", "5970", Feedback{2, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate(tc.secret, tc.guess); got != tc.want {
				t.Fatalf("Evaluate(%s, %s)=%s want %s", tc.secret, tc.guess, got, tc.want)
			}
		})
	}
}

func TestEvaluate_SolvedOnlyOnEquality(t *testing.T) {
	u := GenerateUniverse()
	secret := MustCode("3806")
	for _, g := range u {
		solved := Evaluate(secret, g).Solved()
		if solved != (g == secret) {
			t.Fatalf("guess %s: solved=%v", g, solved)
		}
	}
}

// Membership-based cow counting double counts repeated guess digits, which is
// why guesses go through ParseCode first.
func TestEvaluate_RepeatedDigitsDoubleCount(t *testing.T) {
	if _, err := ParseCode("1111"); err == nil {
		t.Fatalf("ParseCode accepted repeated digits")
	}
	got := Evaluate("1234", Code("1111"))
	if got != (Feedback{A: 1, B: 3}) {
		t.Fatalf("got %s", got)
	}
}

func TestParseFeedback(t *testing.T) {
	cases := []struct {
		in   string
		want Feedback
		ok   bool
	}{
		{"2A1B", Feedback{2, 1}, true},
		{"0a0b", Feedback{0, 0}, true},
		{"4A0B", Feedback{4, 0}, true},
		{"3A2B", Feedback{}, false},
		{"2B1A", Feedback{}, false},
		{"x", Feedback{}, false},
		{"5A0B", Feedback{}, false},
		{"2A1Bjunk", Feedback{}, false},
		{"2A1B0A0B", Feedback{}, false},
		{"1A2B3", Feedback{}, false},
		{"+2A1B", Feedback{}, false},
		{"2A+1B", Feedback{}, false},
		{"-1A1B", Feedback{}, false},
		{" 2A1B", Feedback{}, false},
		{"", Feedback{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseFeedback(tc.in)
			if (err == nil) != tc.ok {
				t.Fatalf("ParseFeedback(%q) err=%v want ok=%v", tc.in, err, tc.ok)
			}
			if tc.ok && got != tc.want {
				t.Fatalf("ParseFeedback(%q)=%s want %s", tc.in, got, tc.want)
			}
		})
	}
}
