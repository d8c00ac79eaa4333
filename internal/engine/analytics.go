package engine

// ImpossibleDigits returns the digits that appear in no candidate.
func ImpossibleDigits(pool Pool) DigitSet {
	if len(pool) == 0 {
		return 0
	}
	var present DigitSet
	for _, c := range pool {
		present |= c.Digits()
		if present.Full() {
			return 0
		}
	}
	return present.Complement()
}

// ConfirmedPositions maps digit -> position for every column on which all
// candidates agree.
func ConfirmedPositions(pool Pool) map[int]int {
	out := make(map[int]int)
	if len(pool) == 0 {
		return out
	}
	first := pool[0]
	for col := 0; col < CodeLen; col++ {
		unanimous := true
		for _, c := range pool[1:] {
			if c[col] != first[col] {
				unanimous = false
				break
			}
		}
		if unanimous {
			out[first.Digit(col)] = col
		}
	}
	return out
}

// PositionalPossibilities is, per position, the set of digits seen there in the pool.
func PositionalPossibilities(pool Pool) [CodeLen]DigitSet {
	var out [CodeLen]DigitSet
	for _, c := range pool {
		for col := 0; col < CodeLen; col++ {
			out[col] = out[col].Add(c.Digit(col))
		}
	}
	return out
}

// DigitRates holds, per digit, the share of candidates containing it anywhere.
// Shares are occurrence rates and do not sum to 1.
type DigitRates [10]float64

func DigitProbabilities(pool Pool) DigitRates {
	var out DigitRates
	if len(pool) == 0 {
		return out
	}
	var counts [10]int
	for _, c := range pool {
		for col := 0; col < CodeLen; col++ {
			counts[c.Digit(col)]++
		}
	}
	n := float64(len(pool))
	for d, k := range counts {
		out[d] = float64(k) / n
	}
	return out
}
