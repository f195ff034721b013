// Package entropy computes password entropy estimates. Two historical
// formulas coexist because different call sites depend on each: the blended
// estimate drives scoring, the advanced breakdown feeds detailed reports.
package entropy

import (
	"math"
	"strings"
)

// Charset class sizes. Symbol means any character outside [A-Za-z0-9].
const (
	lowerSize  = 26
	upperSize  = 26
	digitSize  = 10
	symbolSize = 33
)

// CharsetSize sums the sizes of the character classes present in the
// password: 26 lowercase, 26 uppercase, 10 digits, 33 symbols.
func CharsetSize(password string) int {
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}

	size := 0
	if lower {
		size += lowerSize
	}
	if upper {
		size += upperSize
	}
	if digit {
		size += digitSize
	}
	if symbol {
		size += symbolSize
	}
	return size
}

// ClassCount returns how many distinct character classes the password uses.
func ClassCount(password string) int {
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	n := 0
	for _, present := range []bool{lower, upper, digit, symbol} {
		if present {
			n++
		}
	}
	return n
}

// Shannon computes per-symbol Shannon entropy over the character frequency
// distribution: H = -Σ p_i·log2(p_i). Empty input yields 0.
func Shannon(password string) float64 {
	runes := []rune(password)
	if len(runes) == 0 {
		return 0
	}

	counts := make(map[rune]int, len(runes))
	for _, r := range runes {
		counts[r]++
	}

	length := float64(len(runes))
	h := 0.0
	for _, c := range counts {
		p := float64(c) / length
		h -= p * math.Log2(p)
	}
	return h
}

// Blended returns the blended entropy estimate used for scoring: Shannon
// entropy scaled by length (a deliberate departure from true Shannon
// entropy, to get total-bits-like magnitude), weighted 75/25 with the
// theoretical maximum length·log2(charset).
func Blended(password string) float64 {
	runes := []rune(password)
	if len(runes) == 0 {
		return 0
	}

	total := Shannon(password) * float64(len(runes))
	theoreticalMax := float64(len(runes)) * math.Log2(float64(CharsetSize(password)))

	return 0.75*total + 0.25*theoreticalMax
}

// PatternHits counts structural weaknesses found by the advanced estimate.
// Counts, not booleans: "abcabc" scores two sequential-letter hits.
type PatternHits struct {
	KeyboardSequences int `json:"keyboard_sequences"`
	Repeats           int `json:"repeats"`
	SequentialDigits  int `json:"sequential_digits"`
	SequentialLetters int `json:"sequential_chars"`
}

// Total returns the combined hit count across all pattern kinds.
func (p PatternHits) Total() int {
	return p.KeyboardSequences + p.Repeats + p.SequentialDigits + p.SequentialLetters
}

var keyboardRows = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm", "1234567890"}

// CountPatternHits scans the password for 3-character keyboard-row
// substrings, triple repeats, ascending digit runs and ascending letter runs
// (case-insensitive). Keyboard hits count each row window at most once;
// repeats and ascending runs count every occurrence.
func CountPatternHits(password string) PatternHits {
	var hits PatternHits
	lowerStr := toLower(password)
	lower := []rune(lowerStr)
	runes := []rune(password)

	for _, row := range keyboardRows {
		for i := 0; i+3 <= len(row); i++ {
			if strings.Contains(lowerStr, row[i:i+3]) {
				hits.KeyboardSequences++
			}
		}
	}

	for i := 0; i+3 <= len(runes); i++ {
		if runes[i] == runes[i+1] && runes[i+1] == runes[i+2] {
			hits.Repeats++
		}
	}

	for i := 0; i+3 <= len(runes); i++ {
		a, b, c := runes[i], runes[i+1], runes[i+2]
		if isDigit(a) && isDigit(b) && isDigit(c) && b == a+1 && c == b+1 {
			hits.SequentialDigits++
		}
	}

	for i := 0; i+3 <= len(lower); i++ {
		a, b, c := lower[i], lower[i+1], lower[i+2]
		if isLetter(a) && isLetter(b) && isLetter(c) && b == a+1 && c == b+1 {
			hits.SequentialLetters++
		}
	}

	return hits
}

// Advanced bundles the advanced entropy metrics.
type Advanced struct {
	Length      int         `json:"length"`
	Shannon     float64     `json:"shannon_entropy"`
	Ideal       float64     `json:"ideal_entropy"`
	Adjusted    float64     `json:"adjusted_entropy"`
	Ratio       float64     `json:"entropy_ratio"`
	CharsetSize int         `json:"character_set_size"`
	Patterns    PatternHits `json:"patterns"`
}

// Analyze computes the advanced entropy breakdown: unmodified Shannon
// entropy, the ideal length·log2(charset) value, and a pattern-penalty
// adjusted value max(0, shannon − 0.5·hits). All fields are zero for an
// empty password with no division faults.
func Analyze(password string) Advanced {
	runes := []rune(password)
	charset := CharsetSize(password)
	shannon := Shannon(password)

	ideal := 0.0
	if charset > 0 {
		ideal = float64(len(runes)) * math.Log2(float64(charset))
	}

	hits := CountPatternHits(password)
	adjusted := math.Max(0, shannon-0.5*float64(hits.Total()))

	ratio := 0.0
	if ideal > 0 {
		ratio = adjusted / ideal
	}

	return Advanced{
		Length:      len(runes),
		Shannon:     shannon,
		Ideal:       ideal,
		Adjusted:    adjusted,
		Ratio:       ratio,
		CharsetSize: charset,
		Patterns:    hits,
	}
}

func toLower(s string) string {
	b := []rune(s)
	for i, r := range b {
		if r >= 'A' && r <= 'Z' {
			b[i] = r + ('a' - 'A')
		}
	}
	return string(b)
}

func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return r >= 'a' && r <= 'z' }
