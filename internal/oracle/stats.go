package oracle

import (
	"math/rand/v2"
	"regexp"
)

// PatternStats holds the percentage of sampled corpus passwords exhibiting
// each structural pattern. Informational only; scoring never reads these.
type PatternStats struct {
	NumbersSuffix float64 `json:"numbers_suffix"`
	SpecialSuffix float64 `json:"special_suffix"`
	CapitalFirst  float64 `json:"capital_first"`
	Leetspeak     float64 `json:"leetspeak"`
	KeyboardWalks float64 `json:"keyboard_walks"`
	YearPatterns  float64 `json:"year_patterns"`
}

// defaultStats holds known frequencies from published breach analyses, used
// when no corpus is available to sample.
var defaultStats = PatternStats{
	NumbersSuffix: 30.0,
	SpecialSuffix: 8.0,
	CapitalFirst:  15.0,
	Leetspeak:     7.0,
	KeyboardWalks: 20.0,
	YearPatterns:  12.0,
}

var (
	reNumbersSuffix = regexp.MustCompile(`\d+$`)
	reSpecialSuffix = regexp.MustCompile(`[!@#$%^&*]+$`)
	reCapitalFirst  = regexp.MustCompile(`^[A-Z]`)
	reLeetspeak     = regexp.MustCompile(`[4@3€31!70]`)
	reKeyboardWalks = regexp.MustCompile(`(?i)(qwer|asdf|zxcv|1234|wasd)`)
	reYearPatterns  = regexp.MustCompile(`(19\d\d|20\d\d)`)
)

// computeStats draws a uniform random sample without replacement (capped at
// sampleCap) and counts the fraction matching each of the six independent
// pattern tests.
func computeStats(passwords []string, sampleCap int) PatternStats {
	if len(passwords) == 0 {
		return defaultStats
	}

	sample := passwords
	if len(passwords) > sampleCap {
		// Partial Fisher-Yates: the first sampleCap positions end up holding
		// a uniform sample without replacement.
		shuffled := make([]string, len(passwords))
		copy(shuffled, passwords)
		for i := 0; i < sampleCap; i++ {
			j := i + rand.IntN(len(shuffled)-i)
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		}
		sample = shuffled[:sampleCap]
	}

	var counts [6]int
	for _, p := range sample {
		if reNumbersSuffix.MatchString(p) {
			counts[0]++
		}
		if reSpecialSuffix.MatchString(p) {
			counts[1]++
		}
		if reCapitalFirst.MatchString(p) {
			counts[2]++
		}
		if reLeetspeak.MatchString(p) {
			counts[3]++
		}
		if reKeyboardWalks.MatchString(p) {
			counts[4]++
		}
		if reYearPatterns.MatchString(p) {
			counts[5]++
		}
	}

	pct := func(n int) float64 { return float64(n) / float64(len(sample)) * 100 }
	return PatternStats{
		NumbersSuffix: pct(counts[0]),
		SpecialSuffix: pct(counts[1]),
		CapitalFirst:  pct(counts[2]),
		Leetspeak:     pct(counts[3]),
		KeyboardWalks: pct(counts[4]),
		YearPatterns:  pct(counts[5]),
	}
}
