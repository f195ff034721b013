package analyzer

import (
	"math"
	"regexp"
	"strings"

	"github.com/mzaytsev/passguard/internal/analyzer/entropy"
	"github.com/mzaytsev/passguard/internal/analyzer/patterns"
)

// CharTypes is the character class breakdown in percent of the password.
type CharTypes struct {
	Lowercase float64 `json:"lowercase"`
	Uppercase float64 `json:"uppercase"`
	Digits    float64 `json:"digits"`
	Special   float64 `json:"special"`
}

// AttackVectors grades exposure to each attack class on a 0-100 scale,
// higher meaning more vulnerable.
type AttackVectors struct {
	Dictionary     float64 `json:"dictionary"`
	BruteForce     float64 `json:"brute_force"`
	PatternBased   float64 `json:"pattern_based"`
	TargetedGuess  float64 `json:"targeted_guess"`
	LeakedDatabase float64 `json:"leaked_database"`
}

// AdvancedMetrics are per-character ratios used by the report charts.
type AdvancedMetrics struct {
	EntropyPerChar   float64 `json:"entropy_per_char"`
	CharVarietyRatio float64 `json:"char_variety_ratio"`
	SequentialRatio  float64 `json:"sequential_ratio"`
	SymbolDensity    float64 `json:"symbol_density"`
}

// PatternData is the visualization payload of an analysis report.
type PatternData struct {
	CharTypes       CharTypes       `json:"char_types"`
	AttackVectors   AttackVectors   `json:"attack_vectors"`
	AdvancedMetrics AdvancedMetrics `json:"advanced_metrics"`
	PasswordLength  int             `json:"password_length"`
}

// The chart heuristics use their own coarser fragment lists than the
// detection catalog.
var (
	reChartSequential = regexp.MustCompile(`(?i)(abc|bcd|cde|def|123|234|345|456)`)
	reChartKeyboard   = regexp.MustCompile(`(?i)(qwerty|asdfgh|zxcvbn)`)
	reChartDigitTail  = regexp.MustCompile(`\d{4}$`)
	reChartYear       = regexp.MustCompile(`(19|20)\d{2}`)
	reChartAlphaOnly  = regexp.MustCompile(`^[a-zA-Z]+$`)
)

// PatternDataFor computes the visualization payload. A breach corpus member
// is scored as fully exposed through the leaked-database vector and the
// other vectors are left at zero.
func PatternDataFor(password string, inCommonDB bool) PatternData {
	runes := []rune(password)
	n := len(runes)

	var lower, upper, digits, special int
	for _, r := range runes {
		switch {
		case r >= 'a' && r <= 'z':
			lower++
		case r >= 'A' && r <= 'Z':
			upper++
		case r >= '0' && r <= '9':
			digits++
		default:
			special++
		}
	}

	pd := PatternData{PasswordLength: n}
	if n == 0 {
		return pd
	}

	pct := func(c int) float64 { return float64(c) / float64(n) * 100 }
	pd.CharTypes = CharTypes{
		Lowercase: pct(lower),
		Uppercase: pct(upper),
		Digits:    pct(digits),
		Special:   pct(special),
	}

	if inCommonDB {
		pd.AttackVectors.LeakedDatabase = 100
	} else {
		if reChartAlphaOnly.MatchString(password) {
			pd.AttackVectors.Dictionary = 70
		}

		strength := math.Min(100, float64(entropy.CharsetSize(password))*math.Log2(math.Max(1, float64(n)))/7)
		pd.AttackVectors.BruteForce = math.Max(0, 100-strength)

		patternScore := 0.0
		if reChartSequential.MatchString(password) {
			patternScore += 20
		}
		if reChartKeyboard.MatchString(password) {
			patternScore += 30
		}
		if patterns.HasRepeatedRun(password) {
			patternScore += 15
		}
		if reChartDigitTail.MatchString(password) {
			patternScore += 15
		}
		if reChartYear.MatchString(password) {
			patternScore += 20
		}
		pd.AttackVectors.PatternBased = math.Min(100, patternScore)

		switch lowered := strings.ToLower(password); {
		case n <= 6:
			pd.AttackVectors.TargetedGuess = 80
		case lowered == "password" || lowered == "qwerty" || lowered == "123456" || lowered == "admin":
			pd.AttackVectors.TargetedGuess = 100
		default:
			pd.AttackVectors.TargetedGuess = math.Max(0, 80-float64(n)*5)
		}
	}

	distinct := make(map[rune]struct{}, n)
	for _, r := range runes {
		distinct[r] = struct{}{}
	}
	pd.AdvancedMetrics = AdvancedMetrics{
		EntropyPerChar:   entropy.Blended(password) / float64(n),
		CharVarietyRatio: float64(len(distinct)) / float64(n),
		SequentialRatio:  float64(len(reChartSequential.FindAllString(password, -1))) / float64(n),
		SymbolDensity:    float64(special) / float64(n),
	}

	return pd
}
