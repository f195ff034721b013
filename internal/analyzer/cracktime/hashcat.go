package cracktime

import (
	"math"
	"strings"

	"github.com/mzaytsev/passguard/internal/analyzer/entropy"
)

// Reference hash rates in hashes/second for the hashcat-style strategy.
// Brute-force estimates use the bcrypt row as the secure-hash baseline.
const (
	hashRateMD5    = 32e9
	hashRateSHA1   = 13e9
	hashRateBcrypt = 24000
	hashRateArgon2 = 1500
)

// defaultCharsetSize covers printable ASCII when no character class is
// detected in the password.
const defaultCharsetSize = 95

// Named attacks of the hashcat-style model.
const (
	AttackDictionary = "dictionary"
	AttackBruteForce = "brute_force"
	AttackMask       = "mask"
)

// literalCommon and commonVariants drive the near-instant dictionary tiers.
var (
	literalCommon  = []string{"password", "123456", "admin", "welcome", "qwerty"}
	commonVariants = []string{"password1", "admin123", "letmein", "welcome1"}
)

// HashcatEstimate reports the three named attacks, the most likely one, and
// the fastest time both formatted and in raw seconds.
type HashcatEstimate struct {
	FastestMethod    string  `json:"fastest_method"`
	DictionaryAttack string  `json:"dictionary_attack"`
	BruteForce       string  `json:"brute_force"`
	MaskAttack       string  `json:"mask_attack"`
	EstimatedTime    string  `json:"estimated_time"`
	TimeSeconds      float64 `json:"time_seconds"`
}

// Hashcat estimates crack times under the hashcat-style model: a dictionary
// attack tier, a bcrypt-rate brute force, and a mask attack scaled by how
// many character classes the password mixes.
func Hashcat(password string) HashcatEstimate {
	dict := dictionaryTime(password)
	brute := bruteForceTime(password)
	mask := maskTime(password, brute)

	// Tie-break by iteration order dictionary→brute_force→mask; exact
	// float equality is not expected in practice.
	fastestMethod := AttackDictionary
	fastest := dict
	if brute < fastest {
		fastestMethod, fastest = AttackBruteForce, brute
	}
	if mask < fastest {
		fastestMethod, fastest = AttackMask, mask
	}

	return HashcatEstimate{
		FastestMethod:    fastestMethod,
		DictionaryAttack: FormatDuration(dict),
		BruteForce:       FormatDuration(brute),
		MaskAttack:       FormatDuration(mask),
		EstimatedTime:    FormatDuration(fastest),
		TimeSeconds:      fastest,
	}
}

// dictionaryTime is near-instant for literal or near matches against the
// small common lists, otherwise a coarse length-tiered constant.
func dictionaryTime(password string) float64 {
	lower := strings.ToLower(password)

	for _, c := range literalCommon {
		if lower == c {
			return 0.001
		}
	}
	for _, v := range commonVariants {
		if strings.Contains(lower, v) {
			return 0.1
		}
	}

	switch n := len([]rune(password)); {
	case n <= 8:
		return 60
	case n <= 12:
		return secondsPerHour
	default:
		return secondsPerDay
	}
}

func bruteForceTime(password string) float64 {
	charset := entropy.CharsetSize(password)
	if charset == 0 {
		charset = defaultCharsetSize
	}
	combinations := math.Pow(float64(charset), float64(len([]rune(password))))
	return combinations / hashRateBcrypt
}

// maskTime scales brute force by an efficiency factor keyed to class count:
// single-class masks are devastatingly effective, fully mixed ones barely
// beat brute force.
func maskTime(password string, bruteForce float64) float64 {
	switch n := entropy.ClassCount(password); {
	case n == 1:
		return bruteForce * 0.001
	case n >= 3:
		return bruteForce * 0.1
	default:
		return bruteForce * 0.01
	}
}
