package score

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mzaytsev/passguard/internal/analyzer/patterns"
)

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	punctChars   = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	specialChars = "!@#$%^&*()-_=+"

	// strongSpecialChars restricts the freshly generated password to symbols
	// that survive most sites' password policies.
	strongSpecialChars = "!@#$%^&*-_=+"
)

// Literal fragments targeted by the replacement transforms.
var (
	replaceableSequences = []string{"abc", "bcd", "cde", "def", "123", "234", "345", "456"}
	replaceableKeyboards = []string{"qwert", "asdfg", "zxcvb", "12345"}
	replaceableYears     = []string{"2022", "2023", "2024", "1990", "1991", "1992", "1993", "1994", "1995"}
)

var reTrailingDigits = regexp.MustCompile(`\d+$`)

const freshPasswordReason = "This is a completely new password that follows best practices for security. " +
	"It's not found in common password databases and has high entropy."

// Improve synthesizes a stronger password from the input and its
// vulnerability list, returning the new password and a rationale describing
// the edits in application order.
//
// A password flagged as a common breach-corpus member is discarded outright
// and replaced with a freshly generated one: incremental repair of a known
// password still leaves it adjacent to the breached value.
func Improve(password string, vulns []patterns.Vulnerability) (string, string) {
	if patterns.Has(vulns, patterns.VulnCommonPassword) {
		return GenerateStrong(), freshPasswordReason
	}

	improved := password
	var edits []string

	if n := utf8.RuneCountInString(improved); patterns.Has(vulns, patterns.VulnTooShort) && n < 10 {
		added := randString(lowerChars+upperChars+digitChars+punctChars, 10-n)
		improved += added
		edits = append(edits, fmt.Sprintf("Added %d characters to increase length", len(added)))
	}

	if patterns.Has(vulns, patterns.VulnSequential) {
		for _, seq := range replaceableSequences {
			if strings.Contains(strings.ToLower(improved), seq) {
				replacement := randString(lowerChars+upperChars+digitChars, 3)
				improved = strings.ReplaceAll(improved, seq, replacement)
				edits = append(edits, fmt.Sprintf("Replaced sequential pattern '%s' with '%s'", seq, replacement))
			}
		}
	}

	if patterns.Has(vulns, patterns.VulnKeyboard) {
		for _, kb := range replaceableKeyboards {
			if strings.Contains(strings.ToLower(improved), kb) {
				improved = strings.ReplaceAll(improved, kb, randString(lowerChars+upperChars+digitChars, len(kb)))
				edits = append(edits, "Replaced keyboard pattern with unpredictable characters")
			}
		}
	}

	if patterns.Has(vulns, patterns.VulnNoUppercase) {
		var positions []int
		for i, c := range improved {
			if c >= 'a' && c <= 'z' {
				positions = append(positions, i)
			}
		}
		if len(positions) > 0 {
			pos := positions[randInt(len(positions))]
			improved = improved[:pos] + strings.ToUpper(string(improved[pos])) + improved[pos+1:]
			edits = append(edits, "Added uppercase letter")
		}
	}

	if patterns.Has(vulns, patterns.VulnNoNumbers) && !strings.ContainsAny(improved, digitChars) {
		digit := string(digitChars[randInt(len(digitChars))])
		improved = insertAt(improved, digit, randInt(utf8.RuneCountInString(improved)+1))
		edits = append(edits, fmt.Sprintf("Added number '%s'", digit))
	}

	if patterns.Has(vulns, patterns.VulnNoSpecial) && !strings.ContainsAny(improved, punctChars) {
		special := string(specialChars[randInt(len(specialChars))])
		improved = insertAt(improved, special, randInt(utf8.RuneCountInString(improved)+1))
		edits = append(edits, fmt.Sprintf("Added special character '%s'", special))
	}

	if patterns.Has(vulns, patterns.VulnNumberSuffix) {
		if suffix := reTrailingDigits.FindString(improved); suffix != "" {
			var sb strings.Builder
			for _, d := range suffix {
				sb.WriteRune(d)
				sb.WriteString(randString(lowerChars+upperChars+punctChars, 1))
			}
			improved = improved[:len(improved)-len(suffix)] + sb.String()
			edits = append(edits, "Broke up number suffix with random characters")
		}
	}

	if patterns.Has(vulns, patterns.VulnYear) {
		for _, year := range replaceableYears {
			if strings.Contains(improved, year) {
				improved = strings.ReplaceAll(improved, year, randString(lowerChars+upperChars+digitChars+punctChars, 4))
				edits = append(edits, fmt.Sprintf("Replaced year %s with unpredictable characters", year))
			}
		}
	}

	// Nothing fired, or every edit was a no-op: keep a short mnemonic prefix
	// and append a fresh high-entropy suffix instead.
	if len(edits) == 0 || improved == password {
		prefix := []rune(password)
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		suffixLen := max(8, utf8.RuneCountInString(password))
		improved = string(prefix) + randString(lowerChars+upperChars+digitChars+specialChars, suffixLen)
		edits = []string{"Created a more complex variation while preserving the beginning for memorability"}
	}

	reason := "This improved password addresses the vulnerabilities by: " + strings.Join(edits, ", ") + "."
	return improved, reason
}

// GenerateStrong creates a completely new strong password: one character
// from each of the four classes, eight more from the union set, shuffled.
func GenerateStrong() string {
	pwd := []byte{
		upperChars[randInt(len(upperChars))],
		lowerChars[randInt(len(lowerChars))],
		digitChars[randInt(len(digitChars))],
		strongSpecialChars[randInt(len(strongSpecialChars))],
	}

	union := upperChars + lowerChars + digitChars + strongSpecialChars
	for i := 0; i < 8; i++ {
		pwd = append(pwd, union[randInt(len(union))])
	}

	for i := len(pwd) - 1; i > 0; i-- {
		j := randInt(i + 1)
		pwd[i], pwd[j] = pwd[j], pwd[i]
	}

	return string(pwd)
}

// randInt returns a uniform int in [0, n) from the system CSPRNG. Suggested
// passwords may actually be adopted by users, so weaker randomness sources
// are not used here.
func randInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}
	return int(v.Int64())
}

// insertAt places s at the given rune position of p. Byte offsets would land
// inside multibyte runes and corrupt non-ASCII passwords.
func insertAt(p, s string, pos int) string {
	r := []rune(p)
	return string(r[:pos]) + s + string(r[pos:])
}

func randString(set string, k int) string {
	b := make([]byte, k)
	for i := range b {
		b[i] = set[randInt(len(set))]
	}
	return string(b)
}
