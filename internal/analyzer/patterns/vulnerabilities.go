package patterns

import (
	"sort"
	"strings"
)

// Severity grades how urgently a vulnerability should be fixed.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// rank orders severities for deterministic report output.
func (s Severity) rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

// Vulnerability names (the human-facing keys of the report).
const (
	VulnCommonPassword = "Common Password"
	VulnTooShort       = "Too Short"
	VulnDictionaryWord = "Dictionary Word"
	VulnSequential     = "Sequential Characters"
	VulnRepeated       = "Repeated Characters"
	VulnKeyboard       = "Keyboard Pattern"
	VulnNumbersOnly    = "Numbers Only"
	VulnLettersOnly    = "Letters Only"
	VulnNumberSuffix   = "Number Suffix"
	VulnYear           = "Year Pattern"
	VulnDateFormat     = "Date Format"
	VulnNoUppercase    = "No Uppercase"
	VulnNoNumbers      = "No Numbers"
	VulnNoSpecial      = "No Special Characters"
)

// Vulnerability is one named weakness with its fixed severity and
// description text.
type Vulnerability struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// patternVulns maps detected pattern names to their vulnerability records.
// Severities and descriptions are fixed per name.
var patternVulns = map[string]Vulnerability{
	DictionaryWord: {VulnDictionaryWord,
		"Your password may be a common word or name which is vulnerable to dictionary attacks.",
		SeverityMedium},
	SequentialChars: {VulnSequential,
		"Your password contains sequential characters (like 'abc' or '123') which are easy to guess.",
		SeverityMedium},
	RepeatedChars: {VulnRepeated,
		"Your password contains repeated characters which reduce entropy and make it easier to crack.",
		SeverityLow},
	KeyboardPattern: {VulnKeyboard,
		"Your password follows a keyboard pattern (like 'qwerty') which is one of the first patterns hackers try.",
		SeverityHigh},
	NumbersOnly: {VulnNumbersOnly,
		"Your password contains only numbers, severely limiting its complexity.",
		SeverityCritical},
	LettersOnly: {VulnLettersOnly,
		"Your password contains only letters. Adding numbers and special characters would make it stronger.",
		SeverityHigh},
	NumberSuffix: {VulnNumberSuffix,
		"Adding numbers at the end of a password is a common pattern that attackers check first.",
		SeverityMedium},
	Year: {VulnYear,
		"Your password contains a year, which is a predictable pattern used in over 20% of passwords.",
		SeverityMedium},
	DateFormat: {VulnDateFormat,
		"Your password contains a date format, which significantly reduces the possible combinations.",
		SeverityMedium},
}

// Vulnerabilities derives the ordered vulnerability list for a password from
// its detected patterns, oracle membership, length and character classes.
// Evaluation order never affects the output: records are keyed by name and
// the result is sorted by severity, then name.
func Vulnerabilities(password string, detected map[string]bool, inCommonDB bool) []Vulnerability {
	found := make(map[string]Vulnerability)

	if inCommonDB {
		found[VulnCommonPassword] = Vulnerability{VulnCommonPassword,
			"This password appears in the RockYou data breach of over 32 million passwords. Hackers will try these passwords first.",
			SeverityCritical}
	}

	if len([]rune(password)) < 8 {
		found[VulnTooShort] = Vulnerability{VulnTooShort,
			"Passwords should be at least 8 characters long to resist brute force attacks.",
			SeverityHigh}
	}

	for name, v := range patternVulns {
		if detected[name] {
			found[v.Name] = v
		}
	}

	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		found[VulnNoUppercase] = Vulnerability{VulnNoUppercase,
			"Your password lacks uppercase letters, which reduces its complexity.",
			SeverityLow}
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) {
		found[VulnNoNumbers] = Vulnerability{VulnNoNumbers,
			"Your password lacks numbers, which reduces its complexity.",
			SeverityLow}
	}
	if !strings.ContainsFunc(password, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}) {
		found[VulnNoSpecial] = Vulnerability{VulnNoSpecial,
			"Your password lacks special characters, which reduces its complexity.",
			SeverityLow}
	}

	result := make([]Vulnerability, 0, len(found))
	for _, v := range found {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Severity.rank() != result[j].Severity.rank() {
			return result[i].Severity.rank() < result[j].Severity.rank()
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// Has reports whether the list contains a vulnerability with the given name.
func Has(vulns []Vulnerability, name string) bool {
	for _, v := range vulns {
		if v.Name == name {
			return true
		}
	}
	return false
}
