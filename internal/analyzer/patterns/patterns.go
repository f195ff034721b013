// Package patterns classifies passwords against a fixed catalog of weakness
// signatures and derives named vulnerability records from the matches.
//
// The catalog is a data-driven table so each entry can be unit-tested on its
// own and new signatures can be added without touching scoring logic.
package patterns

import (
	"regexp"
	"strings"
)

// Pattern names. These are wire-stable identifiers used in reports and as
// keys of the scoring penalty table.
const (
	DictionaryWord    = "dictionary_word"
	SequentialChars   = "sequential_chars"
	RepeatedChars     = "repeated_chars"
	KeyboardPattern   = "keyboard_pattern"
	NumbersOnly       = "numbers_only"
	LettersOnly       = "letters_only"
	NumberSuffix      = "number_suffix"
	SpecialSuffix     = "special_suffix"
	CapitalWordNumber = "capital_word_number"
	Year              = "year"
	DateFormat        = "date_format"
	Leetspeak         = "leetspeak"
)

// sequentialTriples is the fixed table of ascending 3-character runs:
// 24 alphabetic and the digit wheel triples, matched case-insensitively.
var sequentialTriples = []string{
	"abc", "bcd", "cde", "def", "efg", "fgh", "ghi", "hij", "ijk", "jkl",
	"klm", "lmn", "mno", "nop", "opq", "pqr", "qrs", "rst", "stu", "tuv",
	"uvw", "vwx", "wxy", "xyz",
	"012", "123", "234", "345", "456", "567", "678", "789", "890",
}

// keyboardFragments are adjacent-key row walks, matched case-insensitively.
var keyboardFragments = []string{
	"qwert", "asdfg", "zxcvb", "12345", "09876", "qazws", "wsxed", "edcrf", "rfvtg",
}

var (
	reNumbersOnly    = regexp.MustCompile(`^\d+$`)
	reLettersOnly    = regexp.MustCompile(`^[a-zA-Z]+$`)
	reNumberSuffix   = regexp.MustCompile(`\d{1,4}$`)
	reSpecialSuffix  = regexp.MustCompile(`[!@#$%^&*]+$`)
	reCapWordNumber  = regexp.MustCompile(`^[A-Z][a-z]+\d+$`)
	reYear           = regexp.MustCompile(`(19\d\d|20\d\d)`)
	reDateFormat     = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
	reLeetspeakChars = regexp.MustCompile(`[4@3€31!70]`)
)

// Entry is one row of the detection catalog.
type Entry struct {
	Name  string
	Match func(password string) bool
}

// Catalog is the fixed, order-independent detection table. Every matcher is
// purely local: no oracle or corpus state is consulted here.
var Catalog = []Entry{
	// Coarse heuristic, intentionally a weak prior: there is no lexicon, any
	// password of 4+ characters may be a word. Do not strengthen without a
	// product decision, it shifts every downstream score.
	{DictionaryWord, func(p string) bool { return len([]rune(p)) >= 4 }},
	{SequentialChars, matchAnyFold(sequentialTriples)},
	{RepeatedChars, HasRepeatedRun},
	{KeyboardPattern, matchAnyFold(keyboardFragments)},
	{NumbersOnly, reNumbersOnly.MatchString},
	{LettersOnly, reLettersOnly.MatchString},
	{NumberSuffix, reNumberSuffix.MatchString},
	{SpecialSuffix, reSpecialSuffix.MatchString},
	{CapitalWordNumber, reCapWordNumber.MatchString},
	{Year, reYear.MatchString},
	{DateFormat, reDateFormat.MatchString},
	{Leetspeak, reLeetspeakChars.MatchString},
}

// HasRepeatedRun reports whether the password contains the same character
// three or more times in a row. Backreferences are not available in regexp,
// so this is a plain scan.
func HasRepeatedRun(password string) bool {
	runes := []rune(password)
	run := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			run++
			if run >= 3 {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

func matchAnyFold(fragments []string) func(string) bool {
	return func(password string) bool {
		lower := strings.ToLower(password)
		for _, f := range fragments {
			if strings.Contains(lower, f) {
				return true
			}
		}
		return false
	}
}

// Detect evaluates the full catalog and returns the set of matched pattern
// names. The result maps name→true for matched entries only, mirroring the
// report wire shape.
func Detect(password string) map[string]bool {
	found := make(map[string]bool)
	for _, e := range Catalog {
		if e.Match(password) {
			found[e.Name] = true
		}
	}
	return found
}
