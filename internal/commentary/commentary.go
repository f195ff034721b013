// Package commentary produces the natural-language security assessment of an
// analysis report. A remote chat-completions model is consulted when
// configured; the local Fallback covers every failure, so commentary can
// never fail a report.
package commentary

import (
	"fmt"
	"strings"

	"github.com/mzaytsev/passguard/internal/analyzer/patterns"
)

// Request carries the analysis signals commentary is derived from.
type Request struct {
	Password    string
	Patterns    map[string]bool
	InCommonDB  bool
	EntropyBits float64
}

// patternRemarks maps detected pattern names to their assessment lines, in
// report order.
var patternRemarks = []struct {
	name string
	text string
}{
	{patterns.DictionaryWord, "Contains recognizable words that make it vulnerable to dictionary attacks"},
	{patterns.SequentialChars, "Contains sequential characters (like 'abc' or '123') that reduce complexity"},
	{patterns.RepeatedChars, "Contains repeated characters that reduce entropy"},
	{patterns.KeyboardPattern, "Contains keyboard patterns that are among the first patterns attackers try"},
	{patterns.NumbersOnly, "Consists of only numbers, which drastically limits the possible combinations"},
	{patterns.LettersOnly, "Contains only letters, missing the extra security from numbers and special characters"},
	{patterns.NumberSuffix, "Ends with numbers, a pattern used in over 30% of passwords"},
	{patterns.Year, "Contains a year, which is highly predictable"},
	{patterns.DateFormat, "Contains a date pattern, which reduces possible combinations significantly"},
	{patterns.Leetspeak, "Uses leetspeak (replacing letters with numbers/symbols), which is a known pattern that attackers check"},
}

// Fallback composes the assessment locally. The output is an HTML fragment
// rendered as-is by the report view.
func Fallback(req Request) string {
	var riskLevel, assessment string
	switch e := req.EntropyBits; {
	case e < 30:
		riskLevel = "extremely high"
		assessment = fmt.Sprintf("Your password has very low entropy (%.1f bits) and would be cracked almost instantly in most scenarios.", e)
	case e < 60:
		riskLevel = "high"
		assessment = fmt.Sprintf("Your password has inadequate entropy (%.1f bits) and would be vulnerable to targeted attacks.", e)
	case e < 80:
		riskLevel = "moderate"
		assessment = fmt.Sprintf("Your password has moderate entropy (%.1f bits) and provides some security against casual attacks.", e)
	default:
		riskLevel = "relatively low"
		assessment = fmt.Sprintf("Your password has good entropy (%.1f bits) and would resist most attack scenarios.", e)
	}

	breachText := "This password does not appear verbatim in the RockYou data breach database we analyzed."
	if req.InCommonDB {
		breachText = "<strong>Critical Vulnerability:</strong> This exact password appears in the RockYou data breach, making it trivial to crack using dictionary attacks."
	}

	var remarks []string
	for _, r := range patternRemarks {
		if req.Patterns[r.name] {
			remarks = append(remarks, "<li>"+r.text+"</li>")
		}
	}
	patternHTML := "<p>No significant patterns detected.</p>"
	if len(remarks) > 0 {
		patternHTML = "<ul>" + strings.Join(remarks, "") + "</ul>"
	}

	scenario := ""
	switch {
	case req.InCommonDB:
		scenario = "This password would be cracked <strong>instantly</strong> in a dictionary attack using known breached passwords."
	case req.Patterns[patterns.DictionaryWord] && req.Patterns[patterns.NumberSuffix]:
		scenario = "In a targeted attack, an adversary would likely try dictionary words with common number combinations first, potentially cracking this password within minutes to hours."
	case req.Patterns[patterns.KeyboardPattern]:
		scenario = "Keyboard pattern attacks are among the first strategies in password cracking tools, making this password vulnerable to being discovered early in an attack."
	case req.EntropyBits < 40:
		scenario = "With modern hardware, brute force attacks could crack this password in a matter of hours to days."
	}

	var b strings.Builder
	b.WriteString("<h3>Password Security Analysis</h3>\n")
	b.WriteString("<p>" + assessment + "</p>\n")
	b.WriteString("<p>" + breachText + "</p>\n")
	b.WriteString("<h3>Pattern Detection</h3>\n")
	b.WriteString(patternHTML + "\n")
	b.WriteString("<h3>Attack Scenario</h3>\n")
	b.WriteString("<p>Your risk level is <strong>" + riskLevel + "</strong>. " + scenario + "</p>\n")
	b.WriteString("<h3>Recommendation</h3>\n")
	b.WriteString("<p>Consider using a password manager to generate and store truly random, high-entropy passwords that are unique for each service.</p>")
	return b.String()
}
