package score

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzaytsev/passguard/internal/analyzer/patterns"
)

func vulnsOf(names ...string) []patterns.Vulnerability {
	vulns := make([]patterns.Vulnerability, 0, len(names))
	for _, n := range names {
		vulns = append(vulns, patterns.Vulnerability{Name: n})
	}
	return vulns
}

func TestGenerateStrong(t *testing.T) {
	for i := 0; i < 20; i++ {
		pwd := GenerateStrong()
		assert.Len(t, pwd, 12)
		assert.True(t, strings.ContainsAny(pwd, upperChars), "missing uppercase in %q", pwd)
		assert.True(t, strings.ContainsAny(pwd, lowerChars), "missing lowercase in %q", pwd)
		assert.True(t, strings.ContainsAny(pwd, digitChars), "missing digit in %q", pwd)
		assert.True(t, strings.ContainsAny(pwd, strongSpecialChars), "missing special in %q", pwd)
	}
}

func TestImproveCommonPasswordIsRegenerated(t *testing.T) {
	improved, reason := Improve("password", vulnsOf(patterns.VulnCommonPassword, patterns.VulnTooShort))

	assert.NotEqual(t, "password", improved)
	assert.Len(t, improved, 12)
	assert.NotContains(t, strings.ToLower(improved), "password")
	assert.Contains(t, reason, "completely new password")
}

func TestImproveTransforms(t *testing.T) {
	tests := []struct {
		name     string
		password string
		vulns    []string
		check    func(t *testing.T, improved, reason string)
	}{
		{
			name:     "too short is padded to ten",
			password: "ab!",
			vulns:    []string{patterns.VulnTooShort},
			check: func(t *testing.T, improved, reason string) {
				assert.Len(t, improved, 10)
				assert.True(t, strings.HasPrefix(improved, "ab!"))
				assert.Contains(t, reason, "Added 7 characters to increase length")
			},
		},
		{
			name:     "sequential runs are replaced",
			password: "xx123yy",
			vulns:    []string{patterns.VulnSequential},
			check: func(t *testing.T, improved, reason string) {
				assert.NotContains(t, improved, "123")
				assert.Contains(t, reason, "Replaced sequential pattern '123'")
			},
		},
		{
			name:     "keyboard walks are replaced",
			password: "myqwerty",
			vulns:    []string{patterns.VulnKeyboard},
			check: func(t *testing.T, improved, reason string) {
				assert.NotContains(t, strings.ToLower(improved), "qwert")
				assert.Contains(t, reason, "Replaced keyboard pattern")
			},
		},
		{
			name:     "missing uppercase is introduced in place",
			password: "lowercase1!",
			vulns:    []string{patterns.VulnNoUppercase},
			check: func(t *testing.T, improved, reason string) {
				assert.Len(t, improved, len("lowercase1!"))
				assert.True(t, strings.ContainsAny(improved, upperChars))
				assert.Contains(t, reason, "Added uppercase letter")
			},
		},
		{
			name:     "missing digit is inserted",
			password: "Password!",
			vulns:    []string{patterns.VulnNoNumbers},
			check: func(t *testing.T, improved, reason string) {
				assert.Len(t, improved, len("Password!")+1)
				assert.True(t, strings.ContainsAny(improved, digitChars))
				assert.Contains(t, reason, "Added number")
			},
		},
		{
			name:     "missing special character is inserted",
			password: "Password1",
			vulns:    []string{patterns.VulnNoSpecial},
			check: func(t *testing.T, improved, reason string) {
				assert.Len(t, improved, len("Password1")+1)
				assert.True(t, strings.ContainsAny(improved, specialChars))
				assert.Contains(t, reason, "Added special character")
			},
		},
		{
			name:     "number suffix is interleaved",
			password: "hello1234",
			vulns:    []string{patterns.VulnNumberSuffix},
			check: func(t *testing.T, improved, reason string) {
				assert.Len(t, improved, len("hello1234")+4)
				assert.True(t, strings.HasPrefix(improved, "hello1"))
				assert.Contains(t, reason, "Broke up number suffix")
			},
		},
		{
			name:     "years are replaced",
			password: "winter2023",
			vulns:    []string{patterns.VulnYear},
			check: func(t *testing.T, improved, reason string) {
				assert.NotContains(t, improved, "2023")
				assert.Len(t, improved, len("winter2023"))
				assert.Contains(t, reason, "Replaced year 2023")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			improved, reason := Improve(tc.password, vulnsOf(tc.vulns...))
			require.NotEqual(t, tc.password, improved)
			assert.True(t, strings.HasPrefix(reason, "This improved password addresses the vulnerabilities by: "))
			tc.check(t, improved, reason)
		})
	}
}

func TestImproveFallbackVariation(t *testing.T) {
	// Repeated characters have no direct transform, so the fallback keeps a
	// short prefix and appends a fresh suffix.
	improved, reason := Improve("zzzzzz", vulnsOf(patterns.VulnRepeated))

	assert.True(t, strings.HasPrefix(improved, "zzz"))
	assert.Len(t, improved, 3+8)
	assert.Contains(t, reason, "Created a more complex variation")
}

func TestImproveMultibyteInput(t *testing.T) {
	// Insert positions and padding lengths are rune-based, so a Cyrillic
	// password must come back as valid UTF-8 at the expected rune length.
	vulns := vulnsOf(patterns.VulnTooShort, patterns.VulnNoNumbers, patterns.VulnNoSpecial)
	for i := 0; i < 50; i++ {
		improved, _ := Improve("пароль", vulns)
		require.True(t, utf8.ValidString(improved), "invalid UTF-8 in %q", improved)
		assert.True(t, strings.ContainsAny(improved, digitChars), "missing digit in %q", improved)
		// 6 runes padded to 10, plus a digit and a special unless the
		// padding already supplied them
		n := utf8.RuneCountInString(improved)
		assert.True(t, n >= 10 && n <= 12, "unexpected rune count %d in %q", n, improved)
	}
}

func TestImproveMultibyteFallback(t *testing.T) {
	improved, _ := Improve("привет", vulnsOf(patterns.VulnRepeated))

	assert.True(t, utf8.ValidString(improved), "invalid UTF-8 in %q", improved)
	assert.True(t, strings.HasPrefix(improved, "при"))
	assert.Equal(t, 3+8, utf8.RuneCountInString(improved))
}

func TestImproveNeverReturnsInput(t *testing.T) {
	inputs := map[string][]string{
		"short":      {patterns.VulnTooShort},
		"abc123":     {patterns.VulnSequential, patterns.VulnTooShort},
		"NoVulnsSet": nil,
	}
	for password, names := range inputs {
		improved, reason := Improve(password, vulnsOf(names...))
		assert.NotEqual(t, password, improved, "input %q", password)
		assert.NotEmpty(t, reason)
	}
}
