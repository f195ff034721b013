package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mzaytsev/passguard/internal/analyzer/entropy"
	"github.com/mzaytsev/passguard/internal/analyzer/patterns"
)

func TestScoreFormula(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		entropy    float64
		detected   map[string]bool
		inCommonDB bool
		want       int
	}{
		{
			name:     "single class short password",
			password: "abcdefgh",
			entropy:  50,
			want:     57, // 50 + 5 length + 2.5 class
		},
		{
			name:     "entropy capped at 70",
			password: "abcdefghijkl",
			entropy:  120,
			want:     82, // 70 + 10 length + 2.5 class
		},
		{
			name:     "four classes give full diversity bonus",
			password: "aB3$aB3$aB3$",
			entropy:  70,
			want:     90, // 70 + 10 + 10
		},
		{
			name:     "pattern penalties are summed",
			password: "abcdefgh",
			entropy:  50,
			detected: map[string]bool{
				patterns.DictionaryWord:  true,
				patterns.SequentialChars: true,
			},
			want: 47, // 57 - 5 - 5
		},
		{
			name:     "pattern penalties capped at 30",
			password: "abcdefgh",
			entropy:  50,
			detected: map[string]bool{
				patterns.KeyboardPattern: true,
				patterns.NumbersOnly:     true,
				patterns.LettersOnly:     true,
				patterns.DateFormat:      true,
			},
			want: 27, // 57 - min(30, 43)
		},
		{
			name:     "unpenalized patterns are ignored",
			password: "abcdefgh",
			entropy:  50,
			detected: map[string]bool{patterns.Leetspeak: true},
			want:     57,
		},
		{
			name:       "common db membership costs 40",
			password:   "abcdefghijkl",
			entropy:    70,
			inCommonDB: true,
			want:       42, // 82 - 40
		},
		{
			name:       "floor is zero",
			password:   "abc",
			entropy:    5,
			inCommonDB: true,
			want:       0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.password, tc.entropy, tc.detected, tc.inCommonDB)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestScoreEndToEnd(t *testing.T) {
	score := func(password string, inCommonDB bool) int {
		return Score(password, entropy.Blended(password), patterns.Detect(password), inCommonDB)
	}

	t.Run("breached trivial password scores zero", func(t *testing.T) {
		assert.Equal(t, 0, score("123456", true))
	})

	t.Run("long mixed password scores above 70", func(t *testing.T) {
		assert.Greater(t, score("Tr0ub4dor&3xyz9Q", false), 70)
	})

	t.Run("stronger variants never score lower", func(t *testing.T) {
		weak := score("password", true)
		medium := score("pAssw0rd!", false)
		strong := score("K9#mVx2$pLq8Wz!u", false)
		assert.LessOrEqual(t, weak, medium)
		assert.LessOrEqual(t, medium, strong)
	})

	t.Run("score stays within bounds", func(t *testing.T) {
		corpus := []string{
			"", "a", "1", "123456", "password", "qwerty123", "letmein",
			"Summer2023!", "correct horse battery staple", "K9#mVx2$pLq8Wz!u",
			"ппароль", "1/2/1999", "aaaaaaaaaaaa",
		}
		for _, p := range corpus {
			for _, common := range []bool{false, true} {
				got := score(p, common)
				assert.GreaterOrEqual(t, got, 0, "password %q", p)
				assert.LessOrEqual(t, got, 100, "password %q", p)
			}
		}
	})
}
