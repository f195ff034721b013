// Package score aggregates entropy, pattern and oracle signals into the
// 0–100 strength score, and synthesizes improved passwords with a rationale.
package score

import (
	"math"

	"github.com/mzaytsev/passguard/internal/analyzer/entropy"
	"github.com/mzaytsev/passguard/internal/analyzer/patterns"
)

const (
	entropyCap        = 70
	maxPatternPenalty = 30
	commonDBPenalty   = 40
)

// patternPenalties is the fixed per-pattern deduction table. leetspeak is
// detected but carries no penalty row.
var patternPenalties = map[string]float64{
	patterns.DictionaryWord:    5,
	patterns.SequentialChars:   5,
	patterns.RepeatedChars:     5,
	patterns.KeyboardPattern:   10,
	patterns.NumbersOnly:       15,
	patterns.LettersOnly:       10,
	patterns.NumberSuffix:      3,
	patterns.SpecialSuffix:     2,
	patterns.CapitalWordNumber: 5,
	patterns.Year:              5,
	patterns.DateFormat:        8,
}

// Score computes the overall 0–100 password score from the blended entropy,
// the detected pattern set and oracle membership:
//
//	clamp(0, 100, min(70, entropy) + length bonus + class diversity bonus
//	              − min(30, Σ pattern penalties) − 40·[in common DB])
func Score(password string, entropyBits float64, detected map[string]bool, inCommonDB bool) int {
	s := math.Min(entropyCap, entropyBits)

	switch n := len([]rune(password)); {
	case n >= 12:
		s += 10
	case n >= 8:
		s += 5
	}

	s += math.Min(10, 2.5*float64(entropy.ClassCount(password)))

	penalty := 0.0
	for name, p := range patternPenalties {
		if detected[name] {
			penalty += p
		}
	}
	s -= math.Min(maxPatternPenalty, penalty)

	if inCommonDB {
		s -= commonDBPenalty
	}

	return int(math.Max(0, math.Min(100, s)))
}
