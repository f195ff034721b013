// Package analyzer runs the full password analysis pipeline: entropy, breach
// corpus lookup, pattern detection, crack-time estimation, scoring,
// remediation and commentary, assembled into a single report.
package analyzer

import (
	"context"
	"errors"

	"github.com/mzaytsev/passguard/internal/analyzer/cracktime"
	"github.com/mzaytsev/passguard/internal/analyzer/entropy"
	"github.com/mzaytsev/passguard/internal/analyzer/patterns"
	"github.com/mzaytsev/passguard/internal/analyzer/score"
	"github.com/mzaytsev/passguard/internal/commentary"
	"github.com/mzaytsev/passguard/internal/common"
	"github.com/mzaytsev/passguard/internal/logging"
	"github.com/mzaytsev/passguard/internal/oracle"
)

// Commentator produces the natural-language assessment for a report.
// A nil Commentator means the local fallback is always used.
type Commentator interface {
	Comment(ctx context.Context, req commentary.Request) (string, error)
}

// Report is the complete analysis result for one password.
type Report struct {
	Score             int                           `json:"score"`
	Entropy           float64                       `json:"entropy"`
	AdvancedEntropy   entropy.Advanced              `json:"advanced_entropy"`
	CrackTime         cracktime.GuessBudgetEstimate `json:"crack_time"`
	Hashcat           cracktime.HashcatEstimate     `json:"hashcat_crack_time"`
	InCommonDB        bool                          `json:"in_common_db"`
	Patterns          map[string]bool               `json:"patterns"`
	Vulnerabilities   []patterns.Vulnerability      `json:"vulnerabilities"`
	ImprovedPassword  string                        `json:"improved_password"`
	ImprovementReason string                        `json:"improvement_reason"`
	Commentary        string                        `json:"ai_analysis"`
	PatternData       PatternData                   `json:"pattern_data"`
}

// Analyzer holds the pipeline dependencies. It is safe for concurrent use:
// the oracle is read-only after load and the stages are pure functions.
type Analyzer struct {
	oracle      *oracle.Oracle
	commentator Commentator
	log         logging.Logger
}

func New(o *oracle.Oracle, c Commentator, log logging.Logger) *Analyzer {
	return &Analyzer{
		oracle:      o,
		commentator: c,
		log:         log.With("module", "analyzer"),
	}
}

// Analyze runs every stage and returns the assembled report. The only error
// is an empty password; every other stage always produces a value.
func (a *Analyzer) Analyze(ctx context.Context, password string) (*Report, error) {
	if password == "" {
		return nil, common.ErrorEmptyPassword
	}

	blended := entropy.Blended(password)
	inDB := a.oracle.Contains(password)
	detected := patterns.Detect(password)
	vulns := patterns.Vulnerabilities(password, detected, inDB)
	improved, reason := score.Improve(password, vulns)

	r := &Report{
		Score:             score.Score(password, blended, detected, inDB),
		Entropy:           blended,
		AdvancedEntropy:   entropy.Analyze(password),
		CrackTime:         cracktime.GuessBudget(blended, inDB),
		Hashcat:           cracktime.Hashcat(password),
		InCommonDB:        inDB,
		Patterns:          detected,
		Vulnerabilities:   vulns,
		ImprovedPassword:  improved,
		ImprovementReason: reason,
		PatternData:       PatternDataFor(password, inDB),
	}
	r.Commentary = a.comment(ctx, commentary.Request{
		Password:    password,
		Patterns:    detected,
		InCommonDB:  inDB,
		EntropyBits: blended,
	})
	return r, nil
}

// comment consults the remote commentator when one is configured and falls
// back to the local assessment on any failure.
func (a *Analyzer) comment(ctx context.Context, req commentary.Request) string {
	if a.commentator != nil {
		text, err := a.commentator.Comment(ctx, req)
		if err == nil && text != "" {
			return text
		}
		if err != nil && !errors.Is(err, commentary.ErrNotConfigured) {
			a.log.Warn(ctx, "commentary unavailable, using local assessment", "error", err.Error())
		}
	}
	return commentary.Fallback(req)
}
