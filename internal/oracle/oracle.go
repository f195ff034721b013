// Package oracle implements the breached-password membership set. A corpus
// of known-breached passwords (RockYou-style, line-delimited) is loaded once
// at startup into a set with O(1) lookups, together with aggregate pattern
// frequency statistics computed over a bounded random sample.
//
// The oracle is immutable after Load and safe for concurrent readers.
package oracle

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/mzaytsev/passguard/internal/logging"
)

// DefaultSampleCap bounds the number of corpus entries used for pattern
// statistics. Stats are informational only, so sampling keeps startup fast
// on multi-million-line corpora.
const DefaultSampleCap = 500_000

// fallbackPasswords seeds the oracle when no corpus source is readable.
// These are the 25 most common breached passwords; an empty oracle would
// silently disable the strongest scoring signal.
var fallbackPasswords = []string{
	"password", "123456", "12345678", "qwerty", "abc123",
	"monkey", "1234567", "letmein", "trustno1", "dragon",
	"baseball", "111111", "iloveyou", "master", "sunshine",
	"ashley", "bailey", "passw0rd", "shadow", "123123",
	"654321", "superman", "qazwsx", "michael", "football",
}

// Source supplies a line-delimited password corpus.
type Source interface {
	// Open returns a reader over the corpus. The caller closes it.
	Open(ctx context.Context) (io.ReadCloser, error)
	// Name identifies the source in logs.
	Name() string
}

// FileSource reads the corpus from a local file.
type FileSource struct {
	Path string
}

func (s FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	return os.Open(s.Path)
}

func (s FileSource) Name() string { return "file:" + s.Path }

// Oracle is the loaded membership set plus its sampled statistics.
type Oracle struct {
	passwords map[string]struct{}
	stats     PatternStats
	fallback  bool
}

// Load builds an Oracle from the first source that opens and yields at least
// one password. Sources are tried in order; every failure is logged and
// recovered. If none succeeds the deterministic fallback data is used, so
// Load never fails and never returns a nil or empty oracle.
func Load(ctx context.Context, log logging.Logger, sampleCap int, sources ...Source) *Oracle {
	log = log.With("module", "oracle")
	if sampleCap <= 0 {
		sampleCap = DefaultSampleCap
	}

	for _, src := range sources {
		r, err := src.Open(ctx)
		if err != nil {
			log.Warn(ctx, "corpus source unavailable", "source", src.Name(), "error", err.Error())
			continue
		}
		o, err := read(r, sampleCap)
		_ = r.Close()
		if err != nil {
			log.Warn(ctx, "corpus source unreadable", "source", src.Name(), "error", err.Error())
			continue
		}
		if len(o.passwords) == 0 {
			log.Warn(ctx, "corpus source empty", "source", src.Name())
			continue
		}
		log.Info(ctx, "corpus loaded", "source", src.Name(), "passwords", len(o.passwords))
		return o
	}

	log.Warn(ctx, "no corpus source available, using fallback data")
	return Fallback()
}

// Fallback returns an oracle populated with the embedded weak-password list
// and fixed default pattern frequencies.
func Fallback() *Oracle {
	set := make(map[string]struct{}, len(fallbackPasswords))
	for _, p := range fallbackPasswords {
		set[p] = struct{}{}
	}
	return &Oracle{passwords: set, stats: defaultStats, fallback: true}
}

func read(r io.Reader, sampleCap int) (*Oracle, error) {
	set := make(map[string]struct{})
	var lines []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		set[line] = struct{}{}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &Oracle{passwords: set, stats: computeStats(lines, sampleCap)}, nil
}

// Contains reports whether the password appears in the breach corpus.
func (o *Oracle) Contains(password string) bool {
	_, ok := o.passwords[password]
	return ok
}

// Stats returns the sampled pattern frequency percentages.
func (o *Oracle) Stats() PatternStats { return o.stats }

// Size returns the number of distinct passwords loaded.
func (o *Oracle) Size() int { return len(o.passwords) }

// UsingFallback reports whether the oracle runs on the embedded fallback
// data instead of a real corpus.
func (o *Oracle) UsingFallback() bool { return o.fallback }
