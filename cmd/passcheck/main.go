// Command passcheck analyzes a single password offline and prints the full
// report as JSON. The password is taken from the first argument or, when
// omitted, read from the terminal without echo.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/mzaytsev/passguard/internal/analyzer"
	"github.com/mzaytsev/passguard/internal/logging"
	"github.com/mzaytsev/passguard/internal/oracle"
)

func main() {
	corpus := flag.String("corpus", "", "path to a line-delimited breach corpus (uses a built-in fallback set when empty)")
	flag.Parse()

	password := flag.Arg(0)
	if password == "" {
		fmt.Fprint(os.Stderr, "Enter password: ")
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading password: %v\n", err)
			os.Exit(1)
		}
		password = string(b)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	ctx := context.Background()
	o := oracle.Fallback()
	if *corpus != "" {
		o = oracle.Load(ctx, logger, 500_000, oracle.FileSource{Path: *corpus})
	}

	report, err := analyzer.New(o, nil, logger).Analyze(ctx, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
