package config

import (
	"flag"
	"os"
	"time"

	"github.com/mzaytsev/passguard/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      session lifetime, minutes
//	-f string   breach corpus file path
//	-n int      oracle sample cap
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-k string   S3 corpus object key
//	-m string   commentary model name
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - The session lifetime is accepted as an integer in minutes and then
//     converted to a time.Duration.
//   - The commentary API key is deliberately not a flag: it would leak into
//     process listings. Set it via the JSON config file.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-f", "-n", "-u", "-p", "-b", "-g", "-e", "-k", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionLifetime := fs.Int("t", int(config.SessionLifetime.Minutes()), "session lifetime (in minutes)")

	fs.StringVar(&config.CorpusPath, "f", config.CorpusPath, "breach corpus file path")
	fs.IntVar(&config.OracleSampleCap, "n", config.OracleSampleCap, "oracle sample cap")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3CorpusKey, "k", config.S3CorpusKey, "S3 corpus object key")

	fs.StringVar(&config.CommentaryModel, "m", config.CommentaryModel, "commentary model")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionLifetime = time.Duration(*sessionLifetime) * time.Minute
}
