// Command mq is the marquee maintenance CLI.
//
// Usage:
//
//	mq                      Show help
//	mq search <query>       Query the catalog and print the results
//	mq trending [-n N]      List the most searched queries
//	mq record <query>       Record one occurrence of a query
//	mq config               Print the effective configuration
package main

import (
	"fmt"
	"os"
)

const usage = `mq - marquee maintenance CLI

Usage:
  mq <command> [flags]

Commands:
  search      Query the catalog and print the results (requires an API key)
  trending    List the most searched queries from the trend store
  record      Record one occurrence of a query in the trend store
  config      Print the effective configuration as TOML

Environment:
  MARQUEE_CONFIG             Config file path (default: marquee.toml in . or ~/.marquee)
  TMDB_API_KEY               Catalog API key (also MARQUEE_CATALOG_API_KEY, VITE_API_KEY)
  MARQUEE_STORE_BACKEND      Trend store backend: sqlite (default) or mongo
  MARQUEE_LOG_LEVEL          debug, info, warn or error (logs go to stderr)

Run 'mq <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "search":
		runSearch()
	case "trending":
		runTrending()
	case "record":
		runRecord()
	case "config":
		runConfig()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "mq: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
