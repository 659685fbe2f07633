// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for candlechat.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdAnalyze
	CmdStatus
	CmdModels
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	BackendURL string // --backend overrides config
	Quiet      bool

	// Command-specific
	Query string // ask question / analyze question
	File  string // analyze CSV path

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `candlechat - chat with a local market-analysis backend

Candlechat is a terminal client for a locally hosted language-model
backend. It supports free-form chat and analysis of OHLC price data
uploaded as CSV.

Usage:
  candlechat                          Start TUI (default)
  candlechat ask "question"           Ask a single question
  candlechat analyze <file.csv> ["question"]
                                      Analyze a CSV of OHLC data
  candlechat models                   List models on the backend
  candlechat status                   Check backend connectivity
  candlechat version                  Show version
  candlechat help                     Show this help

Flags:
  --backend URL    Backend base URL (default from config or
                   http://127.0.0.1:8000)
  --quiet          Suppress non-essential output

CSV format:
  Comma-separated with a header row, columns in fixed order:
  timestamp,open,high,low,close,volume. Only the most recent
  50 rows are sent for analysis.

Configuration:
  ~/.candlechat/config.toml, overridable with CANDLECHAT_* env vars.
`

// PrintUsage prints the usage text.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("candlechat %s (%s, %s, %s/%s)\n",
		Version, GitCommit, BuildDate, runtime.GOOS, runtime.GOARCH)
}

// Parse parses os.Args into a command and its arguments.
func Parse() (Command, Args) {
	return parseArgs(os.Args[1:])
}

// parseArgs is the testable core of Parse.
func parseArgs(argv []string) (Command, Args) {
	remaining, parsed := parseGlobalFlags(argv)

	// No positional args: default to the TUI
	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsed.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsed

	case "ask":
		parsed.Query = strings.Join(remaining, " ")
		return CmdAsk, parsed

	case "analyze":
		if len(remaining) > 0 {
			parsed.File = remaining[0]
		}
		if len(remaining) > 1 {
			parsed.Query = strings.Join(remaining[1:], " ")
		}
		return CmdAnalyze, parsed

	case "models":
		return CmdModels, parsed

	case "status", "s":
		return CmdStatus, parsed

	case "version", "-v", "--version":
		return CmdVersion, parsed

	case "help", "-h", "--help":
		return CmdHelp, parsed

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		return CmdHelp, parsed
	}
}

// parseGlobalFlags strips global flags out of the argument list.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var parsed Args
	var remaining []string

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--backend" && i+1 < len(argv):
			i++
			parsed.BackendURL = strings.TrimRight(argv[i], "/")
		case strings.HasPrefix(arg, "--backend="):
			parsed.BackendURL = strings.TrimRight(strings.TrimPrefix(arg, "--backend="), "/")
		case arg == "--quiet" || arg == "-q":
			parsed.Quiet = true
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsed
}
