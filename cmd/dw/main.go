// Command dw is the dosewatch CLI — personal medication reminders over a
// local SQLite snapshot: register medications with a dosing schedule, watch
// for due doses, acknowledge or snooze alarms, and track remaining stock.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load() // DOSEWATCH_DB, PUSHOVER_* etc.

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "--help", "-h", "help":
		printUsage()
		return
	case "--version", "-v", "version":
		fmt.Println("dw", version)
		return
	}

	a, err := newApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	switch os.Args[1] {
	case "add":
		os.Exit(a.cmdAdd(os.Args[2:]))
	case "edit":
		os.Exit(a.cmdEdit(os.Args[2:]))
	case "list", "ls":
		os.Exit(a.cmdList(os.Args[2:]))
	case "take":
		os.Exit(a.cmdTake(os.Args[2:]))
	case "snooze":
		os.Exit(a.cmdSnooze(os.Args[2:]))
	case "remove", "rm":
		os.Exit(a.cmdRemove(os.Args[2:]))
	case "status":
		os.Exit(a.cmdStatus(os.Args[2:]))
	case "watch":
		os.Exit(a.cmdWatch(os.Args[2:]))

	default:
		fmt.Fprintf(os.Stderr, "dw: unknown command %q\n", os.Args[1])
		fmt.Fprintln(os.Stderr, "Run 'dw --help' for usage.")
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`dw — personal medication reminders

Register medications with a dosing schedule, watch for due doses, and track
remaining stock. State lives in a local SQLite snapshot.

Usage:
  dw <command> [flags]

Commands:
  add [flags]                 Register a medication
  edit [flags] <id|name>      Re-register a medication, keeping its progress
  list                        List medications (scheduled first, finished last)
  take <id|name>              Acknowledge a dose as taken
  snooze [--for N] <id|name>  Defer the active alarm by N minutes (default 10)
  remove --yes <id|name>      Delete a medication and its history
  status                      Overdue doses and low-stock warnings
  watch [--interval N]        Poll for due doses and raise alarms

Aliases:
  ls = list, rm = remove

Environment:
  DOSEWATCH_DB         SQLite snapshot path (default: .dosewatch/dosewatch.db)
  DOSEWATCH_INTERVAL   Watch poll interval in seconds (default: 5)
  PUSHOVER_API_TOKEN   Pushover application token (optional)
  PUSHOVER_USER_KEY    Pushover user key (optional)

A .env file in the working directory is loaded if present.
All commands support --json for machine-readable output.

Exit codes:
  0  success
  1  error
  2  nothing to do (record not found, not acknowledgeable)
`)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "dw: "+format+"\n", args...)
	os.Exit(1)
}
