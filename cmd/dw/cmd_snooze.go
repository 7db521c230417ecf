package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lpmorais/dosewatch/pkg/ledger"
)

func (a *app) cmdSnooze(args []string) int {
	flags := flag.NewFlagSet("snooze", flag.ContinueOnError)
	minutes := flags.Int("for", 10, "minutes to defer the alarm")
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: dw snooze [--for minutes] <id|name>")
		return 1
	}
	if *minutes <= 0 {
		fmt.Fprintln(os.Stderr, "dw: snooze: --for must be positive")
		return 1
	}

	meds := a.loadMeds()
	idx, err := findMedication(meds, flags.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "dw: snooze: %v\n", err)
		return 2
	}

	m, ok := ledger.Snooze(meds[idx], *minutes, time.Now())
	if !ok {
		fmt.Fprintf(os.Stderr, "dw: snooze: %s has no alarm to defer (as-needed or finished)\n", m.Name)
		return 2
	}
	meds[idx] = m

	if err := a.store.Replace(meds); err != nil {
		fmt.Fprintf(os.Stderr, "dw: snooze: %v\n", err)
		return 1
	}

	if *jsonOut {
		printJSON(m)
	} else {
		fmt.Printf("%s snoozed for %d min, next alarm %s\n",
			m.Name, *minutes, m.NextDoseAt.Format("15:04"))
	}
	return 0
}
