package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lpmorais/dosewatch/pkg/ledger"
)

func (a *app) cmdTake(args []string) int {
	flags := flag.NewFlagSet("take", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: dw take <id|name>")
		return 1
	}

	meds := a.loadMeds()
	idx, err := findMedication(meds, flags.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "dw: take: %v\n", err)
		return 2
	}

	now := time.Now()
	m, ok := ledger.Acknowledge(meds[idx], now)
	if !ok {
		fmt.Fprintf(os.Stderr, "dw: take: %s is not acknowledgeable (as-needed or finished)\n", m.Name)
		return 2
	}
	meds[idx] = m

	if err := a.store.Replace(meds); err != nil {
		fmt.Fprintf(os.Stderr, "dw: take: %v\n", err)
		return 1
	}

	if *jsonOut {
		printJSON(m)
		return 0
	}

	fmt.Printf("dose of %s recorded\n", m.Name)
	switch {
	case m.Finished:
		fmt.Printf("course finished: %d/%d doses taken\n", m.TakenCount, *m.TotalDoses)
	case m.TotalDoses != nil:
		fmt.Printf("progress: %d/%d doses, next at %s\n",
			m.TakenCount, *m.TotalDoses, m.NextDoseAt.Format("Mon 02 Jan 15:04"))
	default:
		fmt.Printf("next dose %s\n", m.NextDoseAt.Format("Mon 02 Jan 15:04"))
	}
	if m.Stock != nil {
		fmt.Printf("stock: %g units left\n", *m.Stock)
	}
	return 0
}
