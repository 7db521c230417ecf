package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lpmorais/dosewatch/pkg/ledger"
)

func (a *app) cmdEdit(args []string) int {
	flags := flag.NewFlagSet("edit", flag.ContinueOnError)
	reg := registrationFlags(flags)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: dw edit [flags] <id|name>")
		return 1
	}

	meds := a.loadMeds()
	idx, err := findMedication(meds, flags.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "dw: edit: %v\n", err)
		return 2
	}
	prev := meds[idx]
	if prev.Finished {
		fmt.Fprintf(os.Stderr, "dw: edit: %s already finished its course\n", prev.Name)
		return 2
	}

	// Editing never resets progress; Build carries the taken count over.
	m, err := ledger.Build(reg.toRegistration(), &prev, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "dw: edit: %v\n", err)
		return 1
	}
	meds[idx] = m

	if err := a.store.Replace(meds); err != nil {
		fmt.Fprintf(os.Stderr, "dw: edit: %v\n", err)
		return 1
	}

	if *jsonOut {
		printJSON(m)
	} else {
		fmt.Printf("updated %s (%s)\n", m.Name, shortID(m))
		if m.NextDoseAt != nil {
			fmt.Printf("next dose %s\n", m.NextDoseAt.Format("Mon 02 Jan 15:04"))
		}
	}
	return 0
}
