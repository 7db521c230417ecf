package main

import (
	"flag"
	"fmt"
	"os"
)

func (a *app) cmdRemove(args []string) int {
	flags := flag.NewFlagSet("remove", flag.ContinueOnError)
	yes := flags.Bool("yes", false, "confirm the deletion")
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: dw remove --yes <id|name>")
		return 1
	}

	meds := a.loadMeds()
	idx, err := findMedication(meds, flags.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "dw: remove: %v\n", err)
		return 2
	}
	m := meds[idx]

	// Deletion is permanent and drops the treatment history, so it needs an
	// explicit confirmation.
	if !*yes {
		fmt.Fprintf(os.Stderr, "dw: remove: deleting %s erases its history; re-run with --yes\n", m.Name)
		return 1
	}

	meds = append(meds[:idx], meds[idx+1:]...)
	if err := a.store.Replace(meds); err != nil {
		fmt.Fprintf(os.Stderr, "dw: remove: %v\n", err)
		return 1
	}

	if *jsonOut {
		printJSON(map[string]interface{}{"removed": m.ID, "name": m.Name})
	} else {
		fmt.Printf("removed %s (%s)\n", m.Name, shortID(m))
	}
	return 0
}
