package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/lpmorais/dosewatch/pkg/alert"
	"github.com/lpmorais/dosewatch/pkg/model"
)

func (a *app) cmdList(args []string) int {
	flags := flag.NewFlagSet("list", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	now := time.Now()
	meds := a.loadMeds()
	model.SortForDisplay(meds)

	if *jsonOut {
		type entry struct {
			model.Medication
			Late          bool `json:"late"`
			StockDaysLeft *int `json:"stock_days_left,omitempty"`
		}
		entries := make([]entry, len(meds))
		for i, m := range meds {
			entries[i] = entry{Medication: m, Late: alert.Late(m, now)}
			if days, ok := alert.StockDaysLeft(m); ok {
				entries[i].StockDaysLeft = &days
			}
		}
		printJSON(entries)
		return 0
	}

	if len(meds) == 0 {
		fmt.Println("no medications registered — try 'dw add --name ...'")
		return 0
	}

	for _, m := range meds {
		fmt.Println(formatListEntry(m, now))
	}
	return 0
}

// formatListEntry renders one medication card: status marker, name, dose,
// schedule line, and progress/stock annotations.
func formatListEntry(m model.Medication, now time.Time) string {
	var b strings.Builder

	marker := "[ ]"
	switch {
	case m.Finished:
		marker = "[x]"
	case m.Posology == model.AsNeeded:
		marker = "[~]"
	case alert.Late(m, now):
		marker = "[!]"
	}
	fmt.Fprintf(&b, "%s %s  %s", marker, shortID(m), m.Name)
	if m.DosageLabel != "" {
		fmt.Fprintf(&b, " %s", m.DosageLabel)
	}
	fmt.Fprintf(&b, " — %s", model.FormatDose(m.DoseAmount))

	switch {
	case m.Finished:
		fmt.Fprintf(&b, "\n    course finished (%d doses taken)", m.TakenCount)
	case m.Posology == model.AsNeeded:
		b.WriteString("\n    as needed, no schedule")
	default:
		if alert.Late(m, now) {
			b.WriteString("\n    next dose: NOW")
		} else if m.NextDoseAt != nil {
			fmt.Fprintf(&b, "\n    next dose: %s", m.NextDoseAt.Format("Mon 02 Jan 15:04"))
		}
		if len(m.ScheduleTimes) > 0 {
			fmt.Fprintf(&b, "  (daily at %s)", strings.Join(m.ScheduleTimes, ", "))
		} else if m.FrequencyHours > 0 {
			fmt.Fprintf(&b, "  (every %gh)", m.FrequencyHours)
		}
		if m.TotalDoses != nil {
			fmt.Fprintf(&b, "\n    progress: %d/%d doses", m.TakenCount, *m.TotalDoses)
		}
	}

	if m.Stock != nil {
		fmt.Fprintf(&b, "\n    stock: %g units", *m.Stock)
		if days, ok := alert.StockDaysLeft(m); ok {
			fmt.Fprintf(&b, " — runs out in %d day(s), restock!", days)
		} else if *m.Stock < 0 {
			b.WriteString(" — supply overdrawn, restock!")
		}
	}
	return b.String()
}
