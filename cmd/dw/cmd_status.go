package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/lpmorais/dosewatch/pkg/alert"
	"github.com/lpmorais/dosewatch/pkg/model"
)

func (a *app) cmdStatus(args []string) int {
	flags := flag.NewFlagSet("status", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	now := time.Now()
	meds := a.loadMeds()
	pending := alert.Pending(meds, now)
	lowStock := alert.LowStock(meds)

	if *jsonOut {
		printJSON(map[string]interface{}{
			"registered": len(meds),
			"pending":    pending,
			"low_stock":  lowStock,
		})
		return 0
	}

	fmt.Printf("%d medication(s) registered\n", len(meds))

	if len(pending) > 0 {
		fmt.Printf("overdue now (%d):\n", len(pending))
		for _, m := range pending {
			fmt.Printf("  [!] %s %s — due %s, take with 'dw take %s'\n",
				shortID(m), m.Name, m.NextDoseAt.Format("15:04"), shortID(m))
		}
	} else {
		fmt.Println("nothing overdue")
	}

	if len(lowStock) > 0 {
		fmt.Printf("restock soon (%d):\n", len(lowStock))
		for _, m := range lowStock {
			days, _ := alert.StockDaysLeft(m)
			fmt.Printf("  [$] %s %s — %g units left, runs out in %d day(s)\n",
				shortID(m), m.Name, *m.Stock, days)
		}
	}

	if next := nextUpcoming(meds, now); next != nil {
		fmt.Printf("next dose: %s at %s\n", next.Name, next.NextDoseAt.Format("Mon 02 Jan 15:04"))
	}
	return 0
}

// nextUpcoming returns the scheduled record with the earliest future due
// time, or nil when nothing is upcoming.
func nextUpcoming(meds []model.Medication, now time.Time) *model.Medication {
	var best *model.Medication
	for i, m := range meds {
		if !m.Scheduled() || m.NextDoseAt == nil || !m.NextDoseAt.After(now) {
			continue
		}
		if best == nil || m.NextDoseAt.Before(*best.NextDoseAt) {
			best = &meds[i]
		}
	}
	return best
}
