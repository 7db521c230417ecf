package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lpmorais/dosewatch/pkg/ledger"
	"github.com/lpmorais/dosewatch/pkg/model"
)

// regInput collects the raw registration flag values shared by add and edit.
type regInput struct {
	name     *string
	dosage   *string
	notes    *string
	posology *string
	amount   *float64
	every    *float64
	cadence  *string
	duration *int
	start    *string
	times    *string
	stock    *float64
}

// registrationFlags attaches the shared registration flags to a FlagSet.
func registrationFlags(fs *flag.FlagSet) *regInput {
	return &regInput{
		name:     fs.String("name", "", "medication name (required)"),
		dosage:   fs.String("dosage", "", "concentration label, e.g. 500mg"),
		notes:    fs.String("notes", "", "free-form notes, e.g. take after meals"),
		posology: fs.String("posology", "continuous", "continuous, course, or asneeded"),
		amount:   fs.Float64("amount", 1, "units per dose (quarters allowed, e.g. 0.5)"),
		every:    fs.Float64("every", 0, "hours between doses, e.g. 8"),
		cadence:  fs.String("cadence", "daily", "daily, weekly, monthly, or yearly"),
		duration: fs.Int("duration", 0, "course length in cadence units (0 = open-ended)"),
		start:    fs.String("start", "08:00", "first dose time HH:MM (seeds the daily grid)"),
		times:    fs.String("times", "", "explicit dose times, comma-separated HH:MM"),
		stock:    fs.Float64("stock", -1, "units on hand (-1 = not tracked)"),
	}
}

// toRegistration normalizes the raw flag values into a ledger registration.
func (r *regInput) toRegistration() ledger.Registration {
	reg := ledger.Registration{
		Name:          *r.name,
		DosageLabel:   *r.dosage,
		Notes:         *r.notes,
		Posology:      model.Posology(strings.ToLower(*r.posology)),
		DoseAmount:    *r.amount,
		IntervalHours: *r.every,
		Cadence:       ledger.Cadence(strings.ToLower(*r.cadence)),
		DurationCount: *r.duration,
		StartTime:     *r.start,
	}
	if *r.times != "" {
		for _, t := range strings.Split(*r.times, ",") {
			if t = strings.TrimSpace(t); t != "" {
				reg.Times = append(reg.Times, t)
			}
		}
	}
	if *r.stock >= 0 {
		s := *r.stock
		reg.Stock = &s
	}
	return reg
}

func (a *app) cmdAdd(args []string) int {
	flags := flag.NewFlagSet("add", flag.ContinueOnError)
	reg := registrationFlags(flags)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	m, err := ledger.Build(reg.toRegistration(), nil, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "dw: add: %v\n", err)
		return 1
	}

	meds := a.loadMeds()
	meds = append(meds, m)
	if err := a.store.Replace(meds); err != nil {
		fmt.Fprintf(os.Stderr, "dw: add: %v\n", err)
		return 1
	}

	if *jsonOut {
		printJSON(m)
	} else {
		fmt.Printf("registered %s (%s)\n", m.Name, shortID(m))
		if m.NextDoseAt != nil {
			fmt.Printf("next dose %s\n", m.NextDoseAt.Format("Mon 02 Jan 15:04"))
		}
	}
	return 0
}
