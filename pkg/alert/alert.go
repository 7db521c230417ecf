// Package alert derives alarm and low-stock state from the record list and
// the current time. Sweep is the stateful half, run on the poll cadence;
// Late and StockDaysLeft are pure projections recomputed on every read and
// never persisted.
package alert

import (
	"math"
	"time"

	"github.com/lpmorais/dosewatch/pkg/model"
)

// StockWarnDays is the days-of-supply threshold below which a low-stock
// warning is raised.
const StockWarnDays = 3

// Sweep scans the record list for doses that have come due and not yet
// fired. Each such record is returned in fired and has Notified flipped to
// true in the updated list, making the transition idempotent per due time:
// until acknowledge or snooze advances NextDoseAt, later sweeps stay silent.
//
// The input is treated as immutable; updated is a fresh slice.
func Sweep(meds []model.Medication, now time.Time) (updated []model.Medication, fired []model.Medication) {
	updated = make([]model.Medication, len(meds))
	copy(updated, meds)

	for i, m := range updated {
		if !m.Scheduled() || m.NextDoseAt == nil {
			continue
		}
		if !m.Notified && !m.NextDoseAt.After(now) {
			m.Notified = true
			updated[i] = m
			fired = append(fired, m)
		}
	}
	return updated, fired
}

// Late reports whether a record's dose is currently overdue. Finished and
// as-needed records are never late.
func Late(m model.Medication, now time.Time) bool {
	return m.Scheduled() && m.NextDoseAt != nil && !now.Before(*m.NextDoseAt)
}

// Pending returns the records that are currently overdue.
func Pending(meds []model.Medication, now time.Time) []model.Medication {
	var out []model.Medication
	for _, m := range meds {
		if Late(m, now) {
			out = append(out, m)
		}
	}
	return out
}

// StockDaysLeft projects how many days of supply remain for a record with
// tracked stock. It returns (ceil(daysLeft), true) only when the supply is
// positive and at most StockWarnDays; otherwise, and for as-needed records,
// untracked stock, or an unusable frequency, it returns (0, false).
func StockDaysLeft(m model.Medication) (int, bool) {
	if m.Posology == model.AsNeeded || m.Stock == nil || m.FrequencyHours <= 0 {
		return 0, false
	}

	dosesPerDay := 24 / m.FrequencyHours
	daily := dosesPerDay * m.DoseAmount
	if daily <= 0 || math.IsInf(daily, 0) || math.IsNaN(daily) {
		return 0, false
	}

	daysLeft := *m.Stock / daily
	if math.IsInf(daysLeft, 0) || math.IsNaN(daysLeft) {
		return 0, false
	}
	if daysLeft <= 0 || daysLeft > StockWarnDays {
		return 0, false
	}
	return int(math.Ceil(daysLeft)), true
}

// LowStock returns the records whose supply projection warrants a warning.
func LowStock(meds []model.Medication) []model.Medication {
	var out []model.Medication
	for _, m := range meds {
		if _, ok := StockDaysLeft(m); ok {
			out = append(out, m)
		}
	}
	return out
}
